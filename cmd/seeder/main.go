package main

import (
	"bufio"
	"context"
	"flag"
	"iter"
	"log/slog"
	"os"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/poiesic/synapse"
	"github.com/poiesic/synapse/ingestion"
)

var snippets = []string{
	"Saw a red shoe in the window of the corner store.",
	"Blue bag left on the train, platform two.",
	"Buy a new laptop charger before the trip.",
	"The green bottle on the top shelf is the good olive oil.",
	"Black dress for the wedding, needs hemming.",
	"Phone screen cracked again, check repair prices.",
	"Yellow book about birds, borrowed from Sam.",
	"The brown leather watch was grandfather's.",
	"Orange bike locked outside the library.",
	"White shirt with the coffee stain, try vinegar.",
	"Pink pen that writes upside down, desk drawer.",
	"Purple shoes are half price until Friday.",
	"Grey car parked in spot 14, level 3.",
	"Dentist appointment Tuesday at nine.",
	"The wifi password is on the fridge.",
	"Mom's birthday gift ideas: scarf, tea set.",
	"Recipe calls for two cups of flour, not three.",
	"Gym opens at six on weekdays.",
	"Return the drill to Marco next weekend.",
	"Flight confirmation code QX7R2B.",
	"The blue notebook has the meeting sketches.",
	"Water the plants before leaving Thursday.",
	"Red wine stain remover is under the sink.",
	"New phone case arrived, check the mailbox.",
	"The bottle of sunscreen expired last summer.",
	"Green tea before noon only.",
	"Car service due at 60000 km.",
	"The watch battery place is next to the bakery.",
	"Book club reads the white whale one next month.",
	"Spare keys in the black box by the door.",
	"Bike tire pressure 55 psi front, 60 rear.",
	"The dress code for Friday is casual.",
	"Laptop backup runs Sunday nights.",
	"Pen refills, medium point, blue ink.",
	"Shirt size medium fits better than large.",
	"The orange juice brand with no pulp.",
	"Shoe repair shop closes at five.",
	"Brown rice takes forty minutes.",
	"The yellow highlighter is the only one that works.",
	"Pink post-its for urgent, blue for later.",
}

var (
	seedFileName = flag.String("src", "", "file of seed notes, one per line")
	dbPath       = flag.String("db", "./synapse_db", "path to BadgerDB database directory")
	workers      = flag.Int("workers", 4, "number of concurrent ingest workers")
)

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
	flag.Parse()
}

// linesFromFile returns an iterator over lines in a file.
func linesFromFile(filename string) (iter.Seq[string], error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}

	return func(yield func(string) bool) {
		defer f.Close()
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			if !yield(scanner.Text()) {
				return
			}
		}
	}, nil
}

// linesFromSlice returns an iterator over a slice of strings.
func linesFromSlice(lines []string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, line := range lines {
			if !yield(line) {
				return
			}
		}
	}
}

// ingestAll pushes every line through the pipeline using a bounded worker
// pool. Individual failures are logged and skipped so one bad line does not
// abort the whole seed run.
func ingestAll(ctx context.Context, pipeline *ingestion.Pipeline, source iter.Seq[string], poolSize int) error {
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return err
	}
	defer pool.Release()

	var wg sync.WaitGroup
	var ingested, failed int
	var mu sync.Mutex

	for line := range source {
		text := line
		wg.Add(1)
		err := pool.Submit(func() {
			defer wg.Done()
			if _, err := pipeline.IngestText(ctx, text); err != nil {
				slog.Error("error ingesting note", "text", text, "err", err)
				mu.Lock()
				failed++
				mu.Unlock()
				return
			}
			mu.Lock()
			ingested++
			mu.Unlock()
		})
		if err != nil {
			wg.Done()
			return err
		}
	}

	wg.Wait()
	slog.Info("seeding complete", "ingested", ingested, "failed", failed)
	return nil
}

func main() {
	db, err := synapse.NewDatabase(*dbPath)
	if err != nil {
		panic(err)
	}
	defer db.Close()

	pipeline, err := db.NewIngestionPipeline()
	if err != nil {
		panic(err)
	}

	ctx := context.Background()

	var source iter.Seq[string]
	if *seedFileName != "" {
		source, err = linesFromFile(*seedFileName)
		if err != nil {
			panic(err)
		}
	} else {
		source = linesFromSlice(snippets)
	}

	if err := ingestAll(ctx, pipeline, source, *workers); err != nil {
		panic(err)
	}
}
