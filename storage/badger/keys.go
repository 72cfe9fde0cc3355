package badger

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/poiesic/synapse/core"
)

// Key prefixes for different data types
const (
	notePrefix     = "noterec"
	noteDatePrefix = "noterecd"
	noteIDSeq      = "noterecseq"
)

// makeNoteKey generates a key for a note by ID.
func makeNoteKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", notePrefix, id))
}

// makeNoteDateKey generates a composite key for the date index.
// Format: prefix:timestamp:id
func makeNoteDateKey(timestamp time.Time, id core.ID) []byte {
	prefix := noteDatePrefix + ":"
	prefixBytes := []byte(prefix)
	totalSize := len(prefixBytes) + 16 // 8 bytes for timestamp + 8 bytes for ID
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(timestamp.UnixMicro()))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makePartialNoteDateKey generates a partial key for date range queries.
// It sorts before every full key carrying the same timestamp.
// Format: prefix:timestamp
func makePartialNoteDateKey(timestamp time.Time) []byte {
	prefix := noteDatePrefix + ":"
	prefixBytes := []byte(prefix)
	totalSize := len(prefixBytes) + 8
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	binary.BigEndian.PutUint64(buf[offset:], uint64(timestamp.UnixMicro()))
	return buf
}

// makeMaxNoteDateKey generates the largest possible date key for the given
// timestamp, used as an inclusive upper bound for reverse iteration.
func makeMaxNoteDateKey(timestamp time.Time) []byte {
	key := makeNoteDateKey(timestamp, core.ID(^uint64(0)))
	return key
}
