package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/poiesic/synapse/core"
	"github.com/poiesic/synapse/ingestion"
	"github.com/poiesic/synapse/search"
	"github.com/poiesic/synapse/storage"
)

// dateLayout is the wire format for filter bounds, DD-MM-YYYY.
const dateLayout = "02-01-2006"

type saveRequest struct {
	Text string `json:"text"`
}

type uploadImageRequest struct {
	ImageBase64 string `json:"imageBase64"`
}

type uploadImageResponse struct {
	Message string   `json:"message"`
	Text    string   `json:"text"`
	Tags    []string `json:"tags"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// noteResponse is the wire shape of a stored note. Vectors never leave the
// process.
type noteResponse struct {
	Id        core.ID   `json:"id"`
	Text      string    `json:"text"`
	Tags      []string  `json:"tags"`
	Image     string    `json:"image,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func toNoteResponse(note *core.Note) noteResponse {
	tags := note.Tags
	if tags == nil {
		tags = []string{}
	}
	return noteResponse{
		Id:        note.Id,
		Text:      note.Text,
		Tags:      tags,
		Image:     note.Image,
		CreatedAt: note.CreatedAt,
	}
}

func toNoteResponses(notes []*core.Note) []noteResponse {
	out := make([]noteResponse, 0, len(notes))
	for _, note := range notes {
		out = append(out, toNoteResponse(note))
	}
	return out
}

func (s *Server) writeJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("error encoding response", "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, statusCode int, message string) {
	s.writeJSON(w, statusCode, errorResponse{Error: message})
}

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)

	var req saveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if strings.TrimSpace(req.Text) == "" {
		s.writeError(w, http.StatusBadRequest, "text is required")
		return
	}

	if _, err := s.pipeline.IngestText(r.Context(), req.Text); err != nil {
		if errors.Is(err, ingestion.ErrEmptyInput) {
			s.writeError(w, http.StatusBadRequest, "text is required")
			return
		}
		s.logger.Error("error saving note", "err", err)
		s.writeError(w, http.StatusInternalServerError, "failed to save note")
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Saved successfully"))
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	notes, err := s.searcher.Keyword(r.Context(), query)
	if err != nil {
		s.logger.Error("error searching notes", "query", query, "err", err)
		s.writeError(w, http.StatusInternalServerError, "search failed")
		return
	}

	s.writeJSON(w, http.StatusOK, toNoteResponses(notes))
}

func (s *Server) handleSemanticSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if strings.TrimSpace(query) == "" {
		s.writeError(w, http.StatusBadRequest, "query is required")
		return
	}

	results, err := s.searcher.Semantic(r.Context(), query)
	if err != nil {
		if errors.Is(err, search.ErrEmptyQuery) {
			s.writeError(w, http.StatusBadRequest, "query is required")
			return
		}
		s.logger.Error("error in semantic search", "query", query, "err", err)
		s.writeError(w, http.StatusInternalServerError, "semantic search failed")
		return
	}

	if results == nil {
		results = []*core.ScoredNote{}
	}
	s.writeJSON(w, http.StatusOK, results)
}

func (s *Server) handleUploadImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)

	var req uploadImageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if req.ImageBase64 == "" {
		s.writeError(w, http.StatusBadRequest, "no image provided")
		return
	}

	result, err := s.pipeline.IngestImage(r.Context(), req.ImageBase64)
	if err != nil {
		if errors.Is(err, ingestion.ErrEmptyInput) {
			s.writeError(w, http.StatusBadRequest, "no image provided")
			return
		}
		if errors.Is(err, storage.ErrValueTooLarge) {
			s.writeError(w, http.StatusRequestEntityTooLarge, "image too large to store")
			return
		}
		s.logger.Error("error ingesting image", "err", err)
		s.writeError(w, http.StatusInternalServerError, "failed to process image")
		return
	}

	tags := result.Note.Tags
	if tags == nil {
		tags = []string{}
	}
	s.writeJSON(w, http.StatusOK, uploadImageResponse{
		Message: "Image saved successfully",
		// Raw extractor output, empty when nothing was recovered. The stored
		// note carries the placeholder instead.
		Text: result.ExtractedText,
		Tags: tags,
	})
}

func (s *Server) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	stats, err := s.searcher.Analytics(r.Context())
	if err != nil {
		s.logger.Error("error computing analytics", "err", err)
		s.writeError(w, http.StatusInternalServerError, "analytics failed")
		return
	}

	if stats.TopTags == nil {
		stats.TopTags = []string{}
	}
	s.writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleFilter(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	start, err := parseDateParam(q.Get("start"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid start date, expected DD-MM-YYYY")
		return
	}
	end, err := parseDateParam(q.Get("end"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid end date, expected DD-MM-YYYY")
		return
	}

	notes, err := s.searcher.Filter(r.Context(), start, end, q.Get("tag"))
	if err != nil {
		s.logger.Error("error filtering notes", "err", err)
		s.writeError(w, http.StatusInternalServerError, "filter failed")
		return
	}

	s.writeJSON(w, http.StatusOK, toNoteResponses(notes))
}

// parseDateParam parses an optional DD-MM-YYYY query value. Empty means
// unbounded and maps to nil.
func parseDateParam(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(dateLayout, value, time.UTC)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
