package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/FocuswithJustin/Lectionarium/core/bible"
	"github.com/FocuswithJustin/Lectionarium/core/paragraph"
	"github.com/FocuswithJustin/Lectionarium/core/text"
	"github.com/FocuswithJustin/Lectionarium/internal/lectionary"
	"github.com/FocuswithJustin/Lectionarium/internal/logging"
)

// APIResponse is the standard API response wrapper.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    *APIMeta    `json:"meta,omitempty"`
}

// APIError represents an API error.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// APIMeta contains response metadata.
type APIMeta struct {
	Total     int    `json:"total,omitempty"`
	Timestamp string `json:"timestamp"`
}

// Passage is a resolved citation with its formatted paragraphs.
type Passage struct {
	Citation   string          `json:"citation"`
	Paragraphs []ParagraphInfo `json:"paragraphs"`
}

// ParagraphInfo is one paragraph of a passage.
type ParagraphInfo struct {
	Mode  string     `json:"mode"`
	Lines []LineInfo `json:"lines"`
}

// LineInfo is one line of a paragraph. Addr is set on the first line
// of each verse.
type LineInfo struct {
	Addr string `json:"addr,omitempty"`
	Text string `json:"text"`
}

// MassReadings is a mass and its resolved readings.
type MassReadings struct {
	Name     string    `json:"name"`
	Readings []Reading `json:"readings"`
}

// Reading is one reading: the citation string and its verses.
type Reading struct {
	Citation string      `json:"citation"`
	Verses   []VerseInfo `json:"verses"`
}

// VerseInfo is one verse of a reading or passage stream.
type VerseInfo struct {
	Addr string `json:"addr"`
	Text string `json:"text"`
}

// HealthInfo is the health check response.
type HealthInfo struct {
	Status string `json:"status"`
	Uptime string `json:"uptime"`
	Books  int    `json:"books"`
}

var startTime = time.Now()

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "Endpoint not found")
		return
	}

	respond(w, http.StatusOK, map[string]interface{}{
		"name": "Lectionarium API",
		"endpoints": []string{
			"GET /health",
			"GET /passage?cite=",
			"GET /masses",
			"GET /readings?q=",
			"WS /ws/passage?cite=",
		},
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Only GET is allowed")
		return
	}

	loaded := 0
	for _, book := range s.canon.Books() {
		if len(book.Text().ChapterKeys()) > 0 {
			loaded++
		}
	}
	respond(w, http.StatusOK, HealthInfo{
		Status: "ok",
		Uptime: time.Since(startTime).Round(time.Second).String(),
		Books:  loaded,
	})
}

// resolvePassage turns a citation query into a Passage, classifying
// failures for HTTP status mapping.
func (s *Server) resolvePassage(cite string) (*Passage, int, string, error) {
	verses, err := bible.Verses(s.canon, cite)
	if err != nil {
		if errors.Is(err, text.ErrNotFound) {
			return nil, http.StatusNotFound, "PASSAGE_NOT_FOUND", err
		}
		return nil, http.StatusBadRequest, "BAD_CITATION", err
	}

	paragraphs, err := paragraph.Format(verses)
	if err != nil {
		return nil, http.StatusInternalServerError, "FORMATTING_FAILED", err
	}

	p := &Passage{Citation: cite}
	for _, par := range paragraphs {
		info := ParagraphInfo{Mode: par.Mode.String()}
		for _, line := range par.Lines {
			li := LineInfo{Text: line.Text}
			if line.Addr != nil {
				li.Addr = line.Addr.String()
			}
			info.Lines = append(info.Lines, li)
		}
		p.Paragraphs = append(p.Paragraphs, info)
	}
	return p, http.StatusOK, "", nil
}

func (s *Server) handlePassage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Only GET is allowed")
		return
	}

	cite := r.URL.Query().Get("cite")
	if cite == "" {
		respondError(w, http.StatusBadRequest, "MISSING_CITATION", "Query parameter 'cite' is required")
		return
	}

	p, status, code, err := s.resolvePassage(cite)
	if err != nil {
		logging.WarnContext(r.Context(), "passage resolution failed",
			"citation", cite, "error", err.Error())
		respondError(w, status, code, err.Error())
		return
	}
	respond(w, http.StatusOK, p)
}

func (s *Server) handleMasses(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Only GET is allowed")
		return
	}
	if s.lect == nil {
		respondError(w, http.StatusNotFound, "NO_LECTIONARY", "No lectionary is loaded")
		return
	}

	ids := make([]string, 0, len(s.lect.Masses()))
	for _, m := range s.lect.Masses() {
		ids = append(ids, m.UniqueID())
	}
	respondWithTotal(w, http.StatusOK, ids, len(ids))
}

func (s *Server) handleReadings(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Only GET is allowed")
		return
	}
	if s.lect == nil {
		respondError(w, http.StatusNotFound, "NO_LECTIONARY", "No lectionary is loaded")
		return
	}

	query := r.URL.Query().Get("q")
	if query == "" {
		respondError(w, http.StatusBadRequest, "MISSING_QUERY", "Query parameter 'q' is required")
		return
	}

	name, readings, err := s.lect.Readings(s.canon, query)
	if err != nil {
		var malformed *lectionary.MalformedQueryError
		var nonSingular *lectionary.NonSingularResultsError
		switch {
		case errors.As(err, &malformed):
			respondError(w, http.StatusBadRequest, "BAD_QUERY", err.Error())
		case errors.As(err, &nonSingular):
			respondError(w, http.StatusNotFound, "NON_SINGULAR", err.Error())
		default:
			respondError(w, http.StatusInternalServerError, "READINGS_FAILED", err.Error())
		}
		return
	}

	result := MassReadings{Name: name}
	for _, reading := range readings {
		dto := Reading{Citation: reading.Citation}
		for _, v := range reading.Verses {
			dto.Verses = append(dto.Verses, VerseInfo{Addr: v.Addr.String(), Text: v.Text})
		}
		result.Readings = append(result.Readings, dto)
	}
	respond(w, http.StatusOK, result)
}

func respond(w http.ResponseWriter, status int, data interface{}) {
	response := APIResponse{
		Success: true,
		Data:    data,
		Meta: &APIMeta{
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		},
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(response)
}

func respondWithTotal(w http.ResponseWriter, status int, data interface{}, total int) {
	response := APIResponse{
		Success: true,
		Data:    data,
		Meta: &APIMeta{
			Total:     total,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		},
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(response)
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	response := APIResponse{
		Success: false,
		Error: &APIError{
			Code:    code,
			Message: message,
		},
		Meta: &APIMeta{
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		},
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(response)
}
