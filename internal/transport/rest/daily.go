package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/oneword-app/oneword-backend/internal/domain"
)

// dailyWordsProvider defines the minimal interface for reading a day's
// word assignments.
type dailyWordsProvider interface {
	DailyWords(ctx context.Context, date time.Time) ([]domain.AssignedWord, error)
}

// DailyWordsHandler serves the daily word read endpoint.
type DailyWordsHandler struct {
	words dailyWordsProvider
}

// NewDailyWordsHandler creates a DailyWordsHandler.
func NewDailyWordsHandler(words dailyWordsProvider) *DailyWordsHandler {
	return &DailyWordsHandler{words: words}
}

// DailyWordsResponse is the JSON response for /v1/daily-words.
type DailyWordsResponse struct {
	Date  string      `json:"date"`
	Words []DailyWord `json:"words"`
}

// DailyWord is one assigned word in the response.
type DailyWord struct {
	Word              string `json:"word"`
	PartOfSpeech      string `json:"part_of_speech"`
	DifficultyLevel   string `json:"difficulty_level"`
	RelaxedConstraint bool   `json:"relaxed_constraint,omitempty"`
}

// ErrorResponse is the JSON error payload.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Get handles GET /v1/daily-words?date=YYYY-MM-DD. A missing date
// defaults to today (UTC).
func (h *DailyWordsHandler) Get(w http.ResponseWriter, r *http.Request) {
	date := time.Now().UTC()
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{
				Error: "invalid date, expected YYYY-MM-DD",
			})
			return
		}
		date = parsed
	}
	date = domain.DateOnly(date)

	assigned, err := h.words.DailyWords(r.Context(), date)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{
			Error: "failed to load daily words",
		})
		return
	}

	resp := DailyWordsResponse{
		Date:  date.Format(time.DateOnly),
		Words: make([]DailyWord, 0, len(assigned)),
	}
	for _, a := range assigned {
		resp.Words = append(resp.Words, DailyWord{
			Word:              a.WordText,
			PartOfSpeech:      string(a.PartOfSpeech),
			DifficultyLevel:   string(a.DifficultyLevel),
			RelaxedConstraint: a.RelaxedConstraint,
		})
	}

	writeJSON(w, http.StatusOK, resp)
}
