package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/oneword-app/oneword-backend/internal/domain"
)

type dailyWordsProviderMock struct {
	words    []domain.AssignedWord
	err      error
	gotDate  time.Time
	wasAsked bool
}

func (m *dailyWordsProviderMock) DailyWords(_ context.Context, date time.Time) ([]domain.AssignedWord, error) {
	m.wasAsked = true
	m.gotDate = date
	return m.words, m.err
}

func TestDailyWords_Get(t *testing.T) {
	t.Parallel()

	provider := &dailyWordsProviderMock{
		words: []domain.AssignedWord{
			{
				DailyWordAssignment: domain.DailyWordAssignment{
					ID:              uuid.New(),
					DifficultyLevel: domain.DifficultyBeginner,
					WordID:          uuid.New(),
				},
				WordText:     "cat",
				PartOfSpeech: domain.PartOfSpeechNoun,
			},
			{
				DailyWordAssignment: domain.DailyWordAssignment{
					ID:                uuid.New(),
					DifficultyLevel:   domain.DifficultyAdvanced,
					WordID:            uuid.New(),
					RelaxedConstraint: true,
				},
				WordText:     "perspicacious",
				PartOfSpeech: domain.PartOfSpeechAdjective,
			},
		},
	}
	h := NewDailyWordsHandler(provider)

	req := httptest.NewRequest(http.MethodGet, "/v1/daily-words?date=2026-03-10", nil)
	rec := httptest.NewRecorder()

	h.Get(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	want := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	if !provider.gotDate.Equal(want) {
		t.Errorf("expected provider asked for %v, got %v", want, provider.gotDate)
	}

	var resp DailyWordsResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.Date != "2026-03-10" {
		t.Errorf("expected date 2026-03-10, got %q", resp.Date)
	}
	if len(resp.Words) != 2 {
		t.Fatalf("expected 2 words, got %d", len(resp.Words))
	}
	if resp.Words[0].Word != "cat" || resp.Words[0].DifficultyLevel != "BEGINNER" {
		t.Errorf("unexpected first word: %+v", resp.Words[0])
	}
	if !resp.Words[1].RelaxedConstraint {
		t.Error("expected relaxed_constraint on second word")
	}
}

func TestDailyWords_Get_DefaultsToToday(t *testing.T) {
	t.Parallel()

	provider := &dailyWordsProviderMock{}
	h := NewDailyWordsHandler(provider)

	req := httptest.NewRequest(http.MethodGet, "/v1/daily-words", nil)
	rec := httptest.NewRecorder()

	h.Get(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	today := domain.DateOnly(time.Now().UTC())
	if !provider.gotDate.Equal(today) {
		t.Errorf("expected provider asked for today %v, got %v", today, provider.gotDate)
	}
}

func TestDailyWords_Get_EmptyDay(t *testing.T) {
	t.Parallel()

	provider := &dailyWordsProviderMock{words: []domain.AssignedWord{}}
	h := NewDailyWordsHandler(provider)

	req := httptest.NewRequest(http.MethodGet, "/v1/daily-words?date=2026-03-10", nil)
	rec := httptest.NewRecorder()

	h.Get(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var resp DailyWordsResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Words == nil || len(resp.Words) != 0 {
		t.Errorf("expected empty words array, got %v", resp.Words)
	}
}

func TestDailyWords_Get_InvalidDate(t *testing.T) {
	t.Parallel()

	provider := &dailyWordsProviderMock{}
	h := NewDailyWordsHandler(provider)

	req := httptest.NewRequest(http.MethodGet, "/v1/daily-words?date=10-03-2026", nil)
	rec := httptest.NewRecorder()

	h.Get(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
	if provider.wasAsked {
		t.Error("provider should not be called for an invalid date")
	}
}

func TestDailyWords_Get_ServiceError(t *testing.T) {
	t.Parallel()

	provider := &dailyWordsProviderMock{err: errors.New("db down")}
	h := NewDailyWordsHandler(provider)

	req := httptest.NewRequest(http.MethodGet, "/v1/daily-words?date=2026-03-10", nil)
	rec := httptest.NewRecorder()

	h.Get(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rec.Code)
	}
}
