// Package selection picks daily words per difficulty tier. Pure logic:
// candidate pools and usage history in, picks out. Persistence and pool
// queries belong to the caller.
package selection

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/oneword-app/oneword-backend/internal/domain"
)

// Candidate is an eligible word at a given difficulty tier.
type Candidate struct {
	WordID       uuid.UUID
	Text         string
	PartOfSpeech domain.PartOfSpeech
}

// Pick is one selected word for a (date, level) slot. RelaxedConstraint
// marks picks made from the full pool after the lookback exclusion
// emptied it.
type Pick struct {
	Date              time.Time
	Level             domain.DifficultyLevel
	WordID            uuid.UUID
	Text              string
	PartOfSpeech      domain.PartOfSpeech
	RelaxedConstraint bool
}

// Params configures a Selector.
type Params struct {
	PerLevelCounts int
	LookbackDays   int
	// POSTargets is the desired share per part of speech across a day's
	// picks. Words whose part of speech is under-represented relative to
	// the target rank higher.
	POSTargets map[domain.PartOfSpeech]float64
}

// History records when each word was last assigned. The selector treats
// a word as recently used when its last assignment falls inside
// [date - lookbackDays, date).
type History map[uuid.UUID]time.Time

// Selector implements daily word selection with lookback exclusion and
// part-of-speech balancing. Selection is deterministic: ties break on
// word text.
type Selector struct {
	params Params
}

// New creates a Selector. Params are assumed validated by config.Load.
func New(params Params) *Selector {
	return &Selector{params: params}
}

// SelectForDate picks words for one date, one batch of picks per
// requested level. The part-of-speech usage counters are shared across
// levels within the call, so a level picking a noun lowers noun priority
// for the levels after it. History is not mutated.
func (s *Selector) SelectForDate(
	date time.Time,
	candidates map[domain.DifficultyLevel][]Candidate,
	history History,
) []Pick {
	date = domain.DateOnly(date)
	posUsage := make(map[domain.PartOfSpeech]int)
	totalPicked := 0

	var picks []Pick
	for _, level := range domain.AllDifficultyLevels() {
		pool, ok := candidates[level]
		if !ok || len(pool) == 0 {
			continue
		}

		fresh := s.excludeRecent(pool, history, date)
		relaxed := false
		if len(fresh) == 0 {
			// No eligible alternative remains: fall back to the full
			// pool and surface the relaxation to the caller.
			fresh = pool
			relaxed = true
		}

		picked := make(map[uuid.UUID]bool)
		for n := 0; n < s.params.PerLevelCounts; n++ {
			best, ok := s.pickBest(fresh, picked, posUsage, totalPicked)
			if !ok {
				break
			}
			picked[best.WordID] = true
			posUsage[best.PartOfSpeech]++
			totalPicked++

			picks = append(picks, Pick{
				Date:              date,
				Level:             level,
				WordID:            best.WordID,
				Text:              best.Text,
				PartOfSpeech:      best.PartOfSpeech,
				RelaxedConstraint: relaxed,
			})
		}
	}

	return picks
}

// SelectRange processes each date independently and in order. A word
// picked for day N joins the exclusion history for day N+1 onward within
// the same run. The passed history is copied, not mutated.
func (s *Selector) SelectRange(
	from, to time.Time,
	candidates map[domain.DifficultyLevel][]Candidate,
	history History,
) []Pick {
	from = domain.DateOnly(from)
	to = domain.DateOnly(to)

	running := make(History, len(history))
	for id, d := range history {
		running[id] = d
	}

	var all []Pick
	for date := from; !date.After(to); date = date.AddDate(0, 0, 1) {
		picks := s.SelectForDate(date, candidates, running)
		for _, p := range picks {
			running[p.WordID] = p.Date
		}
		all = append(all, picks...)
	}
	return all
}

// excludeRecent filters out candidates last assigned within the lookback
// window [date - lookbackDays, date).
func (s *Selector) excludeRecent(pool []Candidate, history History, date time.Time) []Candidate {
	windowStart := date.AddDate(0, 0, -s.params.LookbackDays)

	fresh := make([]Candidate, 0, len(pool))
	for _, c := range pool {
		last, used := history[c.WordID]
		if used && !last.Before(windowStart) && last.Before(date) {
			continue
		}
		fresh = append(fresh, c)
	}
	return fresh
}

// pickBest returns the highest-priority unpicked candidate. Priority is
// part-of-speech scarcity: target share minus the share already picked
// today. Ties break on word text for determinism.
func (s *Selector) pickBest(
	pool []Candidate,
	picked map[uuid.UUID]bool,
	posUsage map[domain.PartOfSpeech]int,
	totalPicked int,
) (Candidate, bool) {
	available := make([]Candidate, 0, len(pool))
	for _, c := range pool {
		if !picked[c.WordID] {
			available = append(available, c)
		}
	}
	if len(available) == 0 {
		return Candidate{}, false
	}

	priority := func(c Candidate) float64 {
		target := s.params.POSTargets[c.PartOfSpeech]
		if totalPicked == 0 {
			return target
		}
		actual := float64(posUsage[c.PartOfSpeech]) / float64(totalPicked)
		return target - actual
	}

	sort.Slice(available, func(i, j int) bool {
		pi, pj := priority(available[i]), priority(available[j])
		if pi != pj {
			return pi > pj
		}
		return available[i].Text < available[j].Text
	})

	return available[0], true
}
