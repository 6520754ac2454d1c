package service

import (
	"math"
	"sort"
	"strconv"
	"time"

	"github.com/sauhard98/sirion/model"
)

// DaysUntil computes the signed whole-day distance from now to a
// calendar date, ceiling partial days. The event date counts from
// midnight; time-of-day on the event side is ignored. Negative means
// the date has passed.
func DaysUntil(date time.Time, now time.Time) int {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, now.Location())
	return int(math.Ceil(day.Sub(now).Hours() / 24))
}

// FinalizeAnalysis returns a copy of the analysis with every timeline
// event carrying a stable identifier and a daysUntil computed against
// now. Existing identifiers are preserved; events without one get their
// 1-based position in the original sequence. Events are rebuilt, never
// patched in place.
func FinalizeAnalysis(analysis *model.ContractAnalysis, now time.Time) *model.ContractAnalysis {
	out := &model.ContractAnalysis{
		Metadata:  analysis.Metadata,
		Structure: append([]model.ContractSection(nil), analysis.Structure...),
	}

	out.TimelineEvents = make([]model.TimelineEvent, 0, len(analysis.TimelineEvents))
	for i, e := range analysis.TimelineEvents {
		id := e.ID
		if id == "" {
			id = strconv.Itoa(i + 1)
		}

		var days *int
		if d, err := e.EventDate(); err == nil {
			v := DaysUntil(d, now)
			days = &v
		}

		out.TimelineEvents = append(out.TimelineEvents, model.TimelineEvent{
			ID:           id,
			Title:        e.Title,
			Date:         e.Date,
			Type:         e.Type,
			Risk:         e.Risk,
			Repercussion: e.Repercussion,
			DaysUntil:    days,
		})
	}

	return out
}

// WithCurrentCountdowns returns a copy of the contract whose events
// carry a daysUntil recomputed against now. The stored value is a
// snapshot from analysis time; read paths go through here so countdowns
// never go stale. The stored contract itself is never touched.
func WithCurrentCountdowns(c *model.Contract, now time.Time) *model.Contract {
	out := *c
	out.Analysis = *FinalizeAnalysis(&c.Analysis, now)
	return &out
}

// SortedEventsByDate returns the events in chronological order without
// touching the original slice. Ties keep the model's order.
func SortedEventsByDate(events []model.TimelineEvent) []model.TimelineEvent {
	sorted := append([]model.TimelineEvent(nil), events...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date < sorted[j].Date
	})
	return sorted
}
