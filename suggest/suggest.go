// Package suggest implements the next-action recommendation heuristic. It
// is a pure function of a task list: no storage, no clock, no side effects,
// so the same list always yields the same insight.
package suggest

import (
	"fmt"
	"math"
)

// HighPriority is the priority value that short-circuits the recommendation.
const HighPriority = "High"

// TaskView is the minimal task projection the heuristic needs. Lists are
// expected in store order, most recent first.
type TaskView struct {
	ID        string
	Title     string
	Priority  string
	Completed bool
}

// Insight is the heuristic's result: overall completion percentage, a
// human-readable recommendation, and the id of the recommended task when
// one exists.
type Insight struct {
	Percent       int    `json:"percent"`
	Message       string `json:"message"`
	RecommendedID string `json:"recommended_id,omitempty"`
}

// Analyze derives the completion percentage and next-action recommendation
// from the given task list.
//
// Selection rules, in order: with no pending tasks the "all clear" state is
// reported; otherwise the first pending High-priority task in list order
// wins; otherwise the first pending task in list order. The fallback
// message speaks of the oldest task while list order is most-recent-first,
// so it actually names the newest pending task; that mismatch is inherited
// behavior, kept deliberately.
func Analyze(tasks []TaskView) Insight {
	total := len(tasks)
	done := 0
	for _, t := range tasks {
		if t.Completed {
			done++
		}
	}

	percent := 0
	if total > 0 {
		percent = int(math.Round(float64(done) / float64(total) * 100))
	}

	var pending []TaskView
	for _, t := range tasks {
		if !t.Completed {
			pending = append(pending, t)
		}
	}

	if len(pending) == 0 {
		return Insight{
			Percent: percent,
			Message: "All clear! You are performing at peak potential. Take a break.",
		}
	}

	for _, t := range pending {
		if t.Priority == HighPriority {
			return Insight{
				Percent:       percent,
				Message:       fmt.Sprintf("Priority Alert: Focus on %q first. It's marked as critical for your progress.", t.Title),
				RecommendedID: t.ID,
			}
		}
	}

	return Insight{
		Percent:       percent,
		Message:       fmt.Sprintf("You have %d pending tasks. Start with the oldest one to maintain momentum.", len(pending)),
		RecommendedID: pending[0].ID,
	}
}
