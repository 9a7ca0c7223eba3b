package suggest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnalyze_EmptyList(t *testing.T) {
	got := Analyze(nil)

	assert.Equal(t, 0, got.Percent)
	assert.Contains(t, got.Message, "All clear")
	assert.Empty(t, got.RecommendedID)
}

func TestAnalyze_HighPriorityWinsInListOrder(t *testing.T) {
	got := Analyze([]TaskView{
		{ID: "a", Title: "A", Priority: "High"},
		{ID: "b", Title: "B", Priority: "Low"},
	})

	assert.Equal(t, "a", got.RecommendedID)
	assert.Contains(t, got.Message, `"A"`)
}

func TestAnalyze_HighPriorityBeatsEarlierLow(t *testing.T) {
	got := Analyze([]TaskView{
		{ID: "b", Title: "B", Priority: "Low"},
		{ID: "a", Title: "A", Priority: "High"},
	})

	assert.Equal(t, "a", got.RecommendedID)
}

func TestAnalyze_SinglePendingLowPriority(t *testing.T) {
	got := Analyze([]TaskView{
		{ID: "b", Title: "B", Priority: "Low"},
	})

	assert.Equal(t, "b", got.RecommendedID)
	assert.Contains(t, got.Message, "1 pending")
}

func TestAnalyze_FallbackPicksFirstPendingInListOrder(t *testing.T) {
	// List order is most-recent-first; the fallback takes the first pending
	// element, completed tasks skipped.
	got := Analyze([]TaskView{
		{ID: "newest", Title: "N", Priority: "Medium", Completed: true},
		{ID: "middle", Title: "M", Priority: "Medium"},
		{ID: "oldest", Title: "O", Priority: "Low"},
	})

	assert.Equal(t, "middle", got.RecommendedID)
}

func TestAnalyze_AllCompleted(t *testing.T) {
	got := Analyze([]TaskView{
		{ID: "a", Title: "A", Priority: "High", Completed: true},
		{ID: "b", Title: "B", Priority: "Low", Completed: true},
	})

	assert.Equal(t, 100, got.Percent)
	assert.Contains(t, got.Message, "All clear")
	assert.Empty(t, got.RecommendedID)
}

func TestAnalyze_PercentRounding(t *testing.T) {
	tasks := []TaskView{
		{ID: "1", Completed: true},
		{ID: "2", Completed: true},
		{ID: "3"},
		{ID: "4"},
	}
	assert.Equal(t, 50, Analyze(tasks).Percent)

	third := []TaskView{
		{ID: "1", Completed: true},
		{ID: "2"},
		{ID: "3"},
	}
	assert.Equal(t, 33, Analyze(third).Percent)

	twoThirds := []TaskView{
		{ID: "1", Completed: true},
		{ID: "2", Completed: true},
		{ID: "3"},
	}
	assert.Equal(t, 67, Analyze(twoThirds).Percent)
}
