package srs

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcliao/studycards/internal/model"
)

var t0 = time.Date(2025, 11, 2, 10, 30, 0, 0, time.UTC)

// progress returns a progress last reviewed the day before t0.
func progress(ef float64, interval, reps, lapses int) *model.Progress {
	last := t0.AddDate(0, 0, -1)
	return &model.Progress{
		EaseFactor: ef, IntervalDays: interval, Repetitions: reps, Lapses: lapses,
		LastReviewed: &last,
	}
}

// unreviewed returns a progress with fields set but no last review.
func unreviewed(ef float64, interval, reps, lapses int) *model.Progress {
	p := progress(ef, interval, reps, lapses)
	p.LastReviewed = nil
	return p
}

func TestApplyTable(t *testing.T) {
	tests := []struct {
		name         string
		prev         *model.Progress
		grade        Grade
		wantInterval int
		wantReps     int
		wantLapses   int
		wantEase     float64
	}{
		{"again resets", progress(2.5, 15, 3, 1), Again, 0, 0, 2, 2.3},
		{"again floors ease", progress(1.4, 6, 2, 0), Again, 0, 0, 1, 1.3},
		{"hard first", progress(2.5, 0, 0, 0), Hard, 1, 1, 0, 2.35},
		{"hard later", progress(2.5, 10, 2, 0), Hard, 12, 3, 0, 2.35},
		{"hard floors ease", progress(1.35, 10, 4, 2), Hard, 12, 5, 2, 1.3},
		{"good first", progress(2.5, 0, 0, 0), Good, 1, 1, 0, 2.5},
		{"good second", progress(2.5, 1, 1, 0), Good, 6, 2, 0, 2.5},
		{"good mature", progress(2.0, 6, 2, 0), Good, 12, 3, 0, 2.0},
		{"good truncates", progress(2.5, 15, 3, 0), Good, 37, 4, 0, 2.5},
		{"easy first", progress(2.5, 0, 0, 0), Easy, 4, 1, 0, 2.5},
		{"easy later", progress(2.0, 10, 2, 1), Easy, 26, 3, 1, 2.15},
		{"easy caps ease", progress(2.45, 4, 1, 0), Easy, 12, 2, 0, 2.5},
		{"unreviewed good is fresh", unreviewed(2.5, 10, 3, 0), Good, 1, 1, 0, 2.5},
		{"unreviewed easy is fresh", unreviewed(1.3, 40, 7, 0), Easy, 4, 1, 0, 2.5},
		{"unreviewed again keeps lapses", unreviewed(1.5, 10, 3, 2), Again, 0, 0, 3, 2.3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Apply(tt.prev, tt.grade, t0)
			assert.Equal(t, tt.wantInterval, got.IntervalDays, "interval")
			assert.Equal(t, tt.wantReps, got.Repetitions, "repetitions")
			assert.Equal(t, tt.wantLapses, got.Lapses, "lapses")
			assert.InDelta(t, tt.wantEase, got.EaseFactor, 1e-9, "ease factor")
		})
	}
}

func TestApplyFreshCard(t *testing.T) {
	got := Apply(nil, Easy, t0)
	assert.Equal(t, 4, got.IntervalDays)
	assert.Equal(t, 2.5, got.EaseFactor)
	assert.Equal(t, 1, got.Repetitions)
	assert.Equal(t, 0, got.Lapses)
	require.NotNil(t, got.LastReviewed)
	require.NotNil(t, got.NextReview)
	assert.True(t, got.LastReviewed.Equal(t0))
	assert.True(t, got.NextReview.Equal(t0.Add(4*24*time.Hour)))
}

func TestApplyZeroEaseUsesDefault(t *testing.T) {
	got := Apply(&model.Progress{}, Hard, t0)
	assert.InDelta(t, 2.35, got.EaseFactor, 1e-9)

	got = Apply(progress(0, 10, 2, 0), Hard, t0)
	assert.InDelta(t, 2.35, got.EaseFactor, 1e-9)
	assert.Equal(t, 12, got.IntervalDays)
}

func TestApplyUnreviewedMatchesFresh(t *testing.T) {
	prev := unreviewed(2.5, 10, 3, 0)
	prev.CardID = "c1"
	for _, g := range Grades {
		got := Apply(prev, g, t0)
		want := Apply(nil, g, t0)
		want.CardID = "c1"
		assert.Equal(t, want, got, "grade %v", g)
	}
}

func TestApplyAcrossDST(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// Clocks spring forward at 02:00 on 2025-03-09.
	now := time.Date(2025, 3, 8, 23, 30, 0, 0, ny)
	for _, g := range []Grade{Again, Good} {
		got := Apply(nil, g, now)
		assert.Equal(t, "2025-03-09", got.NextReview.In(ny).Format("2006-01-02"), "grade %v", g)
		assert.Equal(t, 23, got.NextReview.In(ny).Hour())

		s := Select([]model.Card{{ID: "x", Progress: &got}}, time.Date(2025, 3, 9, 12, 0, 0, 0, ny), DefaultNewCardLimit)
		assert.Equal(t, SessionStats{Total: 1, Review: 1}, s.Stats, "grade %v", g)
	}
}

func TestApplyAgainDueTomorrow(t *testing.T) {
	for _, prev := range []*model.Progress{nil, progress(2.5, 37, 4, 0), progress(1.3, 1, 1, 9)} {
		oldLapses := 0
		if prev != nil {
			oldLapses = prev.Lapses
		}
		got := Apply(prev, Again, t0)
		assert.Equal(t, 0, got.Repetitions)
		assert.Equal(t, 0, got.IntervalDays)
		assert.Equal(t, oldLapses+1, got.Lapses)
		assert.True(t, got.NextReview.Equal(t0.AddDate(0, 0, 1)))
	}
}

func TestApplyNextReviewFollowsInterval(t *testing.T) {
	var p *model.Progress
	for _, g := range []Grade{Good, Good, Hard, Easy, Good} {
		next := Apply(p, g, t0)
		want := next.LastReviewed.AddDate(0, 0, next.IntervalDays)
		assert.True(t, next.NextReview.Equal(want), "grade %v", g)
		p = &next
	}
}

func TestApplyGoodSequence(t *testing.T) {
	want := []int{1, 6, 15, 37, 92, 230}
	var p *model.Progress
	now := t0
	for i, w := range want {
		next := Apply(p, Good, now)
		assert.Equal(t, w, next.IntervalDays, "review %d", i+1)
		assert.Equal(t, i+1, next.Repetitions)
		assert.Equal(t, 2.5, next.EaseFactor)
		p = &next
		now = *next.NextReview
	}
}

func TestApplyEaseStaysInRange(t *testing.T) {
	seqs := [][]Grade{
		{Again, Again, Again, Again, Again, Again, Again, Again, Again, Again},
		{Easy, Easy, Easy, Easy, Easy, Easy, Easy, Easy},
		{Hard, Hard, Hard, Hard, Hard, Hard, Hard, Hard, Hard, Hard, Easy, Again, Hard},
	}
	for _, seq := range seqs {
		var p *model.Progress
		for _, g := range seq {
			next := Apply(p, g, t0)
			assert.GreaterOrEqual(t, next.EaseFactor, MinEaseFactor)
			assert.LessOrEqual(t, next.EaseFactor, MaxEaseFactor)
			p = &next
		}
	}

	// Out-of-range input is pulled back into range, even by Good.
	assert.Equal(t, MaxEaseFactor, Apply(progress(9.0, 6, 2, 0), Good, t0).EaseFactor)
	assert.Equal(t, MinEaseFactor, Apply(progress(0.5, 6, 2, 0), Good, t0).EaseFactor)
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	prev := progress(2.5, 6, 2, 0)
	before := *prev
	Apply(prev, Again, t0)
	assert.Equal(t, before, *prev)
}

func TestApplyDeterministic(t *testing.T) {
	prev := progress(2.18, 23, 5, 2)
	for _, g := range Grades {
		a := Apply(prev, g, t0)
		b := Apply(prev, g, t0)
		assert.Equal(t, a, b)
	}
}

func TestApplyInvalidGradePanics(t *testing.T) {
	assert.Panics(t, func() { Apply(nil, Grade(0), t0) })
}

func TestPreview(t *testing.T) {
	out := Preview(progress(2.5, 6, 2, 0), t0)
	require.Len(t, out, 4)
	assert.Equal(t, 0, out[Again].IntervalDays)
	assert.Equal(t, 7, out[Hard].IntervalDays)
	assert.Equal(t, 15, out[Good].IntervalDays)
	assert.Equal(t, 19, out[Easy].IntervalDays)
}

func TestStatusOf(t *testing.T) {
	tests := []struct {
		name string
		p    *model.Progress
		want Status
	}{
		{"no progress", nil, StatusNew},
		{"zero repetitions", progress(2.5, 0, 0, 1), StatusNew},
		{"never reviewed", unreviewed(2.5, 10, 3, 0), StatusNew},
		{"one repetition", progress(2.5, 1, 1, 0), StatusLearning},
		{"two repetitions", progress(2.5, 6, 2, 0), StatusLearning},
		{"low ease", progress(1.9, 30, 5, 3), StatusLearning},
		{"mature", progress(2.0, 15, 3, 0), StatusMature},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusOf(tt.p))
		})
	}
}
