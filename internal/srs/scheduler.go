package srs

import (
	"fmt"
	"time"

	"github.com/rcliao/studycards/internal/model"
)

// Ease factor bounds. Both ends are inclusive.
const (
	MinEaseFactor     = 1.3
	MaxEaseFactor     = 2.5
	DefaultEaseFactor = 2.5
)

// effect describes what a grade does to a card's progress.
type effect struct {
	failed    bool
	easeDelta float64
	interval  func(reps, interval int, ease float64) int
}

// effects is indexed by Grade and must have an entry for every valid grade.
var effects = [...]effect{
	Again: {
		failed:    true,
		easeDelta: -0.2,
		interval:  func(int, int, float64) int { return 0 },
	},
	Hard: {
		easeDelta: -0.15,
		interval: func(reps, interval int, _ float64) int {
			if reps == 0 {
				return 1
			}
			return int(float64(interval) * 1.2)
		},
	},
	Good: {
		interval: func(reps, interval int, ease float64) int {
			switch reps {
			case 0:
				return 1
			case 1:
				return 6
			}
			return int(float64(interval) * ease)
		},
	},
	Easy: {
		easeDelta: 0.15,
		interval: func(reps, interval int, ease float64) int {
			if reps == 0 {
				return 4
			}
			return int(float64(interval) * ease * 1.3)
		},
	},
}

// Apply returns the progress that results from grading a card at now.
// A nil prev, or one without a last review, is a card that has never been
// reviewed: it is scheduled from the defaults and keeps only its lapse count.
// prev is not modified.
//
// Apply is defined for every progress and every grade in Grades. Grades
// reach it through ParseGrade, UnmarshalText or the Grade constants; an
// out-of-range Grade(n) conversion is a programming error and panics.
func Apply(prev *model.Progress, g Grade, now time.Time) model.Progress {
	if !g.IsValid() {
		panic(fmt.Sprintf("srs: apply %v", g))
	}

	var next model.Progress
	switch {
	case reviewed(prev):
		next = *prev
	case prev != nil:
		next = model.Progress{CardID: prev.CardID, Lapses: prev.Lapses}
	}
	reps := max(next.Repetitions, 0)
	interval := max(next.IntervalDays, 0)
	ease := normalizeEase(next.EaseFactor)

	e := effects[g]
	interval = max(e.interval(reps, interval, ease), 0)

	if e.failed {
		next.Repetitions = 0
		next.Lapses = max(next.Lapses, 0) + 1
	} else {
		next.Repetitions = reps + 1
	}
	next.IntervalDays = interval
	next.EaseFactor = clampEase(ease + e.easeDelta)

	// A failed card comes back tomorrow even though its interval resets to 0.
	dueIn := interval
	if e.failed {
		dueIn = 1
	}
	// Calendar days, not 24h steps: across a DST change the due time keeps
	// its wall clock and lands on the right date.
	last := now
	due := now.AddDate(0, 0, dueIn)
	next.LastReviewed = &last
	next.NextReview = &due

	return next
}

// Preview returns the progress each grade would produce, without persisting anything.
func Preview(prev *model.Progress, now time.Time) map[Grade]model.Progress {
	out := make(map[Grade]model.Progress, len(Grades))
	for _, g := range Grades {
		out[g] = Apply(prev, g, now)
	}
	return out
}

// normalizeEase maps a stored ease factor into range. Zero is an
// uninitialised row and becomes the default.
func normalizeEase(ef float64) float64 {
	if ef == 0 {
		return DefaultEaseFactor
	}
	return clampEase(ef)
}

func clampEase(ef float64) float64 {
	return min(max(ef, MinEaseFactor), MaxEaseFactor)
}

// Status is the maturity bucket of a card.
type Status string

const (
	StatusNew      Status = "new"
	StatusLearning Status = "learning"
	StatusMature   Status = "mature"
)

// StatusOf classifies a card's progress. Mature cards have at least three
// consecutive successful reviews and an ease factor of at least 2.0.
// A progress that was never reviewed is new whatever its other fields say.
func StatusOf(p *model.Progress) Status {
	switch {
	case !reviewed(p) || p.Repetitions == 0:
		return StatusNew
	case p.Repetitions < 3 || p.EaseFactor < 2.0:
		return StatusLearning
	default:
		return StatusMature
	}
}

// reviewed reports whether p records at least one graded review.
func reviewed(p *model.Progress) bool {
	return p != nil && p.LastReviewed != nil
}
