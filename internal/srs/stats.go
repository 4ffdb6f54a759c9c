package srs

import (
	"math"
	"time"

	"github.com/rcliao/studycards/internal/model"
)

// streakWindow bounds how far back the review streak is scanned.
const streakWindow = 365

// SetStats summarises learning progress across a set.
type SetStats struct {
	TotalCards        int     `json:"total_cards"`
	NewCards          int     `json:"new_cards"`
	LearningCards     int     `json:"learning_cards"`
	MatureCards       int     `json:"mature_cards"`
	AverageEaseFactor float64 `json:"average_ease_factor"`
	ReviewsToday      int     `json:"reviews_today"`
	ReviewsThisWeek   int     `json:"reviews_this_week"`
	ReviewsTotal      int     `json:"reviews_total"`
	CurrentStreak     int     `json:"current_streak"`
	Accuracy          float64 `json:"accuracy"`
}

// Summarize computes SetStats for cards as of today.
//
// ReviewsToday and ReviewsThisWeek count cards whose last review falls in the
// window, not review events. ReviewsTotal sums successful repetitions only.
// Progress without a last review counts as a new card and nothing else.
func Summarize(cards []model.Card, today time.Time) SetStats {
	st := SetStats{TotalCards: len(cards)}
	if len(cards) == 0 {
		return st
	}

	loc := today.Location()
	ref := dayOf(today, loc)

	var (
		withProgress int
		easeSum      float64
		lapses       int
		reviewedOn   = make(map[time.Time]bool)
	)

	for _, c := range cards {
		switch StatusOf(c.Progress) {
		case StatusNew:
			st.NewCards++
		case StatusLearning:
			st.LearningCards++
		case StatusMature:
			st.MatureCards++
		}

		p := c.Progress
		if !reviewed(p) {
			continue
		}
		withProgress++
		easeSum += p.EaseFactor
		st.ReviewsTotal += p.Repetitions
		lapses += p.Lapses

		d := dayOf(*p.LastReviewed, loc)
		reviewedOn[d] = true
		if ago := daysBetween(d, ref); ago >= 0 && ago < 7 {
			st.ReviewsThisWeek++
			if ago == 0 {
				st.ReviewsToday++
			}
		}
	}

	if withProgress > 0 {
		st.AverageEaseFactor = round(easeSum/float64(withProgress), 2)
	}
	if attempts := st.ReviewsTotal + lapses; attempts > 0 {
		st.Accuracy = round(100*float64(st.ReviewsTotal)/float64(attempts), 1)
	}
	for i := 0; i < streakWindow && reviewedOn[ref.AddDate(0, 0, -i)]; i++ {
		st.CurrentStreak++
	}

	return st
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
