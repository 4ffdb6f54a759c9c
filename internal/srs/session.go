package srs

import (
	"sort"
	"time"

	"github.com/rcliao/studycards/internal/model"
)

// DefaultNewCardLimit is the number of unseen cards offered per session.
const DefaultNewCardLimit = 20

// SessionStats describes the cards in a returned study queue.
type SessionStats struct {
	Total   int `json:"total_cards"`
	New     int `json:"new_cards"`
	Review  int `json:"review_cards"`
	Overdue int `json:"overdue_cards"`
}

// Session is an ordered study queue.
type Session struct {
	Cards []model.Card `json:"cards"`
	Stats SessionStats `json:"stats"`
}

// Select builds the study queue for today: overdue cards (most overdue
// first), then cards due today, then at most newCardLimit unseen cards.
// Cards due after today are left out. Input order breaks ties.
func Select(cards []model.Card, today time.Time, newCardLimit int) Session {
	loc := today.Location()
	ref := dayOf(today, loc)

	type overdueCard struct {
		card model.Card
		days int
	}
	var (
		overdue  []overdueCard
		dueToday []model.Card
		fresh    []model.Card
	)

	for _, c := range cards {
		if !reviewed(c.Progress) || c.Progress.NextReview == nil {
			fresh = append(fresh, c)
			continue
		}
		late := daysBetween(dayOf(*c.Progress.NextReview, loc), ref)
		switch {
		case late > 0:
			overdue = append(overdue, overdueCard{card: c, days: late})
		case late == 0:
			dueToday = append(dueToday, c)
		}
	}

	sort.SliceStable(overdue, func(i, j int) bool {
		return overdue[i].days > overdue[j].days
	})

	if newCardLimit < 0 {
		newCardLimit = 0
	}
	if len(fresh) > newCardLimit {
		fresh = fresh[:newCardLimit]
	}

	queue := make([]model.Card, 0, len(overdue)+len(dueToday)+len(fresh))
	for _, o := range overdue {
		queue = append(queue, o.card)
	}
	queue = append(queue, dueToday...)
	queue = append(queue, fresh...)

	return Session{
		Cards: queue,
		Stats: SessionStats{
			Total:   len(queue),
			New:     len(fresh),
			Review:  len(overdue) + len(dueToday),
			Overdue: len(overdue),
		},
	}
}
