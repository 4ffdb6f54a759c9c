package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "stats <set-id>",
		Short: "Show learning statistics for a set",
		Args:  cobra.ExactArgs(1),
		Run:   runStats,
	}

	RootCmd.AddCommand(cmd)
}

func runStats(cmd *cobra.Command, args []string) {
	svc, s, _ := openService()
	defer s.Close()

	st, err := svc.Stats(cmd.Context(), args[0])
	if err != nil {
		exitErr("stats", err)
	}

	if textFormat() {
		fmt.Printf("cards:     %d (%d new, %d learning, %d mature)\n", st.TotalCards, st.NewCards, st.LearningCards, st.MatureCards)
		fmt.Printf("reviews:   %d today, %d this week, %d total\n", st.ReviewsToday, st.ReviewsThisWeek, st.ReviewsTotal)
		fmt.Printf("ease:      %.2f\n", st.AverageEaseFactor)
		fmt.Printf("accuracy:  %.1f%%\n", st.Accuracy)
		fmt.Printf("streak:    %d days\n", st.CurrentStreak)
		return
	}
	printJSON(st)
}
