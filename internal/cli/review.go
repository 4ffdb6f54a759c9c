package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rcliao/studycards/internal/srs"
)

func init() {
	cmd := &cobra.Command{
		Use:   "review <card-id> <again|hard|good|easy>",
		Short: "Grade a card and schedule its next review",
		Args:  cobra.ExactArgs(2),
		Run:   runReview,
	}

	RootCmd.AddCommand(cmd)
}

func runReview(cmd *cobra.Command, args []string) {
	g, err := srs.ParseGrade(args[1])
	if err != nil {
		exitErr("review", err)
	}

	svc, s, _ := openService()
	defer s.Close()

	p, err := svc.Review(cmd.Context(), args[0], g)
	if err != nil {
		exitErr("review", err)
	}

	if textFormat() {
		fmt.Printf("%s: next review %s (interval %dd, ease %.2f)\n",
			g, p.NextReview.Format("2006-01-02"), p.IntervalDays, p.EaseFactor)
		return
	}
	printJSON(p)
}
