package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "study <set-id>",
		Short: "Show today's study queue for a set",
		Long:  "Show today's study queue: overdue cards first, then cards due today, then new cards up to --new-limit.",
		Args:  cobra.ExactArgs(1),
		Run:   runStudy,
	}

	cmd.Flags().IntP("new-limit", "l", -1, "Maximum new cards (default: $STUDYCARDS_NEW_CARD_LIMIT or 20)")

	RootCmd.AddCommand(cmd)
}

func runStudy(cmd *cobra.Command, args []string) {
	limit, _ := cmd.Flags().GetInt("new-limit")
	if cmd.Flags().Changed("new-limit") {
		limit = max(limit, 0)
	}

	svc, s, _ := openService()
	defer s.Close()

	sess, err := svc.Session(cmd.Context(), args[0], limit)
	if err != nil {
		exitErr("study", err)
	}

	if textFormat() {
		st := sess.Stats
		fmt.Printf("%d cards: %d review (%d overdue), %d new\n", st.Total, st.Review, st.Overdue, st.New)
		for _, c := range sess.Cards {
			fmt.Printf("%s  %s\n", c.ID, c.Term)
		}
		return
	}
	printJSON(sess)
}
