package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rcliao/studycards/internal/srs"
)

func init() {
	cmd := &cobra.Command{
		Use:   "preview <card-id>",
		Short: "Show what each grade would do to a card",
		Args:  cobra.ExactArgs(1),
		Run:   runPreview,
	}

	RootCmd.AddCommand(cmd)
}

func runPreview(cmd *cobra.Command, args []string) {
	svc, s, _ := openService()
	defer s.Close()

	out, err := svc.Preview(cmd.Context(), args[0])
	if err != nil {
		exitErr("preview", err)
	}

	if textFormat() {
		for _, g := range srs.Grades {
			p := out[g]
			fmt.Printf("%-6s %s  interval %dd  ease %.2f\n", g, p.NextReview.Format("2006-01-02"), p.IntervalDays, p.EaseFactor)
		}
		return
	}
	printJSON(out)
}
