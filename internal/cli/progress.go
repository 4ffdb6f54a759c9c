package cli

import (
	"github.com/spf13/cobra"

	"github.com/rcliao/studycards/internal/model"
	"github.com/rcliao/studycards/internal/srs"
)

func init() {
	cmd := &cobra.Command{
		Use:   "progress <card-id>",
		Short: "Show a card's learning progress",
		Args:  cobra.ExactArgs(1),
		Run:   runProgress,
	}

	RootCmd.AddCommand(cmd)
}

func runProgress(cmd *cobra.Command, args []string) {
	svc, s, _ := openService()
	defer s.Close()

	p, err := svc.Progress(cmd.Context(), args[0])
	if err != nil {
		exitErr("progress", err)
	}

	printJSON(struct {
		CardID   string          `json:"card_id"`
		Status   srs.Status      `json:"status"`
		Progress *model.Progress `json:"progress"`
	}{args[0], srs.StatusOf(p), p})
}
