package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "reset <set-id>",
		Short: "Forget all progress in a set",
		Args:  cobra.ExactArgs(1),
		Run:   runReset,
	}

	RootCmd.AddCommand(cmd)
}

func runReset(cmd *cobra.Command, args []string) {
	svc, s, _ := openService()
	defer s.Close()

	if err := svc.ResetProgress(cmd.Context(), args[0]); err != nil {
		exitErr("reset", err)
	}
	fmt.Printf(`{"ok":true,"reset":%q}`+"\n", args[0])
}
