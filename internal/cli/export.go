package cli

import (
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export sets as JSON",
		Long:  "Export sets with their cards as JSON. Limit to one set with -s. Progress is included but not re-imported.",
		Run:   runExport,
	}

	cmd.Flags().StringP("set", "s", "", "Export only this set")

	RootCmd.AddCommand(cmd)
}

func runExport(cmd *cobra.Command, args []string) {
	setID, _ := cmd.Flags().GetString("set")

	svc, s, _ := openService()
	defer s.Close()

	sets, err := svc.ExportSets(cmd.Context(), setID)
	if err != nil {
		exitErr("export", err)
	}
	printJSON(sets)
}
