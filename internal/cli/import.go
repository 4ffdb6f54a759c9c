package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rcliao/studycards/internal/importer"
	"github.com/rcliao/studycards/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "import [file...]",
		Short: "Import sets from files or stdin",
		Long: `Import sets from .json (export format), .yaml, .xlsx, .csv or markdown files.
With no files, reads JSON from stdin. Nothing is imported if any set is invalid.`,
		Run: runImport,
	}

	RootCmd.AddCommand(cmd)
}

func runImport(cmd *cobra.Command, args []string) {
	var sets []store.SetParams
	if len(args) == 0 {
		parsed, err := importer.Parse(os.Stdin, importer.JSON, "stdin")
		if err != nil {
			exitErr("import", err)
		}
		sets = parsed
	}
	for _, path := range args {
		parsed, err := importer.ParseFile(path)
		if err != nil {
			exitErr("import", err)
		}
		sets = append(sets, parsed...)
	}

	svc, s, _ := openService()
	defer s.Close()

	imported, err := svc.ImportSets(cmd.Context(), sets)
	if err != nil {
		exitErr("import", err)
	}

	fmt.Printf(`{"ok":true,"imported":%d}`+"\n", imported)
}
