package cli

import (
	"github.com/spf13/cobra"

	"github.com/rcliao/studycards/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show database statistics",
		Run:   runInfo,
	}

	RootCmd.AddCommand(cmd)
}

func runInfo(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	s, err := openStore(cfg)
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	path := ""
	if cfg.Driver == store.DriverSQLite && cfg.DSN == "" {
		path = cfg.DBPath
	}
	usage, err := s.Usage(cmd.Context(), path)
	if err != nil {
		exitErr("info", err)
	}
	printJSON(usage)
}
