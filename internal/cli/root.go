// Package cli implements the studycards CLI commands.
package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rcliao/studycards/internal/config"
	"github.com/rcliao/studycards/internal/store"
	"github.com/rcliao/studycards/internal/study"
)

var (
	dbPath     string
	driverFlag string
	dsnFlag    string
	envFile    string
	formatFlag string
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "studycards",
	Short: "Spaced-repetition flashcards",
	Long:  "Study sets of term/definition cards with SM-2 spaced repetition. SQLite-backed by default, single binary.",
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "SQLite database path (default: $STUDYCARDS_DB or ~/.studycards/studycards.db)")
	RootCmd.PersistentFlags().StringVar(&driverFlag, "driver", "", "Database driver: sqlite or postgres (default: $STUDYCARDS_DRIVER or sqlite)")
	RootCmd.PersistentFlags().StringVar(&dsnFlag, "dsn", "", "Database DSN, used instead of --db (default: $STUDYCARDS_DSN)")
	RootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Environment file to load if present")
	RootCmd.PersistentFlags().StringVarP(&formatFlag, "format", "f", "json", "Output format: json or text")
}

// loadConfig reads .env and the environment, then applies flags.
func loadConfig() config.Config {
	cfg, err := config.Load(envFile)
	if err != nil {
		exitErr("config", err)
	}
	if dbPath != "" {
		cfg.DBPath = dbPath
	}
	if driverFlag != "" {
		cfg.Driver = driverFlag
	}
	if dsnFlag != "" {
		cfg.DSN = dsnFlag
	}
	return cfg
}

func openStore(cfg config.Config) (*store.SQLStore, error) {
	if cfg.Driver == store.DriverSQLite && cfg.DSN == "" {
		return store.NewSQLiteStore(cfg.DBPath)
	}
	return store.Open(cfg.Driver, cfg.DSN)
}

// openService opens the store and wraps it in a study service. Callers close the store.
func openService() (*study.Service, *store.SQLStore, config.Config) {
	cfg := loadConfig()
	s, err := openStore(cfg)
	if err != nil {
		exitErr("open store", err)
	}
	svc := study.NewService(s,
		study.WithLocation(cfg.Location),
		study.WithNewCardLimit(cfg.NewCardLimit),
	)
	return svc, s, cfg
}

func textFormat() bool {
	return formatFlag == "text"
}

func printJSON(v any) {
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(b))
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
