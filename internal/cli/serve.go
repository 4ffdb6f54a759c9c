package cli

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/rcliao/studycards/internal/api"
	"github.com/rcliao/studycards/internal/reminder"
)

func init() {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Run:   runServe,
	}

	cmd.Flags().String("addr", "", "Listen address (default: $STUDYCARDS_ADDR or :8000)")
	cmd.Flags().Bool("remind", false, "Also run the reminder job, logging due sets")

	RootCmd.AddCommand(cmd)
}

func newLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, nil))
}

func runServe(cmd *cobra.Command, args []string) {
	addr, _ := cmd.Flags().GetString("addr")
	remind, _ := cmd.Flags().GetBool("remind")

	svc, s, cfg := openService()
	defer s.Close()
	if addr == "" {
		addr = cfg.Addr
	}

	logger := newLogger()
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if remind {
		sched := reminder.NewScheduler(svc, logNotifier(logger), cfg.RemindEvery, logger)
		if err := sched.Start(); err != nil {
			exitErr("remind", err)
		}
		defer sched.Stop()
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           api.NewServer(svc, logger, api.NewMetrics()).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			exitErr("serve", err)
		}
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown", "err", err)
		}
	}
}

// logNotifier reports reminders as log records.
func logNotifier(logger *slog.Logger) reminder.Notifier {
	return reminder.NotifierFunc(func(ctx context.Context, r reminder.Reminder) error {
		logger.InfoContext(ctx, "cards due", "set", r.SetID, "title", r.Title, "due", r.Due, "overdue", r.Overdue)
		return nil
	})
}
