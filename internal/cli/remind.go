package cli

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rcliao/studycards/internal/reminder"
)

func init() {
	cmd := &cobra.Command{
		Use:   "remind",
		Short: "Print sets with cards due for review",
		Long: `Check every set for cards due today or earlier and print one JSON line per set.
Runs every --every interval until interrupted, or once with --once.`,
		Run: runRemind,
	}

	cmd.Flags().Bool("once", false, "Check once and exit")
	cmd.Flags().Duration("every", 0, "Check interval (default: $STUDYCARDS_REMIND_EVERY or 1h)")

	RootCmd.AddCommand(cmd)
}

// stdoutNotifier writes reminders as JSON lines.
type stdoutNotifier struct {
	enc *json.Encoder
}

func (n stdoutNotifier) Notify(ctx context.Context, r reminder.Reminder) error {
	return n.enc.Encode(r)
}

func runRemind(cmd *cobra.Command, args []string) {
	once, _ := cmd.Flags().GetBool("once")
	every, _ := cmd.Flags().GetDuration("every")

	svc, s, cfg := openService()
	defer s.Close()
	if every <= 0 {
		every = cfg.RemindEvery
	}

	logger := newLogger()
	sched := reminder.NewScheduler(svc, stdoutNotifier{enc: json.NewEncoder(os.Stdout)}, every, logger)

	if once {
		if _, err := sched.CheckNow(cmd.Context()); err != nil {
			exitErr("remind", err)
		}
		return
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := sched.Start(); err != nil {
		exitErr("remind", err)
	}
	logger.Info("reminders scheduled", "every", every)
	<-ctx.Done()
	sched.Stop()
}
