package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jamiecraik/behaviorscore/internal/logging"
	"github.com/jamiecraik/behaviorscore/internal/session"
)

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Watch the sessions directory and score new transcripts",
		Long:  "Scan the sessions directory once, then watch it for new transcripts and score each one as it appears. Runs until interrupted.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd)
		},
	}
}

func runWatch(cmd *cobra.Command) error {
	cfg := resolveConfig(cmd)
	log := logging.NewLogger("watch")

	proc, err := buildProcessor(cfg)
	if err != nil {
		return err
	}

	watcher := session.NewWatcher(cfg.SessionsDir, proc, cfg.Debounce)
	if err := watcher.Start(); err != nil {
		return err
	}

	// The store is only written at commit points inside the processor, so
	// stopping here flushes no partial state.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	log.WithField("signal", sig.String()).Info("Shutting down")

	watcher.Stop()
	return nil
}
