package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vytor/syncstore/internal/watcher"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the primary root for external profile changes",
	Long: `Watch the per-type directories of the primary root and print profile
document changes as they happen. Backup files and the sync log directory
are ignored; bursts of writes to one document are reported once.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		pw, err := watcher.New(time.Duration(cfg.WatchDebounceMS) * time.Millisecond)
		if err != nil {
			return err
		}
		if err := pw.Start(cfg.PrimaryPath); err != nil {
			return err
		}
		defer pw.Stop()

		fmt.Printf("Watching %s (Ctrl-C to stop)\n", cfg.PrimaryPath)

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

		for {
			select {
			case ev := <-pw.Events():
				fmt.Printf("%s\t%s/%s\n", ev.Op, ev.Type, ev.Name)
			case err := <-pw.Errors():
				fmt.Fprintf(os.Stderr, "watch error: %v\n", err)
			case <-sigCh:
				fmt.Println("stopping")
				return nil
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
