package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/satyammistari/schemadoc/internal/reporter"
)

var watchCmd = &cobra.Command{
	Use:   "watch <schema.sql>",
	Short: "Re-render documentation whenever the DDL script changes",
	Args:  cobra.ExactArgs(1),
	RunE:  runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().StringP("output", "o", "", "Output file (required)")
	watchCmd.Flags().String("format", "", "Output format: markdown or text")
	watchCmd.Flags().String("title", "", "Document title")
	_ = watchCmd.MarkFlagRequired("output")
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	path := args[0]

	regenerate := func() {
		if err := generateFromFile(path, cfg, false); err != nil {
			reporter.Err(err.Error())
		}
	}
	regenerate()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watcher: %w", err)
	}
	defer watcher.Close()
	// Watch the directory, not the file: editors commonly replace the file
	// on save, which drops a direct watch.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	reporter.Info("Watching " + path + " (ctrl+c to stop)")

	for {
		select {
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != filepath.Clean(path) {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			// editors write in bursts
			time.Sleep(100 * time.Millisecond)
			drainEvents(watcher)
			regenerate()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			reporter.Err(err.Error())
		case <-sig:
			reporter.Info("Stopped")
			return nil
		}
	}
}

func drainEvents(w *fsnotify.Watcher) {
	for {
		select {
		case <-w.Events:
		default:
			return
		}
	}
}
