package cli

import (
	"context"
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/traceleaf/docrag/internal/watcher"
)

var watchDebounce time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch [path]",
	Short: "Watch a documentation directory and re-ingest on change",
	Long: `Performs an initial ingest, then watches the directory recursively
and rebuilds the index whenever documents change. Bursts of changes are
debounced into a single rebuild.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", watcher.DefaultDebounce, "quiet period before rebuilding")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if err := ensurePipeline(); err != nil {
		return err
	}
	root := args[0]

	count, err := pipelineService.Ingest(cmd.Context(), root)
	if err != nil {
		return err
	}
	cmd.Printf("Indexed %d chunks from %s, watching for changes...\n", count, root)

	w := watcher.New(root, watcher.WithDebounce(watchDebounce))
	err = w.Run(cmd.Context(), func(ctx context.Context) error {
		count, err := pipelineService.Ingest(ctx, root)
		if err != nil {
			// A transient ingest failure should not end the watch.
			cmd.Printf("Rebuild failed: %v\n", err)
			return nil
		}
		cmd.Printf("Rebuilt index: %d chunks\n", count)
		return nil
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
