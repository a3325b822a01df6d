package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [path]",
	Short: "Build the index from a documentation directory",
	Long: `Segments every document under the given directory into overlapping
chunks, embeds them, and persists a fresh index generation. Any previous
generation is replaced in full; ingest never merges incrementally.`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	if err := ensurePipeline(); err != nil {
		return err
	}

	count, err := pipelineService.Ingest(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}

	cmd.Printf("Indexed %d chunks from %s\n", count, args[0])
	return nil
}
