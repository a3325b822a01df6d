package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/traceleaf/docrag/internal/core/domain"
)

var askJSON bool

var askCmd = &cobra.Command{
	Use:   "ask [query]",
	Short: "Ask a question against the indexed documentation",
	Long: `Retrieves the most similar chunks for the query from the persisted
index and prints a cited answer. Run ingest first to build the index.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().BoolVar(&askJSON, "json", false, "output the answer as JSON")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if err := ensurePipeline(); err != nil {
		return err
	}

	if err := pipelineService.LoadIndex(); err != nil {
		return fmt.Errorf("load index: %w", err)
	}

	answer, err := pipelineService.Ask(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("ask failed: %w", err)
	}

	if askJSON {
		return outputAnswerJSON(cmd, answer)
	}
	return outputAnswerText(cmd, answer)
}

func outputAnswerJSON(cmd *cobra.Command, answer domain.Answer) error {
	data, err := json.MarshalIndent(answer, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal answer: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputAnswerText(cmd *cobra.Command, answer domain.Answer) error {
	cmd.Println(answer.Answer)

	if len(answer.Contexts) == 0 {
		return nil
	}

	cmd.Println()
	cmd.Println("Sources:")
	for i, ctx := range answer.Contexts {
		cmd.Printf("  [%d] %s (%.3f)\n", i+1, ctx.Source, ctx.Score)
	}
	return nil
}
