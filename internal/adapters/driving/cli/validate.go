package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/traceleaf/docrag/internal/checklist"
)

var (
	validateMaxIterations int
	validateNoAutoFix     bool
	validateWrite         bool
)

var validateCmd = &cobra.Command{
	Use:   "validate [design.json]",
	Short: "Validate a retrieval-system design document",
	Long: `Checks a JSON design document against requirement-documentation
needs: source coverage, chunking, metadata traceability, retrieval
strategy, evaluation, feedback loop, and security controls.

Failed checks carry deterministic fixes which are applied iteratively
until every check passes. Use --no-auto-fix to evaluate only, and
--write to save the fixed design back to the file.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().IntVar(&validateMaxIterations, "max-iterations", 5, "maximum evaluate-fix passes")
	validateCmd.Flags().BoolVar(&validateNoAutoFix, "no-auto-fix", false, "evaluate without applying fixes")
	validateCmd.Flags().BoolVar(&validateWrite, "write", false, "write the fixed design back to the file")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	path := args[0]

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read design: %w", err)
	}

	var design map[string]any
	if err := json.Unmarshal(data, &design); err != nil {
		return fmt.Errorf("parse design %s: %w", path, err)
	}

	validator := checklist.New(design)
	reports := validator.Run(validateMaxIterations, !validateNoAutoFix)
	printReports(cmd, reports)

	final := reports[len(reports)-1]

	if validateWrite && !validateNoAutoFix {
		fixed, err := json.MarshalIndent(validator.Design(), "", "  ")
		if err != nil {
			return fmt.Errorf("marshal fixed design: %w", err)
		}
		if err := os.WriteFile(path, append(fixed, '\n'), 0o600); err != nil {
			return fmt.Errorf("write fixed design: %w", err)
		}
		cmd.Printf("Wrote fixed design to %s\n", path)
	}

	if !final.Passed() {
		return errors.New("design checks failed")
	}
	return nil
}

func printReports(cmd *cobra.Command, reports []checklist.IterationReport) {
	pass := color.New(color.FgGreen).SprintFunc()
	fail := color.New(color.FgRed).SprintFunc()

	for _, report := range reports {
		cmd.Printf("Iteration %d\n", report.Iteration)
		for _, check := range report.Checks {
			status := fail("FAIL")
			if check.Passed {
				status = pass("PASS")
			}
			cmd.Printf("  [%s] %-20s %s\n", status, check.Name, check.Message)
		}
		for _, fix := range report.FixesApplied {
			cmd.Printf("  fix: %s\n", fix)
		}
		cmd.Println()
	}

	final := reports[len(reports)-1]
	if final.Passed() {
		cmd.Printf("Result: %s after %d iteration(s)\n", pass("PASS"), len(reports))
	} else {
		cmd.Printf("Result: %s after %d iteration(s)\n", fail("FAIL"), len(reports))
	}
}
