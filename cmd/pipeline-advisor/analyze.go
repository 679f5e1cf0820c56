package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/azdevtools/pipeline-advisor/pkg/analyzer"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [file]",
	Short: "Analyze an Azure Pipelines YAML file",
	Long: `Analyze an Azure Pipelines YAML definition: stage and job inventory,
security and best-practice heuristics, and a list of recommendations.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

var analyzeFormat string

func init() {
	analyzeCmd.Flags().StringVar(&analyzeFormat, "format", "table", "Output format: table, json")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	configFile := args[0]

	absPath, err := filepath.Abs(configFile)
	if err != nil {
		absPath = configFile
	}

	data, err := os.ReadFile(configFile)
	if err != nil {
		return fmt.Errorf("reading pipeline file: %w", err)
	}

	outcome := analyzer.Analyze(string(data))

	switch analyzeFormat {
	case "json":
		return outputAnalysisJSON(cmd, outcome, absPath)
	case "table":
		return outputAnalysisTable(cmd, outcome, absPath)
	default:
		return fmt.Errorf("unsupported format: %s (supported: table, json)", analyzeFormat)
	}
}

func outputAnalysisJSON(cmd *cobra.Command, outcome *analyzer.Outcome, filePath string) error {
	output := map[string]interface{}{
		"file":   filePath,
		"result": outcome,
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

func outputAnalysisTable(cmd *cobra.Command, outcome *analyzer.Outcome, filePath string) error {
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Azure Pipelines Analysis Report\n")
	fmt.Fprintf(out, "===============================\n")
	fmt.Fprintf(out, "File: %s\n\n", filePath)

	if outcome.Failed() {
		fmt.Fprintf(out, "Analysis failed: %s\n", outcome.Message)
		return fmt.Errorf("analysis failed: %s", outcome.Message)
	}

	analysis := outcome.Analysis

	fmt.Fprintf(out, "Stages\n")
	fmt.Fprintf(out, "------\n")
	fmt.Fprintf(out, "Count: %d\n", analysis.Stages.Count)
	if len(analysis.Stages.Names) > 0 {
		fmt.Fprintf(out, "Names: %s\n", strings.Join(analysis.Stages.Names, ", "))
	}
	fmt.Fprintln(out)

	fmt.Fprintf(out, "Jobs\n")
	fmt.Fprintf(out, "----\n")
	fmt.Fprintf(out, "Total: %d\n", analysis.Jobs.Total)
	if len(analysis.Jobs.Types) > 0 {
		fmt.Fprintf(out, "Types: %s\n", strings.Join(analysis.Jobs.Types, ", "))
	}
	fmt.Fprintln(out)

	fmt.Fprintf(out, "Security\n")
	fmt.Fprintf(out, "--------\n")
	printFlag(out, "Secrets management hints", analysis.Security.HasSecrets)
	printFlag(out, "Inline scripts", analysis.Security.HasInlineScripts)
	printFlag(out, "Secure files", analysis.Security.UsesSecureFiles)
	printFlag(out, "Approvals", analysis.Security.HasApprovals)
	printFlag(out, "Variable groups", analysis.Security.HasVariableGroups)
	fmt.Fprintln(out)

	fmt.Fprintf(out, "Best practices\n")
	fmt.Fprintf(out, "--------------\n")
	printFlag(out, "Testing", analysis.BestPractices.HasTesting)
	printFlag(out, "Artifacts", analysis.BestPractices.HasArtifacts)
	printFlag(out, "Templates", analysis.BestPractices.UsesTemplates)
	printFlag(out, "Timeouts", analysis.BestPractices.HasTimeout)
	printFlag(out, "Retries", analysis.BestPractices.HasRetry)
	printFlag(out, "Parallelism", analysis.BestPractices.HasParallelism)
	fmt.Fprintln(out)

	fmt.Fprintf(out, "Recommendations\n")
	fmt.Fprintf(out, "---------------\n")
	for i, rec := range outcome.Recommendations {
		fmt.Fprintf(out, "%d. %s\n", i+1, rec)
	}

	return nil
}

func printFlag(out io.Writer, label string, value bool) {
	mark := "no"
	if value {
		mark = "yes"
	}
	fmt.Fprintf(out, "  %-26s %s\n", label+":", mark)
}
