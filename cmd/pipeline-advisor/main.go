package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pipeline-advisor",
	Short: "Azure Pipelines analysis and advisory tool",
	Long: `Pipeline Advisor inspects Azure Pipelines YAML definitions, reports
structural facts and heuristic findings, and suggests improvements. It can
analyze local files or run as an HTTP API in front of an Azure DevOps
organization.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
