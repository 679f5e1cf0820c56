package analyzer

// Advisory strings surfaced to users. The recommendation list is fully
// determined by the extracted facts, in the fixed order below.
const (
	recAddStages      = "Consider adding stages to organize your pipeline into logical sections."
	recSplitStages    = "Consider separating your pipeline into multiple stages (e.g., build, test, deploy)."
	recSecrets        = "No secrets management detected. Consider using Azure Key Vault or pipeline variables."
	recInlineScripts  = "Consider moving inline scripts to separate script files for better maintainability."
	recApprovals      = "Consider adding approval gates for production deployments."
	recVariableGroups = "Consider using variable groups for managing environment-specific configurations."
	recTesting        = "Add automated testing to ensure code quality."
	recArtifacts      = "Consider publishing build artifacts for better traceability."
	recTemplates      = "Consider using templates for reusable pipeline components."
	recTimeout        = "Consider adding timeout limits to prevent long-running pipelines."
	recRetry          = "Consider adding retry logic for flaky tasks."
	recParallel       = "Consider using parallel jobs to speed up your pipeline execution."

	recStagesUnavailable = "Unable to analyze pipeline stages."
	recAllGood           = "Your pipeline follows many best practices. Great job!"
)

// Recommend maps extracted facts to an ordered list of advisories. When no
// rule fires, the single Great-job affirmation is returned instead of an
// empty list.
//
// Note the secrets rule fires on the *absence* of secret-like keywords,
// which is a heuristic proxy rather than a real secret-usage check. Kept
// as-is.
func Recommend(analysis *AnalysisResult) []string {
	if analysis == nil {
		return []string{recStagesUnavailable}
	}

	var recs []string

	switch {
	case analysis.Stages.Count == 0:
		recs = append(recs, recAddStages)
	case analysis.Stages.Count < 2:
		recs = append(recs, recSplitStages)
	}

	rules := []struct {
		fires   bool
		message string
	}{
		{!analysis.Security.HasSecrets, recSecrets},
		{analysis.Security.HasInlineScripts, recInlineScripts},
		{!analysis.Security.HasApprovals, recApprovals},
		{!analysis.Security.HasVariableGroups, recVariableGroups},
		{!analysis.BestPractices.HasTesting, recTesting},
		{!analysis.BestPractices.HasArtifacts, recArtifacts},
		{!analysis.BestPractices.UsesTemplates, recTemplates},
		{!analysis.BestPractices.HasTimeout, recTimeout},
		{!analysis.BestPractices.HasRetry, recRetry},
		{!analysis.BestPractices.HasParallelism, recParallel},
	}
	for _, rule := range rules {
		if rule.fires {
			recs = append(recs, rule.message)
		}
	}

	if len(recs) == 0 {
		return []string{recAllGood}
	}
	return recs
}
