// Package analyzer inspects Azure Pipelines YAML documents. It extracts
// structural facts (stages, jobs), runs keyword heuristics for security
// and best practices, and derives human-readable recommendations. The
// whole pipeline is a pure function of the input text: no I/O, no shared
// state, safe for concurrent use.
package analyzer

import (
	"errors"
	"fmt"
)

const debugSampleLen = 100

// Analyze runs the full analysis on raw pipeline YAML. It never returns a
// nil outcome and never panics; every failure mode is folded into a
// Failure outcome for the caller to translate.
func Analyze(raw string) (outcome *Outcome) {
	defer func() {
		if r := recover(); r != nil {
			outcome = internalFault(raw, r)
		}
	}()

	doc, err := Load(raw)
	if err != nil {
		var loadErr *LoadError
		if errors.As(err, &loadErr) {
			return failureOutcome(loadErr.Kind, loadErr.Message)
		}
		return failureOutcome(FailureInternalFault, err.Error())
	}

	analysis := &AnalysisResult{
		Stages:        extractStages(doc),
		Jobs:          extractJobs(doc),
		Security:      scanSecurity(raw),
		BestPractices: scanBestPractices(raw),
	}

	return successOutcome(analysis, Recommend(analysis))
}

func internalFault(raw string, cause interface{}) *Outcome {
	outcome := failureOutcome(FailureInternalFault,
		fmt.Sprintf("Error in pipeline analysis: %v", cause))

	sample := raw
	if len(sample) > debugSampleLen {
		sample = sample[:debugSampleLen] + "..."
	}
	if sample == "" {
		sample = "empty"
	}
	outcome.Debug = &DebugInfo{
		ErrorType:  fmt.Sprintf("%T", cause),
		YAMLSample: sample,
	}
	return outcome
}
