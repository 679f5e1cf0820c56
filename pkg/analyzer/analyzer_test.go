package analyzer

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

func TestAnalyze_SimplePipeline(t *testing.T) {
	outcome := Analyze("stages:\n- stage: Build\n  jobs:\n  - job: Compile\n")

	if outcome.Failed() {
		t.Fatalf("Expected success, got failure: %s", outcome.Message)
	}
	if outcome.Analysis == nil {
		t.Fatal("Expected analysis on success")
	}

	stages := outcome.Analysis.Stages
	if stages.Count != 1 || !reflect.DeepEqual(stages.Names, []string{"Build"}) {
		t.Errorf("Unexpected stage facts: %+v", stages)
	}

	jobs := outcome.Analysis.Jobs
	if jobs.Total != 1 || !reflect.DeepEqual(jobs.Types, []string{"Compile"}) {
		t.Errorf("Unexpected job facts: %+v", jobs)
	}

	// A single stage and no heuristic keywords: the split-stages advisory
	// plus all the absence-driven ones.
	want := []string{
		recSplitStages,
		recSecrets,
		recApprovals,
		recVariableGroups,
		recTesting,
		recArtifacts,
		recTemplates,
		recTimeout,
		recRetry,
		recParallel,
	}
	if !reflect.DeepEqual(outcome.Recommendations, want) {
		t.Errorf("Expected recommendations %v, got %v", want, outcome.Recommendations)
	}
}

func TestAnalyze_Failures(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		kind FailureKind
	}{
		{"empty input", "", FailureEmptyInput},
		{"whitespace input", "  \n ", FailureEmptyInput},
		{"malformed yaml", ": : :", FailureInvalidSyntax},
		{"scalar root", "not_a_mapping", FailureInvalidStructure},
		{"sequence root", "- a\n- b\n", FailureInvalidStructure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome := Analyze(tt.raw)
			if !outcome.Failed() {
				t.Fatal("Expected failure outcome")
			}
			if outcome.Kind != tt.kind {
				t.Errorf("Expected kind %q, got %q", tt.kind, outcome.Kind)
			}
			if outcome.Analysis != nil {
				t.Error("Failure must not carry a partial analysis")
			}
			if outcome.Message == "" {
				t.Error("Failure must carry a message")
			}
		})
	}
}

func TestAnalyze_WellConfiguredPipeline(t *testing.T) {
	// Engineered to satisfy every heuristic: two stages, testing,
	// artifacts, templates, timeout, retry, matrix parallelism, approvals,
	// a variable group, and a secret-like keyword so the (inverted)
	// secrets rule stays quiet. No inline script steps.
	raw := `
stages:
- stage: Build
  jobs:
  - job: Compile
    timeoutInMinutes: 30
    strategy:
      matrix:
        linux: {}
    steps:
    - task: PublishBuildArtifacts@1
      retryCountOnTaskFailure: 2
- stage: Test
  jobs:
  - template: jobs/tests.yml
- stage: Deploy
  jobs:
  - job: Release
variables:
- group: deploy-variablegroup
- name: KEYVAULT_NAME
  value: prod-kv
approvals:
  reviewers: []
`
	outcome := Analyze(raw)
	if outcome.Failed() {
		t.Fatalf("Expected success, got failure: %s", outcome.Message)
	}
	if !reflect.DeepEqual(outcome.Recommendations, []string{recAllGood}) {
		t.Errorf("Expected only the affirmation, got %v", outcome.Recommendations)
	}
}

func TestAnalyze_Deterministic(t *testing.T) {
	raw := "stages:\n- stage: Build\n  jobs:\n  - job: Compile\n"

	first := Analyze(raw)
	second := Analyze(raw)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Identical input produced different outcomes:\n%+v\n%+v", first, second)
	}
}

func TestAnalyze_SuccessJSONShape(t *testing.T) {
	outcome := Analyze("stages:\n- stage: Build\n")

	data, err := json.Marshal(outcome)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if decoded["status"] != "success" {
		t.Errorf("Expected status success, got %v", decoded["status"])
	}
	if _, ok := decoded["analysis"].(map[string]interface{}); !ok {
		t.Error("Expected analysis object in JSON")
	}
	if _, ok := decoded["recommendations"].([]interface{}); !ok {
		t.Error("Expected recommendations array in JSON")
	}
	if _, ok := decoded["message"]; ok {
		t.Error("Success must not carry a message field")
	}
}

func TestAnalyze_FailureJSONShape(t *testing.T) {
	outcome := Analyze("not_a_mapping")

	data, err := json.Marshal(outcome)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	text := string(data)
	if !strings.Contains(text, `"status":"error"`) {
		t.Errorf("Expected error status in %s", text)
	}
	if strings.Contains(text, `"analysis"`) {
		t.Errorf("Failure JSON must not contain analysis: %s", text)
	}
}

func TestInternalFault_DebugSample(t *testing.T) {
	long := strings.Repeat("a", 250)
	outcome := internalFault(long, "boom")

	if outcome.Kind != FailureInternalFault {
		t.Fatalf("Expected internal fault, got %q", outcome.Kind)
	}
	if !strings.HasPrefix(outcome.Message, "Error in pipeline analysis: ") {
		t.Errorf("Unexpected message: %q", outcome.Message)
	}
	if outcome.Debug == nil {
		t.Fatal("Expected debug detail")
	}
	if len(outcome.Debug.YAMLSample) != debugSampleLen+len("...") {
		t.Errorf("Expected truncated sample, got %d chars", len(outcome.Debug.YAMLSample))
	}
}
