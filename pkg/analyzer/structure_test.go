package analyzer

import (
	"reflect"
	"testing"
)

func mustLoad(t *testing.T, raw string) Document {
	t.Helper()
	doc, err := Load(raw)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	return doc
}

func TestExtractStages_Names(t *testing.T) {
	doc := mustLoad(t, `
stages:
- stage: Build
- displayName: Deploy to production
- jobs: []
`)
	facts := extractStages(doc)

	want := []string{"Build", "Deploy to production", "stage_3"}
	if !reflect.DeepEqual(facts.Names, want) {
		t.Errorf("Expected names %v, got %v", want, facts.Names)
	}
	if facts.Count != 3 {
		t.Errorf("Expected count 3, got %d", facts.Count)
	}
}

func TestExtractStages_SkipsNonMappingEntries(t *testing.T) {
	doc := mustLoad(t, `
stages:
- just_a_string
- jobs: []
- 42
`)
	facts := extractStages(doc)

	// Non-mapping entries contribute to neither count nor names, so count
	// is lower than the raw sequence length. The synthesized fallback name
	// still uses the raw 1-based position.
	if facts.Count != 1 {
		t.Errorf("Expected count 1, got %d", facts.Count)
	}
	if !reflect.DeepEqual(facts.Names, []string{"stage_2"}) {
		t.Errorf("Expected synthesized name for position 2, got %v", facts.Names)
	}
}

func TestExtractStages_FallbackKeepsRawPosition(t *testing.T) {
	doc := mustLoad(t, `
stages:
- stage: Build
- stage: Test
- jobs: []
`)
	facts := extractStages(doc)
	if len(facts.Names) != 3 || facts.Names[2] != "stage_3" {
		t.Errorf("Expected stage_3 fallback at position 3, got %v", facts.Names)
	}
}

func TestExtractStages_AbsentOrWrongType(t *testing.T) {
	for _, raw := range []string{
		"trigger: main\n",
		"stages: not_a_sequence\n",
		"stages: {build: true}\n",
	} {
		facts := extractStages(mustLoad(t, raw))
		if facts.Count != 0 || len(facts.Names) != 0 {
			t.Errorf("Expected empty facts for %q, got %+v", raw, facts)
		}
	}
}

func TestExtractJobs_CountsAndTypes(t *testing.T) {
	doc := mustLoad(t, `
stages:
- stage: Build
  jobs:
  - job: Compile
  - job: Compile
  - not_a_mapping
- stage: Test
  jobs:
  - displayName: Unit tests
  - {}
`)
	facts := extractJobs(doc)

	// 2 mappings + 1 scalar in Build contribute 2; Test contributes 2 more.
	if facts.Total != 4 {
		t.Errorf("Expected total 4, got %d", facts.Total)
	}
	want := []string{"Compile", "Unit tests", "unnamed"}
	if !reflect.DeepEqual(facts.Types, want) {
		t.Errorf("Expected types %v, got %v", want, facts.Types)
	}
}

func TestExtractJobs_StageWithoutJobs(t *testing.T) {
	doc := mustLoad(t, `
stages:
- stage: Build
- stage: Test
  jobs: not_a_sequence
- skipped_scalar
`)
	facts := extractJobs(doc)
	if facts.Total != 0 {
		t.Errorf("Expected no jobs, got %d", facts.Total)
	}
	if len(facts.Types) != 0 {
		t.Errorf("Expected no job types, got %v", facts.Types)
	}
}
