package analyzer

import "fmt"

// Defensive accessors over the generic document tree. The pipeline schema
// is not enforced; a field of the wrong type reads as absent.

func asMap(v interface{}) (map[string]interface{}, bool) {
	m, ok := v.(map[string]interface{})
	return m, ok
}

func asSeq(v interface{}) ([]interface{}, bool) {
	s, ok := v.([]interface{})
	return s, ok
}

func stringField(m map[string]interface{}, key string) (string, bool) {
	s, ok := m[key].(string)
	return s, ok
}

// displayName resolves an entry's name: its primary field if present and a
// string, else displayName, else the fallback.
func displayName(entry map[string]interface{}, primary, fallback string) string {
	if name, ok := stringField(entry, primary); ok {
		return name
	}
	if name, ok := stringField(entry, "displayName"); ok {
		return name
	}
	return fallback
}

// extractStages enumerates the top-level stages sequence. Entries that are
// not mappings are skipped entirely, so Count can be lower than the raw
// sequence length. An absent or mis-typed stages field means zero stages,
// not an error.
func extractStages(doc Document) StageFacts {
	facts := StageFacts{Names: []string{}}

	stages, ok := asSeq(doc["stages"])
	if !ok {
		return facts
	}

	for i, entry := range stages {
		stage, ok := asMap(entry)
		if !ok {
			continue
		}
		fallback := fmt.Sprintf("stage_%d", i+1)
		facts.Names = append(facts.Names, displayName(stage, "stage", fallback))
	}

	facts.Count = len(facts.Names)
	return facts
}

// extractJobs walks every stage's jobs sequence. Each job mapping counts
// toward Total; its derived name is deduplicated into Types, keeping
// first-insertion order so output stays deterministic.
func extractJobs(doc Document) JobFacts {
	facts := JobFacts{Types: []string{}}

	stages, ok := asSeq(doc["stages"])
	if !ok {
		return facts
	}

	seen := make(map[string]bool)
	for _, entry := range stages {
		stage, ok := asMap(entry)
		if !ok {
			continue
		}
		jobs, ok := asSeq(stage["jobs"])
		if !ok {
			continue
		}
		for _, jobEntry := range jobs {
			job, ok := asMap(jobEntry)
			if !ok {
				continue
			}
			facts.Total++
			name := displayName(job, "job", "unnamed")
			if !seen[name] {
				seen[name] = true
				facts.Types = append(facts.Types, name)
			}
		}
	}

	return facts
}
