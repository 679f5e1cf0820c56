package analyzer

import "strings"

// The scanners run over the lowercased raw YAML text, not the parsed tree.
// They are plain substring checks: tolerant of any document shape, and
// knowingly prone to false positives (a comment containing "secret" sets
// has_secrets). That tradeoff is intentional; do not turn these into
// structural checks.

func containsAny(text string, terms ...string) bool {
	for _, term := range terms {
		if strings.Contains(text, term) {
			return true
		}
	}
	return false
}

func scanSecurity(raw string) SecurityFacts {
	text := strings.ToLower(raw)
	return SecurityFacts{
		HasSecrets:        containsAny(text, "secret", "token", "password", "key"),
		HasInlineScripts:  strings.Contains(text, "script:"),
		UsesSecureFiles:   containsAny(text, "securefile", "securefile@"),
		HasApprovals:      containsAny(text, "approvals:", "reviewers:"),
		HasVariableGroups: strings.Contains(text, "variablegroup"),
	}
}

func scanBestPractices(raw string) BestPracticeFacts {
	text := strings.ToLower(raw)
	return BestPracticeFacts{
		HasTesting:     containsAny(text, "test", "pytest", "unittest"),
		HasArtifacts:   containsAny(text, "publish", "artifact"),
		UsesTemplates:  strings.Contains(text, "template:"),
		HasTimeout:     strings.Contains(text, "timeoutinminutes:"),
		HasRetry:       strings.Contains(text, "retrycountontaskfailure:"),
		HasParallelism: containsAny(text, "parallel:", "matrix:"),
	}
}
