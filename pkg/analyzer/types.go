package analyzer

// Document is the parsed pipeline YAML as a generic tree. Fields are read
// defensively; a missing or mis-typed field degrades to a zero value
// instead of failing the analysis.
type Document = map[string]interface{}

// StageFacts describes the top-level stages of a pipeline.
type StageFacts struct {
	Count int      `json:"count"`
	Names []string `json:"names"`
}

// JobFacts counts jobs across all stages. Types holds derived job names,
// deduplicated in first-insertion order.
type JobFacts struct {
	Total int      `json:"total"`
	Types []string `json:"types"`
}

type SecurityFacts struct {
	HasSecrets        bool `json:"has_secrets"`
	HasInlineScripts  bool `json:"has_inline_scripts"`
	UsesSecureFiles   bool `json:"uses_secure_files"`
	HasApprovals      bool `json:"has_approvals"`
	HasVariableGroups bool `json:"has_variable_groups"`
}

type BestPracticeFacts struct {
	HasTesting     bool `json:"has_testing"`
	HasArtifacts   bool `json:"has_artifacts"`
	UsesTemplates  bool `json:"uses_templates"`
	HasTimeout     bool `json:"has_timeout"`
	HasRetry       bool `json:"has_retry"`
	HasParallelism bool `json:"has_parallelism"`
}

// AnalysisResult combines all facts extracted from a single document.
type AnalysisResult struct {
	Stages        StageFacts        `json:"stages"`
	Jobs          JobFacts          `json:"jobs"`
	Security      SecurityFacts     `json:"security"`
	BestPractices BestPracticeFacts `json:"best_practices"`
}

// FailureKind classifies why an analysis failed.
type FailureKind string

const (
	FailureEmptyInput       FailureKind = "empty_input"
	FailureInvalidSyntax    FailureKind = "invalid_syntax"
	FailureInvalidStructure FailureKind = "invalid_structure"
	FailureInternalFault    FailureKind = "internal_fault"
)

// DebugInfo carries optional diagnostic detail for internal faults. It is
// the only place raw internals are surfaced; Message stays human-readable.
type DebugInfo struct {
	ErrorType  string `json:"error_type"`
	YAMLSample string `json:"yaml_sample"`
}

// Outcome is the result of analyzing one document: either a successful
// analysis with recommendations, or a failure with a message.
type Outcome struct {
	Status          string          `json:"status"`
	Analysis        *AnalysisResult `json:"analysis,omitempty"`
	Recommendations []string        `json:"recommendations,omitempty"`
	Message         string          `json:"message,omitempty"`
	Debug           *DebugInfo      `json:"debug,omitempty"`

	// Kind is set on failures so callers can pick a response code. It is
	// deliberately not serialized.
	Kind FailureKind `json:"-"`
}

// Failed reports whether the outcome is a failure.
func (o *Outcome) Failed() bool {
	return o.Status == StatusError
}

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

func successOutcome(analysis *AnalysisResult, recommendations []string) *Outcome {
	return &Outcome{
		Status:          StatusSuccess,
		Analysis:        analysis,
		Recommendations: recommendations,
	}
}

func failureOutcome(kind FailureKind, message string) *Outcome {
	return &Outcome{
		Status:  StatusError,
		Message: message,
		Kind:    kind,
	}
}
