package azuredevops

// Project is an Azure DevOps project in the configured organization.
type Project struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	State       string `json:"state,omitempty"`
	URL         string `json:"url,omitempty"`
}

// Pipeline is a build or release definition, normalized to one shape.
// Type is "build" or "release".
type Pipeline struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	URL         string `json:"url,omitempty"`
	CreatedDate string `json:"createdDate,omitempty"`
	AuthoredBy  string `json:"authoredBy,omitempty"`
}

const (
	PipelineTypeBuild   = "build"
	PipelineTypeRelease = "release"
)

// Wire formats. The REST API wraps collections in {"count": n, "value": []}
// and scatters equivalent facts under different names for build vs release
// definitions (createdDate/authoredBy vs createdOn/createdBy).

type projectList struct {
	Value []Project `json:"value"`
}

type webLinks struct {
	Web struct {
		Href string `json:"href"`
	} `json:"web"`
}

type identity struct {
	DisplayName string `json:"displayName"`
}

type buildDefinitionList struct {
	Value []buildDefinition `json:"value"`
}

type buildDefinition struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	Links       webLinks `json:"_links"`
	CreatedDate string   `json:"createdDate"`
	AuthoredBy  identity `json:"authoredBy"`

	// Only populated on single-definition fetches.
	Process struct {
		YamlFilename string `json:"yamlFilename"`
	} `json:"process"`
	Repository struct {
		ID string `json:"id"`
	} `json:"repository"`
}

type releaseDefinitionList struct {
	Value []releaseDefinition `json:"value"`
}

type releaseDefinition struct {
	ID        int      `json:"id"`
	Name      string   `json:"name"`
	Links     webLinks `json:"_links"`
	CreatedOn string   `json:"createdOn"`
	CreatedBy identity `json:"createdBy"`
}
