// Package azuredevops is a thin, read-only client for the Azure DevOps
// REST API: list projects, list build and release definitions, fetch a
// pipeline's YAML from its repository.
package azuredevops

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	retry "github.com/avast/retry-go/v4"
)

const (
	defaultBaseURL = "https://dev.azure.com"
	defaultTimeout = 30 * time.Second
	apiVersion     = "6.0"

	retryAttempts = 3
	retryDelay    = 200 * time.Millisecond
)

// ErrNotFound signals an upstream 404 (missing project, definition, file)
// or a definition that has no YAML process to resolve.
var ErrNotFound = errors.New("azure devops: not found")

// Config holds client settings. Organization and PAT are required.
type Config struct {
	Organization string
	PAT          string
	BaseURL      string
	Timeout      time.Duration
}

// Client talks to one Azure DevOps organization.
type Client struct {
	baseURL      string
	organization string
	pat          string
	httpClient   *http.Client
}

// New validates the config and builds a client.
func New(cfg Config) (*Client, error) {
	if cfg.Organization == "" {
		return nil, fmt.Errorf("azure devops organization is required")
	}
	if cfg.PAT == "" {
		return nil, fmt.Errorf("azure devops personal access token is required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	return &Client{
		baseURL:      baseURL,
		organization: cfg.Organization,
		pat:          cfg.PAT,
		httpClient:   &http.Client{Timeout: timeout},
	}, nil
}

// ListProjects returns all projects in the organization.
func (c *Client) ListProjects(ctx context.Context) ([]Project, error) {
	var list projectList
	if err := c.getJSON(ctx, "_apis/projects?$top=1000", &list); err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	return list.Value, nil
}

// ListPipelines returns the project's build and release definitions merged
// into one list, each entry tagged with its type.
func (c *Client) ListPipelines(ctx context.Context, project string) ([]Pipeline, error) {
	var builds buildDefinitionList
	buildPath := fmt.Sprintf("%s/_apis/build/definitions?api-version=%s", url.PathEscape(project), apiVersion)
	if err := c.getJSON(ctx, buildPath, &builds); err != nil {
		return nil, fmt.Errorf("listing build pipelines for %q: %w", project, err)
	}

	var releases releaseDefinitionList
	releasePath := fmt.Sprintf("%s/_apis/release/definitions?api-version=%s", url.PathEscape(project), apiVersion)
	if err := c.getJSON(ctx, releasePath, &releases); err != nil {
		return nil, fmt.Errorf("listing release pipelines for %q: %w", project, err)
	}

	pipelines := make([]Pipeline, 0, len(builds.Value)+len(releases.Value))
	for _, def := range builds.Value {
		pipelines = append(pipelines, Pipeline{
			ID:          def.ID,
			Name:        def.Name,
			Type:        PipelineTypeBuild,
			URL:         def.Links.Web.Href,
			CreatedDate: def.CreatedDate,
			AuthoredBy:  def.AuthoredBy.DisplayName,
		})
	}
	for _, def := range releases.Value {
		pipelines = append(pipelines, Pipeline{
			ID:          def.ID,
			Name:        def.Name,
			Type:        PipelineTypeRelease,
			URL:         def.Links.Web.Href,
			CreatedDate: def.CreatedOn,
			AuthoredBy:  def.CreatedBy.DisplayName,
		})
	}

	return pipelines, nil
}

// GetPipelineYAML resolves a build definition's YAML file and fetches its
// raw content from the repository at the given branch ("main" when empty).
// Returns ErrNotFound when the definition, its YAML process, or the file
// itself does not exist.
func (c *Client) GetPipelineYAML(ctx context.Context, project string, pipelineID int, branch string) (string, error) {
	if branch == "" {
		branch = "main"
	}

	var def buildDefinition
	defPath := fmt.Sprintf("%s/_apis/build/definitions/%d?api-version=%s", url.PathEscape(project), pipelineID, apiVersion)
	if err := c.getJSON(ctx, defPath, &def); err != nil {
		return "", fmt.Errorf("fetching definition %d in %q: %w", pipelineID, project, err)
	}

	if def.Process.YamlFilename == "" || def.Repository.ID == "" {
		// Classic (non-YAML) definition; nothing to fetch.
		return "", ErrNotFound
	}

	query := url.Values{}
	query.Set("path", def.Process.YamlFilename)
	query.Set("versionDescriptor.version", branch)
	query.Set("api-version", apiVersion)
	itemPath := fmt.Sprintf("%s/_apis/git/repositories/%s/items?%s",
		url.PathEscape(project), url.PathEscape(def.Repository.ID), query.Encode())

	content, err := c.getText(ctx, itemPath)
	if err != nil {
		return "", fmt.Errorf("fetching %s from %q: %w", def.Process.YamlFilename, project, err)
	}
	return content, nil
}

// do issues one authenticated request. Azure DevOps PAT auth is basic auth
// with an empty username.
func (c *Client) do(ctx context.Context, path, accept string) (*http.Response, error) {
	endpoint := fmt.Sprintf("%s/%s/%s", c.baseURL, url.PathEscape(c.organization), path)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth("", c.pat)
	req.Header.Set("Accept", accept)

	return c.httpClient.Do(req)
}

// getJSON fetches and decodes a JSON endpoint, retrying transient
// failures (transport errors, 5xx). 404s and other client errors are not
// retried.
func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	return retry.Do(
		func() error {
			resp, err := c.do(ctx, path, "application/json;api-version="+apiVersion)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			if err := checkStatus(resp); err != nil {
				return err
			}
			if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
				return retry.Unrecoverable(fmt.Errorf("decoding response from %s: %w", path, err))
			}
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(retryAttempts),
		retry.Delay(retryDelay),
		retry.LastErrorOnly(true),
	)
}

// getText fetches an endpoint that serves raw file content.
func (c *Client) getText(ctx context.Context, path string) (string, error) {
	var content string
	err := retry.Do(
		func() error {
			resp, err := c.do(ctx, path, "text/plain")
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			if err := checkStatus(resp); err != nil {
				return err
			}
			body, err := io.ReadAll(resp.Body)
			if err != nil {
				return err
			}
			content = string(body)
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(retryAttempts),
		retry.Delay(retryDelay),
		retry.LastErrorOnly(true),
	)
	return content, err
}

func checkStatus(resp *http.Response) error {
	switch {
	case resp.StatusCode == http.StatusOK:
		return nil
	case resp.StatusCode == http.StatusNotFound:
		return retry.Unrecoverable(ErrNotFound)
	case resp.StatusCode >= 500:
		return fmt.Errorf("azure devops returned %d", resp.StatusCode)
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return retry.Unrecoverable(fmt.Errorf("azure devops returned %d: %s", resp.StatusCode, body))
	}
}
