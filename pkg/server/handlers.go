package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/azdevtools/pipeline-advisor/pkg/analyzer"
	"github.com/azdevtools/pipeline-advisor/pkg/azuredevops"
)

type analyzeRequest struct {
	YAMLContent string `json:"yaml_content"`
}

// handleAnalyze runs the analyzer on the submitted YAML. Malformed input
// is the client's problem (400); only an internal fault is ours (500).
func (s *Server) handleAnalyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		analysesTotal.WithLabelValues("rejected").Inc()
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  analyzer.StatusError,
			"message": "Invalid request data",
		})
		return
	}
	if req.YAMLContent == "" {
		analysesTotal.WithLabelValues("rejected").Inc()
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  analyzer.StatusError,
			"message": "YAML content is required and must be a string",
		})
		return
	}

	outcome := analyzer.Analyze(req.YAMLContent)
	if outcome.Failed() {
		analysesTotal.WithLabelValues(string(outcome.Kind)).Inc()
		status := http.StatusBadRequest
		if outcome.Kind == analyzer.FailureInternalFault {
			status = http.StatusInternalServerError
			s.log.Error("analysis fault", zap.String("message", outcome.Message))
		}
		c.JSON(status, outcome)
		return
	}

	analysesTotal.WithLabelValues("success").Inc()
	c.JSON(http.StatusOK, outcome)
}

// handleListPipelines merges the pipelines of every project in the
// configured organization.
func (s *Server) handleListPipelines(c *gin.Context) {
	if s.devops == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Azure DevOps organization and PAT must be configured"})
		return
	}

	ctx := c.Request.Context()
	projects, err := s.devops.ListProjects(ctx)
	if err != nil {
		s.log.Error("listing projects failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Error fetching pipelines: " + err.Error()})
		return
	}

	all := make([]azuredevops.Pipeline, 0)
	for _, project := range projects {
		pipelines, err := s.devops.ListPipelines(ctx, project.Name)
		if err != nil {
			s.log.Error("listing pipelines failed",
				zap.String("project", project.Name), zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": "Error fetching pipelines: " + err.Error()})
			return
		}
		all = append(all, pipelines...)
	}

	c.JSON(http.StatusOK, all)
}

// handlePipelineYAML proxies a pipeline's raw YAML from its repository.
func (s *Server) handlePipelineYAML(c *gin.Context) {
	if s.devops == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Azure DevOps organization and PAT must be configured"})
		return
	}

	project := c.Param("project")
	pipelineID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Pipeline id must be an integer"})
		return
	}
	branch := c.DefaultQuery("branch", "main")

	content, err := s.devops.GetPipelineYAML(c.Request.Context(), project, pipelineID, branch)
	if errors.Is(err, azuredevops.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "YAML content not found for this pipeline"})
		return
	}
	if err != nil {
		s.log.Error("fetching pipeline yaml failed",
			zap.String("project", project), zap.Int("pipeline_id", pipelineID), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Error fetching pipeline YAML: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"yaml_content": content})
}
