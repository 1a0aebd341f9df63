package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/retailops/poextract/internal/model"
	"github.com/retailops/poextract/internal/pdftext"
	"github.com/retailops/poextract/internal/processor"
	"github.com/retailops/poextract/internal/store"
	"github.com/retailops/poextract/internal/validator"
)

// Config holds server configuration
type Config struct {
	Address      string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	Debug        bool
}

// Server represents the HTTP API server
type Server struct {
	config    *Config
	router    *gin.Engine
	pipeline  *processor.Pipeline
	templates store.TemplateSource
	extractor *pdftext.Extractor
}

// NewServer creates a new API server. The template source supplies the
// per-request template snapshot; pass store.Static(nil) to run with the
// generic parser only.
func NewServer(config *Config, templates store.TemplateSource) *Server {
	if !config.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	if config.Debug {
		router.Use(gin.Logger())
	}

	if templates == nil {
		templates = store.Static(nil)
	}

	s := &Server{
		config:    config,
		router:    router,
		pipeline:  processor.NewPipeline(),
		templates: templates,
		extractor: pdftext.NewExtractor(),
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	// Health check
	s.router.GET("/health", s.handleHealth)

	// API v1
	v1 := s.router.Group("/api/v1")
	{
		v1.POST("/extract", s.handleExtract)
		v1.POST("/extract/text", s.handleExtractText)
		v1.POST("/validate", s.handleValidate)
		v1.POST("/templates/test", s.handleTestTemplate)
		v1.GET("/templates", s.handleListTemplates)
	}
}

// Run starts the HTTP server
func (s *Server) Run() error {
	srv := &http.Server{
		Addr:         s.config.Address,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}
	return srv.ListenAndServe()
}

// Handler returns the http.Handler for use with custom servers
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// handleExtract runs the full pipeline over a raw PDF body and attaches
// the validation report so clients can surface partial extractions for
// manual correction.
func (s *Server) handleExtract(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
		return
	}
	if len(body) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "empty request body"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 60*time.Second)
	defer cancel()

	templates, err := s.templates.ListActive(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load templates"})
		return
	}

	result := s.pipeline.ProcessPDF(ctx, body, templates)
	if result.Error != nil {
		status := http.StatusUnprocessableEntity
		var unreadable *model.UnreadablePDFError
		if !errors.As(result.Error, &unreadable) {
			status = http.StatusInternalServerError
		}
		c.JSON(status, gin.H{
			"error":    result.Error.Error(),
			"warnings": result.Warnings,
		})
		return
	}

	c.JSON(http.StatusOK, ExtractResponse{
		Result:       result.Extraction,
		Method:       string(result.Method),
		Template:     result.TemplateName,
		SkippedLines: result.SkippedLines,
		Warnings:     result.Warnings,
		Report:       validator.Validate(result.Extraction),
	})
}

// handleExtractText is the standalone diagnostic entry point: PDF in,
// plain text out.
func (s *Server) handleExtractText(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
		return
	}
	if len(body) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "empty request body"})
		return
	}

	text, err := s.extractor.Text(body)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, TextResponse{Text: text})
}

func (s *Server) handleValidate(c *gin.Context) {
	var result model.ExtractionResult
	if err := c.ShouldBindJSON(&result); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid extraction result payload"})
		return
	}

	c.JSON(http.StatusOK, validator.Validate(&result))
}

// handleTestTemplate previews extraction with an in-memory, possibly
// unsaved template. A malformed template is a 422 naming the offending
// field for the authoring UI.
func (s *Server) handleTestTemplate(c *gin.Context) {
	var req TestTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid test request payload"})
		return
	}
	if req.Text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text is required"})
		return
	}

	result, err := s.pipeline.TestTemplate(c.Request.Context(), req.Text, &req.Template)
	if err != nil {
		var tplErr *model.TemplateError
		if errors.As(err, &tplErr) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": tplErr.Error(),
				"field": tplErr.Field,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, ExtractResponse{
		Result:       result.Extraction,
		Method:       string(result.Method),
		Template:     result.TemplateName,
		SkippedLines: result.SkippedLines,
		Warnings:     result.Warnings,
		Report:       validator.Validate(result.Extraction),
	})
}

func (s *Server) handleListTemplates(c *gin.Context) {
	templates, err := s.templates.ListActive(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load templates"})
		return
	}

	c.JSON(http.StatusOK, TemplatesResponse{Templates: templates})
}
