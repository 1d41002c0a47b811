// Package server exposes the pipeline over HTTP.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/entigraph/entigraph/internal/config"
	"github.com/entigraph/entigraph/internal/core"
	"github.com/entigraph/entigraph/internal/core/linker"
	"github.com/entigraph/entigraph/internal/llm"
)

type Server struct {
	Config config.Config
	LLM    llm.Client
	Linker *linker.Linker
	Log    *zap.Logger
}

func NewServer(cfg config.Config, client llm.Client, lk *linker.Linker, log *zap.Logger) *Server {
	return &Server{Config: cfg, LLM: client, Linker: lk, Log: log}
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.Default()

	r.GET("/health", s.Health)
	r.POST("/extract", s.Extract)
	r.POST("/generate", s.Generate)
	r.POST("/compendium", s.Compendium)

	return r
}

func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// pipeline derives a run pipeline for the requested mode without touching
// the server's configuration.
func (s *Server) pipeline(mode string) *core.Pipeline {
	cfg := s.Config
	cfg.Extraction.Mode = mode
	return core.NewPipeline(cfg, s.LLM, s.Linker, s.Log)
}

type ExtractRequest struct {
	Text string `json:"text"`
}

func (s *Server) Extract(c *gin.Context) {
	var req ExtractRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text is required"})
		return
	}
	s.run(c, "extract", req.Text)
}

type GenerateRequest struct {
	Topic string `json:"topic"`
}

func (s *Server) Generate(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Topic == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "topic is required"})
		return
	}
	s.run(c, "generate", req.Topic)
}

func (s *Server) Compendium(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Topic == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "topic is required"})
		return
	}
	s.run(c, "compendium", req.Topic)
}

func (s *Server) run(c *gin.Context, mode, input string) {
	result, err := s.pipeline(mode).Run(c.Request.Context(), input)
	if err != nil {
		s.Log.Error("pipeline run failed", zap.String("mode", mode), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "processing failed"})
		return
	}
	c.JSON(http.StatusOK, result)
}
