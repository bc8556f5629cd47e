// Package api exposes the analyzer over HTTP.
package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"sonnimal/internal/analyzer"
	"sonnimal/internal/common/errors"
	"sonnimal/internal/common/logger"
	"sonnimal/internal/history"
	"sonnimal/internal/models"
	"sonnimal/internal/placeid"
)

const (
	TierHeader = "X-Analysis-Tier"

	msgMissingURL = "URL을 입력해주세요."
)

type Analyzer interface {
	AnalyzeURL(ctx context.Context, rawURL string) (*analyzer.Outcome, error)
}

// ReadyFunc reports whether the service can take traffic.
type ReadyFunc func(ctx context.Context) error

type Server struct {
	analyzer Analyzer
	history  history.Store
	ready    ReadyFunc
	logger   logger.Logger
}

type analyzeRequest struct {
	URL string `json:"url"`
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func NewServer(a Analyzer, runs history.Store, ready ReadyFunc, log logger.Logger) *Server {
	if runs == nil {
		runs = history.Noop{}
	}
	return &Server{
		analyzer: a,
		history:  runs,
		ready:    ready,
		logger:   log.With(map[string]interface{}{"component": "api"}),
	}
}

// Router builds the gin engine with every route mounted.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/health", s.health)
	router.GET("/ready", s.readiness)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	rg := router.Group("/api")
	rg.POST("/analyze", s.analyze)
	rg.GET("/places/:placeId/runs", s.runs)

	return router
}

func (s *Server) analyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.URL == "" {
		c.JSON(http.StatusBadRequest, errorResponse{Error: msgMissingURL, Code: string(errors.ErrCodeInputInvalid)})
		return
	}

	outcome, err := s.analyzer.AnalyzeURL(c.Request.Context(), req.URL)
	if err != nil {
		s.fail(c, err)
		return
	}

	c.Header(TierHeader, outcome.Tier)
	c.JSON(http.StatusOK, outcome.Result)
}

func (s *Server) runs(c *gin.Context) {
	id := c.Param("placeId")
	if len(id) < placeid.MinDigits || !isDigits(id) {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid place id", Code: string(errors.ErrCodeInputInvalid)})
		return
	}

	limit, _ := strconv.Atoi(c.Query("limit"))
	runs, err := s.history.Recent(c.Request.Context(), id, limit)
	if err != nil {
		s.logger.Warn("failed to list runs", map[string]interface{}{"placeId": id, "error": err.Error()})
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "history unavailable"})
		return
	}
	if runs == nil {
		runs = []models.AnalysisRun{}
	}
	c.JSON(http.StatusOK, gin.H{"placeId": id, "runs": runs})
}

func (s *Server) health(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}

func (s *Server) readiness(c *gin.Context) {
	if s.ready != nil {
		if err := s.ready(c.Request.Context()); err != nil {
			c.String(http.StatusServiceUnavailable, "NOT READY: "+err.Error())
			return
		}
	}
	c.String(http.StatusOK, "READY")
}

func (s *Server) fail(c *gin.Context, err error) {
	status := errors.HTTPStatus(err)
	resp := errorResponse{Error: "분석 중 오류가 발생했습니다. 다시 시도해주세요."}
	if stdErr, ok := errors.AsStandard(err); ok {
		resp.Code = string(stdErr.Code)
		if stdErr.Code != errors.ErrCodeUnexpectedFault {
			resp.Error = stdErr.Message
		}
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("analysis request failed", map[string]interface{}{"error": err.Error(), "status": status})
	}
	c.JSON(status, resp)
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
