package api

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"claimcheck/internal/check"
	"claimcheck/internal/feedback"
	"claimcheck/internal/ledger"
)

// Config defines server dependencies.
type Config struct {
	TemplateGlob   string
	AllowedOrigins []string
}

// Server wires HTTP handlers with the check pipeline and persistence.
type Server struct {
	checker        *check.Service
	feedback       *feedback.Log
	ledger         *ledger.Ledger
	templateGlob   string
	allowedOrigins []string
}

// NewServer constructs the API server.
func NewServer(cfg Config, checker *check.Service, fb *feedback.Log, led *ledger.Ledger) (*Server, error) {
	if checker == nil {
		return nil, errors.New("check service required")
	}
	if fb == nil {
		return nil, errors.New("feedback log required")
	}
	if led == nil {
		return nil, errors.New("verdict ledger required")
	}
	return &Server{
		checker:        checker,
		feedback:       fb,
		ledger:         led,
		templateGlob:   cfg.TemplateGlob,
		allowedOrigins: cfg.AllowedOrigins,
	}, nil
}

// Router configures gin routes.
func (s *Server) Router() (*gin.Engine, error) {
	r := gin.Default()

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowCredentials = true
	if len(s.allowedOrigins) == 0 {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = s.allowedOrigins
	}
	corsCfg.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	corsCfg.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	r.Use(cors.New(corsCfg))

	if s.templateGlob != "" {
		r.LoadHTMLGlob(s.templateGlob)
	}

	r.GET("/", s.handleIndex)
	r.POST("/check", s.handleCheck)
	r.POST("/feedback", s.handleFeedback)
	r.GET("/admin/stats", s.handleAdminStats)
	r.GET("/api/healthz", s.handleHealth)

	return r, nil
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleIndex(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{
		"max_length": check.MaxStatementLength,
	})
}

func (s *Server) handleCheck(c *gin.Context) {
	statement := c.PostForm("statement")
	result := s.checker.Check(c.Request.Context(), statement)

	logrus.WithFields(logrus.Fields{
		"verdict":     result.Verdict,
		"usage_count": result.UsageCount,
		"sources":     len(result.Sources),
	}).Info("claim checked")

	c.HTML(http.StatusOK, "result.html", gin.H{
		"results":     []check.Result{result},
		"usage_count": result.UsageCount,
		"daily_limit": result.DailyLimit,
	})
}

func (s *Server) handleFeedback(c *gin.Context) {
	liked := c.PostForm("liked")
	disliked := c.PostForm("disliked")
	suggestion := c.PostForm("suggestion")

	if err := s.feedback.Append(liked, disliked, suggestion); err != nil {
		s.renderError(c, http.StatusInternalServerError, err)
		return
	}

	c.HTML(http.StatusOK, "thank_you.html", gin.H{})
}

func (s *Server) handleAdminStats(c *gin.Context) {
	snapshot, err := s.ledger.Snapshot()
	if err != nil {
		s.renderError(c, http.StatusInternalServerError, err)
		return
	}
	c.HTML(http.StatusOK, "admin_stats.html", gin.H{
		"verdict_data": snapshot,
	})
}

func (s *Server) renderError(c *gin.Context, status int, err error) {
	logrus.WithError(err).Error("request failed")
	c.JSON(status, gin.H{"error": err.Error()})
}
