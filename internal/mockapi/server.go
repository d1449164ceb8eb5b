package mockapi

import (
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	// EmptyPlaceholder replaces blank texts before scoring.
	EmptyPlaceholder = "[EMPTY]"
	// DefaultModelID names the built-in lexicon classifier.
	DefaultModelID = "lexicon/hoax-terms-id"
	// DefaultSampleRate is the share of predictions logged when logging is on.
	DefaultSampleRate = 0.2

	requestIDHeader = "X-Request-ID"
)

// Config defines server dependencies.
type Config struct {
	ModelID        string
	TermsPath      string
	Thresholds     Thresholds
	AllowedOrigins []string
	EnableLogging  bool
	SampleRate     float64
	// Classifier overrides the lexicon classifier loaded from TermsPath.
	Classifier Classifier
}

// cueMatcher is implemented by classifiers that can list the phrases they reacted to.
type cueMatcher interface {
	Matches(text string) []string
}

// Server serves the classification endpoints.
type Server struct {
	modelID        string
	classifier     Classifier
	thresholds     Thresholds
	allowedOrigins []string
	enableLogging  bool
	sampleRate     float64
	sample         func() float64
}

// NewServer constructs the reference backend.
func NewServer(cfg Config) (*Server, error) {
	classifier := cfg.Classifier
	if classifier == nil {
		lexicon, err := NewLexiconClassifier(cfg.TermsPath)
		if err != nil {
			return nil, fmt.Errorf("lexicon classifier: %w", err)
		}
		classifier = lexicon
	}

	th := cfg.Thresholds
	if th.High <= 0 {
		th.High = DefaultThresholds.High
	}
	if th.Medium <= 0 {
		th.Medium = DefaultThresholds.Medium
	}
	if th.Medium > th.High {
		return nil, errors.New("medium threshold above high threshold")
	}

	modelID := strings.TrimSpace(cfg.ModelID)
	if modelID == "" {
		modelID = DefaultModelID
	}
	rate := cfg.SampleRate
	if rate < 0 || rate > 1 {
		rate = DefaultSampleRate
	}

	logrus.WithFields(logrus.Fields{
		"model_id":    modelID,
		"thresh_high": th.High,
		"thresh_med":  th.Medium,
		"logging":     cfg.EnableLogging,
		"sample_rate": rate,
	}).Info("classifier ready")

	return &Server{
		modelID:        modelID,
		classifier:     classifier,
		thresholds:     th,
		allowedOrigins: cfg.AllowedOrigins,
		enableLogging:  cfg.EnableLogging,
		sampleRate:     rate,
		sample:         rand.Float64,
	}, nil
}

// Router configures gin routes.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowCredentials = true
	if len(s.allowedOrigins) == 0 {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = s.allowedOrigins
	}
	corsCfg.AllowHeaders = []string{"Origin", "Content-Type", "Accept", requestIDHeader}
	corsCfg.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	r.Use(cors.New(corsCfg))

	r.GET("/", s.handleInfo)
	r.GET("/health", s.handleHealth)
	r.POST("/predict", s.handlePredict)
	r.POST("/predict-batch", s.handlePredictBatch)

	return r
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		id := strings.TrimSpace(c.GetHeader(requestIDHeader))
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(requestIDHeader, id)
		c.Next()
		logrus.WithFields(logrus.Fields{
			"request_id": id,
			"method":     c.Request.Method,
			"path":       c.FullPath(),
			"status":     c.Writer.Status(),
			"elapsed_ms": time.Since(start).Milliseconds(),
		}).Debug("request served")
	}
}

func (s *Server) handleInfo(c *gin.Context) {
	c.JSON(http.StatusOK, InfoResponse{
		Message: "Indo Hoax Detector API is running.",
		ModelID: s.modelID,
		Labels:  map[int]string{0: LabelNotHoax, 1: LabelHoax},
		RiskThresholds: map[string]string{
			RiskHigh:   fmt.Sprintf("P(hoaks) > %g", s.thresholds.High),
			RiskMedium: fmt.Sprintf("%g < P(hoaks) ≤ %g", s.thresholds.Medium, s.thresholds.High),
			RiskLow:    fmt.Sprintf("P(hoaks) ≤ %g", s.thresholds.Medium),
		},
		Logging: LoggingInfo{Enabled: s.enableLogging, SampleRate: s.sampleRate},
	})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handlePredict(c *gin.Context) {
	var req PredictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.renderError(c, http.StatusUnprocessableEntity, err)
		return
	}
	results := s.predict([]string{*req.Text}, "/predict")
	if len(results) == 0 {
		s.renderError(c, http.StatusInternalServerError, errors.New("classifier returned no result"))
		return
	}
	c.JSON(http.StatusOK, results[0])
}

func (s *Server) handlePredictBatch(c *gin.Context) {
	var req BatchPredictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.renderError(c, http.StatusUnprocessableEntity, err)
		return
	}
	c.JSON(http.StatusOK, BatchPredictResponse{Results: s.predict(req.Texts, "/predict-batch")})
}

func (s *Server) predict(texts []string, route string) []PredictResponse {
	prepared := make([]string, len(texts))
	for i, t := range texts {
		if t = strings.TrimSpace(t); t == "" {
			t = EmptyPlaceholder
		}
		prepared[i] = t
	}

	dists := s.classifier.Classify(prepared)
	results := make([]PredictResponse, 0, len(texts))
	for i, original := range texts {
		if i >= len(dists) {
			break
		}
		probs := dists[i].Map()
		top := dists[i].Top()
		risk := AnalyzeRisk(probs, original, s.thresholds)
		results = append(results, PredictResponse{
			Label:           top.Label,
			Score:           top.Probability,
			Probabilities:   probs,
			HoaxProbability: risk.HoaxProbability,
			RiskLevel:       risk.Level,
			RiskExplanation: risk.Explanation,
		})
		s.maybeLog(route, original, top.Label, risk)
	}
	return results
}

func (s *Server) maybeLog(route, text, label string, risk RiskAssessment) {
	if !s.enableLogging || s.sample() > s.sampleRate {
		return
	}
	fields := logrus.Fields{
		"route":      route,
		"text_len":   len(text),
		"word_count": len(strings.Fields(text)),
		"label":      label,
		"p_hoax":     risk.HoaxProbability,
		"risk_level": risk.Level,
	}
	if m, ok := s.classifier.(cueMatcher); ok {
		fields["cues"] = m.Matches(text)
	}
	logrus.WithFields(fields).Info("hoax prediction sampled")
}

func (s *Server) renderError(c *gin.Context, status int, err error) {
	c.JSON(status, gin.H{"detail": err.Error()})
}
