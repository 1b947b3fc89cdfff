// Package symptom serves the AI symptom analyzer page.
package symptom

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/ayursync/web/internal/handler"
	"github.com/ayursync/web/internal/model"
	"github.com/ayursync/web/internal/service/triage"
	apperrors "github.com/ayursync/web/pkg/errors"
)

type Handler struct {
	svc      *triage.Service
	recorder handler.Recorder
	log      zerolog.Logger
}

func NewHandler(svc *triage.Service, recorder handler.Recorder, log zerolog.Logger) *Handler {
	return &Handler{
		svc:      svc,
		recorder: recorder,
		log:      log.With().Str("handler", "symptom").Logger(),
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/symptom-analyzer", h.Show)
	r.POST("/symptom-analyzer", h.Analyze)
}

type analyzerView struct {
	Symptoms string
	Report   *model.SymptomReport
}

func (h *Handler) Show(c *gin.Context) {
	sess := handler.Session(c)
	if err := h.recorder.RecordVisit(c.Request.Context(), sess.User.Email, "AI Symptom Analyzer"); err != nil {
		h.log.Warn().Err(err).Msg("failed to record visit")
	}

	page := handler.NewPage(c, "Symptom Analyzer - AyurSync AI", "symptom-analyzer")
	page.Data = analyzerView{}
	c.HTML(http.StatusOK, "symptom_analyzer.html", page)
}

func (h *Handler) Analyze(c *gin.Context) {
	page := handler.NewPage(c, "Symptom Analyzer - AyurSync AI", "symptom-analyzer")
	symptoms := strings.TrimSpace(c.PostForm("symptoms"))
	if symptoms == "" {
		page.Error = "Describe your symptoms first."
		page.Data = analyzerView{}
		c.HTML(http.StatusBadRequest, "symptom_analyzer.html", page)
		return
	}

	report, err := h.svc.Analyze(c.Request.Context(), symptoms)
	if err != nil {
		h.log.Error().Err(err).Msg("symptom analysis failed")
		page.Error = apperrors.UserMessage(err, "Connection Error")
		page.Data = analyzerView{Symptoms: symptoms}
		c.HTML(http.StatusBadGateway, "symptom_analyzer.html", page)
		return
	}

	page.Data = analyzerView{Symptoms: symptoms, Report: report}
	c.HTML(http.StatusOK, "symptom_analyzer.html", page)
}
