// Package disease serves the disease code lookup page.
package disease

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
		log:      log.With().Str("handler", "disease").Logger(),
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/disease-search", h.Show)
	r.POST("/disease-search", h.Search)
}

type searchView struct {
	Query  string
	Result *model.DiseaseResult
}

func (h *Handler) Show(c *gin.Context) {
	sess := handler.Session(c)
	if err := h.recorder.RecordVisit(c.Request.Context(), sess.User.Email, "Disease Codes"); err != nil {
		h.log.Warn().Err(err).Msg("failed to record visit")
	}

	page := handler.NewPage(c, "Disease Codes - AyurSync AI", "disease-search")
	page.Data = searchView{}
	c.HTML(http.StatusOK, "disease_search.html", page)
}

func (h *Handler) Search(c *gin.Context) {
	page := handler.NewPage(c, "Disease Codes - AyurSync AI", "disease-search")
	query := strings.TrimSpace(c.PostForm("query"))
	if query == "" {
		page.Error = "Enter a disease name to search."
		page.Data = searchView{}
		c.HTML(http.StatusBadRequest, "disease_search.html", page)
		return
	}

	result, err := h.svc.Search(c.Request.Context(), query)
	if err != nil {
		h.log.Error().Err(err).Str("query", query).Msg("disease search failed")
		page.Error = apperrors.UserMessage(err, "Connection Error")
		page.Data = searchView{Query: query}
		c.HTML(http.StatusBadGateway, "disease_search.html", page)
		return
	}

	page.Data = searchView{Query: query, Result: result}
	c.HTML(http.StatusOK, "disease_search.html", page)
}
