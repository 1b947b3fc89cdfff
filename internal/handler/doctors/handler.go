// Package doctors serves the doctor directory page and its local
// soft-delete action.
package doctors

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/ayursync/web/internal/handler"
	"github.com/ayursync/web/internal/model"
	"github.com/ayursync/web/internal/service/directory"
	"github.com/ayursync/web/internal/service/triage"
	apperrors "github.com/ayursync/web/pkg/errors"
)

type Handler struct {
	svc      *directory.Service
	recorder handler.Recorder
	log      zerolog.Logger
}

func NewHandler(svc *directory.Service, recorder handler.Recorder, log zerolog.Logger) *Handler {
	return &Handler{
		svc:      svc,
		recorder: recorder,
		log:      log.With().Str("handler", "doctors").Logger(),
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/find-doctors", h.List)
	r.POST("/find-doctors/delete", h.Delete)
}

type listView struct {
	Filter     string
	Disease    string
	Doctors    []model.Doctor
	CanDelete  bool
	SelfEmail  string
	ResultNote string
}

// List renders the directory. Arriving with ?disease= (the disease-search
// referral) resolves the matching specialist and filters by that; a plain
// ?specialization= filters directly.
func (h *Handler) List(c *gin.Context) {
	sess := handler.Session(c)
	if err := h.recorder.RecordVisit(c.Request.Context(), sess.User.Email, "Find Doctor"); err != nil {
		h.log.Warn().Err(err).Msg("failed to record visit")
	}

	filter := strings.TrimSpace(c.Query("specialization"))
	disease := strings.TrimSpace(c.Query("disease"))
	note := ""
	if filter == "" && disease != "" {
		filter = triage.Specialist(disease)
		note = "Showing " + filter + " specialists for " + disease
	}

	page := handler.NewPage(c, "Find Doctors - AyurSync AI", "find-doctors")
	page.Error = c.Query("err")

	docs, err := h.svc.List(c.Request.Context(), sess, filter)
	if err != nil {
		h.log.Error().Err(err).Msg("failed to list doctors")
		page.Error = apperrors.UserMessage(err, "Connection Error")
		page.Data = listView{Filter: filter, Disease: disease}
		c.HTML(http.StatusBadGateway, "find_doctors.html", page)
		return
	}

	page.Data = listView{
		Filter:     filter,
		Disease:    disease,
		Doctors:    docs,
		CanDelete:  sess.User.Role.Staff(),
		SelfEmail:  sess.User.Email,
		ResultNote: note,
	}
	c.HTML(http.StatusOK, "find_doctors.html", page)
}

// Delete hides a doctor from this user's directory view.
func (h *Handler) Delete(c *gin.Context) {
	sess := handler.Session(c)
	back := "/find-doctors"
	if f := c.PostForm("specialization"); f != "" {
		back += "?specialization=" + url.QueryEscape(f)
	}

	if !sess.User.Role.Staff() {
		c.Redirect(http.StatusSeeOther, back)
		return
	}

	id, err := strconv.ParseInt(c.PostForm("id"), 10, 64)
	if err != nil {
		c.Redirect(http.StatusSeeOther, back)
		return
	}

	if err := h.svc.SoftDelete(c.Request.Context(), sess, id, c.PostForm("email")); err != nil {
		h.log.Warn().Err(err).Int64("id", id).Msg("soft delete refused")
		sep := "?"
		if strings.Contains(back, "?") {
			sep = "&"
		}
		back += sep + "err=" + url.QueryEscape(apperrors.UserMessage(err, "Could not remove doctor"))
	}
	c.Redirect(http.StatusSeeOther, back)
}
