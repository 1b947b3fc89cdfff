// Package dashboard serves the role-branched dashboard page and the actions
// that live on it: the doctor's profile editor and the appointment queue
// status buttons.
package dashboard

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/ayursync/web/internal/handler"
	"github.com/ayursync/web/internal/model"
	"github.com/ayursync/web/internal/service/dashboard"
	"github.com/ayursync/web/internal/service/schedule"
	"github.com/ayursync/web/internal/session"
	apperrors "github.com/ayursync/web/pkg/errors"
)

type Handler struct {
	svc      *dashboard.Service
	sessions *session.Manager
	log      zerolog.Logger
}

func NewHandler(svc *dashboard.Service, sessions *session.Manager, log zerolog.Logger) *Handler {
	return &Handler{
		svc:      svc,
		sessions: sessions,
		log:      log.With().Str("handler", "dashboard").Logger(),
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/dashboard", h.Show)
	r.POST("/dashboard/profile", h.UpdateProfile)
	r.POST("/dashboard/appointments/status", h.UpdateStatus)
}

// view wraps the assembled dashboard with what the profile editor needs.
type view struct {
	*dashboard.View
	ClockOptions []string
	StartTime    string
	EndTime      string
}

// splitTimings breaks a stored "09:00 AM - 05:00 PM" range into its two clock
// labels so the profile editor can pre-select them.
func splitTimings(timings string) (start, end string) {
	start, end = "09:00 AM", "05:00 PM"
	parts := strings.SplitN(timings, " - ", 2)
	if len(parts) == 2 && parts[0] != "" && parts[1] != "" {
		start, end = parts[0], parts[1]
	}
	return start, end
}

func (h *Handler) Show(c *gin.Context) {
	sess := handler.Session(c)
	page := handler.NewPage(c, "Dashboard - AyurSync AI", "dashboard")

	v, err := h.svc.View(c.Request.Context(), sess)
	if err != nil {
		h.log.Error().Err(err).Msg("failed to build dashboard")
		page.Error = apperrors.UserMessage(err, "Could not load your dashboard. Please try again.")
		c.HTML(http.StatusBadGateway, "dashboard.html", page)
		return
	}

	page.Message = c.Query("msg")
	start, end := splitTimings(v.Profile.Timings)
	page.Data = view{View: v, ClockOptions: schedule.ClockOptions(), StartTime: start, EndTime: end}
	c.HTML(http.StatusOK, "dashboard.html", page)
}

// UpdateProfile saves the doctor's edits. The combined timings string is
// rebuilt from the two dropdowns, and the session copy of the display name
// is refreshed so the sidebar greeting updates immediately.
func (h *Handler) UpdateProfile(c *gin.Context) {
	sess := handler.Session(c)
	if sess.User.Role != model.RoleDoctor {
		c.Redirect(http.StatusSeeOther, "/dashboard")
		return
	}

	var form model.ProfileForm
	if err := c.ShouldBind(&form); err != nil {
		c.Redirect(http.StatusSeeOther, "/dashboard")
		return
	}

	profile := model.DoctorProfile{
		Name:           form.Name,
		Specialization: form.Specialization,
		HospitalName:   form.HospitalName,
		Address:        form.Address,
	}
	if form.StartTime != "" && form.EndTime != "" {
		profile.Timings = fmt.Sprintf("%s - %s", form.StartTime, form.EndTime)
	}

	if err := h.svc.UpdateProfile(c.Request.Context(), sess, profile); err != nil {
		h.log.Error().Err(err).Msg("failed to save profile")
		c.Redirect(http.StatusSeeOther, "/dashboard")
		return
	}

	if form.Name != "" && form.Name != sess.User.Name {
		sess.User.Name = form.Name
		if err := h.sessions.Save(c, sess); err != nil {
			h.log.Warn().Err(err).Msg("failed to refresh session name")
		}
	}
	c.Redirect(http.StatusSeeOther, "/dashboard?msg=Profile+Updated+Successfully!")
}

// UpdateStatus closes a queue appointment as Success or Missed.
func (h *Handler) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.PostForm("id"), 10, 64)
	if err != nil {
		c.Redirect(http.StatusSeeOther, "/dashboard")
		return
	}

	if err := h.svc.UpdateAppointmentStatus(c.Request.Context(), id, c.PostForm("status")); err != nil {
		h.log.Error().Err(err).Int64("id", id).Msg("failed to update appointment status")
	}
	c.Redirect(http.StatusSeeOther, "/dashboard")
}
