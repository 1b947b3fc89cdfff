// Package appointment serves the booking form, the double-submit guard
// around it, and the confirmation receipt.
package appointment

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/ayursync/web/internal/handler"
	"github.com/ayursync/web/internal/model"
	"github.com/ayursync/web/internal/service/booking"
	"github.com/ayursync/web/internal/service/schedule"
	"github.com/ayursync/web/internal/session"
	apperrors "github.com/ayursync/web/pkg/errors"
)

// bookingForm is the session form-state key for the guard.
const bookingForm = "booking"

// submitGrace bounds how long an in-flight state blocks resubmission. A
// crash between persisting the state and finishing the request would
// otherwise lock the form for the life of the session.
const submitGrace = 2 * time.Minute

type Handler struct {
	svc      *booking.Service
	sessions *session.Manager
	recorder handler.Recorder
	log      zerolog.Logger
	now      func() time.Time
}

func NewHandler(svc *booking.Service, sessions *session.Manager, recorder handler.Recorder, log zerolog.Logger) *Handler {
	return &Handler{
		svc:      svc,
		sessions: sessions,
		recorder: recorder,
		log:      log.With().Str("handler", "appointment").Logger(),
		now:      time.Now,
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/appointment", h.Show)
	r.POST("/appointment", h.Submit)
	r.POST("/appointment/reset", h.Reset)
}

type bookingView struct {
	Form        model.BookingForm
	Doctors     []model.Doctor
	Slots       []string
	PhonePrefix string
	Submitting  bool
	Receipt     *model.Receipt
}

func (h *Handler) render(c *gin.Context, status int, page handler.Page, v bookingView) {
	if v.Slots == nil {
		v.Slots = schedule.BookingSlots("")
	}
	v.PhonePrefix = booking.PhonePrefix
	page.Data = v
	c.HTML(status, "appointment.html", page)
}

// Show renders the booking form. A ?doctor= arrival (the directory's Book
// button) preselects that doctor, and the patient name defaults to the
// signed-in user.
func (h *Handler) Show(c *gin.Context) {
	sess := handler.Session(c)
	if err := h.recorder.RecordVisit(c.Request.Context(), sess.User.Email, "Book Appointment"); err != nil {
		h.log.Warn().Err(err).Msg("failed to record visit")
	}

	page := handler.NewPage(c, "Book Appointment - AyurSync AI", "appointment")

	docs, err := h.svc.Doctors(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("failed to load doctors for booking")
		page.Error = "Connection Error"
	}

	form := model.BookingForm{
		FullName:   sess.User.Name,
		DoctorName: c.Query("doctor"),
	}
	h.render(c, http.StatusOK, page, bookingView{Form: form, Doctors: docs})
}

// Submit books the appointment. The per-session guard refuses a second
// submission while one is already in flight, and a succeeded form stays
// locked on its receipt until Reset.
func (h *Handler) Submit(c *gin.Context) {
	sess := handler.Session(c)
	page := handler.NewPage(c, "Book Appointment - AyurSync AI", "appointment")

	var form model.BookingForm
	if err := c.ShouldBind(&form); err != nil {
		page.Error = "Please fill in every required field."
		h.render(c, http.StatusBadRequest, page, bookingView{Form: form})
		return
	}
	form.Phone = booking.ApplyPhoneInput("", form.Phone)

	if st := sess.FormState(bookingForm); st.InFlight() && !st.Expired(h.now(), submitGrace) {
		page.Error = "Your booking is already being processed."
		h.render(c, http.StatusConflict, page, bookingView{Form: form, Submitting: true})
		return
	}

	sess.SetFormState(bookingForm, model.FormState{Phase: model.FormSubmitting, Since: h.now()})
	if err := h.sessions.Save(c, sess); err != nil {
		h.log.Warn().Err(err).Msg("failed to persist form state")
	}

	receipt, err := h.svc.Submit(c.Request.Context(), sess, form)
	if err != nil {
		msg := apperrors.UserMessage(err, "Connection Error")
		sess.SetFormState(bookingForm, model.Fail(msg))
		if saveErr := h.sessions.Save(c, sess); saveErr != nil {
			h.log.Warn().Err(saveErr).Msg("failed to persist form state")
		}

		h.log.Error().Err(err).Msg("booking failed")
		page.Error = msg
		h.render(c, http.StatusBadRequest, page, bookingView{Form: form})
		return
	}

	sess.SetFormState(bookingForm, model.FormState{Phase: model.FormSucceeded})
	if err := h.sessions.Save(c, sess); err != nil {
		h.log.Warn().Err(err).Msg("failed to persist form state")
	}

	page.Message = "Appointment Booked Successfully!"
	h.render(c, http.StatusOK, page, bookingView{Receipt: receipt})
}

// Reset is the receipt's Book Another button: the guard returns to idle and
// the form comes back empty.
func (h *Handler) Reset(c *gin.Context) {
	sess := handler.Session(c)
	sess.SetFormState(bookingForm, model.FormState{})
	if err := h.sessions.Save(c, sess); err != nil {
		h.log.Warn().Err(err).Msg("failed to persist form state")
	}
	c.Redirect(http.StatusSeeOther, "/appointment")
}
