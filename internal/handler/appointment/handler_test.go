package appointment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayursync/web/internal/config"
	"github.com/ayursync/web/internal/middleware"
	"github.com/ayursync/web/internal/model"
	"github.com/ayursync/web/internal/service/booking"
	"github.com/ayursync/web/internal/service/schedule"
	"github.com/ayursync/web/internal/session"
)

type fakeBackend struct {
	doctors []model.Doctor
	booked  []model.BookingRequest
}

func (f *fakeBackend) Doctors(ctx context.Context) ([]model.Doctor, error) {
	return f.doctors, nil
}

func (f *fakeBackend) BookAppointment(ctx context.Context, b model.BookingRequest) error {
	f.booked = append(f.booked, b)
	return nil
}

type fakeRecorder struct{}

func (fakeRecorder) RecordVisit(ctx context.Context, email, moduleName string) error { return nil }

func newTestApp(t *testing.T, backend *fakeBackend, sess *session.Session, now time.Time) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("clocklabel", func(fl validator.FieldLevel) bool {
			_, _, err := schedule.ParseClock(fl.Field().String())
			return err == nil
		})
	}

	sessions := session.NewManager(session.NewMemoryStore(time.Minute), config.SessionConfig{
		Secret:     "test-secret",
		CookieName: "ayursync_session",
		TTL:        time.Minute,
	})

	svc := booking.NewService(backend, config.SMTPConfig{}, zerolog.Nop())
	h := NewHandler(svc, sessions, fakeRecorder{}, zerolog.Nop())
	h.now = func() time.Time { return now }

	engine := gin.New()
	engine.SetFuncMap(map[string]any{
		"inc": func(i int) int { return i + 1 },
	})
	engine.LoadHTMLGlob("../../../web/templates/*.html")
	grp := engine.Group("")
	grp.Use(func(c *gin.Context) {
		c.Set(middleware.ContextSession, sess)
	})
	h.RegisterRoutes(grp)
	return engine
}

func bookingValues() url.Values {
	return url.Values{
		"full_name":   {"Ravi Kumar"},
		"dob":         {"1996-03-01"},
		"doctor_name": {"Mehta"},
		"date":        {"2026-06-20"},
		"time":        {"10:00 AM"},
		"disease":     {"Diabetes"},
		"phone":       {"9876543210"},
	}
}

func postBooking(engine *gin.Engine) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/appointment", strings.NewReader(bookingValues().Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestSubmitRefusedWhileInFlight(t *testing.T) {
	now := time.Date(2026, time.June, 15, 10, 0, 0, 0, time.UTC)
	backend := &fakeBackend{doctors: []model.Doctor{{ID: 1, Name: "Mehta"}}}
	sess := &session.Session{ID: "s1", User: model.User{Name: "Ravi", Email: "ravi@example.com"}}
	sess.SetFormState("booking", model.FormState{Phase: model.FormSubmitting, Since: now.Add(-5 * time.Second)})

	engine := newTestApp(t, backend, sess, now)
	w := postBooking(engine)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "already being processed")
	// The conflict page offers a way out of the locked state.
	assert.Contains(t, w.Body.String(), `action="/appointment/reset"`)
	assert.Empty(t, backend.booked)
}

func TestSubmitAgesOutStaleInFlightState(t *testing.T) {
	now := time.Date(2026, time.June, 15, 10, 0, 0, 0, time.UTC)
	backend := &fakeBackend{doctors: []model.Doctor{{ID: 1, Name: "Mehta"}}}

	// An in-flight marker orphaned by a crash mid-request must not lock the
	// form for the life of the session.
	sess := &session.Session{ID: "s1", User: model.User{Name: "Ravi", Email: "ravi@example.com"}}
	sess.SetFormState("booking", model.FormState{Phase: model.FormSubmitting, Since: now.Add(-3 * time.Minute)})

	engine := newTestApp(t, backend, sess, now)
	w := postBooking(engine)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Appointment Booked Successfully!")
	require.Len(t, backend.booked, 1)
	assert.Equal(t, model.FormSucceeded, sess.FormState("booking").Phase)
}
