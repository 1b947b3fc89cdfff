// Package dashboard assembles the role-based dashboard view from the raw
// backend stats bundle and the user's locally held display state.
package dashboard

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/ayursync/web/internal/model"
	"github.com/ayursync/web/internal/repository"
	"github.com/ayursync/web/internal/service/schedule"
	"github.com/ayursync/web/internal/session"
)

// Backend is the slice of the API client this service needs.
type Backend interface {
	DashboardStats(ctx context.Context, role model.Role, email string) (*model.StatsPayload, error)
	UpdateAppointmentStatus(ctx context.Context, id int64, status string) error
	UpdateDoctorProfile(ctx context.Context, email string, profile model.DoctorProfile) error
}

type Service struct {
	backend Backend
	state   repository.StateRepository
	log     zerolog.Logger
	now     func() time.Time
}

func NewService(backend Backend, state repository.StateRepository, log zerolog.Logger) *Service {
	return &Service{
		backend: backend,
		state:   state,
		log:     log.With().Str("component", "dashboard").Logger(),
		now:     time.Now,
	}
}

// Efficacy is the doctor's closed-appointment summary with a precomputed
// display rate.
type Efficacy struct {
	Success int
	Missed  int
	Total   int
	Rate    string
}

// View is everything the dashboard template renders for one role.
type View struct {
	User           model.User
	WelcomeMessage string

	DoctorCount       int
	DoctorsList       []model.Doctor
	ActiveAppointment *model.ActiveAppointment
	ActiveDate        string
	ActiveTime        string
	PastAppointments  []model.PastAppointment
	TotalAppCount     int
	AllAppointments   []model.AdminAppointment
	PatientRecords    []model.PatientRecord
	SystemHealth      model.SystemHealth
	DoctorActiveAppts []model.QueueAppointment
	Efficacy          Efficacy

	History []model.ActivityEntry
	Profile model.DoctorProfile
}

// View fetches the stats bundle and merges it with local state. A backend
// failure is returned to the caller; the page shows its generic message.
func (s *Service) View(ctx context.Context, sess *session.Session) (*View, error) {
	stats, err := s.backend.DashboardStats(ctx, sess.User.Role, sess.User.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch dashboard stats: %w", err)
	}

	deleted, err := s.state.DeletedDoctorIDs(ctx, sess.User.Email)
	if err != nil {
		return nil, err
	}

	v := Assemble(stats, deleted, s.now())
	v.User = sess.User
	v.WelcomeMessage = WelcomeMessage(sess.User, sess.WelcomeType)

	if v.History, err = s.state.History(ctx, sess.User.Email); err != nil {
		return nil, err
	}
	v.Profile = s.profileDefaults(ctx, sess.User)
	return v, nil
}

func (s *Service) profileDefaults(ctx context.Context, user model.User) model.DoctorProfile {
	p := model.DoctorProfile{
		Name:           user.Name,
		Specialization: "General Physician",
		Timings:        "09:00 AM - 05:00 PM",
	}
	if user.Role != model.RoleDoctor {
		return p
	}
	stored, err := s.state.DoctorProfile(ctx, user.Email)
	if err != nil {
		s.log.Warn().Err(err).Msg("failed to load profile overrides")
		return p
	}
	if stored != nil {
		merged := stored.Merge(model.Doctor{
			Name:           p.Name,
			Specialization: p.Specialization,
			Timings:        p.Timings,
		})
		return model.DoctorProfile{
			Name:           merged.Name,
			Specialization: merged.Specialization,
			HospitalName:   merged.HospitalName,
			Address:        merged.Address,
			Timings:        merged.Timings,
		}
	}
	return p
}

// Assemble builds the displayed view from the raw payload and the deleted-id
// set. Pure with respect to its inputs: every optional collection defaults to
// empty and every optional scalar to its documented fallback, so the page
// renders even from a partially populated payload.
func Assemble(stats *model.StatsPayload, deletedIDs []int64, now time.Time) *View {
	deleted := make(map[int64]bool, len(deletedIDs))
	for _, id := range deletedIDs {
		deleted[id] = true
	}

	doctors := make([]model.Doctor, 0, len(stats.ActiveDoctorsList))
	for _, d := range stats.ActiveDoctorsList {
		if !deleted[d.ID] {
			doctors = append(doctors, d)
		}
	}

	v := &View{
		DoctorCount:       len(doctors),
		DoctorsList:       doctors,
		ActiveAppointment: NormalizeActive(stats.ActiveAppointment, now),
		PastAppointments:  stats.PastAppointments,
		TotalAppCount:     stats.TotalAppCount,
		AllAppointments:   stats.AllAppointments,
		PatientRecords:    stats.PatientRecords,
		SystemHealth:      model.SystemHealth{Status: "Operational", Uptime: "100%", Database: "Connected"},
		DoctorActiveAppts: stats.DoctorActiveAppts,
	}
	if v.PastAppointments == nil {
		v.PastAppointments = []model.PastAppointment{}
	}
	if v.AllAppointments == nil {
		v.AllAppointments = []model.AdminAppointment{}
	}
	if v.PatientRecords == nil {
		v.PatientRecords = []model.PatientRecord{}
	}
	if v.DoctorActiveAppts == nil {
		v.DoctorActiveAppts = []model.QueueAppointment{}
	}
	if stats.SystemHealth != nil {
		v.SystemHealth = *stats.SystemHealth
	}

	eff := model.EfficacyStats{}
	if stats.EfficacyStats != nil {
		eff = *stats.EfficacyStats
	}
	v.Efficacy = Efficacy{
		Success: eff.Success,
		Missed:  eff.Missed,
		Total:   eff.Success + eff.Missed,
		Rate:    "N/A",
	}
	if v.Efficacy.Total > 0 {
		pct := math.Round(float64(eff.Success) / float64(v.Efficacy.Total) * 100)
		v.Efficacy.Rate = fmt.Sprintf("%d%%", int(pct))
	}

	if v.ActiveAppointment != nil {
		v.ActiveDate, v.ActiveTime = splitAtPhrase(v.ActiveAppointment.Date, v.ActiveAppointment.Time)
	}
	return v
}

// NormalizeActive nulls out an appointment whose parsed local timestamp is
// strictly in the past. A record missing its date or time passes through
// unmodified: the backend occasionally omits one of them and suppressing
// those would hide genuinely upcoming bookings.
func NormalizeActive(appt *model.ActiveAppointment, now time.Time) *model.ActiveAppointment {
	if appt == nil || appt.Date == "" || appt.Time == "" {
		return appt
	}

	datePart, timePart := splitAtPhrase(appt.Date, appt.Time)

	hour, minute, err := schedule.ParseClock(timePart)
	if err != nil {
		return appt
	}
	day, ok := parseDate(datePart, now.Location())
	if !ok {
		return appt
	}

	when := time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, now.Location())
	if now.After(when) {
		return nil
	}
	return appt
}

// splitAtPhrase handles the "<date phrase> at h:mm AM/PM" time variant,
// moving the phrase into the date slot.
func splitAtPhrase(date, clock string) (string, string) {
	if i := strings.Index(clock, " at "); i >= 0 {
		return clock[:i], clock[i+4:]
	}
	return date, clock
}

var dateLayouts = []string{
	"2006-01-02",
	"1/2/2006",
	"01/02/2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
}

func parseDate(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// WelcomeMessage greets by role: doctors always get the Dr. form, everyone
// else gets "Welcome back" on a repeat visit.
func WelcomeMessage(user model.User, welcomeType string) string {
	if user.Role == model.RoleDoctor {
		return fmt.Sprintf("Welcome, Dr. %s", user.Name)
	}
	prefix := "Welcome"
	if welcomeType == "back" {
		prefix = "Welcome back"
	}
	return fmt.Sprintf("%s, %s", prefix, user.Name)
}

// RecordVisit pushes a navigation entry onto the activity ring, evicting the
// oldest past ten entries.
func (s *Service) RecordVisit(ctx context.Context, email, moduleName string) error {
	history, err := s.state.History(ctx, email)
	if err != nil {
		return err
	}

	now := s.now()
	entry := model.ActivityEntry{
		Module: moduleName,
		Date:   now.Format("1/2/2006"),
		Time:   now.Format("03:04 PM"),
	}
	history = append([]model.ActivityEntry{entry}, history...)
	if len(history) > model.ActivityHistoryCap {
		history = history[:model.ActivityHistoryCap]
	}
	return s.state.SaveHistory(ctx, email, history)
}

// UpdateAppointmentStatus marks a queue entry Success or Missed.
func (s *Service) UpdateAppointmentStatus(ctx context.Context, id int64, status string) error {
	if status != "Success" && status != "Missed" {
		return fmt.Errorf("unsupported appointment status %q", status)
	}
	if err := s.backend.UpdateAppointmentStatus(ctx, id, status); err != nil {
		return fmt.Errorf("failed to update appointment status: %w", err)
	}
	return nil
}

// UpdateProfile stores the doctor's edits locally and pushes them to the
// backend best-effort. A failed push is logged and otherwise swallowed; the
// local overrides keep this portal consistent regardless.
func (s *Service) UpdateProfile(ctx context.Context, sess *session.Session, p model.DoctorProfile) error {
	if err := s.state.SaveDoctorProfile(ctx, sess.User.Email, p); err != nil {
		return err
	}
	if err := s.backend.UpdateDoctorProfile(ctx, sess.User.Email, p); err != nil {
		s.log.Warn().Err(err).Str("email", sess.User.Email).Msg("profile sync to backend failed")
	}
	return nil
}
