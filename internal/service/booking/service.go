// Package booking handles the appointment form: input shaping, validation,
// submission to the backend, and the confirmation receipt.
package booking

import (
	"context"
	"fmt"
	"math/rand"
	"regexp"
	"time"

	"github.com/rs/zerolog"
	gomail "gopkg.in/gomail.v2"

	"github.com/ayursync/web/internal/config"
	"github.com/ayursync/web/internal/model"
	"github.com/ayursync/web/internal/service/directory"
	"github.com/ayursync/web/internal/service/schedule"
	"github.com/ayursync/web/internal/session"
	apperrors "github.com/ayursync/web/pkg/errors"
)

// PhonePrefix is displayed and transmitted ahead of the ten local digits.
const PhonePrefix = "+91"

var digitsOnly = regexp.MustCompile(`^\d*$`)

type Backend interface {
	Doctors(ctx context.Context) ([]model.Doctor, error)
	BookAppointment(ctx context.Context, booking model.BookingRequest) error
}

type Service struct {
	backend Backend
	smtp    config.SMTPConfig
	log     zerolog.Logger
	now     func() time.Time
}

func NewService(backend Backend, smtp config.SMTPConfig, log zerolog.Logger) *Service {
	return &Service{
		backend: backend,
		smtp:    smtp,
		log:     log.With().Str("component", "booking").Logger(),
		now:     time.Now,
	}
}

// ApplyPhoneInput mimics the form's restricted phone field: a candidate
// value containing anything but digits is rejected (previous value kept) and
// anything past ten digits is truncated.
func ApplyPhoneInput(prev, next string) string {
	if !digitsOnly.MatchString(next) {
		return prev
	}
	if len(next) > 10 {
		return next[:10]
	}
	return next
}

// ValidatePhone enforces exactly ten digits before submission.
func ValidatePhone(phone string) error {
	if len(phone) != 10 || !digitsOnly.MatchString(phone) {
		return apperrors.BadRequest("Please enter a valid 10-digit phone number", nil)
	}
	return nil
}

// Doctors lists the registry for the booking form's selector.
func (s *Service) Doctors(ctx context.Context) ([]model.Doctor, error) {
	return s.backend.Doctors(ctx)
}

// Submit validates the draft, books it with the backend, and returns the
// receipt. The caller is responsible for the double-submit guard; Submit
// itself is stateless.
func (s *Service) Submit(ctx context.Context, sess *session.Session, form model.BookingForm) (*model.Receipt, error) {
	phone := ApplyPhoneInput("", form.Phone)
	if err := ValidatePhone(phone); err != nil {
		return nil, err
	}

	age, err := schedule.Age(form.DOB, s.now())
	if err != nil {
		return nil, apperrors.BadRequest("Please enter a valid date of birth", err)
	}

	docs, err := s.backend.Doctors(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load doctors: %w", err)
	}
	doc, ok := directory.Find(docs, form.DoctorName)
	if !ok {
		return nil, apperrors.BadRequest("Please pick a doctor from the list", nil)
	}

	req := model.BookingRequest{
		PatientName:  form.FullName,
		UserEmail:    sess.User.Email,
		DOB:          form.DOB,
		Age:          age,
		DoctorName:   form.DoctorName,
		HospitalName: doc.HospitalName,
		Date:         form.Date,
		Time:         form.Time,
		Disease:      form.Disease,
		Phone:        fmt.Sprintf("%s %s", PhonePrefix, phone),
	}
	if err := s.backend.BookAppointment(ctx, req); err != nil {
		return nil, err
	}

	receipt := &model.Receipt{
		BookingID:    fmt.Sprintf("%06d", rand.Intn(1000000)),
		PatientName:  req.PatientName,
		DOB:          req.DOB,
		Age:          req.Age,
		DoctorName:   req.DoctorName,
		HospitalName: req.HospitalName,
		Date:         req.Date,
		Time:         req.Time,
		Disease:      req.Disease,
		Phone:        req.Phone,
	}

	s.sendReceiptMail(sess.User.Email, receipt)
	return receipt, nil
}

// sendReceiptMail emails the confirmation when SMTP is configured. Delivery
// problems are logged only; the booking already succeeded.
func (s *Service) sendReceiptMail(to string, r *model.Receipt) {
	if s.smtp.Host == "" || to == "" {
		return
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.smtp.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("Appointment confirmed - booking #%s", r.BookingID))
	m.SetBody("text/plain", fmt.Sprintf(
		"Your appointment with Dr. %s at %s is confirmed for %s at %s.\n"+
			"Reason: %s\nBooking ID: #%s\n\nPlease arrive 15 minutes before your scheduled time.",
		r.DoctorName, r.HospitalName, r.Date, r.Time, r.Disease, r.BookingID,
	))

	d := gomail.NewDialer(s.smtp.Host, s.smtp.Port, s.smtp.Username, s.smtp.Password)
	if err := d.DialAndSend(m); err != nil {
		s.log.Warn().Err(err).Str("to", to).Msg("failed to send receipt email")
	}
}
