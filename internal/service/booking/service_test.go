package booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayursync/web/internal/config"
	"github.com/ayursync/web/internal/model"
	"github.com/ayursync/web/internal/session"
)

type fakeBackend struct {
	doctors []model.Doctor
	mu      sync.Mutex
	booked  []model.BookingRequest
	err     error
}

func (f *fakeBackend) Doctors(ctx context.Context) ([]model.Doctor, error) {
	return f.doctors, nil
}

func (f *fakeBackend) BookAppointment(ctx context.Context, b model.BookingRequest) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	f.booked = append(f.booked, b)
	f.mu.Unlock()
	return nil
}

func TestApplyPhoneInput(t *testing.T) {
	tests := []struct {
		name string
		prev string
		next string
		want string
	}{
		{"digits accepted", "98765", "987654", "987654"},
		{"letters rejected keep previous", "98765", "98765a", "98765"},
		{"spaces rejected", "98765", "98765 ", "98765"},
		{"truncated past ten", "", "98765432109", "9876543210"},
		{"cleared", "98765", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ApplyPhoneInput(tt.prev, tt.next))
		})
	}
}

func TestValidatePhone(t *testing.T) {
	assert.NoError(t, ValidatePhone("9876543210"))
	assert.Error(t, ValidatePhone("987654321"))
	assert.Error(t, ValidatePhone("98765432101"))
	assert.Error(t, ValidatePhone("98765abcde"))
	assert.Error(t, ValidatePhone(""))
}

func validForm() model.BookingForm {
	return model.BookingForm{
		FullName:   "Ravi Kumar",
		DOB:        "1996-03-01",
		DoctorName: "Mehta",
		Date:       "2026-06-20",
		Time:       "10:00 AM",
		Disease:    "Diabetes",
		Phone:      "9876543210",
	}
}

func newTestService(backend Backend) *Service {
	svc := NewService(backend, config.SMTPConfig{}, zerolog.Nop())
	svc.now = func() time.Time {
		return time.Date(2026, time.June, 15, 10, 0, 0, 0, time.UTC)
	}
	return svc
}

func TestSubmit(t *testing.T) {
	backend := &fakeBackend{doctors: []model.Doctor{
		{ID: 1, Name: "Mehta", HospitalName: "City Hospital"},
	}}
	svc := newTestService(backend)
	sess := &session.Session{User: model.User{Name: "Ravi", Email: "ravi@example.com"}}

	receipt, err := svc.Submit(context.Background(), sess, validForm())
	require.NoError(t, err)
	require.Len(t, backend.booked, 1)

	sent := backend.booked[0]
	assert.Equal(t, "ravi@example.com", sent.UserEmail)
	assert.Equal(t, "30", sent.Age)
	assert.Equal(t, "City Hospital", sent.HospitalName)
	assert.Equal(t, "+91 9876543210", sent.Phone)

	require.NotNil(t, receipt)
	assert.Len(t, receipt.BookingID, 6)
	assert.Equal(t, sent.Phone, receipt.Phone)
	assert.Equal(t, sent.HospitalName, receipt.HospitalName)
}

func TestSubmitConcurrent(t *testing.T) {
	backend := &fakeBackend{doctors: []model.Doctor{
		{ID: 1, Name: "Mehta", HospitalName: "City Hospital"},
	}}
	svc := newTestService(backend)

	// Exercised with -race: booking IDs draw random digits from concurrent
	// request goroutines.
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sess := &session.Session{User: model.User{Name: "Ravi", Email: "ravi@example.com"}}
			for j := 0; j < 20; j++ {
				receipt, err := svc.Submit(context.Background(), sess, validForm())
				assert.NoError(t, err)
				if assert.NotNil(t, receipt) {
					assert.Len(t, receipt.BookingID, 6)
				}
			}
		}()
	}
	wg.Wait()
	assert.Len(t, backend.booked, 160)
}

func TestSubmitRejectsBadPhone(t *testing.T) {
	backend := &fakeBackend{doctors: []model.Doctor{{Name: "Mehta"}}}
	svc := newTestService(backend)
	sess := &session.Session{User: model.User{Email: "ravi@example.com"}}

	form := validForm()
	form.Phone = "12345"
	_, err := svc.Submit(context.Background(), sess, form)
	assert.Error(t, err)
	assert.Empty(t, backend.booked)
}

func TestSubmitRejectsUnknownDoctor(t *testing.T) {
	backend := &fakeBackend{doctors: []model.Doctor{{Name: "Mehta"}}}
	svc := newTestService(backend)
	sess := &session.Session{User: model.User{Email: "ravi@example.com"}}

	form := validForm()
	form.DoctorName = "Nobody"
	_, err := svc.Submit(context.Background(), sess, form)
	assert.Error(t, err)
	assert.Empty(t, backend.booked)
}
