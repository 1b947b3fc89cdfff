// Package account orchestrates registration, login, and logout against the
// backend auth endpoints, plus the local session bookkeeping around them.
package account

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/rs/zerolog"

	"github.com/ayursync/web/internal/backend"
	"github.com/ayursync/web/internal/model"
	"github.com/ayursync/web/internal/repository"
	apperrors "github.com/ayursync/web/pkg/errors"
)

const passwordSpecials = "!@#$%^&*"

type Backend interface {
	Register(ctx context.Context, req backend.RegisterRequest) error
	Login(ctx context.Context, email, password string) (*model.User, error)
}

type Service struct {
	backend Backend
	state   repository.StateRepository
	log     zerolog.Logger
}

func NewService(b Backend, state repository.StateRepository, log zerolog.Logger) *Service {
	return &Service{
		backend: b,
		state:   state,
		log:     log.With().Str("component", "account").Logger(),
	}
}

// ValidatePassword enforces the registration policy: at least eight
// characters drawn from letters, digits and !@#$%^&*, with at least one
// digit and one special character.
func ValidatePassword(password string) error {
	policy := apperrors.BadRequest("Password must be at least 8 characters, include a number and a special character (!@#$%^&*)", nil)
	if len(password) < 8 {
		return policy
	}
	var hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsDigit(r):
			hasDigit = true
		case strings.ContainsRune(passwordSpecials, r):
			hasSpecial = true
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		default:
			return policy
		}
	}
	if !hasDigit || !hasSpecial {
		return policy
	}
	return nil
}

// Register validates the form and creates the account with the backend.
// Doctors carry the clinic block and a combined timings range; every
// non-individual role must supply a hospital id.
func (s *Service) Register(ctx context.Context, form model.RegisterForm) error {
	role, err := model.ParseRole(form.Role)
	if err != nil {
		return err
	}
	if err := ValidatePassword(form.Password); err != nil {
		return err
	}
	if form.Password != form.ConfirmPassword {
		return apperrors.BadRequest("Passwords don't match!", nil)
	}
	if role != model.RoleIndividual && form.HospitalID == "" {
		return apperrors.BadRequest(fmt.Sprintf("Hospital ID is required for %s accounts", role), nil)
	}

	req := backend.RegisterRequest{
		Name:       form.Name,
		Email:      form.Email,
		Password:   form.Password,
		Role:       role.String(),
		HospitalID: form.HospitalID,
	}
	if role == model.RoleDoctor {
		if form.Specialization == "" || form.HospitalName == "" || form.Address == "" {
			return apperrors.BadRequest("Clinic details are required for doctor accounts", nil)
		}
		req.Specialization = form.Specialization
		req.HospitalName = form.HospitalName
		req.Address = form.Address
		req.Timings = fmt.Sprintf("%s - %s", form.StartTime, form.EndTime)
	}

	if err := s.backend.Register(ctx, req); err != nil {
		return err
	}
	s.log.Info().Str("email", form.Email).Str("role", role.String()).Msg("account registered")
	return nil
}

// Login authenticates with the backend and resolves the welcome type:
// "back" for an account that has signed in here before, "first" otherwise.
func (s *Service) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	user, err := s.backend.Login(ctx, email, password)
	if err != nil {
		return nil, "", err
	}

	welcomeType := "first"
	visited, err := s.state.Visited(ctx, user.Email)
	if err != nil {
		s.log.Warn().Err(err).Msg("failed to read visited marker")
	} else if visited {
		welcomeType = "back"
	}
	if !visited {
		if err := s.state.MarkVisited(ctx, user.Email); err != nil {
			s.log.Warn().Err(err).Msg("failed to record visited marker")
		}
	}

	return user, welcomeType, nil
}

// Logout wipes the user's portal-local state. The caller clears the session
// itself; after both, a protected-route visit lands back on the landing page.
func (s *Service) Logout(ctx context.Context, email string) error {
	if email == "" {
		return nil
	}
	return s.state.Clear(ctx, email)
}
