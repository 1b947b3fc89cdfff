// Package backend is the HTTP JSON client for the external healthcare API.
// All business logic lives on the other side of these calls; the client adds
// no retry, caching or circuit breaking, only a fixed timeout.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/ayursync/web/internal/config"
	"github.com/ayursync/web/internal/model"
)

// APIError is a business-rule rejection reported by the backend with
// success=false. Transport and decode failures are returned as plain errors.
type APIError struct {
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return "request rejected by backend"
	}
	return e.Message
}

// UserMessage marks backend rejections as safe to render verbatim.
func (e *APIError) UserMessage() string {
	return e.Error()
}

// IsAPIError reports whether err carries a backend-supplied message.
func IsAPIError(err error) (*APIError, bool) {
	apiErr, ok := err.(*APIError)
	return apiErr, ok
}

type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

func New(cfg config.BackendConfig, log zerolog.Logger) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		http:    &http.Client{Timeout: cfg.Timeout},
		log:     log.With().Str("component", "backend").Logger(),
	}
}

// envelope is the common response wrapper for the POST endpoints.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	User    json.RawMessage `json:"user"`
	Stats   json.RawMessage `json:"stats"`
	Data    json.RawMessage `json:"data"`
}

func (c *Client) post(ctx context.Context, path string, payload any) (*envelope, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("backend request failed: %w", err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("failed to decode backend response (%s): %w", resp.Status, err)
	}
	if !env.Success {
		c.log.Warn().Str("path", path).Str("message", env.Message).Msg("backend rejected request")
		return nil, &APIError{Message: env.Message}
	}
	return &env, nil
}

// RegisterRequest is the payload of POST /api/register. Doctor registrations
// carry the clinic block; other roles leave it empty.
type RegisterRequest struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	Role           string `json:"role"`
	HospitalID     string `json:"hospitalId,omitempty"`
	Specialization string `json:"specialization,omitempty"`
	HospitalName   string `json:"hospitalName,omitempty"`
	Address        string `json:"address,omitempty"`
	Timings        string `json:"timings,omitempty"`
}

func (c *Client) Register(ctx context.Context, req RegisterRequest) error {
	_, err := c.post(ctx, "/api/register", req)
	return err
}

func (c *Client) Login(ctx context.Context, email, password string) (*model.User, error) {
	env, err := c.post(ctx, "/api/login", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, err
	}

	var raw struct {
		Name  string `json:"name"`
		Role  string `json:"role"`
		Email string `json:"email"`
	}
	if err := json.Unmarshal(env.User, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode user: %w", err)
	}
	role, err := model.ParseRole(raw.Role)
	if err != nil {
		return nil, err
	}
	return &model.User{Name: raw.Name, Role: role, Email: raw.Email}, nil
}

func (c *Client) DashboardStats(ctx context.Context, role model.Role, email string) (*model.StatsPayload, error) {
	env, err := c.post(ctx, "/api/dashboard-stats", map[string]string{
		"role":  role.String(),
		"email": email,
	})
	if err != nil {
		return nil, err
	}

	var stats model.StatsPayload
	if err := json.Unmarshal(env.Stats, &stats); err != nil {
		return nil, fmt.Errorf("failed to decode stats: %w", err)
	}
	return &stats, nil
}

func (c *Client) UpdateAppointmentStatus(ctx context.Context, id int64, status string) error {
	_, err := c.post(ctx, "/api/update-appointment-status", map[string]any{
		"id":     id,
		"status": status,
	})
	return err
}

// UpdateDoctorProfile pushes locally edited profile fields. Callers treat
// failure as best-effort sync; the local overrides remain authoritative for
// this portal either way.
func (c *Client) UpdateDoctorProfile(ctx context.Context, email string, profile model.DoctorProfile) error {
	_, err := c.post(ctx, "/api/update-doctor-profile", map[string]string{
		"email":          email,
		"name":           profile.Name,
		"specialization": profile.Specialization,
		"hospitalName":   profile.HospitalName,
		"address":        profile.Address,
		"timings":        profile.Timings,
	})
	return err
}

// Doctors fetches the directory. Unlike the POST endpoints this returns a
// bare array with no envelope.
func (c *Client) Doctors(ctx context.Context) ([]model.Doctor, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/doctors", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("backend request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("backend error %s: %s", resp.Status, string(b))
	}

	var doctors []model.Doctor
	if err := json.NewDecoder(resp.Body).Decode(&doctors); err != nil {
		return nil, fmt.Errorf("failed to decode doctors: %w", err)
	}
	return doctors, nil
}

func (c *Client) BookAppointment(ctx context.Context, booking model.BookingRequest) error {
	_, err := c.post(ctx, "/api/book-appointment", booking)
	return err
}

func (c *Client) SearchDisease(ctx context.Context, query string) (*model.DiseaseResult, error) {
	env, err := c.post(ctx, "/api/search-disease", map[string]string{"query": query})
	if err != nil {
		return nil, err
	}

	var result model.DiseaseResult
	if err := json.Unmarshal(env.Data, &result); err != nil {
		return nil, fmt.Errorf("failed to decode disease result: %w", err)
	}
	return &result, nil
}

func (c *Client) AnalyzeSymptoms(ctx context.Context, symptoms string) (*model.SymptomReport, error) {
	env, err := c.post(ctx, "/api/analyze-symptoms", map[string]string{"symptoms": symptoms})
	if err != nil {
		return nil, err
	}

	var report model.SymptomReport
	if err := json.Unmarshal(env.Data, &report); err != nil {
		return nil, fmt.Errorf("failed to decode symptom report: %w", err)
	}
	return &report, nil
}
