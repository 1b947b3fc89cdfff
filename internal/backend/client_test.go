package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayursync/web/internal/config"
	"github.com/ayursync/web/internal/model"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(config.BackendConfig{BaseURL: srv.URL, Timeout: 5 * time.Second}, zerolog.Nop())
}

func TestLogin(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/login", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "ravi@example.com", body["email"])

		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"user":    map[string]string{"name": "Ravi", "role": "individual", "email": "ravi@example.com"},
		})
	}))

	user, err := client.Login(context.Background(), "ravi@example.com", "secret1!")
	require.NoError(t, err)
	assert.Equal(t, "Ravi", user.Name)
	assert.Equal(t, model.RoleIndividual, user.Role)
}

func TestLoginRejection(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"success": false,
			"message": "Invalid credentials",
		})
	}))

	_, err := client.Login(context.Background(), "ravi@example.com", "wrong")
	require.Error(t, err)

	apiErr, ok := IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, "Invalid credentials", apiErr.Message)
	assert.Equal(t, "Invalid credentials", apiErr.UserMessage())
}

func TestLoginTransportError(t *testing.T) {
	client := New(config.BackendConfig{BaseURL: "http://127.0.0.1:1", Timeout: time.Second}, zerolog.Nop())

	_, err := client.Login(context.Background(), "ravi@example.com", "secret1!")
	require.Error(t, err)
	_, ok := IsAPIError(err)
	assert.False(t, ok, "transport failures are not business rejections")
}

func TestDashboardStats(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/dashboard-stats", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "doctor", body["role"])

		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"stats": map[string]any{
				"total_app_count": 7,
				"efficacy_stats":  map[string]int{"success": 3, "missed": 1},
			},
		})
	}))

	stats, err := client.DashboardStats(context.Background(), model.RoleDoctor, "asha@example.com")
	require.NoError(t, err)
	assert.Equal(t, 7, stats.TotalAppCount)
	require.NotNil(t, stats.EfficacyStats)
	assert.Equal(t, 3, stats.EfficacyStats.Success)
}

func TestDoctorsBareArray(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/api/doctors", r.URL.Path)

		json.NewEncoder(w).Encode([]map[string]any{
			{"id": 1, "name": "Mehta", "specialization": "Cardiologist", "hospitalName": "City Hospital"},
		})
	}))

	doctors, err := client.Doctors(context.Background())
	require.NoError(t, err)
	require.Len(t, doctors, 1)
	assert.Equal(t, "Mehta", doctors[0].Name)
	assert.Equal(t, "City Hospital", doctors[0].HospitalName)
}

func TestBookAppointment(t *testing.T) {
	var got model.BookingRequest
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/book-appointment", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(map[string]any{"success": true})
	}))

	err := client.BookAppointment(context.Background(), model.BookingRequest{
		PatientName: "Ravi Kumar",
		DoctorName:  "Mehta",
		Phone:       "+91 9876543210",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ravi Kumar", got.PatientName)
	assert.Equal(t, "+91 9876543210", got.Phone)
}

func TestSearchDisease(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data": map[string]any{
				"name":        "Diabetes",
				"codes":       map[string]string{"icd11": "5A11", "namaste": "AYU-042"},
				"description": "A chronic metabolic disorder.",
			},
		})
	}))

	result, err := client.SearchDisease(context.Background(), "diabetes")
	require.NoError(t, err)
	assert.Equal(t, "Diabetes", result.Name)
	assert.Equal(t, "5A11", result.Codes.ICD11)
	assert.Equal(t, "AYU-042", result.Codes.Namaste)
}
