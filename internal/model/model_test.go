package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormStateExpired(t *testing.T) {
	now := time.Date(2026, time.June, 15, 10, 0, 0, 0, time.UTC)
	ttl := 2 * time.Minute

	fresh := FormState{Phase: FormSubmitting, Since: now.Add(-30 * time.Second)}
	assert.False(t, fresh.Expired(now, ttl))

	stale := FormState{Phase: FormSubmitting, Since: now.Add(-3 * time.Minute)}
	assert.True(t, stale.Expired(now, ttl))

	// A marker persisted without a timestamp never un-expires.
	unstamped := FormState{Phase: FormSubmitting}
	assert.True(t, unstamped.Expired(now, ttl))

	done := FormState{Phase: FormSucceeded, Since: now.Add(-time.Hour)}
	assert.False(t, done.Expired(now, ttl))
}

func TestParseRole(t *testing.T) {
	for _, s := range []string{"individual", "doctor", "admin", "employee"} {
		role, err := ParseRole(s)
		require.NoError(t, err)
		assert.Equal(t, s, role.String())
	}

	role, err := ParseRole("")
	require.NoError(t, err)
	assert.Equal(t, RoleIndividual, role)

	_, err = ParseRole("superuser")
	assert.Error(t, err)
}

func TestRoleStaff(t *testing.T) {
	assert.True(t, RoleAdmin.Staff())
	assert.True(t, RoleEmployee.Staff())
	assert.False(t, RoleDoctor.Staff())
	assert.False(t, RoleIndividual.Staff())
}

func TestDoctorProfileMerge(t *testing.T) {
	base := Doctor{
		ID:             2,
		Name:           "Asha",
		Specialization: "Cardiologist",
		HospitalName:   "City Hospital",
		Timings:        "09:00 AM - 05:00 PM",
	}

	var none *DoctorProfile
	assert.Equal(t, base, none.Merge(base))

	merged := (&DoctorProfile{HospitalName: "Green Leaf Clinic", Address: "12 MG Road"}).Merge(base)
	assert.Equal(t, "Green Leaf Clinic", merged.HospitalName)
	assert.Equal(t, "12 MG Road", merged.Address)
	assert.Equal(t, "Cardiologist", merged.Specialization, "empty override fields keep the registry copy")
	assert.Equal(t, int64(2), merged.ID)
}
