package model

// Doctor is a directory record owned by the backend. The portal may overlay
// local profile edits for the signed-in doctor and hide ids the admin has
// soft-deleted; neither mutation is pushed back to the directory itself.
type Doctor struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Specialization string `json:"specialization"`
	HospitalName   string `json:"hospitalName"`
	Address        string `json:"address"`
	Timings        string `json:"timings"`
	Rating         string `json:"rating"`
	Reviews        int    `json:"reviews"`
	Email          string `json:"email"`
}

// PlaceholderDoctorID marks a self-profile card synthesized from local
// overrides when the backend has no record yet (fresh registration). It is
// never persisted.
const PlaceholderDoctorID int64 = 99999

// DoctorProfile is the locally held override set a doctor edits from the
// dashboard. Zero-value fields fall back to the registry copy.
type DoctorProfile struct {
	Name           string `json:"name"`
	Specialization string `json:"specialization"`
	HospitalName   string `json:"hospitalName"`
	Address        string `json:"address"`
	Timings        string `json:"timings"`
}

// Merge overlays non-empty override fields onto a directory record.
func (p *DoctorProfile) Merge(d Doctor) Doctor {
	if p == nil {
		return d
	}
	if p.Name != "" {
		d.Name = p.Name
	}
	if p.Specialization != "" {
		d.Specialization = p.Specialization
	}
	if p.HospitalName != "" {
		d.HospitalName = p.HospitalName
	}
	if p.Address != "" {
		d.Address = p.Address
	}
	if p.Timings != "" {
		d.Timings = p.Timings
	}
	return d
}

// ProfileForm binds the dashboard edit-profile submission.
type ProfileForm struct {
	Name           string `form:"name" binding:"required"`
	Specialization string `form:"specialization" binding:"required"`
	HospitalName   string `form:"hospital_name" binding:"required"`
	Address        string `form:"address" binding:"required"`
	StartTime      string `form:"start_time" binding:"required"`
	EndTime        string `form:"end_time" binding:"required"`
}
