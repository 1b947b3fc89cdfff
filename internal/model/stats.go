package model

// SystemHealth is the staff dashboard's backend status card.
type SystemHealth struct {
	Status   string `json:"status"`
	Uptime   string `json:"uptime"`
	Database string `json:"database"`
}

// EfficacyStats counts a doctor's closed appointments by outcome.
type EfficacyStats struct {
	Success int `json:"success"`
	Missed  int `json:"missed"`
}

// StatsPayload is the wholesale per-role bundle returned by
// POST /api/dashboard-stats. Every field is optional; the dashboard service
// is responsible for defaulting each one before anything renders.
type StatsPayload struct {
	ActiveDoctorsList []Doctor           `json:"active_doctors_list"`
	ActiveAppointment *ActiveAppointment `json:"active_appointment"`
	PastAppointments  []PastAppointment  `json:"past_appointments"`
	TotalAppCount     int                `json:"total_app_count"`
	AllAppointments   []AdminAppointment `json:"all_appointments"`
	PatientRecords    []PatientRecord    `json:"patient_records"`
	SystemHealth      *SystemHealth      `json:"system_health"`
	DoctorActiveAppts []QueueAppointment `json:"doctor_active_appts"`
	EfficacyStats     *EfficacyStats     `json:"efficacy_stats"`
}

// PatientRecord is a row in the doctor/staff patient listing.
type PatientRecord struct {
	Patient string `json:"patient"`
	Disease string `json:"disease"`
	Date    string `json:"date"`
}

// ActivityEntry records a navigation into a tool page. The history is a ring
// capped at ten entries, newest first.
type ActivityEntry struct {
	Module string `json:"module"`
	Date   string `json:"date"`
	Time   string `json:"time"`
}

const ActivityHistoryCap = 10
