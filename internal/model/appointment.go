package model

// ActiveAppointment is the single upcoming booking the dashboard shows for a
// non-staff user. The time field arrives either as "h:mm AM/PM" or as
// "<date phrase> at h:mm AM/PM"; the dashboard service splits the latter.
type ActiveAppointment struct {
	Doctor  string `json:"doctor"`
	Disease string `json:"disease"`
	Date    string `json:"date"`
	Time    string `json:"time"`
}

// PastAppointment is a completed visit shown under "My Records".
type PastAppointment struct {
	DoctorName string `json:"doctorName"`
	Disease    string `json:"disease"`
	Date       string `json:"date"`
}

// QueueAppointment is an entry in a doctor's active queue. Status updates
// ("Success" / "Missed") are pushed straight to the backend.
type QueueAppointment struct {
	ID          int64  `json:"id"`
	PatientName string `json:"patient_name"`
	Disease     string `json:"disease"`
	Date        string `json:"date"`
	Time        string `json:"time"`
}

// AdminAppointment is a row in the staff-wide appointment listing.
type AdminAppointment struct {
	ID          int64  `json:"id"`
	PatientName string `json:"patient_name"`
	DoctorName  string `json:"doctor_name"`
	Date        string `json:"date"`
	Status      string `json:"status"`
}

// BookingForm binds the appointment page submission. Age never arrives from
// the form; it is recomputed from the date of birth on the server.
type BookingForm struct {
	FullName   string `form:"full_name" binding:"required"`
	DOB        string `form:"dob" binding:"required"`
	DoctorName string `form:"doctor_name" binding:"required"`
	Date       string `form:"date" binding:"required"`
	Time       string `form:"time" binding:"required,clocklabel"`
	Disease    string `form:"disease" binding:"required"`
	Phone      string `form:"phone" binding:"required"`
}

// BookingRequest is the payload sent to POST /api/book-appointment.
type BookingRequest struct {
	PatientName  string `json:"patientName"`
	UserEmail    string `json:"userEmail"`
	DOB          string `json:"dob"`
	Age          string `json:"age"`
	DoctorName   string `json:"doctorName"`
	HospitalName string `json:"hospitalName"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	Disease      string `json:"disease"`
	Phone        string `json:"phone"`
}

// Receipt is the confirmation view rendered after a successful booking.
type Receipt struct {
	BookingID    string
	PatientName  string
	DOB          string
	Age          string
	DoctorName   string
	HospitalName string
	Date         string
	Time         string
	Disease      string
	Phone        string
}
