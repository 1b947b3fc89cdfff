package model

import "fmt"

// Role is the closed set of account roles the portal understands. Keeping it a
// typed constant set instead of loose strings lets the dashboard dispatch
// exhaustively and fail loudly on anything unrecognized.
type Role string

const (
	RoleIndividual Role = "individual"
	RoleDoctor     Role = "doctor"
	RoleAdmin      Role = "admin"
	RoleEmployee   Role = "employee"
)

// ParseRole normalizes a backend-provided role string into a Role. An empty
// string maps to the individual role, matching the backend's default.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleIndividual, RoleDoctor, RoleAdmin, RoleEmployee:
		return Role(s), nil
	case "":
		return RoleIndividual, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// Staff reports whether the role sees the admin/employee dashboard panels.
func (r Role) Staff() bool {
	return r == RoleAdmin || r == RoleEmployee
}

func (r Role) String() string { return string(r) }

// User is the identity returned by the backend login call and carried in the
// server-side session for the rest of the browsing session.
type User struct {
	Name  string `json:"name"`
	Role  Role   `json:"role"`
	Email string `json:"email"`
}

// LoginForm binds the login page submission.
type LoginForm struct {
	Email    string `form:"email" binding:"required,email"`
	Password string `form:"password" binding:"required"`
}

// RegisterForm binds the registration submission. Role-specific fields are
// optional at the binding layer; the account service enforces which ones a
// given role actually requires.
type RegisterForm struct {
	Name            string `form:"name" binding:"required"`
	Email           string `form:"email" binding:"required,email"`
	Password        string `form:"password" binding:"required"`
	ConfirmPassword string `form:"confirm_password" binding:"required"`
	Role            string `form:"role" binding:"required"`
	HospitalID      string `form:"hospital_id"`
	Specialization  string `form:"specialization"`
	HospitalName    string `form:"hospital_name"`
	Address         string `form:"address"`
	StartTime       string `form:"start_time"`
	EndTime         string `form:"end_time"`
}
