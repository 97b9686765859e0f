package appointment

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending  Status = "Pending"
	StatusAccepted Status = "Accepted"
	StatusRejected Status = "Rejected"
)

func validStatus(s Status) bool {
	switch s {
	case StatusPending, StatusAccepted, StatusRejected:
		return true
	}
	return false
}

// DoctorSnapshot is the doctor's name as it was at booking time. It is
// copied from the directory record and never refreshed, so the appointment
// keeps showing the name the patient booked under even if the doctor's
// profile is edited later.
type DoctorSnapshot struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type Appointment struct {
	ID              uuid.UUID      `json:"id"`
	FirstName       string         `json:"firstName"`
	LastName        string         `json:"lastName"`
	Email           string         `json:"email"`
	Phone           string         `json:"phone"`
	DOB             time.Time      `json:"dob"`
	Gender          string         `json:"gender"`
	AppointmentDate time.Time      `json:"appointment_date"`
	TimeSlot        string         `json:"timeSlot"`
	Department      string         `json:"department"`
	Doctor          DoctorSnapshot `json:"doctor"`
	HasVisited      bool           `json:"hasVisited"`
	Address         string         `json:"address"`
	DoctorID        uuid.UUID      `json:"doctorId"`
	PatientID       uuid.UUID      `json:"patientId"`
	Status          Status         `json:"status"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
}

// BookingRequest carries the patient-supplied booking form. Every field is
// mandatory except HasVisited.
type BookingRequest struct {
	FirstName       string `json:"firstName" validate:"required,min=3"`
	LastName        string `json:"lastName" validate:"required,min=3"`
	Email           string `json:"email" validate:"required,email"`
	Phone           string `json:"phone" validate:"required,len=11"`
	DOB             string `json:"dob" validate:"required"`
	Gender          string `json:"gender" validate:"required,oneof=Male Female"`
	AppointmentDate string `json:"appointment_date" validate:"required"`
	TimeSlot        string `json:"timeSlot" validate:"required"`
	Department      string `json:"department" validate:"required"`
	DoctorFirstName string `json:"doctor_firstName" validate:"required"`
	DoctorLastName  string `json:"doctor_lastName" validate:"required"`
	HasVisited      bool   `json:"hasVisited"`
	Address         string `json:"address" validate:"required"`
}

// UpdatePatch is an unrestricted partial update of an appointment. Nil
// fields are left untouched. Status and TimeSlot values are re-validated
// against their enums before the patch is applied.
type UpdatePatch struct {
	FirstName       *string `json:"firstName"`
	LastName        *string `json:"lastName"`
	Email           *string `json:"email"`
	Phone           *string `json:"phone"`
	Gender          *string `json:"gender"`
	AppointmentDate *string `json:"appointment_date"`
	TimeSlot        *string `json:"timeSlot"`
	Department      *string `json:"department"`
	HasVisited      *bool   `json:"hasVisited"`
	Address         *string `json:"address"`
	Status          *Status `json:"status"`
}
