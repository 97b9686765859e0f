package api

import (
	"github.com/caresync/hospital-api/internal/appointment"
	"github.com/caresync/hospital-api/internal/directory"
	"github.com/caresync/hospital-api/internal/message"
)

// Every response carries the same envelope: success flag, optional human
// readable message, and the payload under a resource-named key.

type AppointmentResponse struct {
	Success     bool                     `json:"success"`
	Message     string                   `json:"message,omitempty"`
	Appointment *appointment.Appointment `json:"appointment,omitempty"`
}

type AppointmentListResponse struct {
	Success      bool                      `json:"success"`
	Message      string                    `json:"message,omitempty"`
	Appointments []appointment.Appointment `json:"appointments"`
}

type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

type MessageListResponse struct {
	Success  bool              `json:"success"`
	Messages []message.Message `json:"messages"`
}

type DoctorListResponse struct {
	Success bool                     `json:"success"`
	Doctors []directory.Practitioner `json:"doctors"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
