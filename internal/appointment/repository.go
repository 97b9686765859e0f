package appointment

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrAppointmentNotFound = errors.New("appointment not found")

// Repository contains all DB interactions needed by the service.
type Repository interface {
	Create(ctx context.Context, appt *Appointment) (*Appointment, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error)

	// FindByDoctorDateSlots is the conflict-check query: appointments for
	// the given doctor on the given calendar day whose slot is one of the
	// supplied slot keys.
	FindByDoctorDateSlots(ctx context.Context, doctorID uuid.UUID, date time.Time, slots []string) ([]Appointment, error)

	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]Appointment, error)
	ListAll(ctx context.Context) ([]Appointment, error)

	Update(ctx context.Context, appt *Appointment) (*Appointment, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
