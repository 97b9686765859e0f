package directory

import (
	"context"
	"errors"
)

var ErrDoctorNotFound = errors.New("doctor not found")

// Repository is the read side of the hospital user directory.
type Repository interface {
	// FindDoctor resolves a doctor by exact equality on first name, last
	// name and department, restricted to role Doctor. The first match wins
	// if the directory holds duplicates.
	FindDoctor(ctx context.Context, firstName, lastName, department string) (*Practitioner, error)

	ListDoctors(ctx context.Context) ([]Practitioner, error)
}
