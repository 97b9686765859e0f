package appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/caresync/hospital-api/internal/directory"
	redisclient "github.com/caresync/hospital-api/internal/redis"
)

const dateLayout = "2006-01-02"

var (
	ErrValidation      = errors.New("please fill in all the required fields")
	ErrInvalidSlot     = errors.New("invalid time slot selected")
	ErrSlotConflict    = errors.New("the doctor is unavailable at the selected time")
	ErrSlotBeingBooked = errors.New("the slot is currently being booked, please retry")
)

// DoctorFinder is the slice of the practitioner directory the scheduler
// needs: resolving a booking form's doctor fields to a directory record.
type DoctorFinder interface {
	FindDoctor(ctx context.Context, firstName, lastName, department string) (*directory.Practitioner, error)
}

type Service struct {
	repo     Repository
	doctors  DoctorFinder
	locker   redisclient.Locker
	validate *validator.Validate
	log      zerolog.Logger
}

func NewService(repo Repository, doctors DoctorFinder, locker redisclient.Locker, log zerolog.Logger) *Service {
	return &Service{
		repo:     repo,
		doctors:  doctors,
		locker:   locker,
		validate: validator.New(),
		log:      log.With().Str("component", "appointment").Logger(),
	}
}

// BookAppointment validates a booking form, resolves the doctor, checks the
// doctor's daily grid for conflicts and persists a Pending appointment. The
// conflict check and the insert run under a per (doctor, date, slot) lock so
// two concurrent requests for the same cell cannot both pass the check.
func (s *Service) BookAppointment(ctx context.Context, req BookingRequest, patientID uuid.UUID) (*Appointment, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, firstValidationFailure(err))
	}

	slot, ok := SlotFromString(req.TimeSlot)
	if !ok {
		return nil, ErrInvalidSlot
	}

	date, err := time.Parse(dateLayout, req.AppointmentDate)
	if err != nil {
		return nil, fmt.Errorf("%w: appointment_date must be YYYY-MM-DD", ErrValidation)
	}

	dob, err := time.Parse(dateLayout, req.DOB)
	if err != nil {
		return nil, fmt.Errorf("%w: dob must be YYYY-MM-DD", ErrValidation)
	}

	doctor, err := s.doctors.FindDoctor(ctx, req.DoctorFirstName, req.DoctorLastName, req.Department)
	if err != nil {
		if errors.Is(err, directory.ErrDoctorNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("resolve doctor: %w", err)
	}

	var created *Appointment

	err = s.locker.WithBookingLock(ctx, doctor.ID, req.AppointmentDate, slot.String(), func(lockCtx context.Context) error {
		candidates := conflictCandidates(date, slot)
		keys := make([]string, len(candidates))
		for i, c := range candidates {
			keys[i] = c.String()
		}

		existing, err := s.repo.FindByDoctorDateSlots(lockCtx, doctor.ID, date, keys)
		if err != nil {
			return fmt.Errorf("check conflicts: %w", err)
		}
		if len(existing) > 0 {
			return ErrSlotConflict
		}

		appt := &Appointment{
			FirstName:       req.FirstName,
			LastName:        req.LastName,
			Email:           req.Email,
			Phone:           req.Phone,
			DOB:             dob,
			Gender:          req.Gender,
			AppointmentDate: date,
			TimeSlot:        slot.String(),
			Department:      req.Department,
			Doctor: DoctorSnapshot{
				FirstName: doctor.FirstName,
				LastName:  doctor.LastName,
			},
			HasVisited: req.HasVisited,
			Address:    req.Address,
			DoctorID:   doctor.ID,
			PatientID:  patientID,
			Status:     StatusPending,
		}

		created, err = s.repo.Create(lockCtx, appt)
		if err != nil {
			return fmt.Errorf("create appointment: %w", err)
		}
		return nil
	})

	if err != nil {
		if errors.Is(err, redisclient.ErrLockNotAcquired) {
			return nil, ErrSlotBeingBooked
		}
		return nil, err
	}

	s.log.Info().
		Str("appointment_id", created.ID.String()).
		Str("doctor_id", doctor.ID.String()).
		Str("date", req.AppointmentDate).
		Str("slot", slot.String()).
		Msg("appointment booked")

	return created, nil
}

// UpdateAppointment applies an unrestricted field patch. Any status may move
// to any other; there is no transition graph.
func (s *Service) UpdateAppointment(ctx context.Context, id uuid.UUID, patch UpdatePatch) (*Appointment, error) {
	appt, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.FirstName != nil {
		appt.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		appt.LastName = *patch.LastName
	}
	if patch.Email != nil {
		appt.Email = *patch.Email
	}
	if patch.Phone != nil {
		appt.Phone = *patch.Phone
	}
	if patch.Gender != nil {
		appt.Gender = *patch.Gender
	}
	if patch.AppointmentDate != nil {
		date, err := time.Parse(dateLayout, *patch.AppointmentDate)
		if err != nil {
			return nil, fmt.Errorf("%w: appointment_date must be YYYY-MM-DD", ErrValidation)
		}
		appt.AppointmentDate = date
	}
	if patch.TimeSlot != nil {
		slot, ok := SlotFromString(*patch.TimeSlot)
		if !ok {
			return nil, ErrInvalidSlot
		}
		appt.TimeSlot = slot.String()
	}
	if patch.Department != nil {
		appt.Department = *patch.Department
	}
	if patch.HasVisited != nil {
		appt.HasVisited = *patch.HasVisited
	}
	if patch.Address != nil {
		appt.Address = *patch.Address
	}
	if patch.Status != nil {
		if !validStatus(*patch.Status) {
			return nil, fmt.Errorf("%w: status must be Pending, Accepted or Rejected", ErrValidation)
		}
		appt.Status = *patch.Status
	}

	updated, err := s.repo.Update(ctx, appt)
	if err != nil {
		return nil, fmt.Errorf("update appointment: %w", err)
	}

	s.log.Info().
		Str("appointment_id", id.String()).
		Str("status", string(updated.Status)).
		Msg("appointment updated")

	return updated, nil
}

// ListForPatient returns every appointment owned by the patient. An empty
// result is a valid outcome, not an error.
func (s *Service) ListForPatient(ctx context.Context, patientID uuid.UUID) ([]Appointment, error) {
	appts, err := s.repo.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("list appointments by patient: %w", err)
	}
	return appts, nil
}

// ListAll returns every appointment in the store.
func (s *Service) ListAll(ctx context.Context) ([]Appointment, error) {
	appts, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	return appts, nil
}

// DeleteAppointment removes an appointment permanently.
func (s *Service) DeleteAppointment(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info().Str("appointment_id", id.String()).Msg("appointment deleted")
	return nil
}

// firstValidationFailure flattens a validator error into the name of the
// first offending field for the user-facing message.
func firstValidationFailure(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return fmt.Sprintf("field %s failed on %s", verrs[0].Field(), verrs[0].Tag())
	}
	return err.Error()
}
