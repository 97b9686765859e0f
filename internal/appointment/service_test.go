package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caresync/hospital-api/internal/directory"
	redisclient "github.com/caresync/hospital-api/internal/redis"
)

// -- Mocks --

type mockRepo struct {
	items   map[uuid.UUID]*Appointment
	creates int
	updates int
}

func newMockRepo() *mockRepo {
	return &mockRepo{items: make(map[uuid.UUID]*Appointment)}
}

func (m *mockRepo) Create(_ context.Context, appt *Appointment) (*Appointment, error) {
	m.creates++
	a := *appt
	a.ID = uuid.New()
	a.CreatedAt = time.Now()
	a.UpdatedAt = a.CreatedAt
	m.items[a.ID] = &a
	return &a, nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Appointment, error) {
	a, ok := m.items[id]
	if !ok {
		return nil, ErrAppointmentNotFound
	}
	cp := *a
	return &cp, nil
}

func (m *mockRepo) FindByDoctorDateSlots(_ context.Context, doctorID uuid.UUID, date time.Time, slots []string) ([]Appointment, error) {
	var result []Appointment
	for _, a := range m.items {
		if a.DoctorID != doctorID || !a.AppointmentDate.Equal(date) {
			continue
		}
		for _, s := range slots {
			if a.TimeSlot == s {
				result = append(result, *a)
				break
			}
		}
	}
	return result, nil
}

func (m *mockRepo) ListByPatient(_ context.Context, patientID uuid.UUID) ([]Appointment, error) {
	var result []Appointment
	for _, a := range m.items {
		if a.PatientID == patientID {
			result = append(result, *a)
		}
	}
	return result, nil
}

func (m *mockRepo) ListAll(_ context.Context) ([]Appointment, error) {
	var result []Appointment
	for _, a := range m.items {
		result = append(result, *a)
	}
	return result, nil
}

func (m *mockRepo) Update(_ context.Context, appt *Appointment) (*Appointment, error) {
	if _, ok := m.items[appt.ID]; !ok {
		return nil, ErrAppointmentNotFound
	}
	m.updates++
	cp := *appt
	cp.UpdatedAt = time.Now()
	m.items[cp.ID] = &cp
	return &cp, nil
}

func (m *mockRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.items[id]; !ok {
		return ErrAppointmentNotFound
	}
	delete(m.items, id)
	return nil
}

type mockDirectory struct {
	doctors []directory.Practitioner
}

func (m *mockDirectory) FindDoctor(_ context.Context, firstName, lastName, department string) (*directory.Practitioner, error) {
	for _, d := range m.doctors {
		if d.FirstName == firstName && d.LastName == lastName && d.Department == department && d.Role == directory.RoleDoctor {
			cp := d
			return &cp, nil
		}
	}
	return nil, directory.ErrDoctorNotFound
}

type noopLocker struct{}

func (noopLocker) WithBookingLock(ctx context.Context, _ uuid.UUID, _, _ string, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type contendedLocker struct{}

func (contendedLocker) WithBookingLock(context.Context, uuid.UUID, string, string, func(ctx context.Context) error) error {
	return redisclient.ErrLockNotAcquired
}

// -- Fixtures --

var testDoctorID = uuid.MustParse("7c9ff1f8-3bdc-4a26-9fb2-9d3af6ff1f01")

func testDirectory() *mockDirectory {
	return &mockDirectory{doctors: []directory.Practitioner{
		{
			ID:         testDoctorID,
			FirstName:  "Amelia",
			LastName:   "Hart",
			Role:       directory.RoleDoctor,
			Department: "Cardiology",
		},
	}}
}

func validRequest() BookingRequest {
	return BookingRequest{
		FirstName:       "Jonas",
		LastName:        "Keller",
		Email:           "jonas.keller@example.com",
		Phone:           "01712345678",
		DOB:             "1988-02-17",
		Gender:          "Male",
		AppointmentDate: "2026-09-14",
		TimeSlot:        "10:00-10:30",
		Department:      "Cardiology",
		DoctorFirstName: "Amelia",
		DoctorLastName:  "Hart",
		HasVisited:      false,
		Address:         "12 Harbor Lane",
	}
}

func newTestService(repo Repository) *Service {
	return NewService(repo, testDirectory(), noopLocker{}, zerolog.Nop())
}

// -- Booking --

func TestBookAppointment(t *testing.T) {
	ctx := context.Background()
	patientID := uuid.New()

	t.Run("success persists a pending appointment with doctor snapshot", func(t *testing.T) {
		repo := newMockRepo()
		svc := newTestService(repo)

		appt, err := svc.BookAppointment(ctx, validRequest(), patientID)
		require.NoError(t, err)

		assert.Equal(t, StatusPending, appt.Status)
		assert.Equal(t, patientID, appt.PatientID)
		assert.Equal(t, testDoctorID, appt.DoctorID)
		assert.Equal(t, DoctorSnapshot{FirstName: "Amelia", LastName: "Hart"}, appt.Doctor)
		assert.Equal(t, "10:00-10:30", appt.TimeSlot)
		assert.Equal(t, 1, repo.creates)
	})

	t.Run("missing mandatory fields fail validation without a store write", func(t *testing.T) {
		mutations := map[string]func(*BookingRequest){
			"firstName":        func(r *BookingRequest) { r.FirstName = "" },
			"lastName":         func(r *BookingRequest) { r.LastName = "" },
			"email":            func(r *BookingRequest) { r.Email = "" },
			"phone":            func(r *BookingRequest) { r.Phone = "" },
			"dob":              func(r *BookingRequest) { r.DOB = "" },
			"gender":           func(r *BookingRequest) { r.Gender = "" },
			"appointment_date": func(r *BookingRequest) { r.AppointmentDate = "" },
			"timeSlot":         func(r *BookingRequest) { r.TimeSlot = "" },
			"department":       func(r *BookingRequest) { r.Department = "" },
			"doctor_firstName": func(r *BookingRequest) { r.DoctorFirstName = "" },
			"doctor_lastName":  func(r *BookingRequest) { r.DoctorLastName = "" },
			"address":          func(r *BookingRequest) { r.Address = "" },
		}

		for field, mutate := range mutations {
			repo := newMockRepo()
			svc := newTestService(repo)

			req := validRequest()
			mutate(&req)

			_, err := svc.BookAppointment(ctx, req, patientID)
			assert.ErrorIs(t, err, ErrValidation, "field %s", field)
			assert.Zero(t, repo.creates, "field %s must not reach the store", field)
		}
	})

	t.Run("malformed field values fail validation", func(t *testing.T) {
		repo := newMockRepo()
		svc := newTestService(repo)

		req := validRequest()
		req.Email = "not-an-email"
		_, err := svc.BookAppointment(ctx, req, patientID)
		assert.ErrorIs(t, err, ErrValidation)

		req = validRequest()
		req.Phone = "12345" // must be exactly 11 digits
		_, err = svc.BookAppointment(ctx, req, patientID)
		assert.ErrorIs(t, err, ErrValidation)

		req = validRequest()
		req.AppointmentDate = "14-09-2026"
		_, err = svc.BookAppointment(ctx, req, patientID)
		assert.ErrorIs(t, err, ErrValidation)

		assert.Zero(t, repo.creates)
	})

	t.Run("slot outside the fixed grid is rejected", func(t *testing.T) {
		repo := newMockRepo()
		svc := newTestService(repo)

		req := validRequest()
		req.TimeSlot = "09:00-09:30"

		_, err := svc.BookAppointment(ctx, req, patientID)
		assert.ErrorIs(t, err, ErrInvalidSlot)
		assert.Zero(t, repo.creates)
	})

	t.Run("unknown doctor fails with doctor not found", func(t *testing.T) {
		repo := newMockRepo()
		svc := newTestService(repo)

		req := validRequest()
		req.DoctorLastName = "Nobody"

		_, err := svc.BookAppointment(ctx, req, patientID)
		assert.ErrorIs(t, err, directory.ErrDoctorNotFound)
		assert.Zero(t, repo.creates)
	})

	t.Run("department mismatch fails doctor resolution", func(t *testing.T) {
		repo := newMockRepo()
		svc := newTestService(repo)

		req := validRequest()
		req.Department = "Dermatology"

		_, err := svc.BookAppointment(ctx, req, patientID)
		assert.ErrorIs(t, err, directory.ErrDoctorNotFound)
	})

	t.Run("identical rebooking conflicts with itself", func(t *testing.T) {
		repo := newMockRepo()
		svc := newTestService(repo)

		_, err := svc.BookAppointment(ctx, validRequest(), patientID)
		require.NoError(t, err)

		_, err = svc.BookAppointment(ctx, validRequest(), patientID)
		assert.ErrorIs(t, err, ErrSlotConflict)
		assert.Equal(t, 1, repo.creates)
	})

	t.Run("distant slot on the same day books fine", func(t *testing.T) {
		repo := newMockRepo()
		svc := newTestService(repo)

		_, err := svc.BookAppointment(ctx, validRequest(), patientID)
		require.NoError(t, err)

		req := validRequest()
		req.TimeSlot = "11:00-11:30"
		_, err = svc.BookAppointment(ctx, req, patientID)
		assert.NoError(t, err)
		assert.Equal(t, 2, repo.creates)
	})

	t.Run("same slot on another day books fine", func(t *testing.T) {
		repo := newMockRepo()
		svc := newTestService(repo)

		_, err := svc.BookAppointment(ctx, validRequest(), patientID)
		require.NoError(t, err)

		req := validRequest()
		req.AppointmentDate = "2026-09-15"
		_, err = svc.BookAppointment(ctx, req, patientID)
		assert.NoError(t, err)
	})

	t.Run("slot whose end touches an occupied successor conflicts", func(t *testing.T) {
		// The candidate set is built from a half-open interval test of the
		// requested start and end against every grid slot, so the end of
		// 10:00-10:30 lands on the start boundary of an occupied
		// 10:30-11:00 and the booking is refused.
		repo := newMockRepo()
		svc := newTestService(repo)

		first := validRequest()
		first.TimeSlot = "10:30-11:00"
		_, err := svc.BookAppointment(ctx, first, patientID)
		require.NoError(t, err)

		second := validRequest()
		second.TimeSlot = "10:00-10:30"
		_, err = svc.BookAppointment(ctx, second, patientID)
		assert.ErrorIs(t, err, ErrSlotConflict)
	})

	t.Run("lock contention maps to slot being booked", func(t *testing.T) {
		repo := newMockRepo()
		svc := NewService(repo, testDirectory(), contendedLocker{}, zerolog.Nop())

		_, err := svc.BookAppointment(ctx, validRequest(), patientID)
		assert.ErrorIs(t, err, ErrSlotBeingBooked)
		assert.Zero(t, repo.creates)
	})
}

// -- Update --

func TestUpdateAppointment(t *testing.T) {
	ctx := context.Background()
	patientID := uuid.New()

	t.Run("unknown id fails with not found", func(t *testing.T) {
		svc := newTestService(newMockRepo())

		status := StatusAccepted
		_, err := svc.UpdateAppointment(ctx, uuid.New(), UpdatePatch{Status: &status})
		assert.ErrorIs(t, err, ErrAppointmentNotFound)
	})

	t.Run("status patch is durable on subsequent read", func(t *testing.T) {
		repo := newMockRepo()
		svc := newTestService(repo)

		appt, err := svc.BookAppointment(ctx, validRequest(), patientID)
		require.NoError(t, err)

		status := StatusAccepted
		updated, err := svc.UpdateAppointment(ctx, appt.ID, UpdatePatch{Status: &status})
		require.NoError(t, err)
		assert.Equal(t, StatusAccepted, updated.Status)

		stored, err := repo.GetByID(ctx, appt.ID)
		require.NoError(t, err)
		assert.Equal(t, StatusAccepted, stored.Status)
	})

	t.Run("any status may move to any other", func(t *testing.T) {
		repo := newMockRepo()
		svc := newTestService(repo)

		appt, err := svc.BookAppointment(ctx, validRequest(), patientID)
		require.NoError(t, err)

		for _, next := range []Status{StatusRejected, StatusAccepted, StatusPending} {
			s := next
			updated, err := svc.UpdateAppointment(ctx, appt.ID, UpdatePatch{Status: &s})
			require.NoError(t, err)
			assert.Equal(t, next, updated.Status)
		}
	})

	t.Run("unknown status value is rejected", func(t *testing.T) {
		repo := newMockRepo()
		svc := newTestService(repo)

		appt, err := svc.BookAppointment(ctx, validRequest(), patientID)
		require.NoError(t, err)

		bogus := Status("Archived")
		_, err = svc.UpdateAppointment(ctx, appt.ID, UpdatePatch{Status: &bogus})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("slot patch is checked against the grid", func(t *testing.T) {
		repo := newMockRepo()
		svc := newTestService(repo)

		appt, err := svc.BookAppointment(ctx, validRequest(), patientID)
		require.NoError(t, err)

		bad := "08:00-08:30"
		_, err = svc.UpdateAppointment(ctx, appt.ID, UpdatePatch{TimeSlot: &bad})
		assert.ErrorIs(t, err, ErrInvalidSlot)

		good := "15:00-15:30"
		updated, err := svc.UpdateAppointment(ctx, appt.ID, UpdatePatch{TimeSlot: &good})
		require.NoError(t, err)
		assert.Equal(t, good, updated.TimeSlot)
	})

	t.Run("nil fields leave the record untouched", func(t *testing.T) {
		repo := newMockRepo()
		svc := newTestService(repo)

		appt, err := svc.BookAppointment(ctx, validRequest(), patientID)
		require.NoError(t, err)

		visited := true
		updated, err := svc.UpdateAppointment(ctx, appt.ID, UpdatePatch{HasVisited: &visited})
		require.NoError(t, err)
		assert.True(t, updated.HasVisited)
		assert.Equal(t, appt.FirstName, updated.FirstName)
		assert.Equal(t, appt.TimeSlot, updated.TimeSlot)
		assert.Equal(t, appt.Status, updated.Status)
	})
}

// -- Listing and deletion --

func TestListForPatient(t *testing.T) {
	ctx := context.Background()

	repo := newMockRepo()
	svc := newTestService(repo)

	booker := uuid.New()
	other := uuid.New()

	_, err := svc.BookAppointment(ctx, validRequest(), booker)
	require.NoError(t, err)

	got, err := svc.ListForPatient(ctx, booker)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	// A patient with no bookings gets an empty result, not an error.
	got, err = svc.ListForPatient(ctx, other)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDeleteAppointment(t *testing.T) {
	ctx := context.Background()

	repo := newMockRepo()
	svc := newTestService(repo)

	err := svc.DeleteAppointment(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrAppointmentNotFound)

	appt, err := svc.BookAppointment(ctx, validRequest(), uuid.New())
	require.NoError(t, err)

	require.NoError(t, svc.DeleteAppointment(ctx, appt.ID))

	_, err = repo.GetByID(ctx, appt.ID)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)

	// Deleting frees the slot for a fresh booking.
	_, err = svc.BookAppointment(ctx, validRequest(), uuid.New())
	assert.NoError(t, err)
}
