package appointment

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const apptColumns = `
	id, first_name, last_name, email, phone, dob, gender,
	appointment_date, time_slot, department,
	doctor_first_name, doctor_last_name,
	has_visited, address, doctor_id, patient_id, status,
	created_at, updated_at`

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

func scanAppointment(row pgx.Row) (*Appointment, error) {
	var a Appointment

	err := row.Scan(
		&a.ID,
		&a.FirstName,
		&a.LastName,
		&a.Email,
		&a.Phone,
		&a.DOB,
		&a.Gender,
		&a.AppointmentDate,
		&a.TimeSlot,
		&a.Department,
		&a.Doctor.FirstName,
		&a.Doctor.LastName,
		&a.HasVisited,
		&a.Address,
		&a.DoctorID,
		&a.PatientID,
		&a.Status,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAppointmentNotFound
		}
		return nil, err
	}

	return &a, nil
}

func (r *PgRepository) Create(ctx context.Context, appt *Appointment) (*Appointment, error) {
	id := uuid.New()

	row := r.pool.QueryRow(ctx, `
		INSERT INTO appointments (
			id, first_name, last_name, email, phone, dob, gender,
			appointment_date, time_slot, department,
			doctor_first_name, doctor_last_name,
			has_visited, address, doctor_id, patient_id, status,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, now(), now())
		RETURNING`+apptColumns,
		id, appt.FirstName, appt.LastName, appt.Email, appt.Phone, appt.DOB, appt.Gender,
		appt.AppointmentDate, appt.TimeSlot, appt.Department,
		appt.Doctor.FirstName, appt.Doctor.LastName,
		appt.HasVisited, appt.Address, appt.DoctorID, appt.PatientID, appt.Status,
	)

	return scanAppointment(row)
}

func (r *PgRepository) GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT`+apptColumns+`
		FROM appointments
		WHERE id = $1
	`, id)
	return scanAppointment(row)
}

func (r *PgRepository) FindByDoctorDateSlots(ctx context.Context, doctorID uuid.UUID, date time.Time, slots []string) ([]Appointment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT`+apptColumns+`
		FROM appointments
		WHERE doctor_id = $1
		  AND appointment_date = $2
		  AND time_slot = ANY($3)
	`, doctorID, date, slots)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectAppointments(rows)
}

func (r *PgRepository) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]Appointment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT`+apptColumns+`
		FROM appointments
		WHERE patient_id = $1
		ORDER BY appointment_date, time_slot
	`, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectAppointments(rows)
}

func (r *PgRepository) ListAll(ctx context.Context) ([]Appointment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT`+apptColumns+`
		FROM appointments
		ORDER BY appointment_date, time_slot
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectAppointments(rows)
}

func (r *PgRepository) Update(ctx context.Context, appt *Appointment) (*Appointment, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE appointments
		SET first_name = $2,
		    last_name = $3,
		    email = $4,
		    phone = $5,
		    dob = $6,
		    gender = $7,
		    appointment_date = $8,
		    time_slot = $9,
		    department = $10,
		    has_visited = $11,
		    address = $12,
		    status = $13,
		    updated_at = now()
		WHERE id = $1
		RETURNING`+apptColumns,
		appt.ID, appt.FirstName, appt.LastName, appt.Email, appt.Phone, appt.DOB, appt.Gender,
		appt.AppointmentDate, appt.TimeSlot, appt.Department,
		appt.HasVisited, appt.Address, appt.Status,
	)

	return scanAppointment(row)
}

func (r *PgRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM appointments
		WHERE id = $1
	`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrAppointmentNotFound
	}
	return nil
}

func collectAppointments(rows pgx.Rows) ([]Appointment, error) {
	var result []Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *a)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}
