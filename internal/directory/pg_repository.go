package directory

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

func scanPractitioner(row pgx.Row) (*Practitioner, error) {
	var p Practitioner
	var department *string

	err := row.Scan(
		&p.ID,
		&p.FirstName,
		&p.LastName,
		&p.Email,
		&p.Phone,
		&p.Gender,
		&p.Role,
		&department,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrDoctorNotFound
		}
		return nil, err
	}

	if department != nil {
		p.Department = *department
	}
	return &p, nil
}

func (r *PgRepository) FindDoctor(ctx context.Context, firstName, lastName, department string) (*Practitioner, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, first_name, last_name, email, phone, gender, role, department, created_at, updated_at
		FROM users
		WHERE first_name = $1
		  AND last_name = $2
		  AND department = $3
		  AND role = 'Doctor'
		ORDER BY created_at
		LIMIT 1
	`, firstName, lastName, department)
	return scanPractitioner(row)
}

func (r *PgRepository) ListDoctors(ctx context.Context) ([]Practitioner, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, first_name, last_name, email, phone, gender, role, department, created_at, updated_at
		FROM users
		WHERE role = 'Doctor'
		ORDER BY last_name, first_name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Practitioner
	for rows.Next() {
		p, err := scanPractitioner(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}
