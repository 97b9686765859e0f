package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/caresync/hospital-api/internal/auth"
	"github.com/caresync/hospital-api/internal/db"
	"github.com/caresync/hospital-api/internal/directory"
)

var departments = []string{
	"Pediatrics",
	"Orthopedics",
	"Cardiology",
	"Neurology",
	"Oncology",
	"Radiology",
	"Physical Therapy",
	"Dermatology",
	"ENT",
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("seed starting")

	dsn := os.Getenv("POSTGRES_DSN")
	if dsn == "" {
		log.Fatal("POSTGRES_DSN is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := db.ConnectPostgres(ctx, dsn)
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	gofakeit.Seed(time.Now().UnixNano())

	if err := seedUsers(context.Background(), pool, directory.RoleDoctor, 50); err != nil {
		log.Fatalf("seed doctors: %v", err)
	}
	patientID, err := seedUsersReturningFirst(context.Background(), pool, directory.RolePatient, 500)
	if err != nil {
		log.Fatalf("seed patients: %v", err)
	}

	// Print a ready-to-use bearer token for manual testing when a secret is
	// configured.
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		tokens := auth.NewManager(secret, 7*24*time.Hour)
		token, err := tokens.Issue(patientID, string(directory.RolePatient))
		if err != nil {
			log.Fatalf("issue token: %v", err)
		}
		fmt.Printf("patient %s bearer token:\n%s\n", patientID, token)
	}

	log.Println("seed complete")
}

func seedUsers(ctx context.Context, pool *pgxpool.Pool, role directory.Role, count int) error {
	_, err := seedUsersReturningFirst(ctx, pool, role, count)
	return err
}

func seedUsersReturningFirst(ctx context.Context, pool *pgxpool.Pool, role directory.Role, count int) (uuid.UUID, error) {
	log.Printf("seeding %d users with role %s", count, role)

	const batchSize = 250

	var first uuid.UUID

	for offset := 0; offset < count; offset += batchSize {
		end := offset + batchSize
		if end > count {
			end = count
		}

		tx, err := pool.Begin(ctx)
		if err != nil {
			return uuid.Nil, err
		}

		for i := offset; i < end; i++ {
			id := uuid.New()
			if i == 0 {
				first = id
			}

			var department *string
			if role == directory.RoleDoctor {
				d := departments[gofakeit.Number(0, len(departments)-1)]
				department = &d
			}

			gender := "Male"
			if gofakeit.Bool() {
				gender = "Female"
			}

			_, err := tx.Exec(ctx, `
				INSERT INTO users (id, first_name, last_name, email, phone, gender, role, department, created_at, updated_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now(), now())
			`, id, gofakeit.FirstName(), gofakeit.LastName(), gofakeit.Email(),
				gofakeit.Numerify("###########"), gender, role, department)
			if err != nil {
				_ = tx.Rollback(ctx)
				return uuid.Nil, err
			}
		}

		if err := tx.Commit(ctx); err != nil {
			return uuid.Nil, err
		}

		log.Printf("users seeded: %d/%d", end, count)
	}

	return first, nil
}
