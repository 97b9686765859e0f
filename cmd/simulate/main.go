package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"math/rand"
	"net/http"
	"os"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/caresync/hospital-api/internal/appointment"
	"github.com/caresync/hospital-api/internal/auth"
	"github.com/caresync/hospital-api/internal/db"
	"github.com/caresync/hospital-api/internal/directory"
)

// The simulator fires concurrent booking requests at a running api-server.
// Its main purpose is to show that when many patients race for the same
// (doctor, date, slot) cell, exactly one booking succeeds and the rest get
// conflict responses.

type SimConfig struct {
	APIBaseURL  string
	Workers     int
	RandomSlots int // extra bookings spread over random slots per worker
	Date        string
	PostgresDSN string
	JWTSecret   string
}

type Doctor struct {
	ID         uuid.UUID
	FirstName  string
	LastName   string
	Department string
}

type Metrics struct {
	mu        sync.Mutex
	Total     int
	Success   int
	Conflict  int
	Error     int
	Latencies []time.Duration
}

func (m *Metrics) Record(latency time.Duration, status int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Total++
	switch {
	case status == http.StatusOK:
		m.Success++
	case status == http.StatusConflict:
		m.Conflict++
	default:
		m.Error++
	}
	m.Latencies = append(m.Latencies, latency)
}

func (m *Metrics) Stats() (avg, p50, p95, max time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.Latencies) == 0 {
		return 0, 0, 0, 0
	}

	latencies := make([]time.Duration, len(m.Latencies))
	copy(latencies, m.Latencies)
	sort.Slice(latencies, func(i, j int) bool { return latencies[i] < latencies[j] })

	var sum time.Duration
	for _, l := range latencies {
		sum += l
	}

	avg = sum / time.Duration(len(latencies))
	p50 = latencies[len(latencies)*50/100]
	p95 = latencies[min(len(latencies)*95/100, len(latencies)-1)]
	max = latencies[len(latencies)-1]
	return avg, p50, p95, max
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("simulator starting")

	cfg := loadConfig()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pgPool, err := db.ConnectPostgres(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pgPool.Close()

	doctors, err := loadDoctors(ctx, pgPool)
	if err != nil {
		log.Fatalf("load doctors: %v", err)
	}
	patients, err := loadPatients(ctx, pgPool)
	if err != nil {
		log.Fatalf("load patients: %v", err)
	}
	if len(doctors) == 0 || len(patients) == 0 {
		log.Fatal("no doctors or patients found, run cmd/seed first")
	}

	log.Printf("loaded %d doctors and %d patients", len(doctors), len(patients))

	tokens := auth.NewManager(cfg.JWTSecret, time.Hour)
	client := &http.Client{Timeout: 10 * time.Second}
	gofakeit.Seed(time.Now().UnixNano())

	target := doctors[rand.Intn(len(doctors))]
	targetSlot := appointment.Slots[rand.Intn(len(appointment.Slots))]
	log.Printf("contended cell: doctor=%s %s date=%s slot=%s",
		target.FirstName, target.LastName, cfg.Date, targetSlot)

	var metrics Metrics
	var wg sync.WaitGroup

	start := time.Now()
	for w := 0; w < cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			patient := patients[rand.Intn(len(patients))]
			token, err := tokens.Issue(patient, string(directory.RolePatient))
			if err != nil {
				log.Printf("issue token: %v", err)
				return
			}

			// Everyone fights for the same cell first.
			book(client, cfg, token, target, targetSlot, &metrics)

			// Then spread some load over random doctors and slots.
			for i := 0; i < cfg.RandomSlots; i++ {
				d := doctors[rand.Intn(len(doctors))]
				s := appointment.Slots[rand.Intn(len(appointment.Slots))]
				book(client, cfg, token, d, s, &metrics)
			}
		}()
	}
	wg.Wait()

	avg, p50, p95, maxLat := metrics.Stats()
	log.Printf("done in %s", time.Since(start))
	log.Printf("requests=%d success=%d conflict=%d error=%d",
		metrics.Total, metrics.Success, metrics.Conflict, metrics.Error)
	log.Printf("latency avg=%s p50=%s p95=%s max=%s", avg, p50, p95, maxLat)

	if metrics.Success == 0 {
		log.Println("warning: no booking succeeded, check server logs")
	}
}

func book(client *http.Client, cfg SimConfig, token string, doctor Doctor, slot appointment.TimeSlot, metrics *Metrics) {
	req := appointment.BookingRequest{
		FirstName:       gofakeit.FirstName() + "x", // pad to satisfy min length
		LastName:        gofakeit.LastName() + "x",
		Email:           gofakeit.Email(),
		Phone:           gofakeit.Numerify("###########"),
		DOB:             "1990-04-12",
		Gender:          "Female",
		AppointmentDate: cfg.Date,
		TimeSlot:        slot.String(),
		Department:      doctor.Department,
		DoctorFirstName: doctor.FirstName,
		DoctorLastName:  doctor.LastName,
		HasVisited:      false,
		Address:         gofakeit.Street(),
	}

	body, err := json.Marshal(req)
	if err != nil {
		log.Printf("marshal booking: %v", err)
		return
	}

	httpReq, err := http.NewRequest(http.MethodPost, cfg.APIBaseURL+"/api/v1/appointment/post", bytes.NewReader(body))
	if err != nil {
		log.Printf("build request: %v", err)
		return
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+token)

	start := time.Now()
	resp, err := client.Do(httpReq)
	if err != nil {
		metrics.Record(time.Since(start), 0)
		return
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()

	metrics.Record(time.Since(start), resp.StatusCode)
}

func loadConfig() SimConfig {
	cfg := SimConfig{
		APIBaseURL:  envOr("API_BASE_URL", "http://127.0.0.1:8080"),
		Workers:     envIntOr("SIM_WORKERS", 20),
		RandomSlots: envIntOr("SIM_RANDOM_SLOTS", 5),
		Date:        envOr("SIM_DATE", time.Now().AddDate(0, 0, 7).Format("2006-01-02")),
		PostgresDSN: os.Getenv("POSTGRES_DSN"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
	}

	if cfg.PostgresDSN == "" {
		log.Fatal("POSTGRES_DSN is required")
	}
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}
	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func loadDoctors(ctx context.Context, pool *pgxpool.Pool) ([]Doctor, error) {
	rows, err := pool.Query(ctx, `
		SELECT id, first_name, last_name, department
		FROM users
		WHERE role = 'Doctor'
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Doctor
	for rows.Next() {
		var d Doctor
		if err := rows.Scan(&d.ID, &d.FirstName, &d.LastName, &d.Department); err != nil {
			return nil, err
		}
		result = append(result, d)
	}
	return result, rows.Err()
}

func loadPatients(ctx context.Context, pool *pgxpool.Pool) ([]uuid.UUID, error) {
	rows, err := pool.Query(ctx, `
		SELECT id
		FROM users
		WHERE role = 'Patient'
		LIMIT 1000
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		result = append(result, id)
	}
	return result, rows.Err()
}
