package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/caresync/hospital-api/internal/appointment"
	"github.com/caresync/hospital-api/internal/auth"
	"github.com/caresync/hospital-api/internal/directory"
	"github.com/caresync/hospital-api/internal/message"
)

type RouterConfig struct {
	Appointments *appointment.Service
	Messages     *message.Service
	Directory    directory.Repository
	Tokens       *auth.Manager
	PgPool       *pgxpool.Pool
	Redis        *redis.Client
	Log          zerolog.Logger
	Env          string
	Version      string
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware(cfg.Log))

	health := NewHealthHandler(cfg.PgPool, cfg.Redis, cfg.Env, cfg.Version)
	r.Get("/health/live", health.Liveness)
	r.Get("/health/ready", health.Readiness)

	requireAuth := AuthMiddleware(cfg.Tokens)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/message/send", sendMessageHandler(cfg.Messages))
		r.Get("/user/doctors", listDoctorsHandler(cfg.Directory))

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)

			r.Post("/appointment/post", bookAppointmentHandler(cfg.Appointments))
			r.Get("/appointment/getall", listAppointmentsHandler(cfg.Appointments))
			r.Get("/appointment/getpatient", listPatientAppointmentsHandler(cfg.Appointments))
			r.Put("/appointment/update/{id}", updateAppointmentHandler(cfg.Appointments))
			r.Delete("/appointment/delete/{id}", deleteAppointmentHandler(cfg.Appointments))

			r.Get("/message/getall", listMessagesHandler(cfg.Messages))
			r.Delete("/message/delete/{id}", deleteMessageHandler(cfg.Messages))
		})
	})

	return r
}
