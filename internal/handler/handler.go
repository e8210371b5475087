package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/clinicops/station-scheduler/backend/internal/config"
	"github.com/clinicops/station-scheduler/backend/internal/repository"
	"github.com/clinicops/station-scheduler/backend/internal/scheduler"
)

type Handler struct {
	validate     *validator.Validate
	config       *config.Config
	repository   *repository.Repository
	scheduler    *scheduler.Scheduler
	translator   ut.Translator
	eventChannel *amqp.Channel
	redisClient  *redis.Client

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, eventCh *amqp.Channel, rdb *redis.Client) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	en := en.New()
	uni := ut.New(en, en)
	trans, _ := uni.GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:     validate,
		config:       cfg,
		repository:   repo,
		scheduler:    scheduler.New(repo),
		translator:   trans,
		eventChannel: eventCh,
		redisClient:  rdb,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	h.Mux.Route("/assignments", func(r chi.Router) {
		r.Post("/", h.Assign)
		r.Post("/reassign", h.Reassign)
		r.Post("/remove", h.Remove)
	})

	h.Mux.Route("/stations", func(r chi.Router) {
		r.Get("/", h.GetStationBoard)
		r.Get("/all", h.GetAllStations)
		r.Route("/{id}", func(r chi.Router) {
			r.Use(h.station)
			r.Post("/toggle", h.ToggleStation)
		})
	})

	h.Mux.Get("/employees", h.GetAllEmployees)
	h.Mux.Get("/history", h.GetHistory)
}
