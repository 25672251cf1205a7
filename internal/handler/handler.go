package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rosterhub-dev/roster-manager/backend/internal/config"
	"github.com/rosterhub-dev/roster-manager/backend/internal/repository"
	"github.com/rosterhub-dev/roster-manager/backend/internal/roster"
)

type Handler struct {
	validate    *validator.Validate
	config      *config.Config
	repository  *repository.Repository
	roster      *roster.Service
	translator  ut.Translator
	mailChannel *amqp.Channel

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, rosterService *roster.Service, mailCh *amqp.Channel) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ := uni.GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:    validate,
		config:      cfg,
		repository:  repo,
		roster:      rosterService,
		translator:  trans,
		mailChannel: mailCh,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
	})

	// Everything below is scoped to the tenant resolved from the token.
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Get("/roster-state", h.GetRosterState)

		r.Route("/spot-roster-view", func(r chi.Router) {
			r.Get("/current", h.GetCurrentSpotRosterView)
			r.Get("/", h.GetSpotRosterView)
			r.Post("/for", h.GetSpotRosterViewFor)
		})

		r.Route("/employee-roster-view", func(r chi.Router) {
			r.Get("/current", h.GetCurrentEmployeeRosterView)
			r.Get("/", h.GetEmployeeRosterView)
			r.Post("/for", h.GetEmployeeRosterViewFor)
		})

		r.Route("/roster", func(r chi.Router) {
			r.Get("/", h.BuildRoster)
			r.Put("/", h.ApplyRoster)
			r.Post("/publish", h.Publish)
			r.Post("/provision", h.Provision)
			r.Post("/publish-and-provision", h.PublishAndProvision)
			r.Route("/solve", func(r chi.Router) {
				r.Post("/", h.StartSolve)
				r.Delete("/", h.StopSolve)
				r.Get("/result", h.GetSolveResult)
			})
		})

		r.Route("/skills", func(r chi.Router) {
			r.Get("/", h.ListSkills)
			r.Post("/", h.CreateSkill)
		})
		r.Route("/spots", func(r chi.Router) {
			r.Get("/", h.ListSpots)
			r.Post("/", h.CreateSpot)
		})
		r.Route("/employees", func(r chi.Router) {
			r.Get("/", h.ListEmployees)
			r.Post("/", h.CreateEmployee)
		})
		r.Route("/shifts", func(r chi.Router) {
			r.Get("/", h.ListShifts)
			r.Post("/", h.CreateShift)
		})
		r.Route("/availabilities", func(r chi.Router) {
			r.Get("/", h.ListAvailabilities)
			r.Post("/", h.CreateAvailability)
		})
		r.Route("/shift-templates", func(r chi.Router) {
			r.Get("/", h.ListShiftTemplates)
			r.Post("/", h.CreateShiftTemplate)
		})
	})
}
