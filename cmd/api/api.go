package main

import (
	"context"
	"errors"
	"expvar"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"courtdesk/docs" //required to register swagger docs
	"courtdesk/internal/auth"
	"courtdesk/internal/mailer"
	"courtdesk/internal/ratelimiter"
	"courtdesk/internal/refcode"
	"courtdesk/internal/store"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
)

type application struct {
	config        config
	store         store.Storage
	logger        *zap.SugaredLogger
	cld           *cloudinary.Cloudinary
	mailer        mailer.Client
	authenticator auth.Authenticator
	rateLimiter   ratelimiter.Limiter
	refcodes      *refcode.Generator
}

type config struct {
	addr        string
	env         string
	apiURL      string
	frontendURL string
	db          dbConfig
	mail        mailConfig
	auth        authConfig
	rateLimiter ratelimiter.Config
}

type dbConfig struct {
	addr        string
	maxConns    int
	maxIdleTime string
}

type mailConfig struct {
	fromEmail string
	host      string
	port      int
	username  string
	password  string
}

type authConfig struct {
	basic basicConfig
	token tokenConfig
}

type basicConfig struct {
	user string
	pass string
}

type tokenConfig struct {
	secret          string
	refreshSecret   string
	accessTokenExp  time.Duration
	refreshTokenExp time.Duration
	iss             string
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(app.RateLimiterMiddleware)

	allowedOrigins := []string{"https://*", "http://*"}
	if app.config.frontendURL != "" {
		allowedOrigins = []string{app.config.frontendURL}
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Use(middleware.Timeout(60 * time.Second))

	r.Route("/v1", func(r chi.Router) {
		r.With(app.BasicAuthMiddleware()).Get("/health", app.healthCheckHandler)
		r.With(app.BasicAuthMiddleware()).Get("/debug/vars", expvar.Handler().ServeHTTP)

		docsURL := fmt.Sprintf("%s/swagger/doc.json", app.config.addr)
		r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL(docsURL)))

		r.Route("/authentication", func(r chi.Router) {
			r.Post("/token", app.createTokenHandler)
			r.Post("/refresh", app.refreshTokenHandler)
		})

		r.Group(func(r chi.Router) {
			r.Use(app.AuthTokenMiddleware)

			r.Post("/logout", app.logoutHandler)

			r.Route("/bookings", func(r chi.Router) {
				r.Post("/", app.createBookingHandler)
				r.Get("/", app.listBookingsHandler)
				r.Route("/{bookingID}", func(r chi.Router) {
					r.Get("/", app.getBookingHandler)
					r.Get("/summary", app.getBookingSummaryHandler)
					r.Patch("/status", app.updateBookingStatusHandler)
					r.Delete("/dates/{date}", app.removeBookingDateHandler)
				})
			})

			r.Get("/schedule", app.getScheduleHandler)

			r.Route("/courts", func(r chi.Router) {
				r.Post("/", app.createCourtHandler)
				r.Get("/", app.listCourtsHandler)
				r.Route("/{courtID}", func(r chi.Router) {
					r.Get("/", app.getCourtHandler)
					r.Put("/", app.updateCourtHandler)
					r.Delete("/", app.deleteCourtHandler)
					r.Patch("/visibility", app.toggleCourtVisibilityHandler)
					r.Post("/photo", app.uploadCourtPhotoHandler)
					r.Delete("/photo", app.deleteCourtPhotoHandler)
					r.Route("/price-slots", func(r chi.Router) {
						r.Post("/", app.addPriceSlotHandler)
						r.Put("/{slotID}", app.updatePriceSlotHandler)
						r.Delete("/{slotID}", app.deletePriceSlotHandler)
					})
				})
			})

			r.Route("/tariffs", func(r chi.Router) {
				r.Post("/", app.createTariffHandler)
				r.Get("/", app.listTariffsHandler)
				r.Route("/{tariffID}", func(r chi.Router) {
					r.Get("/", app.getTariffHandler)
					r.Put("/", app.updateTariffHandler)
					r.Delete("/", app.deleteTariffHandler)
					r.Patch("/active", app.toggleTariffActiveHandler)
				})
			})

			r.Route("/extras", func(r chi.Router) {
				r.Post("/", app.createExtraHandler)
				r.Get("/", app.listExtrasHandler)
				r.Route("/{extraID}", func(r chi.Router) {
					r.Get("/", app.getExtraHandler)
					r.Put("/", app.updateExtraHandler)
					r.Delete("/", app.deleteExtraHandler)
				})
			})

			r.Route("/organization", func(r chi.Router) {
				r.Get("/", app.getOrganizationHandler)
				r.Put("/", app.updateOrganizationHandler)
			})
		})
	})
	return r
}

func (app *application) run(mux http.Handler) error {
	docs.SwaggerInfo.Version = version
	docs.SwaggerInfo.Host = app.config.apiURL
	docs.SwaggerInfo.BasePath = "/v1"

	srv := &http.Server{
		Addr:         app.config.addr,
		Handler:      mux,
		WriteTimeout: time.Second * 30,
		ReadTimeout:  time.Second * 10,
		IdleTimeout:  time.Minute,
	}

	shutdown := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		app.logger.Infow("signal caught", "signal", s.String())

		shutdown <- srv.Shutdown(ctx)
	}()

	app.logger.Infow("server has started", "addr", app.config.addr, "env", app.config.env)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	if err := <-shutdown; err != nil {
		return err
	}

	app.logger.Infow("server has stopped", "addr", app.config.addr, "env", app.config.env)

	return nil
}
