// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package main

import (
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/linuxfoundation/lfx-v2-registration-service/internal/handlers"
	"github.com/linuxfoundation/lfx-v2-registration-service/internal/infrastructure/auth"
	"github.com/linuxfoundation/lfx-v2-registration-service/internal/logging"
	"github.com/linuxfoundation/lfx-v2-registration-service/internal/middleware"
)

// apiHandlers bundles the HTTP handlers mounted on the router
type apiHandlers struct {
	organization *handlers.OrganizationHandler
	meeting      *handlers.MeetingHandler
	registration *handlers.RegistrationHandler
	owner        *handlers.OwnerHandler
	readyz       func() bool
}

// newRouter builds the service's route tree
func newRouter(api apiHandlers, tokenManager *auth.TokenManager) http.Handler {
	router := chi.NewRouter()

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-REQUEST-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/livez", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	router.Get("/readyz", func(w http.ResponseWriter, _ *http.Request) {
		if !api.readyz() {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("NOT READY"))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	// Public landing page and registration endpoints.
	router.Route("/public/{subdomain}", func(r chi.Router) {
		r.Get("/", api.organization.GetBySubdomain)
		r.Route("/meetings/{uid}", func(r chi.Router) {
			r.Get("/", api.registration.GetLandingPage)
			r.Post("/register", api.registration.Register)
		})
	})

	// Tenant organization API.
	router.Route("/api", func(r chi.Router) {
		r.Post("/signup", api.organization.Signup)
		r.Post("/login", api.organization.Login)

		r.Group(func(r chi.Router) {
			r.Use(middleware.OrganizationAuthMiddleware(tokenManager))

			r.Get("/profile", api.organization.GetProfile)
			r.Put("/profile", api.organization.UpdateProfile)
			r.Put("/profile/zoom-credentials", api.organization.UpdateZoomCredentials)

			r.Post("/meetings", api.meeting.Create)
			r.Get("/meetings", api.meeting.List)
			r.Get("/meetings/{uid}", api.meeting.Get)
			r.Put("/meetings/{uid}", api.meeting.Update)
			r.Delete("/meetings/{uid}", api.meeting.Delete)
			r.Get("/meetings/{uid}/registrants", api.meeting.ListRegistrants)

			r.Get("/registrants/{uid}", api.meeting.GetRegistrant)
			r.Post("/registrants/{uid}/retry-sync", api.meeting.RetrySync)
			r.Delete("/registrants/{uid}", api.meeting.DeleteRegistrant)
		})
	})

	// Owner portal API.
	router.Route("/owner", func(r chi.Router) {
		r.Post("/login", api.owner.Login)

		r.Group(func(r chi.Router) {
			r.Use(middleware.OwnerAuthMiddleware(tokenManager))

			r.Get("/organizations", api.owner.ListOrganizations)
			r.Get("/organizations/{uid}", api.owner.GetOrganization)
			r.Put("/organizations/{uid}/active", api.owner.SetOrganizationActive)
			r.Delete("/organizations/{uid}", api.owner.DeleteOrganization)
			r.Delete("/meetings/{uid}", api.owner.DeleteMeeting)
			r.Delete("/registrants/{uid}", api.owner.DeleteRegistrant)
		})
	})

	var handler http.Handler = router

	// Note: Order matters - RequestIDMiddleware should come first in the chain,
	// so it should be the last middleware added to the handler since it is executed in reverse order.
	handler = middleware.RequestLoggerMiddleware()(handler)
	handler = middleware.RequestIDMiddleware()(handler)
	handler = otelhttp.NewHandler(handler, "registration-api")

	return handler
}

// setupHTTPServer configures and starts the HTTP server
func setupHTTPServer(flags flags, handler http.Handler, gracefulCloseWG *sync.WaitGroup) *http.Server {
	var addr string
	if flags.Bind == "*" {
		addr = ":" + flags.Port
	} else {
		addr = flags.Bind + ":" + flags.Port
	}
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 3 * time.Second,
	}
	gracefulCloseWG.Add(1)
	go func() {
		slog.With("addr", addr).Debug("starting http server, listening on port " + flags.Port)
		err := httpServer.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			slog.With(logging.ErrKey, err).Error("http listener error")
			os.Exit(1)
		}
		// Because ErrServerClosed is *immediately* returned when Shutdown is
		// called, not when when Shutdown completes, this must not yet decrement
		// the wait group.
	}()

	return httpServer
}
