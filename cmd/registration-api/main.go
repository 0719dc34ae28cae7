// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package main is the registration service API that provides a RESTful API
// for managing meeting registration landing pages and syncing registrants
// to Zoom.
package main

import (
	"context"
	_ "expvar"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/linuxfoundation/lfx-v2-registration-service/internal/handlers"
	"github.com/linuxfoundation/lfx-v2-registration-service/internal/infrastructure/auth"
	"github.com/linuxfoundation/lfx-v2-registration-service/internal/infrastructure/messaging"
	"github.com/linuxfoundation/lfx-v2-registration-service/internal/infrastructure/zoom"
	"github.com/linuxfoundation/lfx-v2-registration-service/internal/logging"
	"github.com/linuxfoundation/lfx-v2-registration-service/internal/service"
	"github.com/nats-io/nats.go"
)

func main() {
	env := parseEnv()
	flags := parseFlags(env.Port)

	logging.InitStructureLogConfig()

	tokenManager := auth.NewTokenManager(env.JWTSecret, env.TokenExpiry)
	passwordHasher := auth.NewPasswordHasher()
	zoomProvider := zoom.NewProvider(env.ZoomClientTTL)
	emailService := setupEmailService(env)

	// Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	gracefulCloseWG := sync.WaitGroup{}

	// Setup NATS connection
	natsConn, err := setupNATS(ctx, env, &gracefulCloseWG, done)
	if err != nil {
		slog.With(logging.ErrKey, err).Error("error setting up NATS")
		return
	}

	// Get the key-value stores for the service.
	repos, err := getKeyValueStores(ctx, natsConn)
	if err != nil {
		slog.With(logging.ErrKey, err).Error("error getting key-value stores")
		return
	}

	// Initialize services
	messageBuilder := messaging.NewMessageBuilder(natsConn)
	organizationService := service.NewOrganizationService(
		repos.Organization,
		zoomProvider,
		messageBuilder,
		tokenManager,
		passwordHasher,
	)
	meetingService := service.NewMeetingService(
		repos.Organization,
		repos.Meeting,
		repos.Registrant,
		zoomProvider,
		messageBuilder,
	)
	registrantService := service.NewRegistrantService(
		repos.Organization,
		repos.Meeting,
		repos.Registrant,
		zoomProvider,
		messageBuilder,
		emailService,
	)
	ownerService := service.NewOwnerService(
		repos.Owner,
		repos.Organization,
		repos.Meeting,
		repos.Registrant,
		tokenManager,
		passwordHasher,
	)

	// Provision the initial owner account when configured.
	if env.InitialOwner.Email != "" && env.InitialOwner.Password != "" {
		if err := ownerService.EnsureOwner(ctx, env.InitialOwner.Name, env.InitialOwner.Email, env.InitialOwner.Password); err != nil {
			slog.With(logging.ErrKey, err).Error("error provisioning initial owner account")
			return
		}
	}

	// Initialize handlers and the HTTP server
	api := apiHandlers{
		organization: handlers.NewOrganizationHandler(organizationService),
		meeting:      handlers.NewMeetingHandler(meetingService, registrantService),
		registration: handlers.NewRegistrationHandler(meetingService, registrantService),
		owner:        handlers.NewOwnerHandler(ownerService),
		readyz: func() bool {
			return natsConn.IsConnected() &&
				organizationService.ServiceReady() &&
				meetingService.ServiceReady() &&
				registrantService.ServiceReady() &&
				ownerService.ServiceReady()
		},
	}

	httpServer := setupHTTPServer(flags, newRouter(api, tokenManager), &gracefulCloseWG)

	// This next line blocks until SIGINT or SIGTERM is received.
	<-done

	gracefulShutdown(httpServer, natsConn, &gracefulCloseWG, cancel)
}

// gracefulShutdown drains the HTTP server and the NATS connection before
// exiting.
func gracefulShutdown(httpServer *http.Server, natsConn *nats.Conn, gracefulCloseWG *sync.WaitGroup, cancel context.CancelFunc) {
	slog.Info("shutting down")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), gracefulShutdownSeconds*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.With(logging.ErrKey, err).Error("error shutting down http server")
	}
	gracefulCloseWG.Done()

	if natsConn != nil && !natsConn.IsClosed() {
		if err := natsConn.Drain(); err != nil {
			slog.With(logging.ErrKey, err).Error("error draining NATS connection")
			gracefulCloseWG.Done()
		}
	}

	gracefulCloseWG.Wait()
	slog.Info("shutdown complete")
}
