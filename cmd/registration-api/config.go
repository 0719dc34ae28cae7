// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package main

import (
	"flag"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/linuxfoundation/lfx-v2-registration-service/internal/infrastructure/email"
	"github.com/linuxfoundation/lfx-v2-registration-service/internal/logging"
)

// flags are the command line flags for the registration service.
type flags struct {
	Debug bool
	Port  string
	Bind  string
}

// environment are the environment variables for the registration service.
type environment struct {
	Port          string
	NatsURL       string
	JWTSecret     string
	TokenExpiry   time.Duration
	ZoomClientTTL time.Duration
	SMTP          email.SMTPConfig
	InitialOwner  initialOwnerConfig
}

// initialOwnerConfig provisions the first portal owner account at startup
type initialOwnerConfig struct {
	Name     string
	Email    string
	Password string
}

// parseFlags parses command line flags for the registration service
func parseFlags(defaultPort string) flags {
	var debug = flag.Bool("d", false, "enable debug logging")
	var port = flag.String("p", defaultPort, "listen port")
	var bind = flag.String("bind", "*", "interface to bind on")

	flag.Usage = func() {
		flag.PrintDefaults()
		os.Exit(2)
	}
	flag.Parse()

	// Based on the debug flag, set the log level environment variable used by [logging.InitStructureLogConfig]
	if *debug {
		err := os.Setenv("LOG_LEVEL", "debug")
		if err != nil {
			slog.With(logging.ErrKey, err).Error("error setting log level")
			os.Exit(1)
		}
	}

	return flags{
		Debug: *debug,
		Port:  *port,
		Bind:  *bind,
	}
}

// parseEnv parses environment variables for the registration service
func parseEnv() environment {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	natsURL := os.Getenv("NATS_URL")
	if natsURL == "" {
		natsURL = "nats://localhost:4222"
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		slog.Error("JWT_SECRET environment variable is required but not set")
		os.Exit(1)
	}

	return environment{
		Port:          port,
		NatsURL:       natsURL,
		JWTSecret:     jwtSecret,
		TokenExpiry:   durationFromEnv("TOKEN_EXPIRY"),
		ZoomClientTTL: durationFromEnv("ZOOM_CLIENT_TTL"),
		SMTP:          parseSMTPConfig(),
		InitialOwner: initialOwnerConfig{
			Name:     os.Getenv("INITIAL_OWNER_NAME"),
			Email:    os.Getenv("INITIAL_OWNER_EMAIL"),
			Password: os.Getenv("INITIAL_OWNER_PASSWORD"),
		},
	}
}

// parseSMTPConfig parses SMTP configuration from environment variables.
// An empty host disables email delivery.
func parseSMTPConfig() email.SMTPConfig {
	port := 587
	if raw := os.Getenv("SMTP_PORT"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			slog.With(logging.ErrKey, err, "value", raw).Error("invalid SMTP_PORT provided, using default")
		} else {
			port = parsed
		}
	}

	return email.SMTPConfig{
		Host:     os.Getenv("SMTP_HOST"),
		Port:     port,
		From:     os.Getenv("SMTP_FROM"),
		Username: os.Getenv("SMTP_USERNAME"),
		Password: os.Getenv("SMTP_PASSWORD"),
	}
}

func durationFromEnv(key string) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return 0
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		slog.With(logging.ErrKey, err, "key", key, "value", raw).Error("invalid duration provided, using default")
		return 0
	}
	return parsed
}
