// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/linuxfoundation/lfx-v2-registration-service/internal/domain"
	"github.com/linuxfoundation/lfx-v2-registration-service/internal/infrastructure/email"
	"github.com/linuxfoundation/lfx-v2-registration-service/internal/infrastructure/store"
	"github.com/linuxfoundation/lfx-v2-registration-service/internal/logging"
)

const gracefulShutdownSeconds = 25

// setupNATS creates the NATS connection with graceful shutdown wiring
func setupNATS(ctx context.Context, env environment, gracefulCloseWG *sync.WaitGroup, done chan os.Signal) (*nats.Conn, error) {
	gracefulCloseWG.Add(1)
	natsConn, err := nats.Connect(
		env.NatsURL,
		nats.DrainTimeout(gracefulShutdownSeconds*time.Second),
		nats.ErrorHandler(func(_ *nats.Conn, s *nats.Subscription, err error) {
			if s != nil {
				slog.With(logging.ErrKey, err, "subject", s.Subject, "queue", s.Queue).Error("async NATS error")
			} else {
				slog.With(logging.ErrKey, err).Error("async NATS error outside subscription")
			}
		}),
		nats.ClosedHandler(func(_ *nats.Conn) {
			if ctx.Err() != nil {
				// Graceful shutdown already in progress.
				gracefulCloseWG.Done()
				return
			}
			slog.Error("NATS max-reconnects exhausted; connection closed")
			done <- os.Interrupt
			time.Sleep(5 * time.Second)
			os.Exit(1)
		}),
	)
	if err != nil {
		return nil, err
	}
	return natsConn, nil
}

// repositories bundles the service's key-value backed repositories
type repositories struct {
	Organization *store.NatsOrganizationRepository
	Meeting      *store.NatsMeetingRepository
	Registrant   *store.NatsRegistrantRepository
	Owner        *store.NatsOwnerRepository
}

// getKeyValueStores creates the JetStream KV buckets used by the service
// and wraps them in the repositories.
func getKeyValueStores(ctx context.Context, natsConn *nats.Conn) (*repositories, error) {
	js, err := jetstream.New(natsConn)
	if err != nil {
		return nil, err
	}

	buckets := make(map[string]jetstream.KeyValue, 4)
	for _, name := range []string{
		store.KVStoreNameOrganizations,
		store.KVStoreNameMeetings,
		store.KVStoreNameRegistrants,
		store.KVStoreNameOwners,
	} {
		bucket, err := js.CreateOrUpdateKeyValue(ctx, jetstream.KeyValueConfig{
			Bucket:  name,
			History: 1,
		})
		if err != nil {
			return nil, err
		}
		buckets[name] = bucket
	}

	return &repositories{
		Organization: store.NewNatsOrganizationRepository(buckets[store.KVStoreNameOrganizations]),
		Meeting:      store.NewNatsMeetingRepository(buckets[store.KVStoreNameMeetings]),
		Registrant:   store.NewNatsRegistrantRepository(buckets[store.KVStoreNameRegistrants]),
		Owner:        store.NewNatsOwnerRepository(buckets[store.KVStoreNameOwners]),
	}, nil
}

// setupEmailService picks the SMTP implementation when configured, the
// logging no-op otherwise.
func setupEmailService(env environment) domain.EmailService {
	if env.SMTP.Host == "" {
		slog.Info("SMTP_HOST not set; confirmation emails disabled")
		return email.NewNoopService()
	}
	return email.NewSMTPService(env.SMTP)
}
