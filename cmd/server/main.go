// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/getsentry/sentry-go"

	"github.com/MKhiriev/go-http-core/internal/audit"
	"github.com/MKhiriev/go-http-core/internal/auth"
	"github.com/MKhiriev/go-http-core/internal/config"
	"github.com/MKhiriev/go-http-core/internal/cors"
	"github.com/MKhiriev/go-http-core/internal/fault"
	"github.com/MKhiriev/go-http-core/internal/handler"
	"github.com/MKhiriev/go-http-core/internal/handler/http"
	"github.com/MKhiriev/go-http-core/internal/logger"
	"github.com/MKhiriev/go-http-core/internal/metrics"
	"github.com/MKhiriev/go-http-core/internal/notify"
	"github.com/MKhiriev/go-http-core/internal/scope"
	"github.com/MKhiriev/go-http-core/internal/server"
	"github.com/MKhiriev/go-http-core/internal/utils"
	"github.com/MKhiriev/go-http-core/internal/workers"
	"github.com/MKhiriev/go-http-core/models"
)

const serviceName = "go-http-core"

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	log := logger.NewLogger(serviceName)
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	if buildVersion == "" {
		buildVersion = cfg.App.Version
	}
	printBuildInfo()
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)

	m := metrics.NewMetrics()

	policies, watcher, err := newPolicies(cfg.CORS, m, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error loading cors policies")
	}

	publisher, closePublisher, err := newPublisher(cfg.Notify, buildInfo, m)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating failure publishers")
	}
	defer closePublisher()

	store := scope.NewStore()
	identity := auth.NewJWTIdentity(cfg.Auth.TokenSignKey, cfg.Auth.TokenIssuer)

	reporter := fault.NewReporter(fault.NewNormalizer(cfg.Fault.MaxDepth), publisher, log, os.Stderr, cfg.App.Debug)
	auditor := audit.NewAuditor(audit.Options{
		Print:     cfg.Access.Print,
		Log:       cfg.Access.Log,
		Hidden:    cfg.Access.Hidden,
		BodyLimit: cfg.Access.BodyLimit,
	}, store, identity, logger.NewLogger(serviceName+"-access"), os.Stdout)

	handlers, err := handler.NewHandlers(http.Deps{
		Store:     store,
		Policies:  policies,
		Reporter:  reporter,
		Auditor:   auditor,
		Metrics:   m,
		Identity:  identity,
		BuildInfo: buildInfo,
	}, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, m, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	var bg []workers.Worker
	if watcher != nil {
		bg = append(bg, watcher)
	}
	workersDone := make(chan error, 1)
	go func() { workersDone <- workers.NewWorkers(log, bg...).Run(ctx) }()

	if err := srv.RunServer(ctx); err != nil {
		log.Error().Err(err).Msg("error running server")
	}
	stop()
	<-workersDone
}

// newPolicies loads the CORS policy file when one is configured and returns
// a watcher for it; otherwise the policies come from the configuration.
func newPolicies(cfg config.CORS, m *metrics.Metrics, log *logger.Logger) (*cors.Policies, *workers.PolicyWatcher, error) {
	if cfg.PolicyFile == "" {
		return cors.NewPolicies(cfg.PolicySet()), nil, nil
	}

	set, err := cors.LoadPolicyFile(cfg.PolicyFile)
	if err != nil {
		return nil, nil, err
	}
	policies := cors.NewPolicies(set)
	return policies, workers.NewPolicyWatcher(cfg.PolicyFile, policies, m, log), nil
}

// newPublisher fans failures out to every configured destination. The
// returned close function flushes buffered events.
func newPublisher(cfg config.Notify, info models.AppBuildInfo, m *metrics.Metrics) (fault.Publisher, func(), error) {
	var (
		fanOut  notify.FanOut
		closeFn = func() {}
	)

	if cfg.SentryDSN != "" {
		sp, err := notify.NewSentryPublisher(sentry.ClientOptions{
			Dsn:         cfg.SentryDSN,
			Environment: cfg.Environment,
			Release:     info.BuildVersion(),
			ServerName:  serviceName,
		})
		if err != nil {
			return nil, nil, err
		}
		fanOut = append(fanOut, sp)
		closeFn = sp.Close
	}

	if cfg.WebhookURL != "" {
		wp, err := notify.NewWebhookPublisher(utils.NewHTTPClient(cfg.Timeout), cfg.WebhookURL, serviceName)
		if err != nil {
			return nil, nil, err
		}
		fanOut = append(fanOut, wp)
	}

	if len(fanOut) == 0 {
		return nil, closeFn, nil
	}
	return notify.WithFailureCounter(fanOut, m.IncPublishFailure), closeFn, nil
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
