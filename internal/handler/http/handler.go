// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-http-core/internal/audit"
	"github.com/MKhiriev/go-http-core/internal/auth"
	"github.com/MKhiriev/go-http-core/internal/cors"
	"github.com/MKhiriev/go-http-core/internal/fault"
	"github.com/MKhiriev/go-http-core/internal/logger"
	"github.com/MKhiriev/go-http-core/internal/metrics"
	"github.com/MKhiriev/go-http-core/internal/route"
	"github.com/MKhiriev/go-http-core/internal/scope"
	"github.com/MKhiriev/go-http-core/internal/utils"
	"github.com/MKhiriev/go-http-core/models"
)

// Deps are the collaborators the pipeline is built from. Metrics and
// Identity may be nil.
type Deps struct {
	Store    *scope.Store
	Policies *cors.Policies
	Reporter *fault.Reporter
	Auditor  *audit.Auditor
	Metrics  *metrics.Metrics
	Identity *auth.JWTIdentity

	BuildInfo models.AppBuildInfo

	// Group pins every request to one endpoint group regardless of the
	// matched route.
	Group string

	// RequestTimeout bounds handler execution. Zero disables it.
	RequestTimeout time.Duration
}

type Handler struct {
	store    *scope.Store
	registry *scope.ResponseDataRegistry
	policies *cors.Policies
	reporter *fault.Reporter
	auditor  *audit.Auditor
	metrics  *metrics.Metrics
	identity *auth.JWTIdentity

	buildInfo models.AppBuildInfo
	group     string
	timeout   time.Duration

	extra    []extraRoute
	router   *chi.Mux
	resolver *route.Resolver

	logger *logger.Logger
	ids    *utils.UUIDGenerator
	now    func() time.Time
}

func NewHandler(deps Deps, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		store:     deps.Store,
		registry:  scope.NewResponseDataRegistry(deps.Store),
		policies:  deps.Policies,
		reporter:  deps.Reporter,
		auditor:   deps.Auditor,
		metrics:   deps.Metrics,
		identity:  deps.Identity,
		buildInfo: deps.BuildInfo,
		group:     deps.Group,
		timeout:   deps.RequestTimeout,
		logger:    logger,
		ids:       utils.NewUUIDGenerator(),
		now:       time.Now,
	}
}

type extraRoute struct {
	method   string
	pattern  string
	endpoint Endpoint
}

// Handle registers an additional endpoint. It must be called before Init.
// Routes under /api belong to the api group, all others to the public one.
func (h *Handler) Handle(method, pattern string, e Endpoint) {
	h.extra = append(h.extra, extraRoute{method: method, pattern: pattern, endpoint: e})
}

// Init builds the router and returns the complete pipeline.
func (h *Handler) Init() http.Handler {
	h.router, h.resolver = h.routes()

	var s stage = h.routeStage
	s = h.withCORS(s)
	s = h.withExceptions(s)

	return withGZip(h.withScope(h.withTraceID(h.withDispatch(h.serve(s)))))
}
