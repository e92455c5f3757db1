// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-http-core/internal/audit"
	"github.com/MKhiriev/go-http-core/internal/cors"
	"github.com/MKhiriev/go-http-core/internal/fault"
	"github.com/MKhiriev/go-http-core/internal/logger"
	"github.com/MKhiriev/go-http-core/internal/metrics"
	"github.com/MKhiriev/go-http-core/internal/mock"
	"github.com/MKhiriev/go-http-core/internal/scope"
	"github.com/MKhiriev/go-http-core/models"
)

const origin = "https://app.example.com"

type envOptions struct {
	publisher fault.Publisher
	debug     bool
	def       cors.PolicyConfig
	groups    map[string]cors.PolicyConfig
	group     string
	timeout   time.Duration
	register  func(h *Handler)
}

type testEnv struct {
	handler   *Handler
	server    http.Handler
	store     *scope.Store
	appLog    *bytes.Buffer
	accessLog *bytes.Buffer
}

func newTestEnv(t *testing.T, opts envOptions) *testEnv {
	t.Helper()

	env := &testEnv{
		store:     scope.NewStore(),
		appLog:    &bytes.Buffer{},
		accessLog: &bytes.Buffer{},
	}
	appLog := logger.NewWriterLogger(env.appLog, "server")

	reporter := fault.NewReporter(fault.NewNormalizer(fault.DefaultMaxDepth), opts.publisher, appLog, nil, opts.debug)
	auditor := audit.NewAuditor(
		audit.Options{Log: true, Hidden: []string{"password"}},
		env.store, nil, logger.NewWriterLogger(env.accessLog, "access"), nil,
	)

	env.handler = NewHandler(Deps{
		Store:          env.store,
		Policies:       cors.NewPolicies(cors.NewPolicySet(opts.def, opts.groups)),
		Reporter:       reporter,
		Auditor:        auditor,
		Metrics:        metrics.NewMetrics(),
		BuildInfo:      models.NewAppBuildInfo("1.2.3", "", ""),
		Group:          opts.group,
		RequestTimeout: opts.timeout,
	}, appLog)
	if opts.register != nil {
		opts.register(env.handler)
	}
	env.server = env.handler.Init()
	return env
}

func (e *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	e.server.ServeHTTP(rr, req)
	return rr
}

func (e *testEnv) accessEntries(t *testing.T) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range bytes.Split(bytes.TrimSpace(e.accessLog.Bytes()), []byte("\n")) {
		if len(line) == 0 {
			continue
		}
		var entry map[string]any
		require.NoError(t, json.Unmarshal(line, &entry))
		out = append(out, entry)
	}
	return out
}

func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var env map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	return env
}

func TestPipeline_PlainRequest(t *testing.T) {
	env := newTestEnv(t, envOptions{})

	rr := env.do(httptest.NewRequest(http.MethodGet, "/api/version", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json; charset=utf-8", rr.Header().Get("Content-Type"))
	assert.NotEmpty(t, rr.Header().Get(traceIDHeader))
	assert.Empty(t, rr.Header().Get(cors.HeaderAllowOrigin), "no Origin, no CORS")
	assert.JSONEq(t, `{"code":200,"data":{"version":"1.2.3","date":"N/A","commit":"N/A"},"message":"Success"}`, rr.Body.String())
	assert.Zero(t, env.store.Len(), "scope destroyed")

	entries := env.accessEntries(t)
	require.Len(t, entries, 1)
	assert.Equal(t, "/api/version", entries[0]["path"])
	assert.Equal(t, models.Ignored, entries[0]["response_body"])
	assert.Equal(t, rr.Header().Get(traceIDHeader), entries[0]["trace_id"])
}

func TestPipeline_CorsWildcardEchoesOrigin(t *testing.T) {
	env := newTestEnv(t, envOptions{})

	req := httptest.NewRequest(http.MethodGet, "/api/version", nil)
	req.Header.Set("Origin", origin)
	rr := env.do(req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, origin, rr.Header().Get(cors.HeaderAllowOrigin))
	assert.Equal(t, "GET", rr.Header().Get(cors.HeaderAllowMethods))
	assert.Equal(t, "true", rr.Header().Get(cors.HeaderAllowCredentials))
	assert.Equal(t, "86400", rr.Header().Get(cors.HeaderMaxAge))
	assert.Equal(t, "X-Trace-Id", rr.Header().Get(cors.HeaderExposeHeaders))
}

func TestPipeline_PreflightShortCircuits(t *testing.T) {
	var calls atomic.Int32
	env := newTestEnv(t, envOptions{register: func(h *Handler) {
		h.Handle(http.MethodPost, "/api/count", func(r *http.Request) (any, error) {
			calls.Add(1)
			return nil, nil
		})
	}})

	req := httptest.NewRequest(http.MethodOptions, "/api/count", nil)
	req.Header.Set("Origin", origin)
	req.Header.Set(cors.HeaderRequestMethod, "post")
	req.Header.Set(cors.HeaderRequestHeaders, "content-type, x-custom")
	rr := env.do(req)

	assert.Equal(t, int32(0), calls.Load(), "handler must not run for a preflight")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Zero(t, rr.Body.Len())
	assert.Equal(t, origin, rr.Header().Get(cors.HeaderAllowOrigin))
	assert.Equal(t, "POST", rr.Header().Get(cors.HeaderAllowMethods))
	assert.Equal(t, "Content-Type,X-Custom", rr.Header().Get(cors.HeaderAllowHeaders))
	assert.Zero(t, env.store.Len())
	assert.Empty(t, env.accessEntries(t), "preflight matches no route")

	post := httptest.NewRequest(http.MethodPost, "/api/count", nil)
	post.Header.Set("Origin", origin)
	rr = env.do(post)
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestPipeline_GroupPolicyMismatchOmitsHeader(t *testing.T) {
	env := newTestEnv(t, envOptions{groups: map[string]cors.PolicyConfig{
		GroupAPI: {Origin: &cors.Rule{Values: []string{"https://other.example.com"}}},
	}})

	req := httptest.NewRequest(http.MethodGet, "/api/version", nil)
	req.Header.Set("Origin", origin)
	rr := env.do(req)

	assert.Equal(t, http.StatusOK, rr.Code, "a mismatch is not an error")
	assert.Empty(t, rr.Header().Get(cors.HeaderAllowOrigin))
	assert.Equal(t, "GET", rr.Header().Get(cors.HeaderAllowMethods), "other fields inherit the default")

	health := httptest.NewRequest(http.MethodGet, "/health", nil)
	health.Header.Set("Origin", origin)
	rr = env.do(health)
	assert.Equal(t, origin, rr.Header().Get(cors.HeaderAllowOrigin), "public group uses the default")
}

func TestPipeline_GroupOverrideWins(t *testing.T) {
	credentials := false
	env := newTestEnv(t, envOptions{
		group: "admin",
		groups: map[string]cors.PolicyConfig{
			"admin": {Credentials: &credentials},
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/version", nil)
	req.Header.Set("Origin", origin)
	rr := env.do(req)

	assert.Equal(t, "false", rr.Header().Get(cors.HeaderAllowCredentials))
}

func TestPipeline_FailureKeepsCorsHeaders(t *testing.T) {
	ctrl := gomock.NewController(t)
	publisher := mock.NewMockPublisher(ctrl)
	publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, rec models.ErrorRecord) error {
			assert.Equal(t, "storage unavailable", rec.Message)
			return nil
		})

	env := newTestEnv(t, envOptions{
		publisher: publisher,
		register: func(h *Handler) {
			h.Handle(http.MethodGet, "/api/fail", func(r *http.Request) (any, error) {
				return nil, errors.New("storage unavailable")
			})
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/fail", nil)
	req.Header.Set("Origin", origin)
	rr := env.do(req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, origin, rr.Header().Get(cors.HeaderAllowOrigin))
	assert.Equal(t, "X-Trace-Id", rr.Header().Get(cors.HeaderExposeHeaders))
	assert.JSONEq(t, `{"code":500,"data":null,"message":"Internal Server Error."}`, rr.Body.String())
	assert.Contains(t, env.appLog.String(), "storage unavailable")
	assert.Empty(t, env.accessEntries(t), "failures are not audited as records")
	assert.Zero(t, env.store.Len())
}

func TestPipeline_PublishFailureDoesNotChangeResponse(t *testing.T) {
	ctrl := gomock.NewController(t)
	publisher := mock.NewMockPublisher(ctrl)
	publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(errors.New("sentry down"))

	env := newTestEnv(t, envOptions{
		publisher: publisher,
		register: func(h *Handler) {
			h.Handle(http.MethodGet, "/api/fail", func(r *http.Request) (any, error) {
				return nil, errors.New("primary")
			})
		},
	})

	rr := env.do(httptest.NewRequest(http.MethodGet, "/api/fail", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"code":500,"data":null,"message":"Internal Server Error."}`, rr.Body.String())
	assert.Contains(t, env.appLog.String(), "sentry down")
}

func TestPipeline_UnencodableResultIsFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	publisher := mock.NewMockPublisher(ctrl)
	publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, rec models.ErrorRecord) error {
			assert.Contains(t, rec.Message, "NaN")
			return nil
		})

	env := newTestEnv(t, envOptions{
		publisher: publisher,
		register: func(h *Handler) {
			h.Handle(http.MethodGet, "/api/nan", func(r *http.Request) (any, error) {
				return map[string]any{"x": math.NaN()}, nil
			})
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/nan", nil)
	req.Header.Set("Origin", origin)
	rr := env.do(req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "application/json; charset=utf-8", rr.Header().Get("Content-Type"))
	assert.Equal(t, origin, rr.Header().Get(cors.HeaderAllowOrigin))
	assert.JSONEq(t, `{"code":500,"data":null,"message":"Internal Server Error."}`, rr.Body.String())
	assert.Contains(t, env.appLog.String(), "encoding result")
	assert.Empty(t, env.accessEntries(t))
	assert.Zero(t, env.store.Len())
}

func TestPipeline_DebugEnvelope(t *testing.T) {
	env := newTestEnv(t, envOptions{
		debug: true,
		register: func(h *Handler) {
			h.Handle(http.MethodGet, "/api/fail", func(r *http.Request) (any, error) {
				return nil, errors.New("visible")
			})
		},
	})

	rr := env.do(httptest.NewRequest(http.MethodGet, "/api/fail", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	body := decodeEnvelope(t, rr)
	assert.Equal(t, "visible", body["message"])
	assert.Equal(t, "*errors.errorString", body["type"])
	assert.Contains(t, body, "trace")
	assert.Contains(t, body, "previous")
}

func TestPipeline_PanicBecomesFailure(t *testing.T) {
	env := newTestEnv(t, envOptions{
		debug: true,
		register: func(h *Handler) {
			h.Handle(http.MethodGet, "/api/panic", func(r *http.Request) (any, error) {
				panic("boom")
			})
		},
	})

	rr := env.do(httptest.NewRequest(http.MethodGet, "/api/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	body := decodeEnvelope(t, rr)
	assert.Equal(t, "panic: boom", body["message"])
	assert.Equal(t, "*http.PanicError", body["type"])
	assert.NotEmpty(t, body["file"])
	assert.Zero(t, env.store.Len())
}

func TestPipeline_AbortPanicPropagates(t *testing.T) {
	env := newTestEnv(t, envOptions{register: func(h *Handler) {
		h.Handle(http.MethodGet, "/api/abort", func(r *http.Request) (any, error) {
			panic(http.ErrAbortHandler)
		})
	}})

	assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
		env.do(httptest.NewRequest(http.MethodGet, "/api/abort", nil))
	})
	assert.Zero(t, env.store.Len(), "scope released on abort")
}

func TestPipeline_TimeoutIsFailure(t *testing.T) {
	env := newTestEnv(t, envOptions{
		timeout: 10 * time.Millisecond,
		register: func(h *Handler) {
			h.Handle(http.MethodGet, "/api/slow", func(r *http.Request) (any, error) {
				<-r.Context().Done()
				return "late", nil
			})
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/slow", nil)
	req.Header.Set("Origin", origin)
	rr := env.do(req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, origin, rr.Header().Get(cors.HeaderAllowOrigin))
	assert.Contains(t, env.appLog.String(), ErrRequestAborted.Error())
}

func TestPipeline_LargeIntegersBecomeStrings(t *testing.T) {
	env := newTestEnv(t, envOptions{register: func(h *Handler) {
		h.Handle(http.MethodGet, "/api/numbers", func(r *http.Request) (any, error) {
			return map[string]any{
				"big":   int64(math.MaxInt32) + 1,
				"max":   math.MaxInt32,
				"small": int64(math.MinInt32) - 1,
			}, nil
		})
	}})

	rr := env.do(httptest.NewRequest(http.MethodGet, "/api/numbers", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"code":200,"data":{"big":"2147483648","max":2147483647,"small":"-2147483649"},"message":"Success"}`, rr.Body.String())
}

func TestPipeline_FailedDataBag(t *testing.T) {
	env := newTestEnv(t, envOptions{register: func(h *Handler) {
		h.Handle(http.MethodPost, "/api/reject", func(r *http.Request) (any, error) {
			return models.Failed("name is required", http.StatusUnprocessableEntity), nil
		})
	}})

	rr := env.do(httptest.NewRequest(http.MethodPost, "/api/reject", nil))

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.JSONEq(t, `{"code":422,"data":null,"message":"name is required"}`, rr.Body.String())
	assert.Empty(t, env.accessEntries(t), "non-2xx statuses are not recorded")
}

func TestPipeline_NotFound(t *testing.T) {
	env := newTestEnv(t, envOptions{})

	rr := env.do(httptest.NewRequest(http.MethodGet, "/api/missing", nil))

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"code":404,"data":null,"message":"Not Found"}`, rr.Body.String())
	assert.Empty(t, env.accessEntries(t))

	rr = env.do(httptest.NewRequest(http.MethodDelete, "/api/version", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestPipeline_EchoIsAuditedAndRedacted(t *testing.T) {
	env := newTestEnv(t, envOptions{})

	body := `{"user":"bob","password":"secret","n":4294967296}`
	req := httptest.NewRequest(http.MethodPost, "/api/echo?password=x", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := env.do(req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"code":200,"data":{"user":"bob","password":"secret","n":"4294967296"},"message":"Success"}`, rr.Body.String())

	entries := env.accessEntries(t)
	require.Len(t, entries, 1)
	assert.Equal(t, map[string]any{"password": "<hidden>"}, entries[0]["query"])
	assert.Equal(t, map[string]any{"user": "bob", "password": "<hidden>", "n": "4294967296"}, entries[0]["request_body"])
	assert.Equal(t, map[string]any{"user": "bob", "password": "<hidden>", "n": "4294967296"}, entries[0]["response_body"])
}

func TestPipeline_GzipBodyIsAuditedDecoded(t *testing.T) {
	env := newTestEnv(t, envOptions{})

	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	_, _ = gw.Write([]byte(`{"password":"p"}`))
	require.NoError(t, gw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/echo", &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Content-Encoding", "gzip")
	rr := env.do(req)

	require.Equal(t, http.StatusOK, rr.Code)
	entries := env.accessEntries(t)
	require.Len(t, entries, 1)
	assert.Equal(t, map[string]any{"password": "<hidden>"}, entries[0]["request_body"])
}

func TestPipeline_OversizedBodyStillReachesHandler(t *testing.T) {
	env := newTestEnv(t, envOptions{})

	payload := `{"blob":"` + strings.Repeat("a", 2000) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/echo", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rr := env.do(req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), strings.Repeat("a", 2000))

	entries := env.accessEntries(t)
	require.Len(t, entries, 1)
	assert.Equal(t, models.EntityTooLarge, entries[0]["request_body"])
	assert.Equal(t, models.EntityTooLarge, entries[0]["response_body"])
}

func TestPipeline_ConcurrentRequestsAreIsolated(t *testing.T) {
	env := newTestEnv(t, envOptions{register: func(h *Handler) {
		h.Handle(http.MethodPost, "/api/self", func(r *http.Request) (any, error) {
			return map[string]any{"id": r.URL.Query().Get("id")}, nil
		})
	}})

	const n = 64
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			id := string(rune('A' + i%26))
			rr := env.do(httptest.NewRequest(http.MethodPost, "/api/self?id="+id, nil))
			assert.JSONEq(t, `{"code":200,"data":{"id":"`+id+`"},"message":"Success"}`, rr.Body.String())
		}()
	}
	wg.Wait()

	assert.Zero(t, env.store.Len())
	for _, entry := range env.accessEntries(t) {
		query := entry["query"].(map[string]any)
		response := entry["response_body"].(map[string]any)
		assert.Equal(t, query["id"], response["id"])
	}
}
