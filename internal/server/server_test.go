package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/require"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func serve(s *Server, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp := httptest.NewRecorder()
	s.Engine.ServeHTTP(resp, req)
	return resp
}

func TestHealth(t *testing.T) {
	tests := []struct {
		name           string
		ping           pingFunc
		expectedStatus int
	}{
		{
			name:           "store reachable",
			ping:           func(context.Context) error { return nil },
			expectedStatus: http.StatusOK,
		},
		{
			name:           "store unreachable",
			ping:           func(context.Context) error { return errors.New("connection refused") },
			expectedStatus: http.StatusInternalServerError,
		},
		{
			name: "ping is bounded",
			ping: func(ctx context.Context) error {
				_, ok := ctx.Deadline()
				if !ok {
					return errors.New("no deadline")
				}
				return nil
			},
			expectedStatus: http.StatusOK,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := New("127.0.0.1:0", tc.ping, nil, "release")
			resp := serve(s, http.MethodGet, "/health", nil)
			require.Equal(t, tc.expectedStatus, resp.Code)
		})
	}
}

func TestMetricsEndpoint(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := prometheus.NewCounter(prometheus.CounterOpts{Name: "barad_dur_test_total", Help: "test"})
	reg.MustRegister(c)
	c.Inc()

	s := New("127.0.0.1:0", nil, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}), "release")
	resp := serve(s, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	require.Contains(t, resp.Body.String(), "barad_dur_test_total 1")
}

func TestMetricsEndpointDisabled(t *testing.T) {
	s := New("127.0.0.1:0", nil, nil, "release")
	require.Equal(t, http.StatusNotFound, serve(s, http.MethodGet, "/metrics", nil).Code)
}

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	s := New("127.0.0.1:0", nil, nil, "release")

	resp := serve(s, http.MethodGet, "/health", nil)
	_, err := uuid.Parse(resp.Header().Get(RequestIDHeader))
	require.NoError(t, err)

	resp = serve(s, http.MethodGet, "/health", map[string]string{RequestIDHeader: "abc-123"})
	require.Equal(t, "abc-123", resp.Header().Get(RequestIDHeader))
}

func TestRunShutsDownOnCancel(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())

	s := New(addr, nil, nil, "release")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/health")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
