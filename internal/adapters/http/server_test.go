package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/strops/pkg/core"
)

func newTestHandler() (http.Handler, *Metrics) {
	metrics := NewMetrics()
	svc := core.NewService(core.WithObserver(metrics))
	return NewHandler(svc, metrics, "0.1.0"), metrics
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestGetHealth(t *testing.T) {
	h, _ := newTestHandler()
	rr := do(t, h, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
}

func TestGetInfo(t *testing.T) {
	h, _ := newTestHandler()
	rr := do(t, h, http.MethodGet, "/info", "")

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "strops-http", resp["app"])
	assert.Equal(t, "0.1.0", resp["version"])
}

func TestGetOperations(t *testing.T) {
	h, _ := newTestHandler()
	rr := do(t, h, http.MethodGet, "/operations", "")

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp map[string][]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, []string{"reverse", "count-vowels", "capitalize-words"}, resp["operations"])
}

func TestApply(t *testing.T) {
	h, _ := newTestHandler()

	tests := []struct {
		path string
		want any
	}{
		{"/v1/reverse", "dlrow olleh"},
		{"/v1/vowels", float64(3)},
		{"/v1/capitalize-words", "Hello World"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rr := do(t, h, http.MethodPost, tt.path, `{"text":"hello world"}`)
			require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

			var resp map[string]any
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.Equal(t, tt.want, resp["output"])
			assert.Equal(t, "hello world", resp["input"])
		})
	}
}

func TestApplyAll(t *testing.T) {
	h, _ := newTestHandler()
	rr := do(t, h, http.MethodPost, "/v1/all", `{"text":"hello world"}`)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Results []core.Result `json:"results"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Len(t, resp.Results, 3)
	assert.Equal(t, core.OpCapitalizeWords, resp.Results[2].Operation)
	assert.Equal(t, "Hello World", resp.Results[2].Output)
}

func TestApply_Errors(t *testing.T) {
	h, _ := newTestHandler()

	tests := []struct {
		name string
		path string
		body string
		code int
	}{
		{"Unknown Operation", "/v1/shout", `{"text":"hi"}`, http.StatusNotFound},
		{"Malformed JSON", "/v1/reverse", `{"text":`, http.StatusBadRequest},
		{"Missing Text", "/v1/reverse", `{}`, http.StatusBadRequest},
		{"Non Text Value", "/v1/reverse", `{"text":42}`, http.StatusBadRequest},
		{"Non Text Value All", "/v1/all", `{"text":["a"]}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := do(t, h, http.MethodPost, tt.path, tt.body)
			assert.Equal(t, tt.code, rr.Code)

			var resp map[string]string
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.NotEmpty(t, resp["error"])
		})
	}
}

func TestMetrics(t *testing.T) {
	h, _ := newTestHandler()
	do(t, h, http.MethodPost, "/v1/reverse", `{"text":"abc"}`)
	do(t, h, http.MethodPost, "/v1/reverse", `{"text":"abc"}`)

	rr := do(t, h, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `strops_operations_total{operation="reverse",status="ok"} 2`)
}

func TestListenAndServe_Shutdown(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	h, _ := newTestHandler()
	ctx, cancel := context.WithCancel(context.Background())
	errs := make(chan error, 1)
	go func() {
		errs <- ListenAndServe(ctx, addr, h, slog.New(slog.NewTextHandler(io.Discard, nil)))
	}()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/health")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-errs:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
