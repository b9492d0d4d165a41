package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOpsMux(cfg *Config) *httprouter.Router {
	mux := httprouter.New()
	errs := make(chan error, 64)

	mux.GET("/", serveHomePage(cfg))
	mux.GET("/healthz", serveHealthCheck(cfg, errs))
	mux.GET("/robots.txt", serveRobots(cfg, errs))
	mux.GET("/version", serveVersion(cfg, errs))

	return mux
}

func get(t *testing.T, ts *httptest.Server, path string) *http.Response {
	t.Helper()

	resp, err := http.Get(ts.URL + path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	return resp
}

func TestOpsEndpoints(t *testing.T) {
	ts := httptest.NewServer(newOpsMux(&Config{}))
	t.Cleanup(ts.Close)

	resp := get(t, ts, "/healthz")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = get(t, ts, "/version")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = get(t, ts, "/robots.txt")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = get(t, ts, "/")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
}

func TestTriviaQRCode(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/trivia/qr")
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
}

func TestConfigValidate(t *testing.T) {
	tests := map[string]struct {
		mutate  func(*Config)
		wantErr bool
	}{
		"defaults pass": {
			mutate: func(c *Config) {},
		},
		"cert without key": {
			mutate:  func(c *Config) { c.tlsCert = "cert.pem" },
			wantErr: true,
		},
		"port out of range": {
			mutate:  func(c *Config) { c.port = 70000 },
			wantErr: true,
		},
		"zero rounds": {
			mutate:  func(c *Config) { c.rounds = 0 },
			wantErr: true,
		},
		"zero questions per round": {
			mutate:  func(c *Config) { c.questionsPerRound = 0 },
			wantErr: true,
		},
		"negative settle delay": {
			mutate:  func(c *Config) { c.settleDelay = -1 },
			wantErr: true,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := &Config{
				port:              8080,
				rounds:            2,
				questionsPerRound: 2,
			}
			tc.mutate(cfg)

			err := cfg.validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
