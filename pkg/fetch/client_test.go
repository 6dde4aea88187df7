package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redhat-appstudio/workshop-console/pkg/auth"
)

func newWorkshopServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/info", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"app":"Cloud Workshop","version":"1.0.0","port":8080}`))
	})
	mux.HandleFunc("/api/broken", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"boom"}`))
	})
	mux.HandleFunc("/api/bom", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte("\xef\xbb\xbf{\"app\":\"Cloud Workshop\"}"))
	})
	mux.HandleFunc("/api/secure", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"authorization":"` + r.Header.Get("Authorization") + `"}`))
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("<html><body>Not Found</body></html>"))
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestClient_GetJSON(t *testing.T) {
	server := newWorkshopServer(t)
	client := NewClient(Config{BaseURL: server.URL, Timeout: 5 * time.Second})

	tests := []struct {
		name        string
		path        string
		expected    string
		errContains string
	}{
		{
			name:     "valid json",
			path:     "/api/info",
			expected: `{"app":"Cloud Workshop","version":"1.0.0","port":8080}`,
		},
		{
			name:     "error status with json body is still returned",
			path:     "/api/broken",
			expected: `{"error":"boom"}`,
		},
		{
			name:        "html body fails to parse",
			path:        "/nonexistent",
			errContains: ErrJSONParse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, err := client.GetJSON(context.Background(), tt.path)
			if tt.errContains != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				assert.Nil(t, body)
				return
			}
			require.NoError(t, err)
			assert.JSONEq(t, tt.expected, string(body))
		})
	}
}

func TestClient_GetJSON_NetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	client := NewClient(Config{BaseURL: url})
	body, err := client.GetJSON(context.Background(), "/health")

	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrHTTPRequest)
	assert.Nil(t, body)
}

func TestClient_GetJSON_ContextCancellation(t *testing.T) {
	server := newWorkshopServer(t)
	client := NewClient(Config{BaseURL: server.URL})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.GetJSON(ctx, "/api/info")
	assert.Error(t, err, "Expected error due to cancelled context")
}

func TestClient_BearerToken(t *testing.T) {
	server := newWorkshopServer(t)
	client := NewClient(Config{BaseURL: server.URL, Token: "s3cret"})

	var got struct {
		Authorization string `json:"authorization"`
	}
	require.NoError(t, client.GetInto(context.Background(), "/api/secure", &got))
	assert.Equal(t, "Bearer s3cret", got.Authorization)
}

func TestClient_ExpiredToken(t *testing.T) {
	server := newWorkshopServer(t)
	// header {"alg":"none"}, payload {"sub":"42","exp":1000}
	expired := "eyJhbGciOiJub25lIn0.eyJzdWIiOiI0MiIsImV4cCI6MTAwMH0.sig"
	client := NewClient(Config{BaseURL: server.URL, Token: expired})

	_, err := client.GetJSON(context.Background(), "/api/secure")
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrTokenSource)
	assert.ErrorIs(t, err, auth.ErrTokenExpired)
}

func TestClient_GetInto(t *testing.T) {
	server := newWorkshopServer(t)
	client := NewClient(Config{BaseURL: server.URL})

	var info struct {
		App     string `json:"app"`
		Version string `json:"version"`
		Port    int    `json:"port"`
	}
	require.NoError(t, client.GetInto(context.Background(), "/api/info", &info))
	assert.Equal(t, "Cloud Workshop", info.App)
	assert.Equal(t, "1.0.0", info.Version)
	assert.Equal(t, 8080, info.Port)

	var wrongShape []string
	err := client.GetInto(context.Background(), "/api/info", &wrongShape)
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrJSONParse)
}

func TestClient_GetJSON_ByteOrderMark(t *testing.T) {
	server := newWorkshopServer(t)
	client := NewClient(Config{BaseURL: server.URL})

	body, err := client.GetJSON(context.Background(), "/api/bom")
	require.NoError(t, err)
	assert.Equal(t, `{"app":"Cloud Workshop"}`, string(body))
}

func TestPretty(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
		wantErr  bool
	}{
		{
			name:     "object keeps key order",
			raw:      `{"status":"ok","version":"1.0","environment":"dev"}`,
			expected: "{\n  \"status\": \"ok\",\n  \"version\": \"1.0\",\n  \"environment\": \"dev\"\n}",
		},
		{
			name:     "nested values",
			raw:      ` {"a":[1,2],"b":{"c":true}} `,
			expected: "{\n  \"a\": [\n    1,\n    2\n  ],\n  \"b\": {\n    \"c\": true\n  }\n}",
		},
		{
			name:     "scalar",
			raw:      `"hello"`,
			expected: `"hello"`,
		},
		{
			name:     "byte order mark",
			raw:      "\xef\xbb\xbf{\"a\":1}",
			expected: "{\n  \"a\": 1\n}",
		},
		{
			name:     "duplicate keys kept verbatim",
			raw:      `{"a":1,"a":2}`,
			expected: "{\n  \"a\": 1,\n  \"a\": 2\n}",
		},
		{
			name:    "invalid",
			raw:     `{"a":`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Pretty([]byte(tt.raw))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}
