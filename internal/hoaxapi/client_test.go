package hoaxapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hoax-detector/client/internal/apperr"
)

func TestCheckHealth(t *testing.T) {
	tests := []struct {
		name   string
		status int
		kind   apperr.Kind
	}{
		{"ok", http.StatusOK, apperr.KindUnknown},
		{"no content", http.StatusNoContent, apperr.KindUnknown},
		{"server error", http.StatusServiceUnavailable, apperr.KindServer},
		{"not found", http.StatusNotFound, apperr.KindServer},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodGet, r.Method)
				assert.Equal(t, "/health", r.URL.Path)
				w.WriteHeader(tc.status)
			}))
			defer srv.Close()

			err := NewClient(Config{BaseURL: srv.URL + "/"}).CheckHealth(context.Background())
			if tc.kind == apperr.KindUnknown {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tc.kind, apperr.KindOf(err))
			assert.Contains(t, err.Error(), strconv.Itoa(tc.status))
		})
	}
}

func TestCheckHealthUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	err := NewClient(Config{BaseURL: base}).CheckHealth(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrConnectivity))
	assert.Equal(t, MsgHealthUnreachable, err.Error())
}

func TestMissingBaseURLFailsFast(t *testing.T) {
	var calls int32
	transport := roundTripFunc(func(*http.Request) (*http.Response, error) {
		atomic.AddInt32(&calls, 1)
		return nil, errors.New("must not be called")
	})
	client := NewClient(Config{BaseURL: "  //", HTTPClient: &http.Client{Transport: transport}})

	_, err := client.Predict(context.Background(), "berita")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrConfiguration))

	err = client.CheckHealth(context.Background())
	assert.True(t, errors.Is(err, apperr.ErrConfiguration))
	assert.Zero(t, atomic.LoadInt32(&calls))
}

func TestPredictSendsJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/predict", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]string{"text": "Vaksin mengandung chip"}, body)

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"label":"hoax","score":0.91,"risk_level":"medium"}`)
	}))
	defer srv.Close()

	payload, err := NewClient(Config{BaseURL: srv.URL}).Predict(context.Background(), "Vaksin mengandung chip")
	require.NoError(t, err)
	assert.JSONEq(t, `{"label":"hoax","score":0.91,"risk_level":"medium"}`, string(payload))
}

func TestPredictServerErrors(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		contains []string
		detail   string
	}{
		{"detail string", http.StatusServiceUnavailable, `{"detail":"overloaded"}`, []string{"503", "overloaded"}, "overloaded"},
		{"detail list", http.StatusUnprocessableEntity, `{"detail":[{"msg":"field required"}]}`, []string{"422", "field required"}, `[{"msg":"field required"}]`},
		{"no detail", http.StatusInternalServerError, `{"error":"boom"}`, []string{"500", "Internal Server Error"}, ""},
		{"html body", http.StatusBadGateway, `<html>bad gateway</html>`, []string{"502", "Bad Gateway"}, ""},
		{"ok but not json", http.StatusOK, `not json`, []string{"200", "OK"}, ""},
		{"ok but empty", http.StatusOK, ``, []string{"200"}, ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = io.WriteString(w, tc.body)
			}))
			defer srv.Close()

			_, err := NewClient(Config{BaseURL: srv.URL}).Predict(context.Background(), "teks")
			require.Error(t, err)
			require.True(t, errors.Is(err, apperr.ErrServer), "expected server error, got %v", err)
			for _, want := range tc.contains {
				assert.Contains(t, err.Error(), want)
			}

			var appErr *apperr.Error
			require.True(t, errors.As(err, &appErr))
			assert.Equal(t, tc.status, appErr.Status)
			assert.Equal(t, tc.detail, appErr.Detail)
		})
	}
}

func TestPredictUsesServerReasonPhrase(t *testing.T) {
	tests := []struct {
		name     string
		status   string
		code     int
		expected string
	}{
		{"custom reason", "599 Model Sleeping", 599, "API error (599): Model Sleeping"},
		{"standard reason", "503 Service Unavailable", http.StatusServiceUnavailable, "API error (503): Service Unavailable"},
		{"missing reason uses standard text", "503", http.StatusServiceUnavailable, "API error (503): Service Unavailable"},
		{"nothing known", "599", 599, "API error (599): " + MsgPredictFallback},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			transport := roundTripFunc(func(r *http.Request) (*http.Response, error) {
				return &http.Response{
					Status:     tc.status,
					StatusCode: tc.code,
					Header:     make(http.Header),
					Body:       io.NopCloser(strings.NewReader("")),
					Request:    r,
				}, nil
			})
			client := NewClient(Config{BaseURL: "https://space.example.com", HTTPClient: &http.Client{Transport: transport}})

			_, err := client.Predict(context.Background(), "teks")
			require.Error(t, err)
			assert.True(t, errors.Is(err, apperr.ErrServer))
			assert.Equal(t, tc.expected, err.Error())
		})
	}
}

func TestPredictUnreachable(t *testing.T) {
	transport := roundTripFunc(func(*http.Request) (*http.Response, error) {
		return nil, errors.New("dial tcp 127.0.0.1:1: connect: connection refused")
	})
	client := NewClient(Config{BaseURL: "https://space.example.com", HTTPClient: &http.Client{Transport: transport}})

	_, err := client.Predict(context.Background(), "teks")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrConnectivity))
	assert.True(t, strings.HasPrefix(err.Error(), "Gagal terhubung"))
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}
