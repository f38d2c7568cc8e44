package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/heartmarshall/daydrill/pkg/ctxutil"
)

func serveLogged(t *testing.T, status int, body string, req *http.Request) string {
	t.Helper()
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	})
	Logger(logger)(handler).ServeHTTP(httptest.NewRecorder(), req)
	return buf.String()
}

func TestLogger_Levels(t *testing.T) {
	tests := []struct {
		status int
		level  string
	}{
		{http.StatusOK, "INFO"},
		{http.StatusConflict, "WARN"},
		{http.StatusInternalServerError, "ERROR"},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			out := serveLogged(t, tt.status, "", httptest.NewRequest(http.MethodPost, "/api/session/enter", nil))
			if !strings.Contains(out, `"level":"`+tt.level+`"`) {
				t.Errorf("expected level %s, got %q", tt.level, out)
			}
		})
	}
}

func TestLogger_Fields(t *testing.T) {
	out := serveLogged(t, http.StatusOK, "hello", httptest.NewRequest(http.MethodGet, "/api/state", nil))

	for _, want := range []string{`"msg":"http.request"`, `"method":"GET"`, `"path":"/api/state"`, `"status":200`, `"bytes":5`, `"duration"`} {
		if !strings.Contains(out, want) {
			t.Errorf("expected log to contain %s, got %q", want, out)
		}
	}
}

func TestLogger_IncludesRequestID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(ctxutil.WithRequestID(req.Context(), "test-request-id-123"))

	out := serveLogged(t, http.StatusOK, "", req)
	if !strings.Contains(out, "test-request-id-123") {
		t.Errorf("expected log to contain request_id, got %q", out)
	}
}
