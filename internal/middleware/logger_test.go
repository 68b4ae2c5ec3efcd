package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/go-petr/bitlease/pkg/configpkg"
)

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer

	logger := zerolog.New(&buf)

	gin.SetMode(gin.ReleaseMode)
	server := gin.New()
	server.Use(RequestLogger(logger))

	var fromCtx string

	server.GET("/ping", func(gctx *gin.Context) {
		zerolog.Ctx(gctx.Request.Context()).Info().Msg("inside")
		fromCtx = gctx.GetHeader(RequestIDHeader)
		gctx.Status(http.StatusOK)
	})

	t.Run("GeneratesRequestID", func(t *testing.T) {
		buf.Reset()

		req, err := http.NewRequest(http.MethodGet, "/ping", nil)
		require.NoError(t, err)

		recorder := httptest.NewRecorder()
		server.ServeHTTP(recorder, req)

		id := recorder.Header().Get(RequestIDHeader)
		require.NotEmpty(t, id)
		require.Equal(t, id, fromCtx)

		lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
		require.Len(t, lines, 2)

		for _, line := range lines {
			var entry map[string]any
			require.NoError(t, json.Unmarshal(line, &entry))
			require.Equal(t, id, entry["request_id"])
		}
	})

	t.Run("KeepsRequestID", func(t *testing.T) {
		buf.Reset()

		req, err := http.NewRequest(http.MethodGet, "/ping", nil)
		require.NoError(t, err)
		req.Header.Set(RequestIDHeader, "req-1")

		recorder := httptest.NewRecorder()
		server.ServeHTTP(recorder, req)

		require.Equal(t, "req-1", recorder.Header().Get(RequestIDHeader))
		require.Contains(t, buf.String(), `"status_code":200`)
	})
}

func TestCreateLogger(t *testing.T) {
	testCases := []struct {
		name        string
		environment string
		wantLevel   zerolog.Level
		wantCaller  bool
	}{
		{name: "Production", environment: "production", wantLevel: zerolog.InfoLevel},
		{name: "Development", environment: "development", wantLevel: zerolog.TraceLevel, wantCaller: true},
	}

	for _, tc := range testCases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			file := filepath.Join(t.TempDir(), "bitlease.log")

			l := CreateLogger(configpkg.Config{Environment: tc.environment, LogFile: file})
			require.Equal(t, tc.wantLevel, l.GetLevel())

			l.Info().Str("op", "lend").Msg("ledger updated")

			b, err := os.ReadFile(file)
			require.NoError(t, err)

			var entry map[string]any
			require.NoError(t, json.Unmarshal(bytes.TrimSpace(b), &entry))
			require.Equal(t, "ledger updated", entry["message"])
			require.Equal(t, "lend", entry["op"])

			_, hasCaller := entry["caller"]
			require.Equal(t, tc.wantCaller, hasCaller)
		})
	}
}
