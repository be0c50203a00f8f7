package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v3"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPinger struct{ err error }

func (p stubPinger) PingContext(context.Context) error { return p.err }

func checkHealth(t *testing.T, h *HealthHandler) (int, map[string]any) {
	t.Helper()
	app := fiber.New()
	app.Get("/health", h.Check)

	resp, err := app.Test(httptest.NewRequest("GET", "/health", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestHealth(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	tests := []struct {
		name       string
		pingErr    error
		rdb        *redis.Client
		wantStatus int
		want       map[string]any
	}{
		{
			name:       "healthy without cache",
			wantStatus: fiber.StatusOK,
			want:       map[string]any{"status": "healthy", "database": "connected", "cache": "disabled"},
		},
		{
			name:       "healthy with cache",
			rdb:        rdb,
			wantStatus: fiber.StatusOK,
			want:       map[string]any{"status": "healthy", "database": "connected", "cache": "connected"},
		},
		{
			name:       "database down",
			pingErr:    errors.New("dial tcp 10.0.0.5:5432: connection refused"),
			rdb:        rdb,
			wantStatus: fiber.StatusServiceUnavailable,
			want:       map[string]any{"status": "unhealthy", "database": "disconnected", "error": "Database connection failed"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := checkHealth(t, NewHealthHandler(stubPinger{err: tt.pingErr}, tt.rdb, zerolog.Nop()))
			assert.Equal(t, tt.wantStatus, status)
			for k, v := range tt.want {
				assert.Equal(t, v, body[k], k)
			}
		})
	}
}
