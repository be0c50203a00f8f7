package middleware

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog"
)

func TestSanitizePath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"/channels", "/channels"},
		{"/channels/UC_x5XG1OV2P6uZZ5FSM9Ttw", "/channels/:channel_id"},
		{"/channels/UC_x5XG1OV2P6uZZ5FSM9Ttw/videos", "/channels/:channel_id/videos"},
		{"/backup/videos", "/backup/:kind"},
		{"/videos", "/videos"},
	}
	for _, tt := range tests {
		if got := sanitizePath(tt.in); got != tt.want {
			t.Errorf("sanitizePath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRequestLogger_WritesStructuredLine(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	app := fiber.New()
	app.Use(NewRequestLogger(log, "salt"))
	app.Get("/channels/:id", func(c fiber.Ctx) error {
		return ErrorResponse(c, fiber.StatusNotFound, CodeNotFound, "Channel not found")
	})

	if _, err := app.Test(httptest.NewRequest("GET", "/channels/UC_secret", nil)); err != nil {
		t.Fatal(err)
	}

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("log line is not JSON: %v (%s)", err, buf.String())
	}
	if line["level"] != "warn" {
		t.Errorf("level = %v, want warn", line["level"])
	}
	if line["path"] != "/channels/:channel_id" {
		t.Errorf("path = %v", line["path"])
	}
	if line["status"] != float64(404) {
		t.Errorf("status = %v", line["status"])
	}
	if ip, _ := line["ip_hash"].(string); len(ip) != 16 {
		t.Errorf("ip_hash = %v, want 16 hex chars", line["ip_hash"])
	}
}
