package log_test

import (
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	applog "julex/internal/log"
)

func TestRequestFieldsAreLogged(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	applog.SetLogger(zap.New(core))
	defer applog.SetLogger(nil)

	app := fiber.New()
	app.Use(requestid.New())
	app.Get("/x", func(c *fiber.Ctx) error {
		c.Locals("user_id", "u-1")
		applog.Audit(c, "thing.done", map[string]any{"n": 1})
		applog.Error(c, "thing.fail", errors.New("boom"), nil)
		applog.Security(c, "thing.denied", nil)
		return c.SendStatus(fiber.StatusNoContent)
	})
	_, err := app.Test(httptest.NewRequest("GET", "/x", nil))
	require.NoError(t, err)

	entries := logs.All()
	require.Len(t, entries, 3)

	audit := entries[0].ContextMap()
	assert.Equal(t, "thing.done", audit["action"])
	assert.Equal(t, "GET", audit["method"])
	assert.Equal(t, "/x", audit["path"])
	assert.Equal(t, "u-1", audit["user_id"])
	assert.NotEmpty(t, audit["req_id"])
	assert.Equal(t, map[string]any{"n": 1, "kind": "audit"}, audit["fields"])

	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
	assert.Equal(t, "boom", entries[1].ContextMap()["err"])
	assert.Equal(t, zapcore.WarnLevel, entries[2].Level)
}

func TestInitWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	l, err := applog.Init("debug", path)
	require.NoError(t, err)
	defer applog.SetLogger(nil)

	applog.Info(nil, "boot", map[string]any{"port": "8080"})
	_ = l.Sync()

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"action":"boot"`)

	_, err = applog.Init("loud", "")
	assert.Error(t, err)
}
