package handler_test

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"tanuki-quiz/internal/adapter"
	"tanuki-quiz/internal/handler"

	"github.com/go-redis/redismock/v9"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func healthBody(t *testing.T, app *fiber.App) (int, map[string]string) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", "/health", nil))
	require.NoError(t, err)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestHealth_MemoryBackend(t *testing.T) {
	app := handler.NewApp(handler.Dependencies{})

	status, body := healthBody(t, app)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, map[string]string{"status": "ok"}, body)
}

func TestHealth_RedisBackend(t *testing.T) {
	client, mock := redismock.NewClientMock()
	store := adapter.NewRedisSessionStore(client, 5*time.Minute)
	app := handler.NewApp(handler.Dependencies{Redis: store})

	mock.ExpectPing().SetVal("PONG")
	status, body := healthBody(t, app)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "ok", body["redis"])

	mock.ExpectPing().SetErr(errors.New("connection refused"))
	status, body = healthBody(t, app)
	assert.Equal(t, fiber.StatusServiceUnavailable, status)
	assert.Equal(t, "degraded", body["status"])
	assert.Equal(t, "unreachable", body["redis"])

	assert.NoError(t, mock.ExpectationsWereMet())
}
