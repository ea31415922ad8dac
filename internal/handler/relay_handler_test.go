package handler_test

import (
	"errors"
	"io"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/hommiefi/hommiefi-api/internal/handler"
	"github.com/hommiefi/hommiefi-api/internal/middleware"
	"github.com/hommiefi/hommiefi-api/internal/service"
)

func startFiberServer(t *testing.T, app *fiber.App) (string, func()) {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to create listener: %v", err)
	}

	done := make(chan struct{})
	go func() {
		if err := app.Listener(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			t.Logf("fiber listener stopped: %v", err)
		}
		close(done)
	}()

	time.Sleep(50 * time.Millisecond)

	shutdown := func() {
		_ = app.Shutdown()
		_ = listener.Close()
		select {
		case <-done:
		case <-time.After(100 * time.Millisecond):
		}
	}

	return "http://" + listener.Addr().String(), shutdown
}

func newRelayApp(t *testing.T) (string, func()) {
	t.Helper()

	app := fiber.New()
	app.Use(middleware.CorrelationID())

	relay := service.NewRelayService(nil, "", nil, zerolog.New(io.Discard))
	group := app.Group("/", func(c *fiber.Ctx) error {
		c.Locals("user_id", "user-"+c.Get("X-Test-User"))
		return c.Next()
	})
	handler.NewRelayHandler(relay, zerolog.New(io.Discard)).Register(group)

	return startFiberServer(t, app)
}

func dialRelay(t *testing.T, baseURL, user string) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(baseURL, "http") + "/ws"
	dialer := websocket.Dialer{HandshakeTimeout: 3 * time.Second}
	conn, resp, err := dialer.Dial(url, http.Header{"X-Test-User": {user}})
	require.NoError(t, err)
	if resp != nil {
		_ = resp.Body.Close()
	}
	return conn
}

func TestRelayForwardsFramesToOtherClients(t *testing.T) {
	baseURL, shutdown := newRelayApp(t)
	defer shutdown()

	alice := dialRelay(t, baseURL, "a")
	defer alice.Close()
	bob := dialRelay(t, baseURL, "b")
	defer bob.Close()

	// Give the server a beat to register both clients.
	time.Sleep(50 * time.Millisecond)

	frame := []byte(`{"type":"ping","from":"alice"}`)
	require.NoError(t, alice.WriteMessage(websocket.TextMessage, frame))

	require.NoError(t, bob.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, received, err := bob.ReadMessage()
	require.NoError(t, err)
	require.JSONEq(t, string(frame), string(received))
}

func TestRelayDoesNotEchoToSender(t *testing.T) {
	baseURL, shutdown := newRelayApp(t)
	defer shutdown()

	alice := dialRelay(t, baseURL, "a")
	defer alice.Close()
	bob := dialRelay(t, baseURL, "b")
	defer bob.Close()

	time.Sleep(50 * time.Millisecond)

	require.NoError(t, alice.WriteMessage(websocket.TextMessage, []byte(`{"type":"ping"}`)))

	require.NoError(t, alice.SetReadDeadline(time.Now().Add(300*time.Millisecond)))
	_, _, err := alice.ReadMessage()
	require.Error(t, err)
	require.True(t, strings.Contains(err.Error(), "timeout") || errors.Is(err, net.ErrClosed))
}

func TestRelayDropsInvalidJSONSilently(t *testing.T) {
	baseURL, shutdown := newRelayApp(t)
	defer shutdown()

	alice := dialRelay(t, baseURL, "a")
	defer alice.Close()
	bob := dialRelay(t, baseURL, "b")
	defer bob.Close()

	time.Sleep(50 * time.Millisecond)

	require.NoError(t, alice.WriteMessage(websocket.TextMessage, []byte("not json at all")))
	require.NoError(t, alice.WriteMessage(websocket.TextMessage, []byte(`{"type":"after"}`)))

	// The invalid frame is dropped; the next valid frame still arrives and
	// the sender's connection stays open.
	require.NoError(t, bob.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, received, err := bob.ReadMessage()
	require.NoError(t, err)
	require.JSONEq(t, `{"type":"after"}`, string(received))
}
