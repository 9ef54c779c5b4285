package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/piresc/swastha/internal/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testLogger() *logger.ZapLogger {
	return logger.NewFromZap(zap.NewNop(), "test")
}

func freeAddr(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())
	return addr
}

func TestShutdownManager_ReverseOrderAndErrors(t *testing.T) {
	sm := NewShutdownManager(testLogger())

	var order []string
	sm.Register("redis", func(context.Context) error {
		order = append(order, "redis")
		return nil
	})
	sm.Register("janitor", func(context.Context) error {
		order = append(order, "janitor")
		return errors.New("already stopped")
	})
	sm.Register("nsq", func(context.Context) error {
		order = append(order, "nsq")
		return nil
	})

	err := sm.Shutdown(context.Background())

	assert.EqualError(t, err, "already stopped")
	assert.Equal(t, []string{"nsq", "janitor", "redis"}, order)
}

func TestShutdownManager_Empty(t *testing.T) {
	assert.NoError(t, NewShutdownManager(testLogger()).Shutdown(context.Background()))
}

func TestGracefulServer_RunStopsOnContextCancel(t *testing.T) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.GET("/ping", func(c echo.Context) error { return c.String(http.StatusOK, "pong") })

	closed := false
	sm := NewShutdownManager(testLogger())
	sm.Register("store", func(context.Context) error {
		closed = true
		return nil
	})

	addr := freeAddr(t)
	srv := NewGracefulServer(e, testLogger(), addr, time.Second, sm)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/ping")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not stop")
	}
	assert.True(t, closed)
}

func TestGracefulServer_RunReturnsListenError(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	srv := NewGracefulServer(e, testLogger(), l.Addr().String(), time.Second, nil)

	err = srv.Run(context.Background())
	assert.Error(t, err)
}
