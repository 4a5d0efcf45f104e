package cache

import (
	"context"
	"strconv"
	"testing"

	"github.com/alicebob/miniredis/v2"

	"github.com/housekeep/core/internal/infrastructure/config"
	"github.com/housekeep/core/internal/infrastructure/logger"
)

func TestConnect(t *testing.T) {
	t.Run("Given redis disabled When connecting Then no client and no error", func(t *testing.T) {
		client, err := Connect(context.Background(), config.RedisConfig{Enabled: false}, logger.NewNop())
		if err != nil || client != nil {
			t.Fatalf("Connect() = %v, %v, want nil, nil", client, err)
		}
	})

	t.Run("Given a running server When connecting Then the client answers pings", func(t *testing.T) {
		mr := miniredis.RunT(t)
		port, err := strconv.Atoi(mr.Port())
		if err != nil {
			t.Fatalf("parse port: %v", err)
		}

		client, err := Connect(context.Background(), config.RedisConfig{Enabled: true, Host: mr.Host(), Port: port}, logger.NewNop())
		if err != nil {
			t.Fatalf("Connect() error = %v", err)
		}
		defer client.Close()

		if err := Ping(context.Background(), client); err != nil {
			t.Errorf("Ping() error = %v", err)
		}
	})

	t.Run("Given a cancelled context When the server is down Then the context error is returned", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := Connect(ctx, config.RedisConfig{Enabled: true, Host: "127.0.0.1", Port: 1}, logger.NewNop())
		if err == nil {
			t.Fatal("Connect() error = nil, want failure")
		}
	})
}
