//go:build integration

package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func amqpURI(ctx context.Context, t *testing.T) string {
	if uri := os.Getenv("TEST_RABBITMQ_URL"); uri != "" {
		return uri
	}
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "rabbitmq:3-management",
			ExposedPorts: []string{"5672/tcp"},
			Env: map[string]string{
				"RABBITMQ_DEFAULT_USER": "guest",
				"RABBITMQ_DEFAULT_PASS": "guest",
			},
			WaitingFor: wait.ForListeningPort("5672/tcp").WithStartupTimeout(2 * time.Minute),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate rabbitmq container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5672/tcp")
	require.NoError(t, err)
	return fmt.Sprintf("amqp://guest:guest@%s:%s/", host, port.Port())
}

func TestKitchenTopology_PublishAndConsume(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	conn, err := Connect(ctx, amqpURI(ctx, t), 10, time.Second)
	require.NoError(t, err)
	defer conn.Close()

	ch, err := SetupChannel(conn, KitchenTopology())
	require.NoError(t, err)
	defer ch.Close()

	queue, err := ch.QueueInspect(KitchenQueue)
	require.NoError(t, err)
	assert.Equal(t, KitchenQueue, queue.Name)

	require.NoError(t, NewPublisher(ch, KitchenExchange).Publish(ctx, DigestRoutingKey, map[string]any{"total": 3}))

	received := make(chan map[string]any, 1)
	consumeCtx, stop := context.WithCancel(ctx)
	defer stop()
	go func() {
		_ = ConsumeMessages(consumeCtx, ch, KitchenQueue, slog.New(slog.NewTextHandler(io.Discard, nil)), func(body []byte) error {
			var msg map[string]any
			if err := json.Unmarshal(body, &msg); err != nil {
				return err
			}
			received <- msg
			return nil
		})
	}()

	select {
	case msg := <-received:
		assert.Equal(t, float64(3), msg["total"])
	case <-time.After(10 * time.Second):
		t.Fatal("timeout waiting for digest")
	}
}
