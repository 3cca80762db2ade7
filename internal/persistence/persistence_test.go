package persistence

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/attendance-service/internal/config"
)

func TestDisabledClients(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()

	pg, err := NewPostgres(ctx, config.PostgresConfig{}, logger)
	require.NoError(t, err)
	assert.Nil(t, pg.PoolHandle())
	assert.ErrorIs(t, pg.Ping(ctx), ErrNotConfigured)
	pg.Close()

	rdb := NewRedis(config.RedisConfig{}, logger)
	assert.False(t, rdb.Enabled())
	assert.ErrorIs(t, rdb.Ping(ctx), ErrNotConfigured)
	assert.ErrorIs(t, rdb.Publish(ctx, "attendees.registered", []byte(`{}`)), ErrNotConfigured)
	rdb.Close()

	mq, err := NewRabbitMQ(config.RabbitMQConfig{}, logger)
	require.NoError(t, err)
	assert.False(t, mq.Enabled())
	assert.ErrorIs(t, mq.Ping(ctx), ErrNotConfigured)
	assert.ErrorIs(t, mq.Publish(ctx, "attendee.registered", []byte(`{}`)), ErrNotConfigured)
	mq.Close()
}

func TestRunMigrations_NoPool(t *testing.T) {
	assert.NoError(t, RunMigrations(context.Background(), nil, zap.NewNop()))
}

func TestMigrationNames(t *testing.T) {
	names, err := migrationNames(migrationFiles)
	require.NoError(t, err)
	require.NotEmpty(t, names)
	assert.Equal(t, "001_events.sql", names[0])
}
