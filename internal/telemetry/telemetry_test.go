package telemetry

import (
	"context"
	"ctchen222/tictactoe-engine/internal/config"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	semconv "go.opentelemetry.io/otel/semconv/v1.37.0"
)

func TestInitOtel_DisabledWithoutEndpoint(t *testing.T) {
	shutdown, err := InitOtel(context.Background(), config.Telemetry{ServiceName: "tictactoe-engine"})

	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))
}

func TestNewResource(t *testing.T) {
	res, err := newResource(config.Telemetry{ServiceName: "tictactoe-engine", ServiceVersion: "v1.2.3"})
	require.NoError(t, err)

	attrs := res.Set()
	name, ok := attrs.Value(semconv.ServiceNameKey)
	require.True(t, ok)
	assert.Equal(t, "tictactoe-engine", name.AsString())

	version, ok := attrs.Value(semconv.ServiceVersionKey)
	require.True(t, ok)
	assert.Equal(t, "v1.2.3", version.AsString())
}
