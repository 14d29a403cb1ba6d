package telemetry

import (
	"context"
	"ctchen222/Tic-Tac-Toe-Minimax/internal/config"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
)

func TestInitOtel_DisabledKeepsNoopProviders(t *testing.T) {
	before := otel.GetTracerProvider()

	shutdown, err := InitOtel(context.Background(), &config.Config{})
	require.NoError(t, err)
	assert.Same(t, before, otel.GetTracerProvider())
	assert.NoError(t, shutdown(context.Background()))
}

func TestInitOtel_Stdout(t *testing.T) {
	prev := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	shutdown, err := InitOtel(context.Background(), &config.Config{OtelStdout: true})
	require.NoError(t, err)
	assert.NotSame(t, prev, otel.GetTracerProvider())
	assert.NoError(t, shutdown(context.Background()))
}
