package api

import (
	"errors"
	"log/slog"
	"testing"
	"testing/iotest"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSigningKeyFromConfig_UsesConfiguredSecret(t *testing.T) {
	cfg := Config{JWTSecret: "configured-secret", TokenTTL: time.Hour}

	key, err := signingKeyFromConfig(cfg, slog.Default())
	require.NoError(t, err)
	require.Equal(t, []byte("configured-secret"), key)
}

func TestSigningKeyFromConfig_GeneratesEphemeralKey(t *testing.T) {
	key, err := signingKeyFromConfig(Config{}, slog.Default())
	require.NoError(t, err)
	// 32 random bytes, hex-encoded.
	require.Len(t, key, 64)

	other, err := signingKeyFromConfig(Config{}, slog.Default())
	require.NoError(t, err)
	require.NotEqual(t, key, other)
}

func TestEphemeralSigningKey_FailsWhenRandomnessUnavailable(t *testing.T) {
	broken := errors.New("entropy exhausted")

	_, err := ephemeralSigningKey(iotest.ErrReader(broken))
	require.ErrorIs(t, err, broken)
}
