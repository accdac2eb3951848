package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatorAcceptsDefaultConfig(t *testing.T) {
	v, err := NewValidator()
	require.NoError(t, err)

	assert.NoError(t, v.Validate(Default()))
}

func TestValidatorRejectsUnknownTransportKind(t *testing.T) {
	v, err := NewValidator()
	require.NoError(t, err)

	cfg := Default()
	cfg.Transport.Kind = "carrier-pigeon"
	assert.Error(t, v.Validate(cfg))
}

func TestValidatorRejectsNegativeTimeout(t *testing.T) {
	v, err := NewValidator()
	require.NoError(t, err)

	cfg := Default()
	cfg.Attach.TimeoutSeconds = -1
	assert.Error(t, v.Validate(cfg))
}
