package visualizer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wavelight/voicewave/internal/domain"
)

func TestDefaultConfigValid(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())
}

func TestConfigValidateRejectsPointCount(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PointCount = 1
	assert.ErrorIs(t, cfg.Validate(), domain.ErrInvalidPointCount)
}
