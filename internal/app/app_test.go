package app

import (
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConfig() Config {
	config := DefaultConfig()
	config.UseMockCapture = true
	config.TestFyneApp = test.NewApp()
	return config
}

func TestNewApplicationWiresDependencies(t *testing.T) {
	application, err := NewApplication(newTestConfig())
	require.NoError(t, err)
	defer application.Shutdown()

	assert.NotNil(t, application.logger)
	assert.NotNil(t, application.eventBus)
	assert.NotNil(t, application.captureProvider)
	assert.NotNil(t, application.preferencesRepo)
	assert.NotNil(t, application.visualizerService)
	assert.NotNil(t, application.presenter)
	assert.NotNil(t, application.mainWindow)
}

func TestApplicationStartsIdleByDefault(t *testing.T) {
	application, err := NewApplication(newTestConfig())
	require.NoError(t, err)
	defer application.Shutdown()

	assert.False(t, application.visualizerService.Active())
}

func TestApplicationResumesCaptureFromPreference(t *testing.T) {
	config := newTestConfig()
	config.TestFyneApp.Preferences().SetBool("preferences.visualizer_enabled", true)

	application, err := NewApplication(config)
	require.NoError(t, err)
	defer application.Shutdown()

	assert.True(t, application.visualizerService.Active())
}

func TestApplicationShutdownIsIdempotentPerComponent(t *testing.T) {
	application, err := NewApplication(newTestConfig())
	require.NoError(t, err)

	application.Shutdown()
	assert.False(t, application.visualizerService.Active())
}

func TestNewApplicationRejectsBadPipelineConfig(t *testing.T) {
	config := newTestConfig()
	config.Pipeline.PointCount = 0

	_, err := NewApplication(config)
	assert.Error(t, err)
}

func TestVersionInfo(t *testing.T) {
	info := GetVersionInfo()
	assert.Equal(t, "dev", info.Version)
	assert.Contains(t, info.FullString(), "VoiceWave")
}
