// Package main is the production entry point for the VoiceWave waveform
// visualizer.
//
// VoiceWave renders a microphone-driven oscilloscope line with clean
// architecture:
// - Event-driven communication (no callbacks)
// - Dependency injection for testability
// - MVP pattern for UI decoupling
// - Repository pattern for data persistence
//
// Build:
//
//	go build -o build/voicewave ./cmd
//
// Run:
//
//	./build/voicewave
package main

import (
	"fmt"
	"log"

	"github.com/wavelight/voicewave/internal/app"
)

func main() {
	config := app.DefaultConfig()

	// Create the application with dependency injection
	application, err := app.NewApplication(config)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	// Ensure a graceful shutdown
	defer func() {
		fmt.Println("\nShutting down...")
		application.Shutdown()
	}()

	// Run application (blocks until the window closed)
	application.Run()
}
