// Package testctr provides helpers for tests backed by testcontainers.
package testctr

import (
	"context"
	"os"
	"os/exec"
	"testing"
	"time"
)

// SkipIfDockerNotAvailable skips the calling test when no Docker daemon can
// be reached. Set TESTCONTAINERS_SKIP=true to skip container tests outright.
func SkipIfDockerNotAvailable(t *testing.T) {
	t.Helper()

	if os.Getenv("TESTCONTAINERS_SKIP") == "true" {
		t.Skip("Skipping test: TESTCONTAINERS_SKIP is set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := exec.CommandContext(ctx, "docker", "info").Run(); err != nil {
		t.Skip("Skipping test: Docker not available")
	}
}
