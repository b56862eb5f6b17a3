//go:build matprofile

package core

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"
)

// Run with: go test -tags matprofile ./internal/core
func TestSession_FailedLoadsReleaseMats(t *testing.T) {
	s := newTestSession(t)
	path, _ := writeTestImage(t, 8, 6)
	require.NoError(t, s.Load(path))

	broken := filepath.Join(t.TempDir(), "broken.png")
	require.NoError(t, os.WriteFile(broken, []byte("not an image"), 0o644))
	missing := filepath.Join(t.TempDir(), "missing.png")
	unsupported := filepath.Join(t.TempDir(), "photo.gif")

	before := gocv.MatProfile.Count()
	for i := 0; i < 5; i++ {
		assert.ErrorIs(t, s.Load(broken), ErrDecode)
		assert.ErrorIs(t, s.Load(missing), ErrDecode)
		assert.ErrorIs(t, s.Load(unsupported), ErrDecode)
	}
	assert.Equal(t, before, gocv.MatProfile.Count())
}
