package preview

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pathlane/dirview/internal/domain/resolve"
	"github.com/pathlane/dirview/internal/infrastructure/config"
)

func TestDisableVetoesMatchingEntries(t *testing.T) {
	d := Disable([]string{"*.iso", "*.bin"})

	content, ok := d.Dispatch("/mnt/images/ubuntu.iso")
	require.True(t, ok)
	assert.Equal(t, "disabled", content.Kind)

	_, ok = d.Dispatch("/home/user/notes.txt")
	assert.False(t, ok, "non-matching entries are declined, not handled")
}

func TestRulesFirstMatchWins(t *testing.T) {
	d := Rules([]config.PreviewRule{
		{Pattern: "*.md", Kind: "markdown"},
		{Pattern: "*.*", Kind: "generic"},
	})

	content, ok := d.Dispatch("README.md")
	require.True(t, ok)
	assert.Equal(t, "markdown", content.Kind)

	content, ok = d.Dispatch("photo.jpg")
	require.True(t, ok)
	assert.Equal(t, "generic", content.Kind)

	_, ok = d.Dispatch("Makefile")
	assert.False(t, ok)
}

func TestMimeHandlesTextAndDeclinesBinary(t *testing.T) {
	dir := t.TempDir()

	textFile := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(textFile, []byte("plain words\n"), 0o644))

	binFile := filepath.Join(dir, "blob.bin")
	require.NoError(t, os.WriteFile(binFile, []byte{0x00, 0x01, 0x02, 0xff, 0xfe}, 0o644))

	d := Mime()

	content, ok := d.Dispatch(textFile)
	require.True(t, ok)
	assert.Equal(t, "text", content.Kind)

	_, ok = d.Dispatch(binFile)
	assert.False(t, ok)

	_, ok = d.Dispatch(filepath.Join(dir, "missing"))
	assert.False(t, ok, "unreadable entries are declined")
}

func TestDefaultNeverDeclines(t *testing.T) {
	d := Default()
	content, ok := d.Dispatch("anything-at-all")
	require.True(t, ok)
	assert.Equal(t, "info", content.Kind)
	assert.Equal(t, "anything-at-all", content.Data)
}

func TestSeedRegistersAll(t *testing.T) {
	reg := resolve.NewRegistry()
	cfg := config.Default()

	require.NoError(t, Seed(reg, cfg, nil))

	known := reg.KnownDispatchers()
	for _, name := range []string{"disable", "rules", "mime", "default"} {
		assert.True(t, known[name], "dispatcher %s should be seeded", name)
	}

	// Double seeding is a startup defect.
	assert.Error(t, Seed(reg, cfg, nil))
}
