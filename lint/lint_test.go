package lint

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tt "github.com/speclint/speclint/internal/types"
)

func TestNewWithMissingConfig(t *testing.T) {
	t.Parallel()

	engine, err := New(".", filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	require.NotNil(t, engine)
}

func TestNewWithConfigFile(t *testing.T) {
	t.Parallel()

	cfgPath := filepath.Join(t.TempDir(), ".speclint.yaml")
	cfg := "name: speclint\nrules:\n  factory-create-list:\n    severity: error\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o644))

	engine, err := New(".", cfgPath)
	require.NoError(t, err)

	issues, err := engine.RunSource([]byte("3.times { create :user }\n"))
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, tt.SeverityError, issues[0].Severity)
}

func TestProcessPathFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "user_spec.rb")
	require.NoError(t, os.WriteFile(path, []byte("3.times { create :user }\n"), 0o644))

	engine, err := New(dir, "")
	require.NoError(t, err)

	issues, err := ProcessPath(context.Background(), nil, engine, path, ProcessFile)
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, "create_list :user, 3", issues[0].Suggestion)
}

func TestProcessPathDirectory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a_spec.rb"), []byte("3.times { create :user }\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b_spec.rb"), []byte("2.times { create :post }\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("docs\n"), 0o644))

	engine, err := New(dir, "")
	require.NoError(t, err)

	issues, err := ProcessPath(context.Background(), nil, engine, dir, ProcessFile)
	require.NoError(t, err)
	assert.Len(t, issues, 2)
}

func TestProcessPathSkipsNonRubyFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("3.times { create :user }\n"), 0o644))

	engine, err := New(dir, "")
	require.NoError(t, err)

	issues, err := ProcessPath(context.Background(), nil, engine, path, ProcessFile)
	require.NoError(t, err)
	assert.Empty(t, issues)
}

func TestProcessSources(t *testing.T) {
	t.Parallel()

	engine, err := New(".", "")
	require.NoError(t, err)

	sources := [][]byte{
		[]byte("3.times { create :user }\n"),
		[]byte("create :user\n"),
	}
	issues, err := ProcessSources(context.Background(), nil, engine, sources, ProcessSource)
	require.NoError(t, err)
	assert.Len(t, issues, 1)
}
