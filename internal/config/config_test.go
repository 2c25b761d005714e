package config

import (
	"flag"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	filename := filepath.Join(t.TempDir(), "run.hcl")
	require.NoError(t, os.WriteFile(filename, []byte(content), 0o644))
	return filename
}

func newFlagSet() *flag.FlagSet {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func TestDefaults(t *testing.T) {
	c, err := Parse(newFlagSet(), nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
}

func TestFlags(t *testing.T) {
	c, err := Parse(newFlagSet(), []string{"-graph", "walk.fmi", "-n", "10", "-limit", "900", "-workers", "4", "-frontier", "gods"})
	require.NoError(t, err)
	assert.Equal(t, "walk.fmi", c.Graph)
	assert.Equal(t, 10, c.Trials)
	assert.Equal(t, 900, c.TimeLimit)
	assert.Equal(t, 4, c.Workers)
	assert.Equal(t, "gods", c.Frontier)
}

func TestFileAndFlagPrecedence(t *testing.T) {
	filename := writeConfig(t, `
graph      = "from-file.bin"
trials     = 50
time_limit = 1800
seed       = 7
`)
	c, err := Parse(newFlagSet(), []string{"-config", filename, "-n", "5"})
	require.NoError(t, err)
	assert.Equal(t, "from-file.bin", c.Graph)
	assert.Equal(t, 5, c.Trials, "explicit flag wins over the file")
	assert.Equal(t, 1800, c.TimeLimit)
	assert.Equal(t, int64(7), c.Seed)
	assert.Equal(t, 1, c.Workers, "absent attributes keep their default")
}

func TestInvalidFile(t *testing.T) {
	filename := writeConfig(t, `trials = "many"`)
	_, err := Parse(newFlagSet(), []string{"-config", filename})
	assert.ErrorIs(t, err, ErrInvalidConfig)

	filename = writeConfig(t, `unknown = 1`)
	_, err = Parse(newFlagSet(), []string{"-config", filename})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *Config)
	}{
		{"no graph", func(c *Config) { c.Graph = "" }},
		{"no trials", func(c *Config) { c.Trials = 0 }},
		{"no workers", func(c *Config) { c.Workers = 0 }},
		{"negative limit", func(c *Config) { c.TimeLimit = -1 }},
		{"limit overflows cost", func(c *Config) { c.TimeLimit = 70000 }},
		{"unknown frontier", func(c *Config) { c.Frontier = "fibonacci" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.modify(&c)
			assert.ErrorIs(t, c.Validate(), ErrInvalidConfig)
		})
	}
	assert.NoError(t, Default().Validate())
}
