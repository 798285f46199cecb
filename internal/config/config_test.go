package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/danielbarros/scrumcore/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scrumcore.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_OverridesMergeWithDefaults(t *testing.T) {
	path := writeConfig(t, `
project: acme-web
velocity_window: 4
wip_limits:
  in_progress: 3
  in_review: 2
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "acme-web", cfg.Project)
	assert.Equal(t, 4, cfg.VelocityWindow)
	assert.Equal(t, 3, cfg.Retro.VotesPerPerson, "untouched sections keep defaults")

	limits := cfg.BoardWIPLimits()
	assert.Equal(t, 3, limits[domain.TaskInProgress])
	assert.Equal(t, 2, limits[domain.TaskInReview])
}

func TestLoad_EnvVarPath(t *testing.T) {
	path := writeConfig(t, "project: from-env\n")
	t.Setenv(EnvConfigPath, path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Project)
}

func TestLoad_RejectsUnknownColumn(t *testing.T) {
	path := writeConfig(t, `
wip_limits:
  swimlane: 3
`)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_RejectsMalformedYAML(t *testing.T) {
	path := writeConfig(t, "wip_limits: [not a map")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_RejectsBadRetroFormat(t *testing.T) {
	path := writeConfig(t, `
retro:
  votes_per_person: 5
  format: rose-bud-thorn
`)
	_, err := Load(path)
	assert.Error(t, err)
}
