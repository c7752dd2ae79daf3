// SPDX-License-Identifier: MIT
package engine_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/harvard-vpal/alosi-go/engine"
	"github.com/harvard-vpal/alosi-go/recommend"
)

func TestLoadConfigYAML_OverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := `
weights:
  p: 2
  r: 0.5
information_threshold: 10
remove_degeneracy: false
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := engine.LoadConfigYAML(path)
	require.NoError(t, err)
	require.Equal(t, recommend.Weights{Wp: 2, Wr: 0.5, Wc: 1, Wd: 1}, cfg.Weights)
	require.Equal(t, 10.0, cfg.InformationThreshold)
	require.False(t, cfg.RemoveDegeneracy)
	require.Equal(t, engine.DefaultRelevanceThreshold, cfg.RelevanceThreshold)
}

func TestLoadConfigYAML_MissingFile(t *testing.T) {
	_, err := engine.LoadConfigYAML(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
