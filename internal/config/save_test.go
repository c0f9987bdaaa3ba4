package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func readUI(t *testing.T, path string) UIConfig {
	t.Helper()
	v := viper.New()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())
	var cfg Config
	require.NoError(t, v.Unmarshal(&cfg))
	return cfg.UI
}

func TestSaveUI_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	ui := UIConfig{ShowStatusBar: false, MarkdownStyle: "light", PreviewWords: 4}
	require.NoError(t, SaveUI(path, ui))

	require.Equal(t, ui, readUI(t, path))
}

func TestSaveUI_UpdatesExistingSection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, WriteDefaultConfig(path))

	ui := UIConfig{ShowStatusBar: false, MarkdownStyle: "dark", PreviewWords: 8}
	require.NoError(t, SaveUI(path, ui))

	require.Equal(t, ui, readUI(t, path))
}

func TestSaveUI_PreservesOtherSections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"# keep this comment\ndemo: true\ntheme:\n  highlight: \"#FFFFFF\"\n"), 0o600))

	require.NoError(t, SaveUI(path, UIConfig{ShowStatusBar: true, MarkdownStyle: "dark", PreviewWords: 8}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "# keep this comment")
	require.Contains(t, string(data), "demo: true")
	require.Contains(t, string(data), `highlight: "#FFFFFF"`)
	require.Contains(t, string(data), "show_status_bar")
}

func TestSaveUI_AppendsWhenSectionMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("demo: false\n"), 0o600))

	ui := UIConfig{ShowStatusBar: false, MarkdownStyle: "light", PreviewWords: 2}
	require.NoError(t, SaveUI(path, ui))

	require.Equal(t, ui, readUI(t, path))
}
