package keys

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/stretchr/testify/require"
)

func TestDefaultKeyMap_Assignments(t *testing.T) {
	km := DefaultKeyMap()

	tests := []struct {
		name     string
		binding  key.Binding
		expected []string
	}{
		{"Up uses k and up", km.Up, []string{"k", "up"}},
		{"Down uses j and down", km.Down, []string{"j", "down"}},
		{"Enter uses enter", km.Enter, []string{"enter"}},
		{"New uses n", km.New, []string{"n"}},
		{"Edit uses e", km.Edit, []string{"e"}},
		{"Delete uses d", km.Delete, []string{"d"}},
		{"Search uses slash", km.Search, []string{"/"}},
		{"Stats uses s", km.Stats, []string{"s"}},
		{"Authors uses a", km.Authors, []string{"a"}},
		{"Today uses t", km.Today, []string{"t"}},
		{"Range uses r", km.Range, []string{"r"}},
		{"Confirm uses y", km.Confirm, []string{"y"}},
		{"Cancel uses n and esc", km.Cancel, []string{"n", "esc"}},
		{"Escape uses esc", km.Escape, []string{"esc"}},
		{"Quit uses q and ctrl+c", km.Quit, []string{"q", "ctrl+c"}},
		{"ToggleStatusBar uses w", km.ToggleStatusBar, []string{"w"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, tt.binding.Keys())
		})
	}
}

func TestDefaultKeyMap_HelpTextDefined(t *testing.T) {
	km := DefaultKeyMap()

	for _, row := range km.FullHelp() {
		for _, b := range row {
			help := b.Help()
			require.NotEmpty(t, help.Key, "key help should not be empty")
			require.NotEmpty(t, help.Desc, "description help should not be empty")
		}
	}
}

func TestShortHelp(t *testing.T) {
	km := DefaultKeyMap()
	help := km.ShortHelp()
	require.Len(t, help, 2)
	require.Equal(t, km.Help, help[0])
	require.Equal(t, km.Quit, help[1])
}

func TestFullHelp(t *testing.T) {
	km := DefaultKeyMap()
	help := km.FullHelp()
	require.Len(t, help, 4)
	require.Contains(t, help[0], km.Up)
	require.Contains(t, help[1], km.New)
	require.Contains(t, help[2], km.Search)
	require.Contains(t, help[3], km.Quit)
}
