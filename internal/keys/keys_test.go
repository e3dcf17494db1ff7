package keys

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultKeyMap_Bindings(t *testing.T) {
	k := DefaultKeyMap()

	require.Equal(t, []string{"tab"}, k.SwitchMode.Keys())
	require.Equal(t, []string{"enter"}, k.QuickLog.Keys())
	require.Equal(t, []string{"q", "ctrl+c"}, k.Quit.Keys())
	require.Equal(t, "log any exercise", k.NewLog.Help().Desc)
}

func TestKeyMap_HelpGroups(t *testing.T) {
	k := DefaultKeyMap()

	require.Len(t, k.ShortHelp(), 3)
	full := k.FullHelp()
	require.Len(t, full, 4)
	for _, group := range full {
		for _, b := range group {
			require.NotEmpty(t, b.Help().Key, "every binding needs help text")
		}
	}
}
