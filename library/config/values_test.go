package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func mapGetter(values map[string]any) Getter {
	return func(key string) any {
		return values[key]
	}
}

// TestBoolParsesLooseValues verifies bool values accept common string spellings.
func TestBoolParsesLooseValues(t *testing.T) {
	get := mapGetter(map[string]any{"a": "yes", "b": "False", "c": 1, "d": "maybe"})

	require.True(t, Bool(get, "a", false))
	require.False(t, Bool(get, "b", true))
	require.True(t, Bool(get, "c", false))
	require.True(t, Bool(get, "d", true))
	require.False(t, Bool(get, "missing", false))
}

// TestInt64FallsBackOnGarbage verifies numeric parsing falls back to the default.
func TestInt64FallsBackOnGarbage(t *testing.T) {
	get := mapGetter(map[string]any{"n": float64(42), "s": "7", "bad": "x"})

	require.EqualValues(t, 42, Int64(get, "n", 0))
	require.EqualValues(t, 7, Int64(get, "s", 0))
	require.EqualValues(t, 3, Int64(get, "bad", 3))
	require.Equal(t, 5, Int(get, "missing", 5))
}

// TestStringSliceCleansEntries verifies list values are trimmed and empty entries dropped.
func TestStringSliceCleansEntries(t *testing.T) {
	get := mapGetter(map[string]any{
		"list": []any{" html ", "", "css"},
		"csv":  "js, json",
	})

	require.Equal(t, []string{"html", "css"}, StringSlice(get, "list", nil))
	require.Equal(t, []string{"js", "json"}, StringSlice(get, "csv", nil))
	require.Equal(t, []string{"x"}, StringSlice(get, "missing", []string{"x"}))
}

// TestExpandHome verifies tilde expansion only touches leading home references.
func TestExpandHome(t *testing.T) {
	t.Setenv("HOME", "/home/tester")

	require.Equal(t, "/home/tester/.miridev", ExpandHome("~/.miridev"))
	require.Equal(t, "/etc/miridev", ExpandHome("/etc/miridev"))
	require.Equal(t, "a~b", ExpandHome("a~b"))
}
