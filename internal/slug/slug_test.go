package slug

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"a", "a"},
		{"/a/", "a"},
		{" a ", "a"},
		{"/ a /", "a"},
		{"  /2024/trip/  ", "2024/trip"},
		{"a/b", "a/b"},
		{"", ""},
		{"   ", ""},
		{"///", ""},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			require.Equal(t, tt.want, Normalize(tt.raw))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	for _, raw := range []string{"a", "/a/", " a ", "/ a /", "a/b/c", "  //weird// "} {
		once := Normalize(raw)
		require.Equal(t, once, Normalize(once), "raw=%q", raw)
	}
}

func TestHash(t *testing.T) {
	require.Equal(t, Hash("a"), Hash("a"))
	require.NotEqual(t, Hash("a"), Hash("b"))
	require.NotEmpty(t, Hash(""))
}
