package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"v18.17.0", "18.17.0"},
		{"node v18.17.0", "18.17.0"},
		{"10.8.2\n", "10.8.2"},
		{"Python 3.11.4", "3.11.4"},
		{"ffmpeg version 6.0-static", "6.0.0"},
		{"v22", "22.0.0"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Extract(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestExtract_NoVersion(t *testing.T) {
	_, err := Extract("command not found")
	assert.Error(t, err)
}

func TestParseConstraint(t *testing.T) {
	c, err := ParseConstraint("")
	require.NoError(t, err)
	assert.Nil(t, c)

	c, err = ParseConstraint(">=18")
	require.NoError(t, err)
	require.NotNil(t, c)

	v, err := Extract("v20.1.0")
	require.NoError(t, err)
	assert.True(t, c.Check(v))

	old, err := Extract("v16.20.2")
	require.NoError(t, err)
	assert.False(t, c.Check(old))

	_, err = ParseConstraint(">=not-a-version")
	assert.Error(t, err)
}
