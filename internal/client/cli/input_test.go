package cli

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSimpleText(t *testing.T) {
	t.Run("trims newline", func(t *testing.T) {
		r := bufio.NewReader(strings.NewReader("some value\n"))
		var out bytes.Buffer

		got, err := GetSimpleText(r, "Prompt", &out)
		require.NoError(t, err)
		assert.Equal(t, "some value", got)
		assert.Contains(t, out.String(), "Prompt")
	})

	t.Run("partial line at EOF is returned", func(t *testing.T) {
		r := bufio.NewReader(strings.NewReader("no newline"))
		var out bytes.Buffer

		got, err := GetSimpleText(r, "Prompt", &out)
		require.NoError(t, err)
		assert.Equal(t, "no newline", got)
	})

	t.Run("EOF without input is an error", func(t *testing.T) {
		r := bufio.NewReader(strings.NewReader(""))
		var out bytes.Buffer

		_, err := GetSimpleText(r, "Prompt", &out)
		assert.Error(t, err)
	})
}

func TestGetPassword_UsesSeam(t *testing.T) {
	orig := readPassword
	readPassword = func(fd int) ([]byte, error) { return []byte("s3cret"), nil }
	t.Cleanup(func() { readPassword = orig })

	var out bytes.Buffer
	pw, err := GetPassword(&out)
	require.NoError(t, err)
	assert.Equal(t, "s3cret", string(pw))
	assert.Contains(t, out.String(), "Enter password:")
}

func TestGetMultiline(t *testing.T) {
	r := bufio.NewReader(strings.NewReader("line one\nline two\n\n"))
	var out bytes.Buffer

	got, err := GetMultiline(r, "Notes", &out)
	require.NoError(t, err)
	assert.Equal(t, "line one\nline two", got)
}
