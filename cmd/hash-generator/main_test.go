package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/phrazzld/quill-api/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	t.Run("argument", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, run([]string{"-cost", "4", "adminpass1"}, strings.NewReader(""), &out))

		hash := strings.TrimSpace(out.String())
		assert.NoError(t, auth.NewBcryptHasher(4).Compare(hash, "adminpass1"))
	})

	t.Run("stdin", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, run([]string{"-cost", "4"}, strings.NewReader("fromstdin\n"), &out))

		hash := strings.TrimSpace(out.String())
		assert.NoError(t, auth.NewBcryptHasher(4).Compare(hash, "fromstdin"))
	})

	t.Run("empty", func(t *testing.T) {
		err := run([]string{"-cost", "4"}, strings.NewReader(""), &bytes.Buffer{})
		assert.EqualError(t, err, "no password given")
	})

	t.Run("bad cost", func(t *testing.T) {
		err := run([]string{"-cost", "99", "x"}, strings.NewReader(""), &bytes.Buffer{})
		assert.Error(t, err)
	})
}
