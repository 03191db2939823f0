package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestRun(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run([]string{"-cost", "4", "qwerty", "тест123"}, &out))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	for i, password := range []string{"qwerty", "тест123"} {
		got, hash, ok := strings.Cut(lines[i], "\t")
		require.True(t, ok)
		assert.Equal(t, password, got)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)))

		cost, err := bcrypt.Cost([]byte(hash))
		require.NoError(t, err)
		assert.Equal(t, 4, cost)
	}
}

func TestRun_NoPasswords(t *testing.T) {
	err := run(nil, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "usage")
}
