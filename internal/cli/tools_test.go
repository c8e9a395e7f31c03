package cli

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trm-labs/notionsync/internal/logging"
)

func runCommand(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	logger := logging.NewLogger(io.Discard, logging.LevelError)

	cmd := newRootCommand(&Options{LogLevel: logging.LevelInfo}, logger)
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	require.NoError(t, cmd.Execute())
	return out.String()
}

func TestToolsFizzbuzz(t *testing.T) {
	out := runCommand(t, "tools", "fizzbuzz", "5")
	assert.Equal(t, "1\n2\nFizz\n4\nBuzz\n", out)
}

func TestToolsPrime(t *testing.T) {
	out := runCommand(t, "tools", "prime", "17", "20")
	assert.Equal(t, "17 is prime\n20 is not prime\n", out)
}

func TestToolsPrimeRejectsNonNumbers(t *testing.T) {
	logger := logging.NewLogger(io.Discard, logging.LevelError)
	cmd := newRootCommand(&Options{LogLevel: logging.LevelInfo}, logger)
	cmd.SetArgs([]string{"tools", "prime", "seventeen"})
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	assert.Error(t, cmd.Execute())
}
