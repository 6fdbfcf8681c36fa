package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const oddZerosDef = `even odd
0 1
0 1
even
espacio
odd
even 0 odd 0 R
even 1 even 1 R
odd 0 even 0 R
odd 1 odd 1 R
`

func writeMachineFile(t *testing.T, contents string) string {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "machine.tdef")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))

	return path
}

func TestCLI_AcceptAndReject(t *testing.T) {
	t.Parallel()

	machinePath := writeMachineFile(t, oddZerosDef)

	cmd := newRootCommand(zap.NewNop())
	cmd.SetArgs([]string{machinePath})
	cmd.SetIn(strings.NewReader("0\n00\n"))

	var out bytes.Buffer
	cmd.SetOut(&out)

	err := cmd.Execute()
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	assert.Equal(t, "ACCEPT", lines[0])
	assert.Contains(t, out.String(), "REJECT")
}

func TestCLI_Info(t *testing.T) {
	t.Parallel()

	machinePath := writeMachineFile(t, oddZerosDef)

	cmd := newRootCommand(zap.NewNop())
	cmd.SetArgs([]string{machinePath, "--info"})

	var out bytes.Buffer
	cmd.SetOut(&out)

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "Estados")
}

func TestCLI_MissingMachineFileExitsWithLoadError(t *testing.T) {
	t.Parallel()

	cmd := newRootCommand(zap.NewNop())
	cmd.SetArgs([]string{"/nonexistent/machine.tdef"})
	cmd.SetIn(strings.NewReader(""))

	var out bytes.Buffer
	cmd.SetOut(&out)

	err := cmd.Execute()
	require.Error(t, err)

	var ee *exitError
	require.True(t, isExitError(err, &ee))
	assert.Equal(t, 2, ee.code)
}

func TestCLI_StrictModeReportsOutOfAlphabetWord(t *testing.T) {
	t.Parallel()

	machinePath := writeMachineFile(t, oddZerosDef)

	cmd := newRootCommand(zap.NewNop())
	cmd.SetArgs([]string{machinePath, "--strict"})
	cmd.SetIn(strings.NewReader("0x0\n"))

	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "ERROR")
	assert.Contains(t, out.String(), "Cinta final: 0x0")
	assert.NotEmpty(t, errOut.String())
}

// TestCLI_StrictModeDoesNotRenderPriorWordsTape guards against rendering the
// previous word's leftover tape state for a later out-of-Sigma word: the
// alphabet gate fires before the engine ever loads the bad word, so its
// render must come from the word itself, not whatever e.Config() last held.
func TestCLI_StrictModeDoesNotRenderPriorWordsTape(t *testing.T) {
	t.Parallel()

	machinePath := writeMachineFile(t, oddZerosDef)

	cmd := newRootCommand(zap.NewNop())
	cmd.SetArgs([]string{machinePath, "--strict"})
	cmd.SetIn(strings.NewReader("000\nx\n"))

	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)

	require.NoError(t, cmd.Execute())

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "ACCEPT", lines[0])
	assert.Equal(t, "ERROR", lines[2])
	assert.Equal(t, "Cinta final: x", lines[3])
}

func TestCLI_NonStrictModeSilentlyRejectsOutOfAlphabetWord(t *testing.T) {
	t.Parallel()

	machinePath := writeMachineFile(t, oddZerosDef)

	cmd := newRootCommand(zap.NewNop())
	cmd.SetArgs([]string{machinePath})
	cmd.SetIn(strings.NewReader("0x0\n"))

	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "REJECT")
	assert.Empty(t, errOut.String())
}

func TestCLI_WordsFromFile(t *testing.T) {
	t.Parallel()

	machinePath := writeMachineFile(t, oddZerosDef)

	wordsDir := t.TempDir()
	wordsPath := filepath.Join(wordsDir, "words.txt")
	require.NoError(t, os.WriteFile(wordsPath, []byte("0\n000\n"), 0o600))

	cmd := newRootCommand(zap.NewNop())
	cmd.SetArgs([]string{machinePath, "--words", wordsPath})

	var out bytes.Buffer
	cmd.SetOut(&out)

	require.NoError(t, cmd.Execute())
	assert.Equal(t, 2, strings.Count(out.String(), "ACCEPT"))
}

func TestCLI_MaxStepsProducesInfinite(t *testing.T) {
	t.Parallel()

	// Runs right forever, writing 'a' on each blank, so no configuration
	// repeats and only the step budget stops it.
	looperDef := "q0\na\na\nq0\nespacio\nqz\nq0 a q0 a R\nq0 espacio q0 a R\n"
	machinePath := writeMachineFile(t, looperDef)

	cmd := newRootCommand(zap.NewNop())
	cmd.SetArgs([]string{machinePath, "--max-steps", "10"})
	cmd.SetIn(strings.NewReader("aaa\n"))

	var out bytes.Buffer
	cmd.SetOut(&out)

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "INFINITE")
}
