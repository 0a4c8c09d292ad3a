package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/randalmurphal/rpncalc/pkg/rpncalc"
	"github.com/randalmurphal/rpncalc/pkg/rpncalc/config"
	"github.com/randalmurphal/rpncalc/pkg/rpncalc/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the command tree with args and captures its output.
func run(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := NewRootCommand()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err = root.Execute()
	return out.String(), errOut.String(), err
}

func TestEval(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"single argument", []string{"eval", "2 + 3 * 4"}, "14\n"},
		{"split arguments", []string{"eval", "8", "-", "3", "-", "2"}, "3\n"},
		{"no spaces", []string{"eval", "1/3"}, "0.33333\n"},
		{"precision flag", []string{"eval", "--precision", "2", "2/3"}, "0.67\n"},
		{"zero precision", []string{"eval", "--precision", "0", "5 / 2"}, "3\n"},
		{"negative result", []string{"eval", "2 - 7"}, "-5\n"},
		{"postfix flag", []string{"eval", "--postfix", "8 - 2 * 3 - 1"}, "postfix: 8 2 3 * 1 - -\n3\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _, err := run(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, stdout)
		})
	}
}

func TestEval_Errors(t *testing.T) {
	t.Run("division by zero", func(t *testing.T) {
		_, _, err := run(t, "eval", "5 / 0")
		require.Error(t, err)
		assert.True(t, rpncalc.IsDividedByZero(err))
	})

	t.Run("collapsed errors", func(t *testing.T) {
		_, _, err := run(t, "eval", "--collapse-errors", "5 / 0")
		require.Error(t, err)
		assert.Equal(t, rpncalc.KindUnknown, rpncalc.KindOf(err))
	})

	t.Run("unexpected character", func(t *testing.T) {
		_, _, err := run(t, "eval", "2 ^ 3")
		assert.ErrorIs(t, err, token.ErrUnexpectedCharacter)
	})

	t.Run("invalid precision", func(t *testing.T) {
		_, _, err := run(t, "eval", "--precision", "16", "1")
		assert.ErrorIs(t, err, config.ErrInvalidSettings)
	})

	t.Run("missing expression", func(t *testing.T) {
		_, _, err := run(t, "eval")
		assert.Error(t, err)
	})
}

func TestEvalSettings_StrictFlag(t *testing.T) {
	cmd := newEvalCommand(&app{})
	require.NoError(t, cmd.Flags().Parse([]string{"--strict"}))

	s, err := evalSettings(cmd, config.Default(), &evalFlags{strict: true})
	require.NoError(t, err)
	assert.True(t, s.StrictOperators)
	assert.Equal(t, 5, s.Precision, "unchanged flags keep config values")
}

func TestPostfix(t *testing.T) {
	stdout, _, err := run(t, "postfix", "2+3*4")
	require.NoError(t, err)
	assert.Equal(t, "2 3 4 * +\n", stdout)
}

func TestVersion(t *testing.T) {
	stdout, _, err := run(t, "version", "--config", "does-not-exist.toml")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout, "rpncalc "+Version))
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rpncalc.toml")
	require.NoError(t, os.WriteFile(path, []byte("precision = 2\ncollapse_errors = true\n"), 0o600))

	stdout, _, err := run(t, "--config", path, "eval", "2/3")
	require.NoError(t, err)
	assert.Equal(t, "0.67\n", stdout)

	_, _, err = run(t, "--config", path, "eval", "1/0")
	require.Error(t, err)
	assert.Equal(t, rpncalc.KindUnknown, rpncalc.KindOf(err))
}

func TestConfigFile_Missing(t *testing.T) {
	_, _, err := run(t, "--config", filepath.Join(t.TempDir(), "nope.yaml"), "eval", "1")
	assert.Error(t, err)
}

func TestLogging(t *testing.T) {
	_, stderr, err := run(t, "--verbose", "--log-format", "json", "eval", "1 + 1")
	require.NoError(t, err)
	assert.Contains(t, stderr, `"msg":"calculation completed"`)
	assert.Contains(t, stderr, `"msg":"stage completed"`)
	assert.Contains(t, stderr, `"calc_id"`)
}

func TestLogging_InvalidFormat(t *testing.T) {
	_, _, err := run(t, "--log-format", "xml", "eval", "1")
	assert.ErrorIs(t, err, config.ErrInvalidSettings)
}

func TestHistory(t *testing.T) {
	db := filepath.Join(t.TempDir(), "history.db")

	_, _, err := run(t, "--journal", db, "eval", "2 + 3")
	require.NoError(t, err)
	_, _, err = run(t, "--journal", db, "eval", "1 / 0")
	require.Error(t, err)

	stdout, _, err := run(t, "--journal", db, "history", "list")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasSuffix(lines[0], "1 / 0 = divided_by_zero"), lines[0])
	assert.True(t, strings.HasSuffix(lines[1], "2 + 3 = 5"), lines[1])

	stdout, _, err = run(t, "--journal", db, "history", "list", "--limit", "1")
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(stdout), "\n"), 1)

	id := strings.Fields(lines[1])[0]
	stdout, _, err = run(t, "--journal", db, "history", "show", id)
	require.NoError(t, err)
	assert.Contains(t, stdout, "id:       "+id)
	assert.Contains(t, stdout, "postfix:  2 3 +")
	assert.Contains(t, stdout, "result:   5")

	_, _, err = run(t, "--journal", db, "history", "show", "missing-id")
	assert.Error(t, err)

	stdout, _, err = run(t, "--journal", db, "history", "clear")
	require.NoError(t, err)
	assert.Equal(t, "journal cleared\n", stdout)

	stdout, _, err = run(t, "--journal", db, "history", "list")
	require.NoError(t, err)
	assert.Equal(t, "no calculations recorded\n", stdout)
}

func TestHistory_NoJournal(t *testing.T) {
	_, _, err := run(t, "history", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no journal configured")
}

func TestPrintError(t *testing.T) {
	var buf bytes.Buffer
	printError(&buf, assert.AnError)
	assert.Equal(t, "error: "+assert.AnError.Error()+"\n", buf.String())
}
