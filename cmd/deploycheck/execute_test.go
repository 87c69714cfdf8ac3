package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vertti/deploycheck/pkg/config"
	"github.com/vertti/deploycheck/pkg/depcheck"
)

// stubRunner treats every Python module as installed except those listed.
type stubRunner struct {
	missing []string
}

func (s *stubRunner) LookPath(file string) (string, error) {
	if file == "definitely-not-installed" {
		return "", errors.New("executable file not found in $PATH")
	}
	return "/usr/bin/" + file, nil
}

func (s *stubRunner) RunCommandContext(_ context.Context, _ string, args ...string) (string, string, error) {
	script := strings.Join(args, " ")
	for _, m := range s.missing {
		if strings.Contains(script, `"`+m+`"`) {
			return "", "ModuleNotFoundError: No module named '" + m + "'", errors.New("exit status 1")
		}
	}
	return "", "", nil
}

func useRunner(t *testing.T, r depcheck.Runner) {
	t.Helper()
	old := depRunner
	depRunner = r
	t.Cleanup(func() { depRunner = old })
}

func executeCommand(args ...string) (string, error) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	resetFlags(rootCmd)
	err := rootCmd.Execute()
	return buf.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func TestVersionFlag(t *testing.T) {
	output, err := executeCommand("--version")
	require.NoError(t, err)
	assert.Contains(t, output, "deploycheck")
}

func TestHelpFlag(t *testing.T) {
	output, err := executeCommand("--help")
	require.NoError(t, err)
	assert.Contains(t, output, "deploycheck")
}

func TestRootRejectsArguments(t *testing.T) {
	_, err := executeCommand("unexpected")
	assert.Error(t, err)
}

func TestRootCommand_AllPass(t *testing.T) {
	useRunner(t, &stubRunner{})
	root := t.TempDir()

	output, err := executeCommand("--root", root)
	require.NoError(t, err, output)

	assert.Contains(t, output, "Padashetty Coaching Class Application - Deployment Test")
	assert.Contains(t, output, "Checking directories...")
	assert.Contains(t, output, "Checking backend dependencies...")
	assert.Contains(t, output, "Testing PDF generation...")
	assert.Contains(t, output, "Test Summary")
	assert.Contains(t, output, "All tests passed! Your application is ready for deployment.")
	assert.Equal(t, 13, strings.Count(output, "[OK] dir: ")+strings.Count(output, "[OK] dep: ")+strings.Count(output, "[OK] probe: "))

	_, err = os.Stat(filepath.Join(root, "backend", "test_output", "deployment_test.pdf"))
	assert.NoError(t, err)
}

func TestRootCommand_MissingDependency(t *testing.T) {
	useRunner(t, &stubRunner{missing: []string{"jwt"}})

	output, err := executeCommand("--root", t.TempDir())
	require.ErrorIs(t, err, ErrChecksFailed)

	assert.Contains(t, output, "[FAIL] dep: jwt")
	assert.Contains(t, output, "[OK] dep: dotenv", "other checks still run")
	assert.Contains(t, output, "[OK] probe: pdf")
	assert.Contains(t, output, "Some tests failed. Fix the issues above before deploying.")
}

func TestRootCommand_ConfigFile(t *testing.T) {
	useRunner(t, &stubRunner{})
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, config.FileName), []byte(`
app_name = "Staging Site"
directories = ["data"]
dependencies = ["cmd:node"]
`), 0o600))

	output, err := executeCommand("--root", root)
	require.NoError(t, err, output)

	assert.Contains(t, output, "Staging Site - Deployment Test")
	assert.Contains(t, output, "[OK] dir: data")
	assert.Contains(t, output, "[OK] dep: cmd:node")
	assert.NotContains(t, output, "dep: flask")
}

func TestRootCommand_InvalidLogLevel(t *testing.T) {
	useRunner(t, &stubRunner{})
	_, err := executeCommand("--root", t.TempDir(), "--log-level", "chatty")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrChecksFailed)
	assert.Contains(t, err.Error(), "log.level")
}

func TestDirCommand(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "file"), []byte("x"), 0o600))

	tests := []struct {
		name    string
		args    []string
		wantErr bool
	}{
		{"creates missing", []string{"dir", "--root", root, "backend/uploads/notes"}, false},
		{"existing directory", []string{"dir", "--root", root, "backend"}, false},
		{"file in the way", []string{"dir", "--root", root, "file"}, true},
		{"missing argument", []string{"dir"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := executeCommand(tt.args...)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDepCommand(t *testing.T) {
	useRunner(t, &stubRunner{missing: []string{"reportlab"}})

	tests := []struct {
		name    string
		args    []string
		wantErr bool
	}{
		{"installed module", []string{"dep", "flask"}, false},
		{"missing module", []string{"dep", "reportlab"}, true},
		{"command on path", []string{"dep", "cmd:npm"}, false},
		{"command not on path", []string{"dep", "cmd:definitely-not-installed"}, true},
		{"invalid identifier", []string{"dep", "gem:rails"}, true},
		{"missing argument", []string{"dep"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := executeCommand(append(tt.args, "--root", t.TempDir())...)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestProbeCommand(t *testing.T) {
	root := t.TempDir()

	output, err := executeCommand("probe", "--root", root)
	require.NoError(t, err, output)
	assert.Contains(t, output, "[OK] probe: pdf")

	data, err := os.ReadFile(filepath.Join(root, "backend", "test_output", "deployment_test.pdf"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "%PDF-"))
}

func TestConfigCommands(t *testing.T) {
	root := t.TempDir()

	output, err := executeCommand("config", "init", "--root", root)
	require.NoError(t, err)
	assert.Contains(t, output, config.FileName)

	_, err = executeCommand("config", "init", "--root", root)
	assert.ErrorContains(t, err, "already exists")

	_, err = executeCommand("config", "init", "--root", root, "--force")
	assert.NoError(t, err)

	output, err = executeCommand("config", "show", "--root", root)
	require.NoError(t, err)
	assert.Contains(t, output, "# source: "+filepath.Join(root, config.FileName))
	assert.Contains(t, output, "flask_sqlalchemy")
	assert.Contains(t, output, "[probe]")
}

func TestSubcommandHelp(t *testing.T) {
	for _, sub := range []string{"dir", "dep", "probe", "config"} {
		t.Run(sub, func(t *testing.T) {
			output, err := executeCommand(sub, "--help")
			require.NoError(t, err)
			assert.Contains(t, output, sub)
		})
	}
}
