package main

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmacinski/slidewin/internal/api"
	"github.com/kmacinski/slidewin/internal/codegen"
	"github.com/kmacinski/slidewin/internal/engine"
	"github.com/kmacinski/slidewin/internal/session"
)

func init() {
	color.NoColor = true
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestWriteSteps_Sum(t *testing.T) {
	seq := engine.Ints(1, 2, 3, 4)
	spec := engine.WindowSpec{Algorithm: engine.Sum, WindowType: engine.Fixed, WindowSize: 2}
	steps, err := engine.All(seq, spec)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, writeSteps(&buf, seq, spec, steps))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "(window 2)")
	assert.Equal(t, "1/3  [1][2] 3  4   = 3  Sum of window: 1 + 2 = 3", lines[1])
	assert.Contains(t, lines[3], "= 7")
}

func TestWriteSteps_NoSteps(t *testing.T) {
	seq := engine.Ints(1, 2)
	spec := engine.WindowSpec{Algorithm: engine.Max, WindowType: engine.Fixed, WindowSize: 5}

	var buf bytes.Buffer
	require.NoError(t, writeSteps(&buf, seq, spec, nil))
	assert.Contains(t, buf.String(), "Nothing to step through")
}

func TestRunCommand(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		contains []string
	}{
		{
			name:     "longest unique",
			args:     []string{"run", "-t", "string", "-i", "abcabcbb", "-a", "longest-unique-substring"},
			contains: []string{"8/8", "best abc [0..2]", "(variable window)"},
		},
		{
			name:     "permutation",
			args:     []string{"run", "-t", "string", "-i", "eidbaooo", "-a", "permutation-match", "-p", "ab"},
			contains: []string{"(pattern ab)", "no match", "4/7  ", "match"},
		},
		{
			name:     "average",
			args:     []string{"run", "-i", "1,2", "-a", "average", "-k", "2"},
			contains: []string{"= 1.50"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, tt.args...)
			require.NoError(t, err)
			for _, s := range tt.contains {
				assert.Contains(t, out, s)
			}
		})
	}
}

func TestRunCommand_InvalidInput(t *testing.T) {
	_, err := execute(t, "run", "-i", "1, two", "-a", "sum")
	require.Error(t, err)
	assert.ErrorIs(t, err, engine.ErrInvalidInput)
}

func TestRunCommand_ScenarioFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte("input: \"5, 1, 5\"\nalgorithm: min\nwindow_size: 2\n"), 0o644))

	out, err := execute(t, "run", "-s", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Min")
	assert.Contains(t, out, "2/2")

	// flags win over the file
	out, err = execute(t, "run", "-s", path, "-k", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "1/1")
}

func TestCodeCommand(t *testing.T) {
	out, err := execute(t, "code", "-a", "max", "-k", "4", "-l", "go")
	require.NoError(t, err)
	assert.Contains(t, out, "windowMaximum([]int{1, 2, 3, 4, 5, 6, 7, 8}, 4)")

	_, err = execute(t, "code", "-a", "max", "-l", "cpp")
	assert.ErrorIs(t, err, codegen.ErrNotAvailable)

	out, err = execute(t, "code", "--list")
	require.NoError(t, err)
	assert.Contains(t, out, "python")
	assert.Contains(t, out, "longest-unique-substring")
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "slidewin dev\n", out)
}

func TestNewLogger_Level(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "warn", true)
	logger.Info("hidden")
	logger.Warn("shown", "k", 1)
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)
}

func TestInstallLogger_HandlersUseIt(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })
	gin.SetMode(gin.TestMode)

	var buf bytes.Buffer
	installLogger(&buf, "debug")

	gen, err := codegen.New()
	require.NoError(t, err)
	router := api.NewRouter(api.NewHandlers(gen, session.NewStore(1), 10))

	req := httptest.NewRequest(http.MethodGet, "/api/scans/missing", nil)
	router.ServeHTTP(httptest.NewRecorder(), req)

	out := buf.String()
	assert.Contains(t, out, `"handler":"HandleGetScan"`)
	assert.Contains(t, out, `"code":"SESSION_NOT_FOUND"`)
	// request line is logged at debug
	assert.Contains(t, out, `"level":"DEBUG"`)

	buf.Reset()
	installLogger(&buf, "error")
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/scans/missing", nil))
	assert.Empty(t, buf.String())
}
