package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	buf := new(bytes.Buffer)
	prev := SetWriter(buf)
	t.Cleanup(func() {
		SetWriter(prev)
		Init(false, false)
	})
	return buf
}

func TestInit(t *testing.T) {
	Init(false, false)
	assert.False(t, Verbose)
	assert.False(t, JSONMode)

	Init(true, true)
	assert.True(t, Verbose)
	assert.True(t, JSONMode)

	Init(false, false)
}

func TestNoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	assert.True(t, NoColor())

	t.Setenv("NO_COLOR", "")
	assert.True(t, NoColor()) // any value, even empty, disables color
}

func TestRender_NoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	assert.Equal(t, "plain", Render(StyleMuted, "plain"))
}

func TestLogging_NoColorPrefixes(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	buf := captureLogs(t)
	Init(false, false)

	Step("create")
	Success("deployed")
	Fail("broken")

	out := buf.String()
	assert.Contains(t, out, ">> create")
	assert.Contains(t, out, "[OK] deployed")
	assert.Contains(t, out, "[FAIL] broken")
}

func TestLogging_DebugNeedsVerbose(t *testing.T) {
	buf := captureLogs(t)

	Init(false, false)
	Debug("hidden")
	assert.NotContains(t, buf.String(), "hidden")

	Init(true, false)
	Debug("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestLogging_JSONModeSuppressesText(t *testing.T) {
	buf := captureLogs(t)
	Init(true, true)

	Info("info")
	Warn("warn")
	Error("error")
	Step("step")
	assert.Empty(t, buf.String())
}

func TestJSONEnvelope(t *testing.T) {
	var out bytes.Buffer
	prev := jsonOut
	jsonOut = &out
	defer func() { jsonOut = prev }()

	JSON(map[string]string{"alias": "pr-42"})
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	assert.Equal(t, "ok", decoded["status"])
	assert.Contains(t, decoded, "data")
	assert.NotContains(t, decoded, "error")

	out.Reset()
	JSONError(errors.New("deploy failed"), nil)
	decoded = nil
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	assert.Equal(t, "error", decoded["status"])
	assert.Equal(t, "deploy failed", decoded["error"])
}

func TestCLIError(t *testing.T) {
	t.Run("with fix", func(t *testing.T) {
		err := NewErrorWithFix("clever not found", "npm install -g clever-tools")
		assert.Equal(t, "clever not found", err.Error())
		assert.Nil(t, err.Unwrap())
		assert.Equal(t, "npm install -g clever-tools", err.Fix)
	})

	t.Run("wrapped", func(t *testing.T) {
		cause := errors.New("exit status 128")
		err := WrapError(cause, "git rev-parse failed")
		assert.Equal(t, "git rev-parse failed: exit status 128", err.Error())
		assert.ErrorIs(t, err, cause)
	})

	t.Run("wrapped with fix", func(t *testing.T) {
		cause := errors.New("401")
		err := WrapErrorWithFix(cause, "login failed", "check CLEVER_TOKEN")
		assert.Equal(t, "check CLEVER_TOKEN", err.Fix)
		assert.ErrorIs(t, err, cause)
	})
}

func TestPrintError_ShowsNestedFix(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	buf := captureLogs(t)
	Init(false, false)

	inner := NewErrorWithFix("clever binary missing", "install clever-tools")
	PrintError(fmt.Errorf("doctor: %w", inner))

	out := buf.String()
	assert.Contains(t, out, "doctor: clever binary missing")
	assert.Contains(t, out, "Fix: install clever-tools")
}

func TestSpinner(t *testing.T) {
	captureLogs(t)

	t.Run("stop is idempotent", func(t *testing.T) {
		sp := NewSpinner("checking")
		sp.Start()
		sp.Stop()
		sp.Stop()
	})

	t.Run("stop without start", func(t *testing.T) {
		sp := NewSpinner("checking")
		sp.Stop()
	})

	t.Run("json mode is a no-op", func(t *testing.T) {
		Init(false, true)
		defer Init(false, false)
		sp := NewSpinner("checking")
		sp.Start()
		sp.Stop()
	})
}

func TestWithSpinner(t *testing.T) {
	captureLogs(t)

	assert.NoError(t, WithSpinner("checking", false, func() error { return nil }))

	boom := errors.New("boom")
	assert.Equal(t, boom, WithSpinner("checking", true, func() error { return boom }))
}
