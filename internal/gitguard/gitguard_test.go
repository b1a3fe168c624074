package gitguard

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kjourdan1/clever-review/internal/shell/shelltest"
)

func TestCheckShallow(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		shallow bool
	}{
		{"shallow", "true\n", true},
		{"shallow with padding", "  true \r\n", true},
		{"full history", "false\n", false},
		{"unexpected output", "maybe", false},
		{"empty output", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ex := shelltest.New()
			ex.Set(tt.output, nil, "git", "rev-parse", "--is-shallow-repository")

			err := CheckShallow(context.Background(), ex)
			if tt.shallow {
				var shallowErr *ShallowCopyError
				require.ErrorAs(t, err, &shallowErr)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, [][]string{{"rev-parse", "--is-shallow-repository"}}, ex.Invocations("git"))
		})
	}
}

func TestShallowCopyError_Remediation(t *testing.T) {
	msg := (&ShallowCopyError{}).Error()
	assert.Contains(t, msg, "unshallow working copy")
	assert.Contains(t, msg, "actions/checkout@v3")
	assert.Contains(t, msg, "fetch-depth: 0")
}

func TestCheckShallow_GitFailure(t *testing.T) {
	ex := shelltest.New()
	gitErr := errors.New("fatal: not a git repository")
	ex.Set("", gitErr, "git", "rev-parse", "--is-shallow-repository")

	err := CheckShallow(context.Background(), ex)
	require.Error(t, err)
	assert.ErrorIs(t, err, gitErr)
	var shallowErr *ShallowCopyError
	assert.False(t, errors.As(err, &shallowErr))
}
