package templexp_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lwmacct/261018-go-pkg-subjekt/pkg/templexp"
)

func TestExpandTemplate_ShellParameterExpansion(t *testing.T) {
	t.Setenv("SHELL_SET", "set-value")
	t.Setenv("SHELL_EMPTY", "")

	tests := []struct {
		name     string
		template string
		want     string
		wantErr  bool
		errMsg   string
	}{
		{
			name:     "basic expansion",
			template: `prefix-${SHELL_SET}-suffix`,
			want:     "prefix-set-value-suffix",
		},
		{
			name:     "missing expands to empty",
			template: `x=${SHELL_MISSING}`,
			want:     "x=",
		},
		{
			name:     "fallback with colon treats empty as unset",
			template: `${SHELL_EMPTY:-fallback}`,
			want:     "fallback",
		},
		{
			name:     "fallback without colon keeps empty",
			template: `x=${SHELL_EMPTY-fallback}`,
			want:     "x=",
		},
		{
			name:     "alternate with colon",
			template: `${SHELL_SET:+alt}`,
			want:     "alt",
		},
		{
			name:     "alternate with colon on empty",
			template: `x=${SHELL_EMPTY:+alt}`,
			want:     "x=",
		},
		{
			name:     "alternate without colon on empty",
			template: `${SHELL_EMPTY+alt}`,
			want:     "alt",
		},
		{
			name:     "assignment updates template data",
			template: `${SHELL_NEW:=value}-${SHELL_NEW}`,
			want:     "value-value",
		},
		{
			name:     "literal dollar",
			template: `$$${SHELL_SET}`,
			want:     "$set-value",
		},
		{
			name:     "escaped block stays literal",
			template: `$${SHELL_SET}`,
			want:     "${SHELL_SET}",
		},
		{
			name:     "unrecognised block is kept",
			template: `${1abc} ${SHELL_SET%%x}`,
			want:     "${1abc} ${SHELL_SET%%x}",
		},
		{
			name:     "unterminated block is kept",
			template: `${SHELL_SET`,
			want:     "${SHELL_SET",
		},
		{
			name:     "repeated block",
			template: `${SHELL_SET}/${SHELL_SET}`,
			want:     "set-value/set-value",
		},
		{
			name:     "required var triggers error",
			template: `${SHELL_MISSING:?missing}`,
			wantErr:  true,
			errMsg:   "missing",
		},
		{
			name:     "required var without message",
			template: `${SHELL_EMPTY:?}`,
			wantErr:  true,
			errMsg:   "parameter null or not set",
		},
		{
			name:     "required var set",
			template: `${SHELL_EMPTY?}`,
			want:     "",
		},
		{
			name:     "nested reference in fallback",
			template: `${SHELL_ADDR:-${SHELL_SET}:8080}`,
			want:     "set-value:8080",
		},
		{
			name:     "nested reference in unused word is not evaluated",
			template: `${SHELL_SET:-${SHELL_MISSING:?boom}}`,
			want:     "set-value",
		},
		{
			name:     "leading space is not a parameter",
			template: `${ SHELL_MISSING }`,
			want:     "${ SHELL_MISSING }",
		},
		{
			name:     "unrecognised block keeps inner whitespace",
			template: `${SHELL_SET %  x }`,
			want:     "${SHELL_SET %  x }",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := templexp.ExpandTemplate(tt.template)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)

				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExpandWith_AssignmentWritesBack(t *testing.T) {
	env := map[string]string{}

	got, err := templexp.ExpandWith(`${A=one} ${B:=two}`, env)
	require.NoError(t, err)
	assert.Equal(t, "one two", got)
	assert.Equal(t, map[string]string{"A": "one", "B": "two"}, env)
}

func TestExpandWith_AssignmentVisibleToLaterReferences(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{name: "reference before and after assignment", text: `${X}|${X:=y}|${X}`, want: "|y|y"},
		{name: "assignment from nested word", text: `${X:=${H}:80} ${X}`, want: "h:80 h:80"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := templexp.ExpandWith(tt.text, map[string]string{"H": "h"})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExpandTemplate_JSONConfig(t *testing.T) {
	t.Setenv("API_KEY", "sk-test-123")
	t.Setenv("MODEL", "gpt-4")

	jsonConfig := `{"name": "${AGENT_NAME:-test-agent}", "model": "${MODEL:-gpt-3.5-turbo}", "api_key": "${API_KEY}", "max_tokens": 2048}`

	expanded, err := templexp.ExpandTemplate(jsonConfig)
	require.NoError(t, err, "templexp.ExpandTemplate() should succeed")
	assert.JSONEq(t, `{"name": "test-agent", "model": "gpt-4", "api_key": "sk-test-123", "max_tokens": 2048}`, expanded)
}
