package cli

import (
	"errors"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/stretchr/testify/require"
)

func TestExitCodeForError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{
			name: "invalid argument",
			err:  errbuilder.New().WithCode(errbuilder.CodeInvalidArgument).WithMsg("declaration file path is required"),
			want: 2,
		},
		{
			name: "duplicate registration",
			err:  errbuilder.New().WithCode(errbuilder.CodeAlreadyExists).WithMsg("module already registered: M"),
			want: 2,
		},
		{
			name: "validation diagnostics",
			err:  errbuilder.New().WithCode(errbuilder.CodeFailedPrecondition).WithMsg("validation failed"),
			want: 3,
		},
		{
			name: "dependency cycle",
			err:  errbuilder.New().WithCode(errbuilder.CodeFailedPrecondition).WithMsg("circular resource dependency: P.a -> P.b -> P.a"),
			want: 4,
		},
		{
			name: "graph precondition",
			err:  errbuilder.New().WithCode(errbuilder.CodeFailedPrecondition).WithMsg("module M has no installed or default provider"),
			want: 4,
		},
		{
			name: "missing file",
			err:  errbuilder.New().WithCode(errbuilder.CodeNotFound).WithMsg("declaration file not found"),
			want: 5,
		},
		{
			name: "plain error",
			err:  errors.New("boom"),
			want: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, exitCodeForError(tt.err))
		})
	}
}

func TestErrorMessagePrefersBuilderMsg(t *testing.T) {
	err := errbuilder.New().
		WithCode(errbuilder.CodeFailedPrecondition).
		WithMsg("validation failed").
		WithCause(errors.New("P: missing-module"))
	require.Equal(t, "validation failed", errorMessage(err))
	require.Equal(t, "boom", errorMessage(errors.New("boom")))
}

func TestRootCommandWiring(t *testing.T) {
	root := newRootCommand()
	require.Equal(t, "modular", root.Use)
	for _, name := range []string{"validate", "inspect", "graph"} {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err)
		require.Equal(t, name, cmd.Name())
	}
	require.NotNil(t, root.PersistentFlags().Lookup("log-level"))
	require.NotNil(t, root.PersistentFlags().Lookup("config"))
}
