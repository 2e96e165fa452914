package problem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAtom(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		wantErr  bool
		validate func(t *testing.T, atom Atom)
	}{
		{
			name: "ground atom with two args",
			text: "path(q0,q1)",
			validate: func(t *testing.T, atom Atom) {
				assert.Equal(t, "path", atom.Predicate)
				require.Len(t, atom.Args, 2)
				assert.Equal(t, Term("q0"), atom.Args[0])
				assert.Equal(t, Term("q1"), atom.Args[1])
				assert.True(t, atom.IsGround())
			},
		},
		{
			name: "lifted atom",
			text: "at(?q)",
			validate: func(t *testing.T, atom Atom) {
				assert.Equal(t, "at", atom.Predicate)
				require.Len(t, atom.Args, 1)
				assert.True(t, atom.Args[0].IsVariable())
				assert.False(t, atom.IsGround())
			},
		},
		{
			name: "whitespace between args",
			text: "path( q0 , q1 )",
			validate: func(t *testing.T, atom Atom) {
				assert.Equal(t, "path(q0,q1)", atom.Signature())
			},
		},
		{
			name: "zero-arity bare form",
			text: "handempty",
			validate: func(t *testing.T, atom Atom) {
				assert.Equal(t, "handempty", atom.Predicate)
				assert.Empty(t, atom.Args)
			},
		},
		{
			name: "zero-arity paren form",
			text: "handempty()",
			validate: func(t *testing.T, atom Atom) {
				assert.Equal(t, "handempty", atom.Predicate)
				assert.Empty(t, atom.Args)
			},
		},
		{
			name:    "empty text",
			text:    "",
			wantErr: true,
		},
		{
			name:    "missing closing paren",
			text:    "at(q0",
			wantErr: true,
		},
		{
			name:    "empty argument",
			text:    "path(q0,)",
			wantErr: true,
		},
		{
			name:    "invalid predicate character",
			text:    "at!(q0)",
			wantErr: true,
		},
		{
			name:    "invalid argument character",
			text:    "at(q|0)",
			wantErr: true,
		},
		{
			name:    "symbol starting with dash",
			text:    "at(-q0)",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			atom, err := ParseAtom(tt.text)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.validate != nil {
				tt.validate(t, atom)
			}
		})
	}
}

func TestAtom_Signature(t *testing.T) {
	assert.Equal(t, "at(q0)", NewAtom("at", "q0").Signature())
	assert.Equal(t, "path(q0,q1)", NewAtom("path", "q0", "q1").Signature())
	assert.Equal(t, "handempty()", NewAtom("handempty").Signature())
	assert.Equal(t, "at(?q)", NewAtom("at", "?q").Signature())
}

func TestAtom_Bind(t *testing.T) {
	atom := NewAtom("path", "?from", "?to")

	bound := atom.Bind(Binding{"?from": "q0"})
	assert.Equal(t, "path(q0,?to)", bound.Signature())
	assert.False(t, bound.IsGround())

	ground := atom.Bind(Binding{"?from": "q0", "?to": "q1"})
	assert.Equal(t, "path(q0,q1)", ground.Signature())
	assert.True(t, ground.IsGround())

	// The receiver must stay lifted.
	assert.Equal(t, "path(?from,?to)", atom.Signature())
}

func TestAtom_Variables(t *testing.T) {
	atom := NewAtom("traj", "?q", "?t", "?q")
	vars := atom.Variables()
	require.Len(t, vars, 2)
	assert.Equal(t, Variable("?q"), vars[0])
	assert.Equal(t, Variable("?t"), vars[1])

	assert.Empty(t, NewAtom("at", "q0").Variables())
}

func TestBinding_Extend(t *testing.T) {
	base := Binding{"?a": "x"}
	ext := base.Extend("?b", "y")

	assert.Len(t, base, 1)
	require.Len(t, ext, 2)
	assert.Equal(t, Object("x"), ext["?a"])
	assert.Equal(t, Object("y"), ext["?b"])
}

func TestTerm_Kinds(t *testing.T) {
	v := Term("?q")
	assert.True(t, v.IsVariable())
	assert.Equal(t, Variable("?q"), v.Variable())

	o := Term("q0")
	assert.False(t, o.IsVariable())
	assert.Equal(t, Object("q0"), o.Object())
}
