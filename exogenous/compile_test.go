package exogenous

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zero-day-ai/streamplan"
	"github.com/zero-day-ai/streamplan/problem"
)

func observingDecl() *problem.ExternalDecl {
	return &problem.ExternalDecl{
		Name:      "sample-path",
		Kind:      problem.KindStream,
		Inputs:    []problem.Variable{"?from"},
		Outputs:   []problem.Variable{"?to"},
		Domain:    []problem.Atom{problem.NewAtom("conf", "?from")},
		Certified: []problem.Atom{problem.NewAtom("path", "?from", "?to")},
		Observed:  []problem.Atom{problem.NewAtom("marked", "?to")},
	}
}

func silentDecl() *problem.ExternalDecl {
	d := observingDecl()
	d.Name = "sample-quiet"
	d.Observed = nil
	return d
}

func TestCompile(t *testing.T) {
	tests := []struct {
		name      string
		domain    *problem.Domain
		externals []*problem.ExternalDecl
		validate  func(t *testing.T, domain *problem.Domain, added int, err error)
	}{
		{
			name:      "synthesizes one action per observing declaration",
			domain:    &problem.Domain{Name: "rover"},
			externals: []*problem.ExternalDecl{observingDecl(), silentDecl()},
			validate: func(t *testing.T, domain *problem.Domain, added int, err error) {
				require.NoError(t, err)
				assert.Equal(t, 1, added)
				require.Len(t, domain.Actions, 1)

				a := domain.Actions[0]
				assert.Equal(t, "observe-sample-path", a.Name)
				assert.Equal(t, []problem.Variable{"?from", "?to"}, a.Parameters)
				require.Len(t, a.Preconditions, 2)
				assert.Equal(t, "conf(?from)", a.Preconditions[0].String())
				assert.Equal(t, "path(?from,?to)", a.Preconditions[1].String())
				require.Len(t, a.AddEffects, 1)
				assert.Equal(t, "marked(?to)", a.AddEffects[0].String())
				assert.Empty(t, a.DeleteEffects)
				assert.Equal(t, 1.0, a.Cost.Constant)
				assert.NoError(t, a.Validate())
			},
		},
		{
			name:      "no observing declarations leaves domain untouched",
			domain:    &problem.Domain{Name: "rover"},
			externals: []*problem.ExternalDecl{silentDecl()},
			validate: func(t *testing.T, domain *problem.Domain, added int, err error) {
				require.NoError(t, err)
				assert.Equal(t, 0, added)
				assert.Empty(t, domain.Actions)
			},
		},
		{
			name: "synthesized name collision fails",
			domain: &problem.Domain{
				Name: "rover",
				Actions: []*problem.Action{{
					Name: "observe-sample-path",
					Cost: problem.UnitCost(),
				}},
			},
			externals: []*problem.ExternalDecl{observingDecl()},
			validate: func(t *testing.T, domain *problem.Domain, added int, err error) {
				var spErr *streamplan.StreamPlanError
				require.ErrorAs(t, err, &spErr)
				assert.Equal(t, streamplan.EXOGENOUS_COMPILE_FAILED, spErr.Code)
				assert.Equal(t, 0, added)
			},
		},
		{
			name: "observed predicate produced by a domain action fails",
			domain: &problem.Domain{
				Name: "rover",
				Actions: []*problem.Action{{
					Name:       "mark",
					Parameters: []problem.Variable{"?q"},
					AddEffects: []problem.Atom{problem.NewAtom("marked", "?q")},
					Cost:       problem.UnitCost(),
				}},
			},
			externals: []*problem.ExternalDecl{observingDecl()},
			validate: func(t *testing.T, domain *problem.Domain, added int, err error) {
				var spErr *streamplan.StreamPlanError
				require.ErrorAs(t, err, &spErr)
				assert.Equal(t, streamplan.EXOGENOUS_COMPILE_FAILED, spErr.Code)
				assert.Contains(t, spErr.Message, "marked")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			added, err := Compile(tt.domain, tt.externals)
			tt.validate(t, tt.domain, added, err)
		})
	}
}
