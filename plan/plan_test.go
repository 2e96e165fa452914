package plan

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zero-day-ai/streamplan/problem"
)

func TestPlan_NilVersusEmpty(t *testing.T) {
	var none Plan
	assert.False(t, none.Found())
	assert.True(t, math.IsInf(none.Cost(), 1))
	assert.Equal(t, "<none>", none.String())

	empty := Empty()
	assert.True(t, empty.Found())
	assert.Zero(t, empty.Cost())
	assert.Equal(t, "<empty>", empty.String())
}

func TestPlan_CostSumsSteps(t *testing.T) {
	p := Plan{
		{Action: "move", Args: []problem.Object{"q0", "q1"}, Cost: 3.5},
		{Action: "scan", Args: []problem.Object{"q1"}, Cost: 1},
	}
	assert.Equal(t, 4.5, p.Cost())
	assert.Equal(t, "move(q0,q1); scan(q1)", p.String())
}

func TestStep_String(t *testing.T) {
	assert.Equal(t, "calibrate()", Step{Action: "calibrate"}.String())
	assert.Equal(t, "move(q0,q1)", Step{Action: "move", Args: []problem.Object{"q0", "q1"}}.String())
}
