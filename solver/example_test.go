package solver_test

import (
	"context"
	"fmt"
	"log"

	"github.com/zero-day-ai/streamplan/problem"
	"github.com/zero-day-ai/streamplan/solver"
	"github.com/zero-day-ai/streamplan/stream"
)

func ExampleSolver_SolveIncremental() {
	p := &problem.Problem{
		Domain: &problem.Domain{
			Name: "rover",
			Actions: []*problem.Action{{
				Name:       "move",
				Parameters: []problem.Variable{"?from", "?to"},
				Preconditions: []problem.Atom{
					problem.NewAtom("at", "?from"),
					problem.NewAtom("path", "?from", "?to"),
				},
				AddEffects:    []problem.Atom{problem.NewAtom("at", "?to")},
				DeleteEffects: []problem.Atom{problem.NewAtom("at", "?from")},
				Cost:          problem.UnitCost(),
			}},
		},
		Init: []problem.InitEntry{
			{Atom: problem.NewAtom("at", "q0")},
			{Atom: problem.NewAtom("path", "q0", "qg")},
		},
		Goal: []problem.Atom{problem.NewAtom("at", "qg")},
	}

	s, err := solver.New(p, stream.NewRegistry())
	if err != nil {
		log.Fatal(err)
	}

	sol, err := s.SolveIncremental(context.Background())
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("cost %.0f\n", sol.Cost)
	for i, step := range sol.Plan {
		fmt.Printf("%d. %s\n", i+1, step)
	}
	// Output:
	// cost 1
	// 1. move(q0,qg)
}
