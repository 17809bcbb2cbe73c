package planner_test

import (
	"fmt"

	"github.com/katalvlaran/hypinv/invariant"
	"github.com/katalvlaran/hypinv/planner"
)

// ExamplePlanner_Next walks the trace field schedule through one failure,
// then shows how a known invariant trace field degree (4) rescales the
// degree guess.
func ExamplePlanner_Next() {
	p := planner.New()
	h := &planner.Log{}

	next, _ := p.Next(invariant.TraceField, h)
	fmt.Println("start:", next)

	h.TraceField.Attempts = append(h.TraceField.Attempts, planner.FieldEntry{Precision: next.Precision, Degree: next.Degree})
	next, _ = p.Next(invariant.TraceField, h)
	fmt.Println("after failure:", next)

	h.InvariantTraceField.Degree = 4
	next, _ = p.Next(invariant.TraceField, h)
	fmt.Println("with itf degree 4:", next)

	next, _ = p.Next(invariant.QuaternionAlgebra, h)
	fmt.Println("algebra precision:", next.Precision)
	// Output:
	// start: (1000, 20)
	// after failure: (6000, 25)
	// with itf degree 4: (6000, 8)
	// algebra precision: 6000
}
