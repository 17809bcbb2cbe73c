package report_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/hypinv/classify"
	"github.com/katalvlaran/hypinv/engine"
	"github.com/katalvlaran/hypinv/hypinvtest"
	"github.com/katalvlaran/hypinv/invariant"
	"github.com/katalvlaran/hypinv/report"
)

func manifold(t *testing.T, fx *hypinvtest.Fixture) *engine.Manifold {
	t.Helper()
	m, err := engine.New(fx.Manifold, engine.Dependencies{Fields: fx.Fields, Algebras: fx.Algebras, Words: fx.Words})
	require.NoError(t, err)
	return m
}

func TestBuild_Unresolved(t *testing.T) {
	r := report.Build(manifold(t, hypinvtest.NewFixture("m004")))

	require.Equal(t, "m004", r.Name)
	require.InDelta(t, 2.0298832128, r.Volume, 1e-12)
	require.Nil(t, r.TraceField)
	require.Nil(t, r.QuaternionAlgebra)
	require.Nil(t, r.Denominators)
	require.Nil(t, r.IntegerTraces)
	require.Equal(t, classify.Unknown, r.Arithmetic)
	require.Equal(t, []string{"tf", "itf", "qa", "iqa", "denominators"}, r.Unknown)
}

func TestBuild_PartiallyResolved(t *testing.T) {
	m := manifold(t, hypinvtest.NewFixture("m004"))
	_, err := m.TraceField(context.Background())
	require.NoError(t, err)

	r := report.Build(m)
	require.NotNil(t, r.TraceField)
	require.Equal(t, "x^3 - x^2 + 1", r.TraceField.Polynomial)
	require.Equal(t, 3, r.TraceField.Degree)
	require.Equal(t, 1, r.TraceField.RealPlaces)
	require.Equal(t, 1, r.TraceField.ComplexPlaces)
	require.Equal(t, "-23", r.TraceField.Discriminant)
	require.Equal(t, invariant.Coordinate{Precision: 1000, Degree: 20}, r.TraceField.FoundAt)
	require.Equal(t, []string{"qa", "iqa", "denominators"}, r.Unknown)
}

func TestBuild_Resolved(t *testing.T) {
	m := manifold(t, hypinvtest.NewFixture("m004").WithDenominator("P5", 5))
	require.NoError(t, m.ComputeArithmeticInvariants(context.Background()))
	// Fill the residue characteristic cache.
	m.DenominatorResidueCharacteristics()

	r := report.Build(m)
	require.Empty(t, r.Unknown)
	require.Equal(t, []string{"P5"}, r.Denominators)
	require.Equal(t, []string{"5"}, r.ResidueCharacteristics)
	require.NotNil(t, r.IntegerTraces)
	require.False(t, *r.IntegerTraces)
	require.Equal(t, classify.NonArithmetic, r.Arithmetic)

	require.NotNil(t, r.QuaternionAlgebra)
	require.Equal(t, [2]string{"tr(a)^2-4", "tr(abAB)-2"}, r.QuaternionAlgebra.HilbertSymbol)
	require.Equal(t, 1, r.QuaternionAlgebra.RealRamified)
	require.Equal(t, map[int64]int{5: 1}, r.QuaternionAlgebra.Ramified)
}

func TestReport_Encodings(t *testing.T) {
	m := manifold(t, hypinvtest.NewFixture("m004"))
	require.NoError(t, m.ComputeArithmeticInvariants(context.Background()))
	r := report.Build(m)

	out, err := r.YAML()
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, yaml.Unmarshal(out, &doc))
	require.Equal(t, "m004", doc["name"])
	require.Equal(t, "arithmetic", doc["arithmetic"])
	require.Equal(t, true, doc["integer_traces"])
	require.NotContains(t, doc, "unknown")

	js, err := json.Marshal(r)
	require.NoError(t, err)
	require.Contains(t, string(js), `"arithmetic":"arithmetic"`)
	require.Contains(t, string(js), `"found_at":{"precision":1000,"degree":20}`)
}
