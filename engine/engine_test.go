package engine_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/hypinv/classify"
	"github.com/katalvlaran/hypinv/compare"
	"github.com/katalvlaran/hypinv/engine"
	"github.com/katalvlaran/hypinv/hypinvtest"
	"github.com/katalvlaran/hypinv/invariant"
	"github.com/katalvlaran/hypinv/nt"
	"github.com/katalvlaran/hypinv/planner"
	"github.com/katalvlaran/hypinv/resolve"
	"github.com/katalvlaran/hypinv/state"
)

func newManifold(t *testing.T, fx *hypinvtest.Fixture, opts ...engine.Option) *engine.Manifold {
	t.Helper()
	m, err := engine.New(fx.Manifold, engine.Dependencies{Fields: fx.Fields, Algebras: fx.Algebras, Words: fx.Words}, opts...)
	require.NoError(t, err)
	return m
}

func TestNew_RequiresDependencies(t *testing.T) {
	fx := hypinvtest.NewFixture("m004")
	_, err := engine.New(fx.Manifold, engine.Dependencies{Fields: fx.Fields})
	require.ErrorIs(t, err, engine.ErrNilDependency)

	fx.Manifold.GensErr = errors.New("no holonomy")
	_, err = engine.New(fx.Manifold, engine.Dependencies{Fields: fx.Fields, Algebras: fx.Algebras, Words: fx.Words})
	require.Error(t, err)
}

func TestComputeArithmeticInvariants(t *testing.T) {
	ctx := context.Background()
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	fx := hypinvtest.NewFixture("m003(-3,1)")
	m := newManifold(t, fx, engine.WithLogger(logger))

	require.False(t, m.ArithmeticInvariantsKnown())
	_, err := m.IsArithmetic()
	require.ErrorIs(t, err, classify.ErrUnresolved)
	require.Equal(t, classify.Unknown, m.Verdict())

	require.NoError(t, m.ComputeArithmeticInvariants(ctx))
	require.True(t, m.ArithmeticInvariantsKnown())

	arith, err := m.IsArithmetic()
	require.NoError(t, err)
	require.True(t, arith)
	require.Equal(t, classify.Arithmetic, m.Verdict())
	require.Zero(t, m.Denominators().Len())
	require.Empty(t, m.DenominatorResidueCharacteristics())

	require.Contains(t, logs.String(), "field search")
	require.Contains(t, logs.String(), "algebra search")
	require.Contains(t, logs.String(), "manifold=m003(-3,1)")

	// A second pass is served from the cache.
	calls := fx.Manifold.TF.Log.Calls
	built := fx.Algebras.Built
	require.NoError(t, m.ComputeArithmeticInvariants(ctx))
	require.Equal(t, calls, fx.Manifold.TF.Log.Calls)
	require.Equal(t, built, fx.Algebras.Built)
}

func TestComputeArithmeticInvariants_NonIntegralTraces(t *testing.T) {
	fx := hypinvtest.NewFixture("m004").WithDenominator("P5", 5)
	m := newManifold(t, fx)
	require.NoError(t, m.ComputeArithmeticInvariants(context.Background()))

	require.Equal(t, classify.NonArithmetic, m.Verdict())
	require.Equal(t, []string{"P5"}, m.Denominators().Keys())
	require.Equal(t, []string{"5"}, m.DenominatorResidueCharacteristics().Strings())
}

func TestComputeArithmeticInvariants_JoinsErrors(t *testing.T) {
	fx := hypinvtest.NewFixture("m004")
	fx.Words.DegenerateRounds = 1000
	m := newManifold(t, fx, engine.WithResolve(resolve.WithMaxEpsilonRounds(2)))

	err := m.ComputeArithmeticInvariants(context.Background())
	require.ErrorIs(t, err, resolve.ErrInsufficientSeparation)
	require.ErrorContains(t, err, "invariant quaternion algebra")

	// Fields and denominators still resolved.
	require.True(t, m.State().Resolved(invariant.TraceField))
	require.True(t, m.State().Resolved(invariant.InvariantTraceField))
	require.True(t, m.Denominators().Known())
	require.False(t, m.ArithmeticInvariantsKnown())
}

func TestComputeArithmeticInvariants_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	m := newManifold(t, hypinvtest.NewFixture("m004"))
	require.ErrorIs(t, m.ComputeArithmeticInvariants(ctx), context.Canceled)
}

func TestResolveNamed(t *testing.T) {
	ctx := context.Background()
	m := newManifold(t, hypinvtest.NewFixture("m004"), engine.WithResolve(resolve.WithTraceFieldPropagation(false)))

	ok, err := m.ResolveNamed(ctx, "Invariant Trace Field")
	require.NoError(t, err)
	require.True(t, ok)
	require.False(t, m.State().Resolved(invariant.TraceField))

	ok, err = m.ResolveNamed(ctx, "iqa")
	require.NoError(t, err)
	require.True(t, ok)

	_, err = m.ResolveNamed(ctx, "cusp field")
	require.ErrorIs(t, err, invariant.ErrUnknownKind)
	_, err = m.Resolve(ctx, invariant.Kind(11))
	require.ErrorIs(t, err, invariant.ErrUnknownKind)
}

func TestTypedAccessors(t *testing.T) {
	ctx := context.Background()
	fx := hypinvtest.NewFixture("m004")
	m := newManifold(t, fx)

	tf, err := m.TraceField(ctx)
	require.NoError(t, err)
	itf, err := m.InvariantTraceField(ctx)
	require.NoError(t, err)
	require.Same(t, tf, itf)

	qa, err := m.QuaternionAlgebra(ctx)
	require.NoError(t, err)
	iqa, err := m.InvariantQuaternionAlgebra(ctx)
	require.NoError(t, err)
	require.NotSame(t, qa, iqa)
	require.Equal(t, []int{1, 2}, fx.Words.Powers)
}

func TestNextCoordinate_FollowsPlannerOptions(t *testing.T) {
	fx := hypinvtest.NewFixture("m004")
	fx.Manifold.TF.MinPrecision = 1 << 20
	m := newManifold(t, fx, engine.WithPlanner(planner.WithStartPrecision(2000), planner.WithPrecisionIncrement(1000)))

	at, err := m.NextCoordinate(invariant.TraceField)
	require.NoError(t, err)
	require.Equal(t, invariant.Coordinate{Precision: 2000, Degree: 20}, at)

	ok, err := m.Resolve(context.Background(), invariant.TraceField)
	require.NoError(t, err)
	require.False(t, ok)

	at, err = m.NextCoordinate(invariant.TraceField)
	require.NoError(t, err)
	require.Equal(t, invariant.Coordinate{Precision: 3000, Degree: 25}, at)
}

func TestDehnFill_ResetsInvariants(t *testing.T) {
	ctx := context.Background()
	fx := hypinvtest.NewFixture("m004")
	// The filled manifold has odd H_1 and needs more precision.
	fx.Manifold.OnFill = func(h *hypinvtest.Manifold) {
		h.Divisors = []int{5}
		h.TF.MinPrecision = 6000
	}
	m := newManifold(t, fx)
	require.NoError(t, m.ComputeArithmeticInvariants(ctx))
	gen := m.State().Generation()

	require.NoError(t, m.DehnFill(nt.Filling{Cusp: 0, Meridian: 5, Longitude: 1}))
	require.Equal(t, []nt.Filling{{Cusp: 0, Meridian: 5, Longitude: 1}}, fx.Manifold.Fillings)
	require.NotEqual(t, gen, m.State().Generation())
	require.False(t, m.ArithmeticInvariantsKnown())
	require.Nil(t, m.Denominators())
	require.True(t, m.State().ModTwoHomologySphere())

	ok, err := m.Resolve(ctx, invariant.TraceField)
	require.NoError(t, err)
	require.False(t, ok, "first attempt after the filling runs at the start coordinate again")
	ok, err = m.Resolve(ctx, invariant.TraceField)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, invariant.Coordinate{Precision: 6000, Degree: 25}, m.State().Field(invariant.TraceField).Coordinate)
}

func TestDehnFill_FailedReloadForgetsOldInvariants(t *testing.T) {
	ctx := context.Background()
	down := errors.New("backend down")
	fx := hypinvtest.NewFixture("m004")
	fx.Manifold.OnFill = func(h *hypinvtest.Manifold) { h.GensErr = down }
	m := newManifold(t, fx)
	require.NoError(t, m.ComputeArithmeticInvariants(ctx))
	gen := m.State().Generation()

	err := m.DehnFill(nt.Filling{Cusp: 0, Meridian: 1, Longitude: 2})
	require.ErrorIs(t, err, down)

	require.NotEqual(t, gen, m.State().Generation())
	require.False(t, m.ArithmeticInvariantsKnown())
	require.Nil(t, m.State().Field(invariant.TraceField))
	require.Nil(t, m.Denominators())
	_, err = m.IsArithmetic()
	require.ErrorIs(t, err, classify.ErrUnresolved)
	require.Equal(t, classify.Unknown, m.Verdict())

	calls := fx.Manifold.TF.Log.Calls
	_, err = m.Resolve(ctx, invariant.TraceField)
	require.ErrorIs(t, err, state.ErrNoGenerators)
	require.Equal(t, calls, fx.Manifold.TF.Log.Calls)
	require.Empty(t, m.State().FieldAttempts(invariant.TraceField))
}

func TestCompareAndConjugate(t *testing.T) {
	ctx := context.Background()
	a := newManifold(t, hypinvtest.NewFixture("m003(-3,1)"))
	b := newManifold(t, hypinvtest.NewFixture("m003(-2,3)"))

	_, err := a.Compare(ctx, b)
	require.ErrorIs(t, err, compare.ErrUnresolved)

	require.NoError(t, a.ComputeArithmeticInvariants(ctx))
	require.NoError(t, b.ComputeArithmeticInvariants(ctx))

	res, err := a.Compare(ctx, b)
	require.NoError(t, err)
	require.True(t, res.Same())
	same, err := a.SameInvariants(ctx, b)
	require.NoError(t, err)
	require.True(t, same)

	conj, err := a.ConjugateInvariants(ctx)
	require.NoError(t, err)
	require.NotNil(t, conj.TraceField)
	require.NotNil(t, conj.QuaternionAlgebra)
}

func TestReport(t *testing.T) {
	m := newManifold(t, hypinvtest.NewFixture("m004"))
	r := m.Report()
	require.Equal(t, "m004", r.Name)
	require.ElementsMatch(t, []string{"tf", "itf", "qa", "iqa", "denominators"}, r.Unknown)

	require.NoError(t, m.ComputeArithmeticInvariants(context.Background()))
	r = m.Report()
	require.Empty(t, r.Unknown)
	require.Equal(t, classify.Arithmetic, r.Arithmetic)
	require.Equal(t, m.State().Generation().String(), r.Generation)
}
