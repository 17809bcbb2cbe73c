package invariant_test

import (
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/hypinv/hypinvtest"
	"github.com/katalvlaran/hypinv/invariant"
	"github.com/katalvlaran/hypinv/nt"
)

// ------------------------------------------------------------------------
// 1. Kinds
// ------------------------------------------------------------------------

func TestParseKind_ShortAndLongNames(t *testing.T) {
	for _, k := range invariant.Kinds {
		got, err := invariant.ParseKind(k.Short())
		require.NoError(t, err)
		require.Equal(t, k, got, "short name %q", k.Short())

		got, err = invariant.ParseKind("  " + k.String() + " ")
		require.NoError(t, err)
		require.Equal(t, k, got, "long name %q", k.String())
	}

	got, err := invariant.ParseKind("Invariant Trace Field")
	require.NoError(t, err)
	require.Equal(t, invariant.InvariantTraceField, got)
}

func TestParseKind_Unknown(t *testing.T) {
	_, err := invariant.ParseKind("modular symbol")
	require.True(t, errors.Is(err, invariant.ErrUnknownKind), "got %v", err)
}

func TestKind_TextRoundTrip(t *testing.T) {
	var k invariant.Kind
	require.NoError(t, k.UnmarshalText([]byte("iqa")))
	require.Equal(t, invariant.InvariantQuaternionAlgebra, k)

	b, err := k.MarshalText()
	require.NoError(t, err)
	require.Equal(t, "iqa", string(b))

	_, err = invariant.Kind(7).MarshalText()
	require.ErrorIs(t, err, invariant.ErrUnknownKind)
}

func TestKind_Relations(t *testing.T) {
	require.Equal(t, invariant.TraceField, invariant.QuaternionAlgebra.FieldOf())
	require.Equal(t, invariant.InvariantTraceField, invariant.InvariantQuaternionAlgebra.FieldOf())
	require.Equal(t, invariant.InvariantQuaternionAlgebra, invariant.InvariantTraceField.AlgebraOf())
	require.Equal(t, invariant.InvariantTraceField, invariant.TraceField.Sibling())
	require.Equal(t, invariant.TraceField, invariant.InvariantTraceField.Sibling())

	require.Equal(t, 1, invariant.QuaternionAlgebra.Power())
	require.Equal(t, 2, invariant.InvariantQuaternionAlgebra.Power())

	require.True(t, invariant.TraceField.IsField())
	require.False(t, invariant.TraceField.IsAlgebra())
	require.False(t, invariant.Kind(-1).Valid())
	require.Equal(t, "", invariant.Kind(9).Short())
}

// ------------------------------------------------------------------------
// 2. Attempt records
// ------------------------------------------------------------------------

func TestFieldAttempts_MinSuccessIsComponentWise(t *testing.T) {
	a := invariant.FieldAttempts{}
	a.Record(invariant.Coordinate{Precision: 1000, Degree: 30}, true)
	a.Record(invariant.Coordinate{Precision: 3000, Degree: 20}, true)
	a.Record(invariant.Coordinate{Precision: 500, Degree: 10}, false)

	c, ok := a.MinSuccess()
	require.True(t, ok)
	// Never attempted as a pair, but each component is known to suffice.
	require.Equal(t, invariant.Coordinate{Precision: 1000, Degree: 20}, c)
	require.True(t, a.AnySuccess())
}

func TestFieldAttempts_MaxFailureIsComponentWise(t *testing.T) {
	a := invariant.FieldAttempts{}
	a.Record(invariant.Coordinate{Precision: 6000, Degree: 20}, false)
	a.Record(invariant.Coordinate{Precision: 1000, Degree: 25}, false)

	c, ok := a.MaxFailure()
	require.True(t, ok)
	require.Equal(t, invariant.Coordinate{Precision: 6000, Degree: 25}, c)
	_, ok = a.MinSuccess()
	require.False(t, ok)
	require.False(t, a.AnySuccess())
}

func TestFieldAttempts_RecordOverwrites(t *testing.T) {
	a := invariant.FieldAttempts{}
	at := invariant.Coordinate{Precision: 1000, Degree: 20}
	a.Record(at, true)
	a.Record(at, false)
	require.Len(t, a, 1)
	require.False(t, a[at])
}

func TestFieldAttempts_Sorted(t *testing.T) {
	a := invariant.FieldAttempts{}
	a.Record(invariant.Coordinate{Precision: 6000, Degree: 25}, false)
	a.Record(invariant.Coordinate{Precision: 1000, Degree: 25}, false)
	a.Record(invariant.Coordinate{Precision: 1000, Degree: 20}, true)
	require.Equal(t, []invariant.Coordinate{
		{Precision: 1000, Degree: 20},
		{Precision: 1000, Degree: 25},
		{Precision: 6000, Degree: 25},
	}, a.Sorted())
}

func TestCoordinate_LessEqIsPartial(t *testing.T) {
	x := invariant.Coordinate{Precision: 1000, Degree: 30}
	y := invariant.Coordinate{Precision: 2000, Degree: 20}
	require.False(t, x.LessEq(y))
	require.False(t, y.LessEq(x))
	require.True(t, x.LessEq(invariant.Coordinate{Precision: 1000, Degree: 30}))
	require.Equal(t, "(1000, 30)", x.String())
}

func TestAlgebraAttempts(t *testing.T) {
	a := invariant.AlgebraAttempts{}
	_, ok := a.MinSuccess()
	require.False(t, ok)

	a.Record(6000, true)
	a.Record(1000, false)
	a.Record(11000, true)
	a.Record(3000, false)

	p, ok := a.MinSuccess()
	require.True(t, ok)
	require.Equal(t, 6000, p)
	p, ok = a.MaxFailure()
	require.True(t, ok)
	require.Equal(t, 3000, p)
	require.Equal(t, []int{1000, 3000, 6000, 11000}, a.Sorted())
}

// ------------------------------------------------------------------------
// 3. Ideal and prime sets
// ------------------------------------------------------------------------

func TestIdealSet_UnknownVersusEmpty(t *testing.T) {
	var unknown *invariant.IdealSet
	empty := invariant.NewIdealSet()

	require.False(t, unknown.Known())
	require.True(t, empty.Known())
	require.Equal(t, 0, unknown.Len())
	require.Equal(t, 0, empty.Len())

	require.True(t, unknown.Equal(nil))
	require.False(t, unknown.Equal(empty))
	require.False(t, empty.Equal(unknown))
	require.True(t, empty.Equal(invariant.NewIdealSet()))
}

func TestIdealSet_EqualMapAndKeys(t *testing.T) {
	p5 := &hypinvtest.Ideal{Label: "p5", Norm: 5}
	p2 := &hypinvtest.Ideal{Label: "p2", Norm: 2}

	s := invariant.NewIdealSet(p5, p2, p5)
	require.Equal(t, 2, s.Len())
	require.True(t, s.Contains(p2))
	require.Equal(t, []string{"p2", "p5"}, s.Keys())
	require.True(t, s.Equal(invariant.NewIdealSet(p2, p5)))
	require.False(t, s.Equal(invariant.NewIdealSet(p2)))

	renamed, err := s.Map(func(i nt.Ideal) (nt.Ideal, error) {
		return &hypinvtest.Ideal{Label: i.Key() + "'", Norm: 1}, nil
	})
	require.NoError(t, err)
	require.Equal(t, []string{"p2'", "p5'"}, renamed.Keys())

	_, err = s.Map(func(nt.Ideal) (nt.Ideal, error) { return nil, errors.New("boom") })
	require.Error(t, err)
}

func TestPrimeSet_SortsAndDeduplicates(t *testing.T) {
	s := invariant.NewPrimeSet(big.NewInt(5), big.NewInt(2), big.NewInt(5))
	require.Equal(t, []string{"2", "5"}, s.Strings())
	require.True(t, s.Equal(invariant.NewPrimeSet(big.NewInt(2), big.NewInt(5))))
	require.False(t, s.Equal(invariant.NewPrimeSet(big.NewInt(2))))
	require.NotNil(t, invariant.NewPrimeSet())
}
