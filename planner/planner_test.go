package planner_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/hypinv/invariant"
	"github.com/katalvlaran/hypinv/planner"
)

type PlannerSuite struct {
	suite.Suite
	p   planner.Planner
	log *planner.Log
}

func (s *PlannerSuite) SetupTest() {
	s.p = planner.New()
	s.log = &planner.Log{}
}

func (s *PlannerSuite) next(k invariant.Kind) invariant.Coordinate {
	c, err := s.p.Next(k, s.log)
	s.Require().NoError(err)
	return c
}

func at(p, d int) invariant.Coordinate { return invariant.Coordinate{Precision: p, Degree: d} }

func (s *PlannerSuite) TestEmptyHistoryStartsAtDefaults() {
	require := require.New(s.T())
	for _, k := range invariant.Kinds {
		require.Equal(at(1000, 20), s.next(k), k.String())
	}
}

func (s *PlannerSuite) TestSingleSuccessIsReused() {
	s.log.TraceField.Attempts = []planner.FieldEntry{{Precision: 6000, Degree: 25, Found: true}}
	s.Require().Equal(at(6000, 25), s.next(invariant.TraceField))
}

func (s *PlannerSuite) TestTwoSuccessesGiveComponentWiseMinimum() {
	s.log.TraceField.Attempts = []planner.FieldEntry{
		{Precision: 1000, Degree: 30, Found: true},
		{Precision: 3000, Degree: 20, Found: true},
	}
	s.Require().Equal(at(1000, 20), s.next(invariant.TraceField))
}

func (s *PlannerSuite) TestFailureEscalatesBothComponents() {
	s.log.TraceField.Attempts = []planner.FieldEntry{{Precision: 1000, Degree: 20}}
	s.Require().Equal(at(6000, 25), s.next(invariant.TraceField))

	s.log.TraceField.Attempts = append(s.log.TraceField.Attempts, planner.FieldEntry{Precision: 6000, Degree: 25})
	s.Require().Equal(at(11000, 30), s.next(invariant.TraceField))
}

func (s *PlannerSuite) TestFailuresEscalatePastIndependentMaxima() {
	s.log.TraceField.Attempts = []planner.FieldEntry{
		{Precision: 6000, Degree: 20},
		{Precision: 1000, Degree: 40},
	}
	s.Require().Equal(at(11000, 45), s.next(invariant.TraceField))
}

func (s *PlannerSuite) TestLaterOutcomeOverwritesEarlier() {
	s.log.TraceField.Attempts = []planner.FieldEntry{
		{Precision: 1000, Degree: 20, Found: true},
		{Precision: 1000, Degree: 20, Found: false},
	}
	s.Require().Equal(at(6000, 25), s.next(invariant.TraceField))
}

func (s *PlannerSuite) TestTraceFieldDegreeScaledFromInvariantTraceField() {
	require := require.New(s.T())
	s.log.TraceField.Attempts = []planner.FieldEntry{{Precision: 1000, Degree: 20}}
	s.log.InvariantTraceField.Degree = 4

	// 6000·(5/5000)/4 = 1.5; ceil(log2(1.5)+1) = 2; 2·4 = 8.
	require.Equal(at(6000, 8), s.next(invariant.TraceField))

	// A small implied degree never drops below the sibling's degree.
	s.log.InvariantTraceField.Degree = 16
	require.Equal(at(6000, 16), s.next(invariant.TraceField))
}

func (s *PlannerSuite) TestTraceFieldDegreeOnModTwoSphere() {
	s.log.ModTwo = true
	s.log.TraceField.Attempts = []planner.FieldEntry{{Precision: 1000, Degree: 20}}
	s.log.InvariantTraceField.Degree = 4
	s.Require().Equal(at(6000, 4), s.next(invariant.TraceField))
}

func (s *PlannerSuite) TestInvariantTraceFieldTakesTraceFieldDegree() {
	s.log.InvariantTraceField.Attempts = []planner.FieldEntry{{Precision: 1000, Degree: 20}}
	s.log.TraceField.Degree = 6
	s.Require().Equal(at(6000, 6), s.next(invariant.InvariantTraceField))
}

func (s *PlannerSuite) TestSiblingCorrectionOnlyAfterFailures() {
	s.log.TraceField.Degree = 6
	s.Require().Equal(at(1000, 20), s.next(invariant.InvariantTraceField))
}

func (s *PlannerSuite) TestAlgebraFollowsFieldWhenEmpty() {
	s.log.TraceField.Attempts = []planner.FieldEntry{{Precision: 1000, Degree: 20}}
	s.Require().Equal(at(6000, 25), s.next(invariant.QuaternionAlgebra))
}

func (s *PlannerSuite) TestAlgebraReusesMinimumSuccess() {
	s.log.QuaternionAlgebra = []planner.AlgebraEntry{{Precision: 11000, Found: true}, {Precision: 6000, Found: true}}
	s.Require().Equal(6000, s.next(invariant.QuaternionAlgebra).Precision)
}

func (s *PlannerSuite) TestAlgebraFailureEscalatesPastField() {
	require := require.New(s.T())
	s.log.InvariantQuaternionAlgebra = []planner.AlgebraEntry{{Precision: 1000}}
	require.Equal(6000, s.next(invariant.InvariantQuaternionAlgebra).Precision)

	// The field's own escalation wins when it is further ahead.
	s.log.InvariantTraceField.Attempts = []planner.FieldEntry{{Precision: 11000, Degree: 20}}
	require.Equal(16000, s.next(invariant.InvariantQuaternionAlgebra).Precision)
}

func (s *PlannerSuite) TestUnknownKind() {
	_, err := s.p.Next(invariant.Kind(42), s.log)
	s.Require().ErrorIs(err, invariant.ErrUnknownKind)
}

func (s *PlannerSuite) TestCustomIncrements() {
	s.p = planner.New(planner.WithStartPrecision(500), planner.WithStartDegree(10),
		planner.WithPrecisionIncrement(100), planner.WithDegreeIncrement(2))
	s.Require().Equal(at(500, 10), s.next(invariant.TraceField))
	s.log.TraceField.Attempts = []planner.FieldEntry{{Precision: 500, Degree: 10}}
	s.Require().Equal(at(600, 12), s.next(invariant.TraceField))
}

func (s *PlannerSuite) TestLogFromYAML() {
	require := require.New(s.T())
	src := `
mod_two_homology_sphere: false
trace_field:
  attempts:
    - {precision: 1000, degree: 20, found: false}
invariant_trace_field:
  degree: 4
  attempts:
    - {precision: 1000, degree: 20, found: true}
quaternion_algebra:
  - {precision: 1000, found: false}
`
	var log planner.Log
	require.NoError(yaml.Unmarshal([]byte(src), &log))
	s.log = &log

	d, ok := log.FieldDegree(invariant.InvariantTraceField)
	require.True(ok)
	require.Equal(4, d)
	_, ok = log.FieldDegree(invariant.TraceField)
	require.False(ok)

	require.Equal(at(6000, 8), s.next(invariant.TraceField))
	require.Equal(at(1000, 20), s.next(invariant.InvariantTraceField))
	require.Equal(6000, s.next(invariant.QuaternionAlgebra).Precision)
}

func TestPlannerSuite(t *testing.T) {
	suite.Run(t, new(PlannerSuite))
}

func TestOptions_PanicOnInvalid(t *testing.T) {
	require.Panics(t, func() { planner.New(planner.WithStartPrecision(0)) })
	require.Panics(t, func() { planner.New(planner.WithStartDegree(-1)) })
	require.Panics(t, func() { planner.New(planner.WithPrecisionIncrement(0)) })
	require.Panics(t, func() { planner.New(planner.WithDegreeIncrement(0)) })
}

func TestDefaultOptions(t *testing.T) {
	o := planner.New().Options()
	require.Equal(t, planner.DefaultOptions(), o)
	require.Equal(t, 1000, o.StartPrecision)
	require.Equal(t, 20, o.StartDegree)
	require.Equal(t, 5000, o.PrecisionIncrement)
	require.Equal(t, 5, o.DegreeIncrement)
}
