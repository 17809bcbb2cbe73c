package planner

import "github.com/katalvlaran/hypinv/invariant"

// FieldEntry is one recorded field search.
type FieldEntry struct {
	Precision int  `yaml:"precision" json:"precision"`
	Degree    int  `yaml:"degree" json:"degree"`
	Found     bool `yaml:"found" json:"found"`
}

// AlgebraEntry is one recorded algebra search.
type AlgebraEntry struct {
	Precision int  `yaml:"precision" json:"precision"`
	Found     bool `yaml:"found" json:"found"`
}

// FieldLog is the attempt list of one field kind. Degree is the degree of
// the field once found; zero while unresolved.
type FieldLog struct {
	Degree   int          `yaml:"degree,omitempty" json:"degree,omitempty"`
	Attempts []FieldEntry `yaml:"attempts" json:"attempts"`
}

// Log is a static History, typically decoded from a YAML attempt log so that
// planning decisions can be replayed offline. Later entries at the same
// coordinate overwrite earlier ones, as in a live state.
type Log struct {
	ModTwo                     bool           `yaml:"mod_two_homology_sphere" json:"mod_two_homology_sphere"`
	TraceField                 FieldLog       `yaml:"trace_field" json:"trace_field"`
	InvariantTraceField        FieldLog       `yaml:"invariant_trace_field" json:"invariant_trace_field"`
	QuaternionAlgebra          []AlgebraEntry `yaml:"quaternion_algebra" json:"quaternion_algebra"`
	InvariantQuaternionAlgebra []AlgebraEntry `yaml:"invariant_quaternion_algebra" json:"invariant_quaternion_algebra"`
}

var _ History = (*Log)(nil)

func (l *Log) field(k invariant.Kind) *FieldLog {
	switch k {
	case invariant.TraceField:
		return &l.TraceField
	case invariant.InvariantTraceField:
		return &l.InvariantTraceField
	}
	return nil
}

// FieldAttempts implements History.
func (l *Log) FieldAttempts(k invariant.Kind) invariant.FieldAttempts {
	fl := l.field(k)
	if fl == nil {
		return nil
	}
	out := invariant.FieldAttempts{}
	for _, e := range fl.Attempts {
		out.Record(invariant.Coordinate{Precision: e.Precision, Degree: e.Degree}, e.Found)
	}
	return out
}

// AlgebraAttempts implements History.
func (l *Log) AlgebraAttempts(k invariant.Kind) invariant.AlgebraAttempts {
	var entries []AlgebraEntry
	switch k {
	case invariant.QuaternionAlgebra:
		entries = l.QuaternionAlgebra
	case invariant.InvariantQuaternionAlgebra:
		entries = l.InvariantQuaternionAlgebra
	default:
		return nil
	}
	out := invariant.AlgebraAttempts{}
	for _, e := range entries {
		out.Record(e.Precision, e.Found)
	}
	return out
}

// FieldDegree implements History.
func (l *Log) FieldDegree(k invariant.Kind) (int, bool) {
	fl := l.field(k)
	if fl == nil || fl.Degree <= 0 {
		return 0, false
	}
	return fl.Degree, true
}

// ModTwoHomologySphere implements History.
func (l *Log) ModTwoHomologySphere() bool { return l.ModTwo }
