package runner

import (
	"digital.vasic.testnames/pkg/naming"
	"digital.vasic.testnames/pkg/suite"
)

// invocation is one scheduled execution of a method.
type invocation struct {
	row        int
	repetition int
	params     []any
}

// expand lists the invocations of m: every data row (or one
// parameterless row) for every repetition.
func expand(m suite.Method) []invocation {
	rows := m.Rows
	if len(rows) == 0 {
		rows = [][]any{nil}
	}
	reps := m.InvocationCount
	if reps < 1 {
		reps = 1
	}

	out := make([]invocation, 0, len(rows)*reps)
	for rep := 1; rep <= reps; rep++ {
		for i, params := range rows {
			out = append(out, invocation{
				row:        i,
				repetition: rep,
				params:     params,
			})
		}
	}
	return out
}

// NewDescriptor adapts a suite method and one of its parameter rows
// into a naming descriptor.
func NewDescriptor(
	s *naming.Suite, m suite.Method, row int, params []any,
) *naming.Descriptor {
	var copied []any
	if params != nil {
		copied = make([]any, len(params))
		copy(copied, params)
	}
	return &naming.Descriptor{
		Suite:              s,
		Method:             m.Method,
		Parameters:         copied,
		RowIndex:           row,
		CustomDataProvider: s != nil && naming.IsCustomDataProvider(s.Parameters),
	}
}
