// Package suite provides declarative test suite definitions: the
// methods, data rows, repeat counts and name overrides of a run.
package suite

import (
	"fmt"
	"sort"

	"digital.vasic.testnames/pkg/naming"
)

// Suite describes one run of test methods.
type Suite struct {
	// Name is the suite/run name used as the default base name.
	Name string `yaml:"name"`

	// Parameters are suite-level parameters. Declaring
	// ds_custom_provider or excel_ds_custom_provider enables
	// unique-id extraction.
	Parameters map[string]string `yaml:"parameters,omitempty"`

	// Overrides supplies precomputed base names for specific
	// parameter lists.
	Overrides []Override `yaml:"overrides,omitempty"`

	// Methods are the test methods of the suite.
	Methods []Method `yaml:"methods"`
}

// Override maps a parameter list to a base name.
type Override struct {
	Parameters []any  `yaml:"parameters"`
	Name       string `yaml:"name"`
}

// Method is a test method with its optional data rows.
type Method struct {
	naming.Method `yaml:",inline"`

	// Rows are the parameter rows of a tabular data source. Each
	// row is one invocation per repetition.
	Rows [][]any `yaml:"rows,omitempty"`
}

// Validate checks that the suite can be run.
func (s *Suite) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("suite name must not be empty")
	}
	seen := make(map[string]struct{}, len(s.Methods))
	for i, m := range s.Methods {
		if m.Name == "" {
			return fmt.Errorf(
				"suite %s: method %d has no name", s.Name, i,
			)
		}
		if _, dup := seen[m.Name]; dup {
			return fmt.Errorf(
				"suite %s: duplicate method %s", s.Name, m.Name,
			)
		}
		seen[m.Name] = struct{}{}
		if m.InvocationCount < 0 {
			return fmt.Errorf(
				"suite %s: method %s: negative invocation_count",
				s.Name, m.Name,
			)
		}
		if m.ThreadPoolSize < 0 {
			return fmt.Errorf(
				"suite %s: method %s: negative thread_pool_size",
				s.Name, m.Name,
			)
		}
	}
	return nil
}

// Naming returns the naming view of the suite with a freshly
// populated override table.
func (s *Suite) Naming() *naming.Suite {
	var overrides naming.OverrideLookup
	if len(s.Overrides) > 0 {
		table := naming.NewOverrideTable()
		for _, o := range s.Overrides {
			table.Put(o.Parameters, o.Name)
		}
		overrides = table
	}
	return &naming.Suite{
		Name:       s.Name,
		Parameters: s.Parameters,
		Overrides:  overrides,
	}
}

// Ordered returns the methods sorted by priority, then name.
func (s *Suite) Ordered() []Method {
	out := make([]Method, len(s.Methods))
	copy(out, s.Methods)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Priority != out[j].Priority {
			return out[i].Priority < out[j].Priority
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Invocations returns how many invocations m expands to.
func (m Method) Invocations() int {
	rows := len(m.Rows)
	if rows == 0 {
		rows = 1
	}
	reps := m.InvocationCount
	if reps < 1 {
		reps = 1
	}
	return rows * reps
}
