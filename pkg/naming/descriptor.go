package naming

// Method describes the test method of an invocation.
type Method struct {
	// Name is the method name.
	Name string `json:"name" yaml:"name"`

	// Package is the package (or namespace) declaring the method.
	Package string `json:"package,omitempty" yaml:"package,omitempty"`

	// Priority is the declared execution priority.
	Priority int `json:"priority" yaml:"priority"`

	// ThreadPoolSize is the declared concurrency for repeated
	// invocations of the method.
	ThreadPoolSize int `json:"thread_pool_size" yaml:"thread_pool_size"`

	// Description is the optional human description.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// InvocationCount is the declared number of repetitions. Values
	// greater than 1 enable the repeat suffix.
	InvocationCount int `json:"invocation_count" yaml:"invocation_count"`
}

// Repeats reports whether the method is configured to run more than
// once.
func (m Method) Repeats() bool { return m.InvocationCount > 1 }

// Suite is the enclosing suite or run of an invocation.
type Suite struct {
	// Name is the suite/run name and the default base name.
	Name string

	// Parameters are the suite-level parameters.
	Parameters map[string]string

	// Overrides maps parameter-list hashes to precomputed base
	// names. May be nil.
	Overrides OverrideLookup
}

// Descriptor is the read-only view of one invocation that the engine
// names.
type Descriptor struct {
	// Suite links the invocation to its run. A nil Suite makes
	// naming fail with MissingContextError.
	Suite *Suite

	// Method is the invoked test method.
	Method Method

	// Parameters are the actual runtime parameter values in
	// declaration order.
	Parameters []any

	// RowIndex is the zero-based data-row index when parameters come
	// from a tabular source, zero otherwise.
	RowIndex int

	// CustomDataProvider enables unique-id extraction from
	// parameters.
	CustomDataProvider bool
}

// Suite parameters that switch a suite into custom data-provider mode.
const (
	ParamDataSourceProvider      = "ds_custom_provider"
	ParamExcelDataSourceProvider = "excel_ds_custom_provider"
)

// IsCustomDataProvider reports whether suite parameters declare a
// custom data provider.
func IsCustomDataProvider(params map[string]string) bool {
	if params == nil {
		return false
	}
	if _, ok := params[ParamDataSourceProvider]; ok {
		return true
	}
	_, ok := params[ParamExcelDataSourceProvider]
	return ok
}
