package naming

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"digital.vasic.testnames/pkg/logging"
	"digital.vasic.testnames/pkg/metrics"
)

// Default suffix formats and unique-id marker. In the formats, %s
// receives the 4-digit zero-padded index.
const (
	DefaultRowFormat    = " [L%s]"
	DefaultRepeatFormat = " (InvCount=%s)"
	DefaultUIDMarker    = "TUID:"
)

// Engine computes invocation names and stores them per execution.
type Engine struct {
	counter      *RepeatCounter
	cells        *Cells
	patterns     PatternSource
	tokens       Placeholders
	rowFormat    string
	repeatFormat string
	uidMarker    string
	logger       logging.Logger
	metrics      metrics.NamingMetrics
}

// Option configures an Engine.
type Option func(*Engine)

// WithPatternSource sets where the naming template is read from. The
// source is consulted on every computation.
func WithPatternSource(src PatternSource) Option {
	return func(e *Engine) {
		e.patterns = src
	}
}

// WithPlaceholders overrides the template tokens.
func WithPlaceholders(p Placeholders) Option {
	return func(e *Engine) {
		e.tokens = p.withDefaults()
	}
}

// WithRowFormat sets the data-row suffix format.
func WithRowFormat(format string) Option {
	return func(e *Engine) {
		if format != "" {
			e.rowFormat = format
		}
	}
}

// WithRepeatFormat sets the repeat suffix format.
func WithRepeatFormat(format string) Option {
	return func(e *Engine) {
		if format != "" {
			e.repeatFormat = format
		}
	}
}

// WithUIDMarker sets the marker that introduces a unique id inside a
// parameter value.
func WithUIDMarker(marker string) Option {
	return func(e *Engine) {
		if marker != "" {
			e.uidMarker = marker
		}
	}
}

// WithCells sets the execution name store, letting several engines
// share one. A nil store is ignored.
func WithCells(c *Cells) Option {
	return func(e *Engine) {
		if c != nil {
			e.cells = c
		}
	}
}

// WithLogger sets the engine logger.
func WithLogger(l logging.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// WithMetrics sets the metrics sink.
func WithMetrics(m metrics.NamingMetrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

// NewEngine creates an Engine sharing counter with every other engine
// the caller hands it to. A nil counter gets a private one.
func NewEngine(counter *RepeatCounter, opts ...Option) *Engine {
	if counter == nil {
		counter = NewRepeatCounter()
	}
	e := &Engine{
		counter:      counter,
		cells:        NewCells(),
		patterns:     StaticPattern(DefaultTemplate),
		tokens:       DefaultPlaceholders(),
		rowFormat:    DefaultRowFormat,
		repeatFormat: DefaultRepeatFormat,
		uidMarker:    DefaultUIDMarker,
		logger:       logging.NullLogger{},
		metrics:      metrics.NoopMetrics{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Cells returns the engine's execution name store.
func (e *Engine) Cells() *Cells { return e.cells }

// Counter returns the shared repeat counter.
func (e *Engine) Counter() *RepeatCounter { return e.counter }

// ComputeName builds the name of the invocation described by d and
// stores it for the execution bound to ctx.
func (e *Engine) ComputeName(
	ctx context.Context, d *Descriptor,
) (string, error) {
	if _, ok := ExecutionFrom(ctx); !ok {
		return "", ErrUnboundExecution
	}
	name, err := e.compose(d)
	if err != nil {
		return "", err
	}
	if err := e.cells.Set(ctx, name); err != nil {
		return "", err
	}
	return name, nil
}

// Name returns the name stored for the execution bound to ctx.
func (e *Engine) Name(ctx context.Context) (string, error) {
	return e.cells.Get(ctx)
}

// NameFor returns the stored name, computing it from d first when
// nothing has been stored yet. It covers invocations the host reports
// before their start notification, such as skips.
func (e *Engine) NameFor(
	ctx context.Context, d *Descriptor,
) (string, error) {
	name, err := e.cells.Get(ctx)
	if err == nil {
		return name, nil
	}
	if !errors.Is(err, ErrNameNotReady) {
		return "", err
	}
	return e.ComputeName(ctx, d)
}

// SetName stores a caller-supplied name, bypassing computation.
func (e *Engine) SetName(
	ctx context.Context, name string,
) (string, error) {
	if err := e.cells.Set(ctx, name); err != nil {
		return "", err
	}
	e.logger.Warn("test name overridden",
		logging.StringField("name", name),
	)
	e.metrics.RecordName("", metrics.KindManual)
	return name, nil
}

// MethodName formats the method of d with the configured template.
func (e *Engine) MethodName(d *Descriptor) string {
	if d == nil {
		return ""
	}
	return e.pattern().Format(d.Method)
}

// PackageName returns the package declaring the method of d.
func (e *Engine) PackageName(d *Descriptor) string {
	if d == nil {
		return ""
	}
	return d.Method.Package
}

func (e *Engine) pattern() Pattern {
	tmpl := ""
	if e.patterns != nil {
		tmpl = e.patterns.NamingPattern()
	}
	return Pattern{Template: tmpl, Tokens: e.tokens}
}

func (e *Engine) compose(d *Descriptor) (string, error) {
	if d == nil {
		return "", &MissingContextError{}
	}
	if d.Suite == nil {
		return "", &MissingContextError{Method: d.Method.Name}
	}

	kind := metrics.KindComputed
	name := ""
	if d.Suite.Overrides != nil {
		hash := HashParameters(d.Parameters)
		if n, ok := d.Suite.Overrides.Lookup(hash); ok {
			name = n
		}
	}
	if name == "" {
		name = d.Suite.Name
	} else {
		kind = metrics.KindOverride
	}

	if d.CustomDataProvider {
		if uid := e.uniqueID(d.Parameters); uid != "" {
			name = uid + " - " + name
		}
	}

	name = name + " - " + e.MethodName(d)

	if d.RowIndex > 0 {
		index := d.RowIndex + 1
		e.logger.Debug("data row detected",
			logging.StringField("test", name),
			logging.IntField("index", index),
		)
		name += suffix(e.rowFormat, index)
	}

	if d.Method.Repeats() {
		index := e.counter.Next(name)
		e.logger.Debug("repeated method detected",
			logging.StringField("method", d.Method.Name),
			logging.IntField("invocation_count", d.Method.InvocationCount),
			logging.IntField("index", index),
		)
		name += suffix(e.repeatFormat, index)
		e.metrics.RecordRepeat(d.Suite.Name)
	}

	e.logger.Debug("test name computed",
		logging.StringField("name", name),
	)
	e.metrics.RecordName(d.Suite.Name, kind)
	return name, nil
}

// uniqueID returns the text after the marker in the first parameter
// containing it.
func (e *Engine) uniqueID(params []any) string {
	for _, p := range params {
		if p == nil {
			continue
		}
		s := fmt.Sprint(p)
		if _, after, found := strings.Cut(s, e.uidMarker); found {
			return after
		}
	}
	return ""
}

// suffix renders a 4-digit zero-padded index into format.
func suffix(format string, index int) string {
	padded := fmt.Sprintf("%04d", index)
	if !strings.Contains(format, "%s") {
		return format + padded
	}
	return strings.Replace(format, "%s", padded, 1)
}
