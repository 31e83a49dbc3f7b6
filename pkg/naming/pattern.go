package naming

import (
	"strconv"
	"strings"
)

// Default placeholder tokens and template.
const (
	DefaultTemplate         = "{method}"
	DefaultMethodToken      = "{method}"
	DefaultPriorityToken    = "{priority}"
	DefaultPoolSizeToken    = "{pool_size}"
	DefaultDescriptionToken = "{description}"
)

// Placeholders names the four tokens substituted into a template.
type Placeholders struct {
	Method      string `json:"method" yaml:"method"`
	Priority    string `json:"priority" yaml:"priority"`
	PoolSize    string `json:"pool_size" yaml:"pool_size"`
	Description string `json:"description" yaml:"description"`
}

// DefaultPlaceholders returns the default token set.
func DefaultPlaceholders() Placeholders {
	return Placeholders{
		Method:      DefaultMethodToken,
		Priority:    DefaultPriorityToken,
		PoolSize:    DefaultPoolSizeToken,
		Description: DefaultDescriptionToken,
	}
}

// withDefaults fills empty tokens from the default set.
func (p Placeholders) withDefaults() Placeholders {
	d := DefaultPlaceholders()
	if p.Method == "" {
		p.Method = d.Method
	}
	if p.Priority == "" {
		p.Priority = d.Priority
	}
	if p.PoolSize == "" {
		p.PoolSize = d.PoolSize
	}
	if p.Description == "" {
		p.Description = d.Description
	}
	return p
}

// Pattern formats a method into its display form.
type Pattern struct {
	Template string
	Tokens   Placeholders
}

// NewPattern creates a Pattern with default tokens. An empty template
// falls back to DefaultTemplate.
func NewPattern(template string) Pattern {
	return Pattern{
		Template: template,
		Tokens:   DefaultPlaceholders(),
	}
}

// Format substitutes m into the template. A missing description
// substitutes the empty string.
func (p Pattern) Format(m Method) string {
	tmpl := p.Template
	if tmpl == "" {
		tmpl = DefaultTemplate
	}
	t := p.Tokens.withDefaults()
	r := strings.NewReplacer(
		t.Method, m.Name,
		t.Priority, strconv.Itoa(m.Priority),
		t.PoolSize, strconv.Itoa(m.ThreadPoolSize),
		t.Description, m.Description,
	)
	return r.Replace(tmpl)
}

// PatternSource supplies the configured naming template.
type PatternSource interface {
	NamingPattern() string
}

// StaticPattern is a PatternSource returning a fixed template.
type StaticPattern string

// NamingPattern returns the template.
func (s StaticPattern) NamingPattern() string { return string(s) }
