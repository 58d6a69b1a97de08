package rule

import (
	"fmt"
	"strings"
)

// Parameter identifiers reported by InvalidParamsError
const (
	ParamTarget      = "target"
	ParamOperation   = "operation"
	ParamSeparator   = "separator"
	ParamStart       = "start"
	ParamPadding     = "padding"
	ParamOffset      = "offset"
	ParamText        = "text"
	ParamPattern     = "pattern"
	ParamPlacement   = "placement"
	ParamOccurrence  = "occurrence"
	ParamWindowStart = "window_start"
	ParamWindowEnd   = "window_end"
	ParamMoveTo      = "move_to"
	ParamSearch      = "search"
)

// ❌ InvalidParamsError lists the parameters that keep a rule from being built
type InvalidParamsError struct {
	Kind    Kind
	Params  []string          // offending parameter identifiers, in check order
	Reasons map[string]string // parameter identifier -> reason
}

func (e *InvalidParamsError) Error() string {
	parts := make([]string, 0, len(e.Params))
	for _, p := range e.Params {
		parts = append(parts, fmt.Sprintf("%s (%s)", p, e.Reasons[p]))
	}
	return fmt.Sprintf("invalid %s parameters: %s", e.Kind, strings.Join(parts, ", "))
}

// Has reports whether param is among the offending parameters
func (e *InvalidParamsError) Has(param string) bool {
	for _, p := range e.Params {
		if p == param {
			return true
		}
	}
	return false
}

// issues collects validation failures for one set of params
type issues struct {
	kind Kind
	err  *InvalidParamsError
}

func (is *issues) add(param, reason string) {
	if is.err == nil {
		is.err = &InvalidParamsError{Kind: is.kind, Reasons: map[string]string{}}
	}
	if _, ok := is.err.Reasons[param]; ok {
		return
	}
	is.err.Params = append(is.err.Params, param)
	is.err.Reasons[param] = reason
}

func (is *issues) required(param, value string) {
	if value == "" {
		is.add(param, "required")
	}
}

func (is *issues) nonNegative(param string, value int) {
	if value < 0 {
		is.add(param, "must not be negative")
	}
}

func (is *issues) pattern(param string, p Pattern) {
	if p.Text == "" {
		is.add(param, "required")
		return
	}
	if _, err := p.Compile(); err != nil {
		is.add(param, err.Error())
	}
}

func (is *issues) target(t Target) {
	if !t.valid() {
		is.add(ParamTarget, "unknown target")
	}
}
