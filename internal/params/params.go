// Package params provides uniformly editable handles over differently typed
// live configuration variables.
//
// A Parameter is a closed sum type: the only way to obtain one is through
// NewUint8, NewUint16 or NewFloat, and the kind of a parameter is derived from
// the storage it is bound to. A parameter can therefore never claim to be of
// one kind while pointing at storage of another.
package params

import (
	"fmt"
	"math"

	"github.com/humidistat/humidistat/internal/util"
)

type Kind int

const (
	KindUint8 Kind = iota
	KindUint16
	KindFloat
)

func (k Kind) String() string {
	switch k {
	case KindUint8:
		return "uint8"
	case KindUint16:
		return "uint16"
	case KindFloat:
		return "float"
	default:
		return "unknown"
	}
}

const (
	// LabelWidth is the rendered width of the label column
	LabelWidth = 8
	// FloatPrecision is the number of decimals of float parameters.
	// Adjusting a float by a delta of 1 changes it by 10^-FloatPrecision.
	FloatPrecision = 3
	// noiseDigits is the number of decimals kept after an edit
	noiseDigits = 9

	integerWidth = 5
	floatWidth   = 6
)

type Parameter interface {
	// Label returns the short display label
	Label() string
	// Kind returns the storage kind this parameter is bound to
	Kind() Kind
	// Adjust adds delta to the bound variable
	Adjust(delta int)
	// Value returns the current value of the bound variable
	Value() float64
	// Render returns the fixed width "label value" text
	Render() string
	// RenderValue returns only the fixed width value field
	RenderValue() string
	// Magnitude returns floor(log10(floor(|value|))), 0 for |value| < 1
	Magnitude() int

	sealed()
}

type unsigned interface {
	~uint8 | ~uint16
}

// integerParameter adds deltas saturating at the range of T
type integerParameter[T unsigned] struct {
	label string
	value *T
}

// NewUint8 binds a parameter to a byte sized variable
func NewUint8(label string, value *uint8) Parameter {
	return &integerParameter[uint8]{label: label, value: value}
}

// NewUint16 binds a parameter to a word sized variable
func NewUint16(label string, value *uint16) Parameter {
	return &integerParameter[uint16]{label: label, value: value}
}

func (p *integerParameter[T]) sealed() {}

func (p *integerParameter[T]) Label() string {
	return p.label
}

func (p *integerParameter[T]) Kind() Kind {
	switch any(*p.value).(type) {
	case uint8:
		return KindUint8
	default:
		return KindUint16
	}
}

func (p *integerParameter[T]) maxValue() int {
	if p.Kind() == KindUint8 {
		return math.MaxUint8
	}
	return math.MaxUint16
}

func (p *integerParameter[T]) Adjust(delta int) {
	next := util.Coerce(int(*p.value)+delta, 0, p.maxValue())
	*p.value = T(next)
}

func (p *integerParameter[T]) Value() float64 {
	return float64(*p.value)
}

func (p *integerParameter[T]) Render() string {
	return fmt.Sprintf("%-*s %s", LabelWidth, p.label, p.RenderValue())
}

func (p *integerParameter[T]) RenderValue() string {
	return fmt.Sprintf("%*d", integerWidth, *p.value)
}

func (p *integerParameter[T]) Magnitude() int {
	return util.Magnitude(float64(*p.value))
}

type floatParameter struct {
	label string
	value *float64
}

// NewFloat binds a parameter to a real valued variable, edited with three decimals
func NewFloat(label string, value *float64) Parameter {
	return &floatParameter{label: label, value: value}
}

func (p *floatParameter) sealed() {}

func (p *floatParameter) Label() string {
	return p.label
}

func (p *floatParameter) Kind() Kind {
	return KindFloat
}

func (p *floatParameter) Adjust(delta int) {
	next := *p.value + float64(delta)/math.Pow10(FloatPrecision)
	// strip binary rounding noise only, values off the edit grid keep their extra decimals
	*p.value = math.Round(next*math.Pow10(noiseDigits)) / math.Pow10(noiseDigits)
}

func (p *floatParameter) Value() float64 {
	return *p.value
}

func (p *floatParameter) Render() string {
	return fmt.Sprintf("%-*s %s", LabelWidth, p.label, p.RenderValue())
}

func (p *floatParameter) RenderValue() string {
	return fmt.Sprintf("% *.*f", floatWidth, FloatPrecision, *p.value)
}

func (p *floatParameter) Magnitude() int {
	return util.Magnitude(*p.value)
}
