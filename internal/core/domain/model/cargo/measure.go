package cargo

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"cargo/internal/pkg/errs"
	"cargo/internal/pkg/guard"
)

var ErrMeasureIsNotConstructed = errs.NewValueIsRequiredError("measure must be created via NewMeasure constructor")

// SizeClass is the coarse size bucket a distributor picks for a shipment.
type SizeClass string

const (
	SizeSmall      SizeClass = "SMALL"
	SizeMedium     SizeClass = "MEDIUM"
	SizeLarge      SizeClass = "LARGE"
	SizeExtraLarge SizeClass = "EXTRA_LARGE"
)

// ParseSizeClass accepts the class name in any letter case.
func ParseSizeClass(s string) (SizeClass, error) {
	size := SizeClass(strings.ToUpper(strings.TrimSpace(s)))
	if err := size.Validate(); err != nil {
		return "", err
	}
	return size, nil
}

func (s SizeClass) Validate() error {
	switch s {
	case SizeSmall, SizeMedium, SizeLarge, SizeExtraLarge:
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause("size", fmt.Errorf("%q is not a size class", string(s)))
}

// Measure describes the physical dimensions of a cargo: weight in kilograms,
// height in metres and a size class.
type Measure struct {
	weight float64
	height float64
	size   SizeClass
	guard  guard.ConstructorGuard
}

func NewMeasure(weight, height float64, size SizeClass) (Measure, error) {
	m := Measure{guard: guard.NewConstructorGuard()}

	if err := errors.Join(m.setWeight(weight), m.setHeight(height), m.setSize(size)); err != nil {
		return Measure{}, err
	}

	return m, nil
}

func (m Measure) Weight() float64 {
	return m.weight
}

func (m Measure) Height() float64 {
	return m.height
}

func (m Measure) Size() SizeClass {
	return m.size
}

func (m Measure) Validate() error {
	return m.guard.Validate(ErrMeasureIsNotConstructed)
}

func (m *Measure) setWeight(weight float64) error {
	if math.IsNaN(weight) || math.IsInf(weight, 0) || weight <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("weight", fmt.Errorf("%v is not greater than 0", weight))
	}
	m.weight = weight
	return nil
}

func (m *Measure) setHeight(height float64) error {
	if math.IsNaN(height) || math.IsInf(height, 0) || height <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("height", fmt.Errorf("%v is not greater than 0", height))
	}
	m.height = height
	return nil
}

func (m *Measure) setSize(size SizeClass) error {
	if err := size.Validate(); err != nil {
		return err
	}
	m.size = size
	return nil
}
