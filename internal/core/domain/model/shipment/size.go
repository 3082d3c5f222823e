package shipment

import (
	"fmt"
	"strings"

	"shiptrack/internal/pkg/errs"
)

// Size is the package size class of a shipment.
type Size int

const (
	// SizeUnknown is the zero value and is never valid.
	SizeUnknown Size = iota
	SizeS
	SizeM
	SizeL
	SizeXL
)

var sizeLabels = map[Size]string{
	SizeS:  "S",
	SizeM:  "M",
	SizeL:  "L",
	SizeXL: "XL",
}

// AllSizes lists the valid sizes in ascending order.
func AllSizes() []Size {
	return []Size{SizeS, SizeM, SizeL, SizeXL}
}

// ParseSize converts a label such as "XL" into a Size. Matching ignores case and
// surrounding whitespace.
func ParseSize(label string) (Size, error) {
	normalized := strings.ToUpper(strings.TrimSpace(label))
	for size, l := range sizeLabels {
		if l == normalized {
			return size, nil
		}
	}
	return SizeUnknown, errs.NewValueIsInvalidErrorWithCause(
		"size",
		fmt.Errorf("%q is not one of S, M, L, XL", label),
	)
}

// Validate reports whether the size is one of S, M, L, XL.
func (s Size) Validate() error {
	if _, ok := sizeLabels[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("size", fmt.Errorf("%d is not a valid size", s))
	}
	return nil
}

func (s Size) String() string {
	if l, ok := sizeLabels[s]; ok {
		return l
	}
	return "Unknown"
}
