package model

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidDimension reports a non-positive size or a margin that leaves no usable area.
	ErrInvalidDimension = errors.New("invalid dimension")
	// ErrInvalidQuantity reports a negative demand.
	ErrInvalidQuantity = errors.New("invalid quantity")
	// ErrDuplicateFigure reports two figure types sharing one key.
	ErrDuplicateFigure = errors.New("duplicate figure type")
)

// ValidLength reports whether v is a finite, strictly positive length.
// NaN and infinities fail.
func ValidLength(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}

// ValidMargin reports whether v is a finite, non-negative margin.
func ValidMargin(v float64) bool {
	return v >= 0 && !math.IsInf(v, 0)
}

// Validate checks the sheet before a packing run.
func (s Sheet) Validate() error {
	if !ValidLength(s.Width) || !ValidLength(s.Height) {
		return fmt.Errorf("sheet %s: width and height must be positive and finite: %w", s, ErrInvalidDimension)
	}
	if !ValidMargin(s.Margin) {
		return fmt.Errorf("sheet %s: margin %g is not a finite non-negative value: %w", s, s.Margin, ErrInvalidDimension)
	}
	if 2*s.Margin >= s.Width || 2*s.Margin >= s.Height {
		return fmt.Errorf("sheet %s: margin %g leaves no usable area: %w", s, s.Margin, ErrInvalidDimension)
	}
	return nil
}

// Validate checks a single figure type.
func (f Figure) Validate() error {
	if !ValidLength(f.Width) || !ValidLength(f.Height) {
		return fmt.Errorf("figure %q: width and height must be positive and finite: %w", f.Key(), ErrInvalidDimension)
	}
	if !ValidMargin(f.Margin) {
		return fmt.Errorf("figure %q: margin %g is not a finite non-negative value: %w", f.Key(), f.Margin, ErrInvalidDimension)
	}
	if f.Necessary < 0 {
		return fmt.Errorf("figure %q: necessary %d is negative: %w", f.Key(), f.Necessary, ErrInvalidQuantity)
	}
	return nil
}

// ValidateInput checks a sheet and a figure list, failing on the first problem.
func ValidateInput(sheet Sheet, figures []Figure) error {
	if err := sheet.Validate(); err != nil {
		return err
	}
	seen := make(map[string]bool, len(figures))
	for _, f := range figures {
		if err := f.Validate(); err != nil {
			return err
		}
		if seen[f.Key()] {
			return fmt.Errorf("figure %q: %w", f.Key(), ErrDuplicateFigure)
		}
		seen[f.Key()] = true
	}
	return nil
}
