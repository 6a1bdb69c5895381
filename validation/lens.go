package validation

import (
	"fmt"
	"math"
)

// Lens parameter ranges. A stepped value is accepted iff
// math.Round(v*scale) == v*scale, with no tolerance.
const (
	SphMin, SphMax = -30.0, 30.0
	CylMin, CylMax = -10.0, 10.0
	AxMin, AxMax   = 0, 180
	BcMin, BcMax   = 8.0, 9.0
	QtyMin, QtyMax = 1, 20

	quarterScale = 4
	tenthScale   = 10
)

// Field names reported by LensError.
const (
	FieldSph = "SPH"
	FieldCyl = "CYL"
	FieldAx  = "AX"
	FieldBc  = "BC"
	FieldQty = "QTY"
)

// LensError describes the first lens value found out of range or off step.
type LensError struct {
	Field string
	Min   float64
	Max   float64
	// Step is 0 for integer fields.
	Step float64
}

func (e *LensError) Error() string {
	if e.Step == 0 {
		return fmt.Sprintf("%s must be an integer between %g and %g", e.Field, e.Min, e.Max)
	}
	return fmt.Sprintf("%s must be between %.2f and %.2f in steps of %g", e.Field, e.Min, e.Max, e.Step)
}

// Code returns the message code for i18n lookup ("invalid_sph", ...).
func (e *LensError) Code() string {
	switch e.Field {
	case FieldSph:
		return "invalid_sph"
	case FieldCyl:
		return "invalid_cyl"
	case FieldAx:
		return "invalid_ax"
	case FieldBc:
		return "invalid_bc"
	default:
		return "invalid_qty"
	}
}

// ValidateLensValues checks SPH, CYL, AX, BC and QTY in that order and returns
// the first violation. Nil optional values are skipped. It has no side effects.
func ValidateLensValues(sph float64, cyl *float64, ax *int, bc *float64, qty int) error {
	if !onGrid(sph, SphMin, SphMax, quarterScale) {
		return &LensError{Field: FieldSph, Min: SphMin, Max: SphMax, Step: 0.25}
	}
	if cyl != nil && !onGrid(*cyl, CylMin, CylMax, quarterScale) {
		return &LensError{Field: FieldCyl, Min: CylMin, Max: CylMax, Step: 0.25}
	}
	if ax != nil && (*ax < AxMin || *ax > AxMax) {
		return &LensError{Field: FieldAx, Min: AxMin, Max: AxMax}
	}
	if bc != nil && !onGrid(*bc, BcMin, BcMax, tenthScale) {
		return &LensError{Field: FieldBc, Min: BcMin, Max: BcMax, Step: 0.1}
	}
	if qty < QtyMin || qty > QtyMax {
		return &LensError{Field: FieldQty, Min: QtyMin, Max: QtyMax}
	}
	return nil
}

// ValidateSpec is ValidateLensValues without a quantity, used for catalog
// templates that carry no quantity.
func ValidateSpec(sph float64, cyl *float64, ax *int, bc *float64) error {
	return ValidateLensValues(sph, cyl, ax, bc, QtyMin)
}

func onGrid(v, min, max, scale float64) bool {
	if math.IsNaN(v) || v < min || v > max {
		return false
	}
	scaled := v * scale
	return math.Round(scaled) == scaled
}

// TransposeCylinder rewrites a sphero-cylindrical prescription in the
// opposite cylinder form: S' = S + C, C' = -C, axis turned by 90 degrees.
// The axis is clamped to 0..180 first and a resulting 0 is written as 180.
// SPH and CYL are rounded to 0.25 steps.
func TransposeCylinder(sph, cyl float64, ax int) (float64, float64, int) {
	ax = max(AxMin, min(AxMax, ax))
	ax2 := (ax + 90) % 180
	if ax2 == 0 {
		ax2 = 180
	}
	return roundStep(sph+cyl, quarterScale), roundStep(-cyl, quarterScale), ax2
}

func roundStep(v, scale float64) float64 {
	r := math.Round(v*scale) / scale
	if r == 0 {
		return 0
	}
	return r
}
