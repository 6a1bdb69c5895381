package models

import (
	"strconv"
	"strings"
)

// LensParams holds the prescription values shared by catalog products and
// order items. Nil pointers mean "not set" (no cylinder correction, no axis,
// no base curve).
type LensParams struct {
	Sph float64  `gorm:"not null;default:0" json:"sph"`
	Cyl *float64 `json:"cyl,omitempty"`
	Ax  *int     `json:"ax,omitempty"`
	Bc  *float64 `json:"bc,omitempty"`
}

// FormatDiopter renders a signed diopter value with two decimals ("+1.25").
func FormatDiopter(v float64) string {
	if v == 0 {
		return "0.00"
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// FormatOptDiopter renders an optional diopter; nil renders as "".
func FormatOptDiopter(v *float64) string {
	if v == nil {
		return ""
	}
	return FormatDiopter(*v)
}

// FormatAxis renders an optional axis; nil renders as "".
func FormatAxis(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

// FormatBC renders an optional base curve with one decimal; nil renders as "".
func FormatBC(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', 1, 64)
}

// Summary renders the set values as "SPH -2.25 CYL -0.75 AX 90 BC 8.6".
// Unset values are omitted.
func (p LensParams) Summary() string {
	parts := []string{"SPH " + FormatDiopter(p.Sph)}
	if p.Cyl != nil {
		parts = append(parts, "CYL "+FormatOptDiopter(p.Cyl))
	}
	if p.Ax != nil {
		parts = append(parts, "AX "+FormatAxis(p.Ax))
	}
	if p.Bc != nil {
		parts = append(parts, "BC "+FormatBC(p.Bc))
	}
	return strings.Join(parts, " ")
}

// Float returns a pointer to v. Convenience for optional lens values.
func Float(v float64) *float64 { return &v }

// Int returns a pointer to v.
func Int(v int) *int { return &v }
