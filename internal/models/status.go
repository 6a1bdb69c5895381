package models

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrUnknownStatus is returned when a status value is not part of the enum.
var ErrUnknownStatus = errors.New("unknown order status")

// OrderStatus represents the lifecycle state of an MKL order.
// Meridian items use the first two values only.
type OrderStatus string

const (
	OrderStatusNotOrdered OrderStatus = "not_ordered"
	OrderStatusOrdered    OrderStatus = "ordered"
	OrderStatusCalled     OrderStatus = "called"
	OrderStatusDelivered  OrderStatus = "delivered"
)

// StatusAll is the filter sentinel meaning "no status filter".
const StatusAll = "all"

// MKLStatuses lists the MKL order statuses in display order.
var MKLStatuses = []OrderStatus{
	OrderStatusNotOrdered,
	OrderStatusOrdered,
	OrderStatusCalled,
	OrderStatusDelivered,
}

// MeridianStatuses lists the two states of a Meridian item.
var MeridianStatuses = []OrderStatus{
	OrderStatusNotOrdered,
	OrderStatusOrdered,
}

// Valid reports whether s is one of the four MKL statuses.
func (s OrderStatus) Valid() bool {
	return slices.Contains(MKLStatuses, s)
}

// ValidMeridian reports whether s is one of the two Meridian statuses.
func (s OrderStatus) ValidMeridian() bool {
	return slices.Contains(MeridianStatuses, s)
}

// FileToken returns the short token used in export file names.
func (s OrderStatus) FileToken() string {
	return strings.ReplaceAll(string(s), "_", "")
}

func (s OrderStatus) String() string { return string(s) }

// ParseOrderStatus accepts a status code in any letter case, with '-' or ' '
// in place of '_' ("Not-ordered" parses as not_ordered).
func ParseOrderStatus(raw string) (OrderStatus, error) {
	norm := strings.ToLower(strings.TrimSpace(raw))
	norm = strings.NewReplacer("-", "_", " ", "_").Replace(norm)
	s := OrderStatus(norm)
	if !s.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, raw)
	}
	return s, nil
}

// IsStatusFilter reports whether the raw filter value restricts by status.
// Empty and "all" both mean no filter.
func IsStatusFilter(raw string) bool {
	v := strings.ToLower(strings.TrimSpace(raw))
	return v != "" && v != StatusAll
}
