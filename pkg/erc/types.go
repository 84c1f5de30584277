// Package erc validates a schematic document against electrical design
// rules: unconnected pins, driver conflicts, missing power sources,
// duplicate references, dangling wires and unlabeled nets. Findings are
// reported, never thrown; a document with many violations still returns a
// complete result.
package erc

import (
	"github.com/OpenTraceLab/OpenTraceERC/pkg/schematic"
)

// Severity classifies a violation for presentation. It never blocks
// further operations.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// ViolationType identifies which rule produced a violation
type ViolationType string

const (
	UnconnectedPin      ViolationType = "unconnected_pin"
	ConflictingPinTypes ViolationType = "conflicting_pin_types"
	MissingPowerFlag    ViolationType = "missing_power_flag"
	DuplicateReference  ViolationType = "duplicate_reference"
	UnconnectedWire     ViolationType = "unconnected_wire"
	MissingNetLabel     ViolationType = "missing_net_label"
)

// Violation is one rule finding with a world-space location for
// zoom-to-violation navigation.
type Violation struct {
	Type      ViolationType        `json:"type"`
	Severity  Severity             `json:"severity"`
	Message   string               `json:"message"`
	Location  schematic.Point      `json:"location"`
	ObjectIDs []schematic.EntityID `json:"object_ids,omitempty"`
}

// Summary counts violations by severity
type Summary struct {
	Errors   int
	Warnings int
}

// Summarize tallies a violation list
func Summarize(violations []Violation) Summary {
	var s Summary
	for _, v := range violations {
		switch v.Severity {
		case SeverityError:
			s.Errors++
		case SeverityWarning:
			s.Warnings++
		}
	}
	return s
}
