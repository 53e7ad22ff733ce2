package services

import (
	"fmt"

	"fomezero/models"
)

// SchemaError means the file does not have the shape the preparer expects.
type SchemaError struct {
	Column string
	Line   int
	Reason string
}

func (e *SchemaError) Error() string {
	switch {
	case e.Line > 0 && e.Column != "":
		return fmt.Sprintf("schema: line %d column %q: %s", e.Line, e.Column, e.Reason)
	case e.Column != "":
		return fmt.Sprintf("schema: column %q: %s", e.Column, e.Reason)
	case e.Line > 0:
		return fmt.Sprintf("schema: line %d: %s", e.Line, e.Reason)
	default:
		return "schema: " + e.Reason
	}
}

// RecordError ties a failure to the record that caused it.
type RecordError struct {
	Line           int
	RestaurantID   int64
	RestaurantName string
	Err            error
}

func (e *RecordError) Error() string {
	if e.RestaurantName != "" {
		return fmt.Sprintf("record at line %d (restaurant %d %q): %v", e.Line, e.RestaurantID, e.RestaurantName, e.Err)
	}
	return fmt.Sprintf("record at line %d: %v", e.Line, e.Err)
}

func (e *RecordError) Unwrap() error { return e.Err }

// DataQualityWarning is a non-fatal finding about one record or rule. Warnings
// are collected on the snapshot and logged; they never stop a run.
type DataQualityWarning = models.Warning
