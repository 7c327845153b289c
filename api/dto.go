/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. Moments travel as
  MomentInput on the way in (pattern text, RFC 3339 text or epoch
  milliseconds) and as MomentDTO on the way out.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients
  - *Response: Complex response wrappers

TYPES:
  Moments:
    MomentInput, MomentDTO, EvaluateRequest, OpDTO

  Comparisons:
    CompareRequest, CompareResponse, DiffRequest, DiffResponse

  Marks:
    MarkDTO, CreateMarkRequest, ImportMarksRequest, GroupDTO

VALIDATION:
  Validation is done in handlers, not in DTOs. DTOs are pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

import (
	"github.com/shopspring/decimal"

	"github.com/warp/moment/moment"
	"github.com/warp/moment/timeline"
)

// =============================================================================
// MOMENTS
// =============================================================================

// MomentInput identifies an instant. Exactly one form is used, checked in
// this order: Value with Pattern, Value alone (RFC 3339 or integer epoch
// milliseconds), EpochMillis.
type MomentInput struct {
	Value       string `json:"value,omitempty"`
	Pattern     string `json:"pattern,omitempty"`
	EpochMillis *int64 `json:"epoch_millis,omitempty"`
}

// MomentDTO represents a moment in API responses.
type MomentDTO struct {
	Instant     string `json:"instant"`
	EpochMillis int64  `json:"epoch_millis"`
	Formatted   string `json:"formatted"`
	Fields      []int  `json:"fields"`
	DayOfWeek   int    `json:"day_of_week"`
	DayOfYear   int    `json:"day_of_year"`
	LeapYear    bool   `json:"leap_year"`
}

// OpDTO is one step of an evaluation. Amount is used by add and subtract,
// Value by set.
type OpDTO struct {
	Op     string      `json:"op"`
	Unit   moment.Unit `json:"unit"`
	Amount int         `json:"amount,omitempty"`
	Value  int         `json:"value,omitempty"`
}

// EvaluateRequest applies Ops in order to a moment.
type EvaluateRequest struct {
	MomentInput
	Ops []OpDTO `json:"ops"`
}

// =============================================================================
// COMPARISONS
// =============================================================================

// CompareRequest compares A with B, optionally at a unit's precision.
type CompareRequest struct {
	A    MomentInput `json:"a"`
	B    MomentInput `json:"b"`
	Unit string      `json:"unit,omitempty"`
}

// CompareResponse holds every comparison of A against B.
type CompareResponse struct {
	Unit         string `json:"unit,omitempty"`
	Compare      int    `json:"compare"`
	Before       bool   `json:"before"`
	After        bool   `json:"after"`
	Same         bool   `json:"same"`
	SameOrBefore bool   `json:"same_or_before"`
	SameOrAfter  bool   `json:"same_or_after"`
}

// DiffRequest asks for A - B in Unit.
type DiffRequest struct {
	A    MomentInput `json:"a"`
	B    MomentInput `json:"b"`
	Unit moment.Unit `json:"unit"`
}

// DiffResponse carries the exact difference as a decimal string.
type DiffResponse struct {
	Unit  moment.Unit     `json:"unit"`
	Value decimal.Decimal `json:"value"`
}

// LeapYearDTO answers a leap year query.
type LeapYearDTO struct {
	Year int  `json:"year"`
	Leap bool `json:"leap"`
}

// =============================================================================
// MARKS
// =============================================================================

// MarkDTO represents a mark in API responses.
type MarkDTO struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	At        MomentDTO `json:"at"`
	Note      string    `json:"note,omitempty"`
	CreatedAt string    `json:"created_at,omitempty"`
}

// CreateMarkRequest is the request to add a mark.
type CreateMarkRequest struct {
	ID   string      `json:"id,omitempty"`
	Name string      `json:"name"`
	At   MomentInput `json:"at"`
	Note string      `json:"note,omitempty"`
}

// ImportMarksRequest adds several marks atomically.
type ImportMarksRequest struct {
	Marks []CreateMarkRequest `json:"marks"`
}

// GroupDTO is one unit window and the marks inside it.
type GroupDTO struct {
	Unit  moment.Unit `json:"unit"`
	Start MomentDTO   `json:"start"`
	End   MomentDTO   `json:"end"`
	Marks []MarkDTO   `json:"marks"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

func toGroupDTO(g timeline.Group, pattern string) GroupDTO {
	return GroupDTO{
		Unit:  g.Window.Unit,
		Start: toMomentDTO(g.Window.Start, pattern),
		End:   toMomentDTO(g.Window.End, pattern),
		Marks: toMarkDTOs(g.Marks, pattern),
	}
}
