/*
handlers.go - HTTP API handlers for moments and marks

PURPOSE:
  Exposes the moment engine and the mark timeline via REST API. Handles
  HTTP request/response, JSON serialization, and delegates to the moment
  and timeline packages.

ENDPOINTS:
  Moments:
    GET    /api/now?pattern=           Current moment
    GET    /api/units                  Known unit names
    POST   /api/moments/evaluate       Parse, then apply ops in order
    POST   /api/moments/compare        Every comparison, optional precision
    POST   /api/moments/diff           Exact difference in a unit
    GET    /api/leap-years/{year}      Leap year check

  Marks:
    GET    /api/marks                  List (or ?from=&to=&unit= Between)
    POST   /api/marks                  Add a mark
    POST   /api/marks/import           Add several marks atomically
    GET    /api/marks/groups?unit=     Marks bucketed by unit window
    GET    /api/marks/window?at=&unit= Marks inside the window around at
    GET    /api/marks/{id}             Get one mark
    DELETE /api/marks/{id}             Remove a mark

ARCHITECTURE:
  Handler struct holds all dependencies:
  - Timeline: mark service over a timeline.Store
  - Calendar: every moment built from request input uses it
  - Pattern:  default display pattern for MomentDTO.Formatted

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Malformed body, unknown unit, unparseable moment, bad pattern
  - 404: Mark not found
  - 409: Duplicate mark ID
  - 500: Internal errors

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/warp/moment/moment"
	"github.com/warp/moment/timeline"
)

// DefaultPattern is used when neither the handler nor the request names one.
const DefaultPattern = "yyyy-MM-dd HH:mm:ss.SSS"

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Timeline *timeline.Timeline
	Calendar moment.Calendar
	Pattern  string
}

// NewHandler creates a handler over tl. Moments are decomposed with tl's
// calendar and displayed with pattern (DefaultPattern when empty).
func NewHandler(tl *timeline.Timeline, pattern string) *Handler {
	if pattern == "" {
		pattern = DefaultPattern
	}
	return &Handler{
		Timeline: tl,
		Calendar: tl.Calendar(),
		Pattern:  pattern,
	}
}

// =============================================================================
// MOMENT HANDLERS
// =============================================================================

// Now returns the current moment.
// GET /api/now?pattern=
func (h *Handler) Now(w http.ResponseWriter, r *http.Request) {
	pattern := r.URL.Query().Get("pattern")
	if pattern == "" {
		pattern = h.Pattern
	}

	m := h.Calendar.Now()
	if _, err := m.Format(pattern); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid pattern", err)
		return
	}
	writeJSON(w, http.StatusOK, toMomentDTO(m, pattern))
}

// ListUnits returns every unit name.
// GET /api/units
func (h *Handler) ListUnits(w http.ResponseWriter, r *http.Request) {
	units := moment.Units()
	names := make([]string, len(units))
	for i, u := range units {
		names[i] = u.String()
	}
	writeJSON(w, http.StatusOK, names)
}

// Evaluate parses a moment and applies ops to it in order.
// POST /api/moments/evaluate
func (h *Handler) Evaluate(w http.ResponseWriter, r *http.Request) {
	var req EvaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	m, err := h.resolve(req.MomentInput)
	if err != nil {
		writeFailure(w, "Invalid moment", err)
		return
	}

	for i, op := range req.Ops {
		if err := apply(m, op); err != nil {
			writeFailure(w, fmt.Sprintf("Op %d (%s) failed", i, op.Op), err)
			return
		}
	}

	writeJSON(w, http.StatusOK, toMomentDTO(m, h.displayPattern(req.MomentInput)))
}

func apply(m *moment.Moment, op OpDTO) error {
	var err error
	switch op.Op {
	case "startOf":
		_, err = m.StartOf(op.Unit)
	case "endOf":
		_, err = m.EndOf(op.Unit)
	case "add":
		_, err = m.Add(op.Amount, op.Unit)
	case "subtract":
		_, err = m.Subtract(op.Amount, op.Unit)
	case "set":
		_, err = m.Set(op.Unit, op.Value)
	default:
		err = &moment.ArgumentError{Op: "Evaluate", Msg: fmt.Sprintf("unknown op %q", op.Op)}
	}
	return err
}

// Compare runs every comparison of A against B.
// POST /api/moments/compare
func (h *Handler) Compare(w http.ResponseWriter, r *http.Request) {
	var req CompareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	a, b, err := h.resolvePair(req.A, req.B)
	if err != nil {
		writeFailure(w, "Invalid moment", err)
		return
	}

	if req.Unit == "" {
		writeJSON(w, http.StatusOK, CompareResponse{
			Compare:      a.Compare(b),
			Before:       a.IsBefore(b),
			After:        a.IsAfter(b),
			Same:         a.IsSame(b),
			SameOrBefore: a.IsSameOrBefore(b),
			SameOrAfter:  a.IsSameOrAfter(b),
		})
		return
	}

	u, err := moment.ParseUnit(req.Unit)
	if err != nil {
		writeFailure(w, "Invalid unit", err)
		return
	}

	resp := CompareResponse{Unit: u.String()}
	for _, c := range []struct {
		dst *bool
		fn  func(moment.Instant, moment.Unit) (bool, error)
	}{
		{&resp.Before, a.IsBeforeIn},
		{&resp.After, a.IsAfterIn},
		{&resp.Same, a.IsSameIn},
		{&resp.SameOrBefore, a.IsSameOrBeforeIn},
		{&resp.SameOrAfter, a.IsSameOrAfterIn},
	} {
		if *c.dst, err = c.fn(b, u); err != nil {
			writeFailure(w, "Comparison failed", err)
			return
		}
	}
	switch {
	case resp.Before:
		resp.Compare = -1
	case resp.After:
		resp.Compare = 1
	}

	writeJSON(w, http.StatusOK, resp)
}

// Diff returns A - B in the requested unit.
// POST /api/moments/diff
func (h *Handler) Diff(w http.ResponseWriter, r *http.Request) {
	var req DiffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	a, b, err := h.resolvePair(req.A, req.B)
	if err != nil {
		writeFailure(w, "Invalid moment", err)
		return
	}

	d, err := a.Diff(b, req.Unit)
	if err != nil {
		writeFailure(w, "Diff failed", err)
		return
	}

	writeJSON(w, http.StatusOK, DiffResponse{Unit: req.Unit, Value: d})
}

// LeapYear reports whether a year is a leap year.
// GET /api/leap-years/{year}
func (h *Handler) LeapYear(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid year", err)
		return
	}
	writeJSON(w, http.StatusOK, LeapYearDTO{Year: year, Leap: moment.IsLeapYear(year)})
}

// =============================================================================
// MARK HANDLERS
// =============================================================================

// ListMarks returns all marks, or the marks between from and to.
// GET /api/marks?from=&to=&unit=
func (h *Handler) ListMarks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	if q.Get("from") == "" && q.Get("to") == "" {
		marks, err := h.Timeline.Marks(ctx)
		if err != nil {
			writeFailure(w, "Failed to list marks", err)
			return
		}
		writeJSON(w, http.StatusOK, toMarkDTOs(marks, h.Pattern))
		return
	}

	from, to, err := h.resolvePair(MomentInput{Value: q.Get("from")}, MomentInput{Value: q.Get("to")})
	if err != nil {
		writeFailure(w, "Invalid range", err)
		return
	}

	var u moment.Unit
	if name := q.Get("unit"); name != "" {
		if u, err = moment.ParseUnit(name); err != nil {
			writeFailure(w, "Invalid unit", err)
			return
		}
	}

	marks, err := h.Timeline.Between(ctx, from, to, u)
	if err != nil {
		writeFailure(w, "Failed to list marks", err)
		return
	}
	writeJSON(w, http.StatusOK, toMarkDTOs(marks, h.Pattern))
}

// CreateMark adds a mark.
// POST /api/marks
func (h *Handler) CreateMark(w http.ResponseWriter, r *http.Request) {
	var req CreateMarkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	marks, err := h.importMarks(r, []CreateMarkRequest{req})
	if err != nil {
		writeFailure(w, "Failed to create mark", err)
		return
	}
	writeJSON(w, http.StatusCreated, toMarkDTO(marks[0], h.Pattern))
}

// ImportMarks adds several marks atomically.
// POST /api/marks/import
func (h *Handler) ImportMarks(w http.ResponseWriter, r *http.Request) {
	var req ImportMarksRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	marks, err := h.importMarks(r, req.Marks)
	if err != nil {
		writeFailure(w, "Failed to import marks", err)
		return
	}
	writeJSON(w, http.StatusCreated, toMarkDTOs(marks, h.Pattern))
}

func (h *Handler) importMarks(r *http.Request, reqs []CreateMarkRequest) ([]timeline.Mark, error) {
	marks := make([]timeline.Mark, len(reqs))
	for i, req := range reqs {
		mark := timeline.Mark{ID: req.ID, Name: req.Name, Note: req.Note}
		if req.At != (MomentInput{}) {
			at, err := h.resolve(req.At)
			if err != nil {
				return nil, err
			}
			mark.At = at
		}
		marks[i] = mark
	}
	return h.Timeline.Import(r.Context(), marks)
}

// GetMark returns one mark.
// GET /api/marks/{id}
func (h *Handler) GetMark(w http.ResponseWriter, r *http.Request) {
	mark, err := h.Timeline.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeFailure(w, "Failed to get mark", err)
		return
	}
	writeJSON(w, http.StatusOK, toMarkDTO(mark, h.Pattern))
}

// DeleteMark removes a mark.
// DELETE /api/marks/{id}
func (h *Handler) DeleteMark(w http.ResponseWriter, r *http.Request) {
	if err := h.Timeline.Remove(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeFailure(w, "Failed to delete mark", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GroupMarks buckets marks by unit window.
// GET /api/marks/groups?unit=
func (h *Handler) GroupMarks(w http.ResponseWriter, r *http.Request) {
	u, err := moment.ParseUnit(r.URL.Query().Get("unit"))
	if err != nil {
		writeFailure(w, "Invalid unit", err)
		return
	}

	groups, err := h.Timeline.GroupBy(r.Context(), u)
	if err != nil {
		writeFailure(w, "Failed to group marks", err)
		return
	}

	dtos := make([]GroupDTO, len(groups))
	for i, g := range groups {
		dtos[i] = toGroupDTO(g, h.Pattern)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// WindowMarks returns the marks inside the unit window around at.
// GET /api/marks/window?at=&unit=
func (h *Handler) WindowMarks(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	u, err := moment.ParseUnit(q.Get("unit"))
	if err != nil {
		writeFailure(w, "Invalid unit", err)
		return
	}

	at := h.Calendar.Now()
	if v := q.Get("at"); v != "" {
		if at, err = h.resolve(MomentInput{Value: v}); err != nil {
			writeFailure(w, "Invalid moment", err)
			return
		}
	}

	window, err := timeline.WindowOf(at, u)
	if err != nil {
		writeFailure(w, "Invalid window", err)
		return
	}

	marks, err := h.Timeline.In(r.Context(), window)
	if err != nil {
		writeFailure(w, "Failed to list marks", err)
		return
	}
	writeJSON(w, http.StatusOK, toGroupDTO(timeline.Group{Window: window, Marks: marks}, h.Pattern))
}

// =============================================================================
// HELPERS
// =============================================================================

// resolve builds a moment in the handler's calendar from request input.
func (h *Handler) resolve(in MomentInput) (*moment.Moment, error) {
	switch {
	case in.Value != "" && in.Pattern != "":
		return h.Calendar.Parse(in.Value, in.Pattern)
	case in.Value != "":
		m := h.Calendar.FromEpochMillis(0)
		if err := m.UnmarshalText([]byte(in.Value)); err != nil {
			return nil, err
		}
		return m, nil
	case in.EpochMillis != nil:
		return h.Calendar.FromEpochMillis(*in.EpochMillis), nil
	}
	return nil, &moment.ArgumentError{Op: "resolve", Msg: "one of value or epoch_millis is required"}
}

func (h *Handler) resolvePair(a, b MomentInput) (*moment.Moment, *moment.Moment, error) {
	ma, err := h.resolve(a)
	if err != nil {
		return nil, nil, err
	}
	mb, err := h.resolve(b)
	if err != nil {
		return nil, nil, err
	}
	return ma, mb, nil
}

// displayPattern echoes the request's own pattern when it supplied one.
func (h *Handler) displayPattern(in MomentInput) string {
	if in.Pattern != "" {
		return in.Pattern
	}
	return h.Pattern
}

func toMomentDTO(m *moment.Moment, pattern string) MomentDTO {
	instant, _ := m.MarshalText()
	formatted, err := m.Format(pattern)
	if err != nil {
		formatted = m.MustFormat(DefaultPattern)
	}
	return MomentDTO{
		Instant:     string(instant),
		EpochMillis: m.UnixMilli(),
		Formatted:   formatted,
		Fields:      m.Fields(),
		DayOfWeek:   m.Days(),
		DayOfYear:   m.DayOfYear(),
		LeapYear:    m.IsLeapYear(),
	}
}

func toMarkDTO(mark timeline.Mark, pattern string) MarkDTO {
	dto := MarkDTO{
		ID:   mark.ID,
		Name: mark.Name,
		At:   toMomentDTO(mark.At, pattern),
		Note: mark.Note,
	}
	if !mark.CreatedAt.IsZero() {
		dto.CreatedAt = mark.CreatedAt.Format(moment.RFC3339Milli)
	}
	return dto
}

func toMarkDTOs(marks []timeline.Mark, pattern string) []MarkDTO {
	dtos := make([]MarkDTO, len(marks))
	for i, m := range marks {
		dtos[i] = toMarkDTO(m, pattern)
	}
	return dtos
}

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case timeline.IsNotFound(err):
		return http.StatusNotFound
	case timeline.IsConflict(err):
		return http.StatusConflict
	case errors.Is(err, timeline.ErrInvalidMark), moment.IsInputError(err):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func writeFailure(w http.ResponseWriter, message string, err error) {
	writeError(w, statusFor(err), message, err)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
