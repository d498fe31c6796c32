package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"pricegrid/internal/engine"
	"pricegrid/internal/export"
	"pricegrid/internal/metrics"
	"pricegrid/internal/models"
)

const dateFormat = "2006-01-02"

// bookingsAround fetches bookings in a window padded by a day on each side so
// buffer zones reaching across midnight are still visible.
func (s *Server) bookingsAround(r *http.Request, from, to time.Time, clientID int64) ([]models.Booking, error) {
	bookings, err := s.source.BookingsBetween(r.Context(), from.AddDate(0, 0, -1), to.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	if clientID != 0 {
		for i := range bookings {
			bookings[i].IsOwn = bookings[i].ClientID == clientID
		}
	}
	return bookings, nil
}

func parseClientID(r *http.Request) int64 {
	id, _ := strconv.ParseInt(r.URL.Query().Get("client_id"), 10, 64)
	return id
}

// handleGrid returns the annotated half-hour grid for a day.
// GET /api/v1/grid?date=YYYY-MM-DD&client_id=N
func (s *Server) handleGrid(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed; use GET")
		return
	}

	date, err := time.Parse(dateFormat, r.URL.Query().Get("date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date format; expected YYYY-MM-DD")
		return
	}

	bookings, err := s.bookingsAround(r, date, date, parseClientID(r))
	if err != nil {
		s.logger.Error().Err(err).Msg("fetch bookings failed")
		writeError(w, http.StatusInternalServerError, "failed to load bookings")
		return
	}

	slots := s.engine.DayGrid(date, bookings)
	writeJSON(w, http.StatusOK, map[string]any{
		"date":  date.Format(dateFormat),
		"slots": slots,
	})
}

// EstimateRequest is the request body for POST /api/v1/estimate.
type EstimateRequest struct {
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	FirstTimeClient bool      `json:"first_time_client"`
}

// handleEstimate prices a candidate interval.
// POST /api/v1/estimate
func (s *Server) handleEstimate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed; use POST")
		return
	}

	var req EstimateRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	breakdown, err := s.engine.EstimateCost(req.StartTime, req.EndTime, s.baseRate, req.FirstTimeClient)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	metrics.IncEstimate()
	writeJSON(w, http.StatusOK, breakdown)
}

// SuggestRequest is the request body for POST /api/v1/suggest.
type SuggestRequest struct {
	BaseDate       string  `json:"base_date"` // YYYY-MM-DD
	DurationHours  float64 `json:"duration_hours"`
	TierPreference string  `json:"tier_preference,omitempty"`
	ClientID       int64   `json:"client_id,omitempty"`
}

// SuggestResponse reports either the earliest acceptable interval or a
// not-found outcome; the latter is a normal result, not an error.
type SuggestResponse struct {
	Found      bool               `json:"found"`
	Suggestion *models.Suggestion `json:"suggestion,omitempty"`
	Message    string             `json:"message,omitempty"`
}

// handleSuggest searches for the earliest bookable slot.
// POST /api/v1/suggest
func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed; use POST")
		return
	}

	var req SuggestRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	baseDate, err := time.Parse(dateFormat, req.BaseDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid base_date format; expected YYYY-MM-DD")
		return
	}
	if req.DurationHours <= 0 {
		writeError(w, http.StatusBadRequest, "duration_hours must be positive")
		return
	}
	duration := time.Duration(req.DurationHours * float64(time.Hour))

	horizon := baseDate.AddDate(0, 0, s.engine.Params().HorizonDays)
	bookings, err := s.bookingsAround(r, baseDate, horizon, req.ClientID)
	if err != nil {
		s.logger.Error().Err(err).Msg("fetch bookings failed")
		writeError(w, http.StatusInternalServerError, "failed to load bookings")
		return
	}

	suggestion, err := s.engine.Suggest(baseDate, duration, req.TierPreference, bookings)
	switch {
	case errors.Is(err, engine.ErrNoSlotAvailable):
		metrics.IncSuggestion("not_found")
		writeJSON(w, http.StatusOK, SuggestResponse{
			Found:   false,
			Message: fmt.Sprintf("no matching slot in the next %d days", s.engine.Params().HorizonDays),
		})
	case err != nil:
		metrics.IncSuggestion("invalid")
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		metrics.IncSuggestion("found")
		writeJSON(w, http.StatusOK, SuggestResponse{Found: true, Suggestion: suggestion})
	}
}

// ConflictRequest is the request body for POST /api/v1/conflicts.
type ConflictRequest struct {
	StartTime     time.Time `json:"start_time"`
	DurationHours float64   `json:"duration_hours"`
	ClientID      int64     `json:"client_id,omitempty"`
}

// handleConflicts checks a candidate interval against bookings and buffers.
// POST /api/v1/conflicts
func (s *Server) handleConflicts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed; use POST")
		return
	}

	var req ConflictRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.DurationHours <= 0 {
		writeError(w, http.StatusBadRequest, "duration_hours must be positive")
		return
	}
	duration := time.Duration(req.DurationHours * float64(time.Hour))

	bookings, err := s.bookingsAround(r, req.StartTime, req.StartTime.Add(duration), req.ClientID)
	if err != nil {
		s.logger.Error().Err(err).Msg("fetch bookings failed")
		writeError(w, http.StatusInternalServerError, "failed to load bookings")
		return
	}

	conflict := s.engine.CheckBlocked(req.StartTime, duration, bookings)
	if conflict.Blocked {
		metrics.IncConflictCheck("blocked")
	} else {
		metrics.IncConflictCheck("free")
	}
	writeJSON(w, http.StatusOK, conflict)
}

// handleExport streams the day grid as an Excel workbook.
// GET /api/v1/export?date=YYYY-MM-DD&client_id=N
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed; use GET")
		return
	}

	date, err := time.Parse(dateFormat, r.URL.Query().Get("date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date format; expected YYYY-MM-DD")
		return
	}

	bookings, err := s.bookingsAround(r, date, date, parseClientID(r))
	if err != nil {
		s.logger.Error().Err(err).Msg("fetch bookings failed")
		writeError(w, http.StatusInternalServerError, "failed to load bookings")
		return
	}

	slots := s.engine.DayGrid(date, bookings)
	sheet, err := export.DaySheet(date, slots, s.baseRate)
	if err != nil {
		s.logger.Error().Err(err).Msg("build export failed")
		writeError(w, http.StatusInternalServerError, "failed to build export")
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=schedule_%s.xlsx", date.Format(dateFormat)))
	if err := sheet.Write(w); err != nil {
		s.logger.Error().Err(err).Msg("write export failed")
	}
}
