package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fasihgds-afk/hik-attendance-system/internal/domain/attendance"
	"github.com/fasihgds-afk/hik-attendance-system/internal/handler/http/response"
	"github.com/fasihgds-afk/hik-attendance-system/internal/pkg/validator"
)

type AttendanceHandler interface {
	Recompute(w http.ResponseWriter, r *http.Request)
	ListMonth(w http.ResponseWriter, r *http.Request)
	OverrideDay(w http.ResponseWriter, r *http.Request)
}

type AttendanceHandlerImpl struct {
	attendanceService attendance.Service
}

func NewAttendanceHandler(attendanceService attendance.Service) AttendanceHandler {
	return &AttendanceHandlerImpl{attendanceService: attendanceService}
}

// Recompute implements AttendanceHandler. An empty employee code means the
// whole workforce.
func (h *AttendanceHandlerImpl) Recompute(w http.ResponseWriter, r *http.Request) {
	var req attendance.RecomputeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Recompute decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}
	year, month, _ := validator.IsValidMonth(req.Month)

	if req.EmployeeCode == "" {
		result, err := h.attendanceService.RecomputeMonthAll(r.Context(), year, month)
		if err != nil {
			response.HandleError(w, err)
			return
		}
		response.SuccessWithMessage(w, "Month recomputed", result)
		return
	}

	days, err := h.attendanceService.RecomputeMonth(r.Context(), req.EmployeeCode, year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Month recomputed", dayResponses(days))
}

// ListMonth implements AttendanceHandler.
func (h *AttendanceHandlerImpl) ListMonth(w http.ResponseWriter, r *http.Request) {
	employeeCode := r.URL.Query().Get("employee_code")
	if !validator.IsValidEmployeeCode(employeeCode) {
		response.BadRequest(w, "employee_code must be 1-8 digits", nil)
		return
	}
	year, month, ok := validator.IsValidMonth(r.URL.Query().Get("month"))
	if !ok {
		response.BadRequest(w, "month must be in YYYY-MM format", nil)
		return
	}

	days, err := h.attendanceService.ListMonth(r.Context(), employeeCode, year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, dayResponses(days))
}

// OverrideDay implements AttendanceHandler.
func (h *AttendanceHandlerImpl) OverrideDay(w http.ResponseWriter, r *http.Request) {
	var req attendance.OverrideDayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("OverrideDay decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.EmployeeCode = chi.URLParam(r, "employee")
	req.Date = chi.URLParam(r, "date")

	day, err := h.attendanceService.OverrideDay(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Day overridden", attendance.NewDayRecordResponse(day))
}

func dayResponses(days []attendance.DayAdjudication) []attendance.DayRecordResponse {
	out := make([]attendance.DayRecordResponse, 0, len(days))
	for _, d := range days {
		out = append(out, attendance.NewDayRecordResponse(d))
	}
	return out
}
