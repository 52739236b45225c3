package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/fasihgds-afk/hik-attendance-system/internal/domain/leave"
	"github.com/fasihgds-afk/hik-attendance-system/internal/handler/http/response"
	"github.com/fasihgds-afk/hik-attendance-system/internal/pkg/validator"
)

type LeaveHandler interface {
	Grant(w http.ResponseWriter, r *http.Request)
	Revoke(w http.ResponseWriter, r *http.Request)
	Balances(w http.ResponseWriter, r *http.Request)
	Reconcile(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	leaveService leave.Service
}

func NewLeaveHandler(leaveService leave.Service) LeaveHandler {
	return &LeaveHandlerImpl{leaveService: leaveService}
}

// Grant implements LeaveHandler.
func (h *LeaveHandlerImpl) Grant(w http.ResponseWriter, r *http.Request) {
	var req leave.GrantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Grant decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	record, err := h.leaveService.Grant(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Leave granted", leave.NewRecordResponse(record))
}

// Revoke implements LeaveHandler.
func (h *LeaveHandlerImpl) Revoke(w http.ResponseWriter, r *http.Request) {
	employeeCode := chi.URLParam(r, "employee")
	if !validator.IsValidEmployeeCode(employeeCode) {
		response.BadRequest(w, "employee_code must be 1-8 digits", nil)
		return
	}
	date, ok := validator.IsValidDate(chi.URLParam(r, "date"))
	if !ok {
		response.BadRequest(w, "date must be in YYYY-MM-DD format", nil)
		return
	}

	if err := h.leaveService.Revoke(r.Context(), employeeCode, date); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Leave revoked", nil)
}

// Balances implements LeaveHandler.
func (h *LeaveHandlerImpl) Balances(w http.ResponseWriter, r *http.Request) {
	employeeCode := r.URL.Query().Get("employee_code")
	if !validator.IsValidEmployeeCode(employeeCode) {
		response.BadRequest(w, "employee_code must be 1-8 digits", nil)
		return
	}
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil || year < 2000 || year > 2200 {
		response.BadRequest(w, "year must be a four-digit year", nil)
		return
	}

	views, err := h.leaveService.Balances(r.Context(), employeeCode, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	balances := make([]leave.BalanceResponse, 0, len(views))
	for _, v := range views {
		balances = append(balances, leave.NewBalanceResponse(v))
	}
	response.Success(w, balances)
}

type reconcileRequest struct {
	EmployeeCode string `json:"employee_code"`
	Year         int    `json:"year"`
}

// Reconcile implements LeaveHandler.
func (h *LeaveHandlerImpl) Reconcile(w http.ResponseWriter, r *http.Request) {
	var req reconcileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Reconcile decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if !validator.IsValidEmployeeCode(req.EmployeeCode) {
		response.BadRequest(w, "employee_code must be 1-8 digits", nil)
		return
	}
	if req.Year < 2000 || req.Year > 2200 {
		response.BadRequest(w, "year must be a four-digit year", nil)
		return
	}

	report, err := h.leaveService.Reconcile(r.Context(), req.EmployeeCode, req.Year)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Ledger reconciled", leave.ReconcileResponse{
		DuplicatesRemoved: report.DuplicatesRemoved,
		OrphansRemoved:    report.OrphansRemoved,
		QuartersRecounted: report.QuartersRecounted,
	})
}
