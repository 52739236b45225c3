package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/fasihgds-afk/hik-attendance-system/internal/domain/payroll"
	"github.com/fasihgds-afk/hik-attendance-system/internal/handler/http/response"
	"github.com/fasihgds-afk/hik-attendance-system/internal/pkg/validator"
)

type PayrollHandler interface {
	Summary(w http.ResponseWriter, r *http.Request)
	GetRules(w http.ResponseWriter, r *http.Request)
	ActivateRules(w http.ResponseWriter, r *http.Request)
}

type PayrollHandlerImpl struct {
	payrollService payroll.Service
}

func NewPayrollHandler(payrollService payroll.Service) PayrollHandler {
	return &PayrollHandlerImpl{payrollService: payrollService}
}

// Summary implements PayrollHandler. An empty employee code returns the
// whole workforce.
func (h *PayrollHandlerImpl) Summary(w http.ResponseWriter, r *http.Request) {
	year, month, ok := validator.IsValidMonth(r.URL.Query().Get("month"))
	if !ok {
		response.BadRequest(w, "month must be in YYYY-MM format", nil)
		return
	}

	employeeCode := r.URL.Query().Get("employee_code")
	if employeeCode == "" {
		result, err := h.payrollService.MonthlySummaryAll(r.Context(), year, month)
		if err != nil {
			response.HandleError(w, err)
			return
		}
		summaries := make([]payroll.SummaryResponse, 0, len(result.Summaries))
		for _, s := range result.Summaries {
			summaries = append(summaries, payroll.NewSummaryResponse(s))
		}
		response.Success(w, map[string]interface{}{
			"summaries": summaries,
			"failed":    result.Failed,
		})
		return
	}

	if !validator.IsValidEmployeeCode(employeeCode) {
		response.BadRequest(w, "employee_code must be 1-8 digits", nil)
		return
	}
	summary, err := h.payrollService.MonthlySummary(r.Context(), employeeCode, year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, payroll.NewSummaryResponse(summary))
}

// GetRules implements PayrollHandler.
func (h *PayrollHandlerImpl) GetRules(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.payrollService.ActiveRules(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, payroll.NewRulesResponse(cfg))
}

// ActivateRules implements PayrollHandler.
func (h *PayrollHandlerImpl) ActivateRules(w http.ResponseWriter, r *http.Request) {
	var req payroll.ActivateRulesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("ActivateRules decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	cfg, err := h.payrollService.ActivateRules(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Violation rules activated", payroll.NewRulesResponse(cfg))
}
