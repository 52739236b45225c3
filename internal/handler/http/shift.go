package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fasihgds-afk/hik-attendance-system/internal/domain/shift"
	"github.com/fasihgds-afk/hik-attendance-system/internal/handler/http/response"
	"github.com/fasihgds-afk/hik-attendance-system/internal/pkg/validator"
)

type ShiftHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Window(w http.ResponseWriter, r *http.Request)
}

type ShiftHandlerImpl struct {
	shiftService shift.Service
}

func NewShiftHandler(shiftService shift.Service) ShiftHandler {
	return &ShiftHandlerImpl{shiftService: shiftService}
}

// List implements ShiftHandler.
func (h *ShiftHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	defs, err := h.shiftService.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	out := make([]shift.DefinitionResponse, 0, len(defs))
	for _, d := range defs {
		out = append(out, shift.NewDefinitionResponse(d))
	}
	response.Success(w, out)
}

// Window implements ShiftHandler. Resolves a shift against a concrete date,
// which is where the Saturday substitution becomes visible.
func (h *ShiftHandlerImpl) Window(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	if !validator.IsValidShiftCode(code) {
		response.BadRequest(w, "invalid shift code", nil)
		return
	}
	dateParam := r.URL.Query().Get("date")
	date, ok := validator.IsValidDate(dateParam)
	if !ok {
		response.BadRequest(w, "date must be in YYYY-MM-DD format", nil)
		return
	}

	window, err := h.shiftService.WindowFor(r.Context(), code, date)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, shift.NewWindowResponse(window, dateParam))
}
