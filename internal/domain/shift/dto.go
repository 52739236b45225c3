package shift

// ========================================
// SHIFT DTOs
// ========================================

type DefinitionResponse struct {
	Code            string `json:"code"`
	StartTime       string `json:"start_time"`
	EndTime         string `json:"end_time"`
	CrossesMidnight bool   `json:"crosses_midnight"`
	GraceMinutes    int    `json:"grace_minutes"`
}

func NewDefinitionResponse(d Definition) DefinitionResponse {
	return DefinitionResponse{
		Code:            d.Code,
		StartTime:       d.StartTime,
		EndTime:         d.EndTime,
		CrossesMidnight: d.CrossesMidnight,
		GraceMinutes:    d.GraceMinutes(),
	}
}

type WindowResponse struct {
	ShiftCode       string `json:"shift_code"`
	Date            string `json:"date"`
	StartMinute     int    `json:"start_minute"`
	EndMinute       int    `json:"end_minute"`
	CrossesMidnight bool   `json:"crosses_midnight"`
	GraceMinutes    int    `json:"grace_minutes"`
}

func NewWindowResponse(w Window, date string) WindowResponse {
	return WindowResponse{
		ShiftCode:       w.ShiftCode,
		Date:            date,
		StartMinute:     w.StartMinute,
		EndMinute:       w.EndMinute,
		CrossesMidnight: w.CrossesMidnight,
		GraceMinutes:    w.GraceMinutes,
	}
}
