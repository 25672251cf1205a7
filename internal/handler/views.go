package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/rosterhub-dev/roster-manager/backend/internal/domain"
)

// parseDateParam reads an ISO date query parameter. Malformed values map to
// ErrInvalidArgument so domainError renders them as 400s.
func parseDateParam(r *http.Request, name string) (time.Time, error) {
	value := r.URL.Query().Get(name)
	date, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("query parameter %q must be a date like 2006-01-02: %w", name, domain.ErrInvalidArgument)
	}
	return date, nil
}

func parseIntParam(r *http.Request, name string, fallback int) (int, error) {
	value := r.URL.Query().Get(name)
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("query parameter %q must be a non-negative integer: %w", name, domain.ErrInvalidArgument)
	}
	return n, nil
}

func (h *Handler) GetCurrentSpotRosterView(w http.ResponseWriter, r *http.Request) {
	tenant := r.Context().Value(TenantCtx).(*domain.Tenant)

	page, err := parseIntParam(r, "page", 0)
	if err != nil {
		h.domainError(w, r, err)
		return
	}
	pageSize, err := parseIntParam(r, "pageSize", 0)
	if err != nil {
		h.domainError(w, r, err)
		return
	}

	view, err := h.roster.GetCurrentSpotRosterView(tenant.ID, page, pageSize)
	if err != nil {
		h.domainError(w, r, err)
		return
	}

	h.successResponse(w, r, "spot roster view", view)
}

func (h *Handler) GetSpotRosterView(w http.ResponseWriter, r *http.Request) {
	tenant := r.Context().Value(TenantCtx).(*domain.Tenant)

	startDate, err := parseDateParam(r, "startDate")
	if err != nil {
		h.domainError(w, r, err)
		return
	}
	endDate, err := parseDateParam(r, "endDate")
	if err != nil {
		h.domainError(w, r, err)
		return
	}

	view, err := h.roster.GetSpotRosterView(tenant.ID, startDate, endDate)
	if err != nil {
		h.domainError(w, r, err)
		return
	}

	h.successResponse(w, r, "spot roster view", view)
}

func (h *Handler) GetSpotRosterViewFor(w http.ResponseWriter, r *http.Request) {
	tenant := r.Context().Value(TenantCtx).(*domain.Tenant)

	var req struct {
		StartDate string  `json:"startDate" validate:"required"`
		EndDate   string  `json:"endDate" validate:"required"`
		SpotIDs   []int64 `json:"spotIDs"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	startDate, endDate, err := parseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		h.domainError(w, r, err)
		return
	}

	view, err := h.roster.GetSpotRosterViewFor(tenant.ID, startDate, endDate, req.SpotIDs)
	if err != nil {
		h.domainError(w, r, err)
		return
	}

	h.successResponse(w, r, "spot roster view", view)
}

func (h *Handler) GetCurrentEmployeeRosterView(w http.ResponseWriter, r *http.Request) {
	tenant := r.Context().Value(TenantCtx).(*domain.Tenant)

	view, err := h.roster.GetCurrentEmployeeRosterView(tenant.ID)
	if err != nil {
		h.domainError(w, r, err)
		return
	}

	h.successResponse(w, r, "employee roster view", view)
}

func (h *Handler) GetEmployeeRosterView(w http.ResponseWriter, r *http.Request) {
	tenant := r.Context().Value(TenantCtx).(*domain.Tenant)

	startDate, err := parseDateParam(r, "startDate")
	if err != nil {
		h.domainError(w, r, err)
		return
	}
	endDate, err := parseDateParam(r, "endDate")
	if err != nil {
		h.domainError(w, r, err)
		return
	}

	view, err := h.roster.GetEmployeeRosterView(tenant.ID, startDate, endDate)
	if err != nil {
		h.domainError(w, r, err)
		return
	}

	h.successResponse(w, r, "employee roster view", view)
}

func (h *Handler) GetEmployeeRosterViewFor(w http.ResponseWriter, r *http.Request) {
	tenant := r.Context().Value(TenantCtx).(*domain.Tenant)

	var req struct {
		StartDate   string  `json:"startDate" validate:"required"`
		EndDate     string  `json:"endDate" validate:"required"`
		EmployeeIDs []int64 `json:"employeeIDs"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	startDate, endDate, err := parseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		h.domainError(w, r, err)
		return
	}

	view, err := h.roster.GetEmployeeRosterViewFor(tenant.ID, startDate, endDate, req.EmployeeIDs)
	if err != nil {
		h.domainError(w, r, err)
		return
	}

	h.successResponse(w, r, "employee roster view", view)
}

func parseDateRange(start, end string) (time.Time, time.Time, error) {
	startDate, err := time.Parse(time.DateOnly, start)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("startDate must be a date like 2006-01-02: %w", domain.ErrInvalidArgument)
	}
	endDate, err := time.Parse(time.DateOnly, end)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("endDate must be a date like 2006-01-02: %w", domain.ErrInvalidArgument)
	}
	if endDate.Before(startDate) {
		return time.Time{}, time.Time{}, fmt.Errorf("endDate is before startDate: %w", domain.ErrInvalidArgument)
	}
	return startDate, endDate, nil
}
