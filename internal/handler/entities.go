package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/rosterhub-dev/roster-manager/backend/internal/domain"
)

func (h *Handler) ListSkills(w http.ResponseWriter, r *http.Request) {
	tenant := r.Context().Value(TenantCtx).(*domain.Tenant)

	skills, err := h.repository.ListSkills(tenant.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "skills", skills)
}

func (h *Handler) CreateSkill(w http.ResponseWriter, r *http.Request) {
	tenant := r.Context().Value(TenantCtx).(*domain.Tenant)

	var req struct {
		Name string `json:"name" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	skill := &domain.Skill{
		TenantID: tenant.ID,
		Name:     req.Name,
	}
	if err := h.repository.CreateSkill(skill); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "skill created", skill)
}

func (h *Handler) ListSpots(w http.ResponseWriter, r *http.Request) {
	tenant := r.Context().Value(TenantCtx).(*domain.Tenant)

	spots, err := h.repository.ListSpots(tenant.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "spots", spots)
}

func (h *Handler) CreateSpot(w http.ResponseWriter, r *http.Request) {
	tenant := r.Context().Value(TenantCtx).(*domain.Tenant)

	var req struct {
		Name             string  `json:"name" validate:"required"`
		RequiredSkillIDs []int64 `json:"requiredSkillIDs"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	spot := &domain.Spot{
		TenantID:         tenant.ID,
		Name:             req.Name,
		RequiredSkillIDs: req.RequiredSkillIDs,
	}
	if err := h.repository.CreateSpot(spot); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "spot created", spot)
}

func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	tenant := r.Context().Value(TenantCtx).(*domain.Tenant)

	employees, err := h.repository.ListEmployees(tenant.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "employees", employees)
}

func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	tenant := r.Context().Value(TenantCtx).(*domain.Tenant)

	var req struct {
		Name     string  `json:"name" validate:"required"`
		Email    *string `json:"email" validate:"omitempty,email"`
		SkillIDs []int64 `json:"skillIDs"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	employee := &domain.Employee{
		TenantID: tenant.ID,
		Name:     req.Name,
		Email:    req.Email,
		SkillIDs: req.SkillIDs,
	}
	if err := h.repository.CreateEmployee(employee); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "employee created", employee)
}

// ListShifts returns either the tenant's full shift list or, when both
// startDate and endDate are present, the shifts starting inside that range.
func (h *Handler) ListShifts(w http.ResponseWriter, r *http.Request) {
	tenant := r.Context().Value(TenantCtx).(*domain.Tenant)

	var (
		shifts []*domain.Shift
		err    error
	)
	if r.URL.Query().Get("startDate") != "" || r.URL.Query().Get("endDate") != "" {
		var startDate, endDate time.Time
		startDate, err = parseDateParam(r, "startDate")
		if err != nil {
			h.domainError(w, r, err)
			return
		}
		endDate, err = parseDateParam(r, "endDate")
		if err != nil {
			h.domainError(w, r, err)
			return
		}
		shifts, err = h.repository.ListShiftsInRange(tenant.ID, startDate, endDate)
	} else {
		shifts, err = h.repository.ListShifts(tenant.ID)
	}
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "shifts", shifts)
}

func (h *Handler) CreateShift(w http.ResponseWriter, r *http.Request) {
	tenant := r.Context().Value(TenantCtx).(*domain.Tenant)

	var req struct {
		SpotID     int64     `json:"spotID" validate:"required"`
		StartTime  time.Time `json:"startTime" validate:"required"`
		EndTime    time.Time `json:"endTime" validate:"required"`
		EmployeeID *int64    `json:"employeeID"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if !req.EndTime.After(req.StartTime) {
		h.domainError(w, r, fmt.Errorf("endTime must be after startTime: %w", domain.ErrInvalidArgument))
		return
	}

	shift := &domain.Shift{
		TenantID:   tenant.ID,
		SpotID:     req.SpotID,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		EmployeeID: req.EmployeeID,
	}
	if err := h.repository.CreateShift(shift); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "shift created", shift)
}

func (h *Handler) ListAvailabilities(w http.ResponseWriter, r *http.Request) {
	tenant := r.Context().Value(TenantCtx).(*domain.Tenant)

	availabilities, err := h.repository.ListAvailabilities(tenant.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "availabilities", availabilities)
}

func (h *Handler) CreateAvailability(w http.ResponseWriter, r *http.Request) {
	tenant := r.Context().Value(TenantCtx).(*domain.Tenant)

	var req struct {
		EmployeeID int64  `json:"employeeID" validate:"required"`
		Date       string `json:"date" validate:"required"`
		State      string `json:"state" validate:"required,oneof=UNAVAILABLE UNDESIRED DESIRED"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	date, err := time.Parse(time.DateOnly, req.Date)
	if err != nil {
		h.domainError(w, r, fmt.Errorf("date must look like 2006-01-02: %w", domain.ErrInvalidArgument))
		return
	}

	availability := &domain.EmployeeAvailability{
		TenantID:   tenant.ID,
		EmployeeID: req.EmployeeID,
		Date:       date,
		State:      domain.AvailabilityState(req.State),
	}
	if err := h.repository.CreateAvailability(availability); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "availability created", availability)
}

func (h *Handler) ListShiftTemplates(w http.ResponseWriter, r *http.Request) {
	tenant := r.Context().Value(TenantCtx).(*domain.Tenant)

	templates, err := h.repository.ListShiftTemplates(tenant.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "shift templates", templates)
}

func (h *Handler) CreateShiftTemplate(w http.ResponseWriter, r *http.Request) {
	tenant := r.Context().Value(TenantCtx).(*domain.Tenant)

	var req struct {
		SpotID             int64   `json:"spotID" validate:"required"`
		RotationDays       []int32 `json:"rotationDays" validate:"required,min=1,dive,min=0"`
		StartTime          string  `json:"startTime" validate:"required"`
		EndTime            string  `json:"endTime" validate:"required"`
		RotationEmployeeID *int64  `json:"rotationEmployeeID"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	for _, field := range []string{req.StartTime, req.EndTime} {
		if _, err := time.Parse("15:04", field); err != nil {
			h.domainError(w, r, fmt.Errorf("shift template times must look like 15:04: %w", domain.ErrInvalidArgument))
			return
		}
	}

	template := &domain.ShiftTemplate{
		TenantID:           tenant.ID,
		SpotID:             req.SpotID,
		RotationDays:       req.RotationDays,
		StartTime:          req.StartTime,
		EndTime:            req.EndTime,
		RotationEmployeeID: req.RotationEmployeeID,
	}
	if err := h.repository.CreateShiftTemplate(template); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "shift template created", template)
}
