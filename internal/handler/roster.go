package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rosterhub-dev/roster-manager/backend/internal/domain"
)

func (h *Handler) GetRosterState(w http.ResponseWriter, r *http.Request) {
	tenant := r.Context().Value(TenantCtx).(*domain.Tenant)

	state, err := h.roster.GetRosterState(tenant.ID)
	if err != nil {
		h.domainError(w, r, err)
		return
	}

	h.successResponse(w, r, "roster state", state)
}

func (h *Handler) Publish(w http.ResponseWriter, r *http.Request) {
	tenant := r.Context().Value(TenantCtx).(*domain.Tenant)

	var req struct {
		LengthInDays *int `json:"lengthInDays" validate:"required,min=0"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	state, err := h.roster.Publish(tenant.ID, *req.LengthInDays)
	if err != nil {
		h.domainError(w, r, err)
		return
	}

	h.notifyPublished(tenant, state, *req.LengthInDays)

	h.successResponse(w, r, "published", state)
}

func (h *Handler) Provision(w http.ResponseWriter, r *http.Request) {
	tenant := r.Context().Value(TenantCtx).(*domain.Tenant)

	var req struct {
		LengthInDays *int `json:"lengthInDays" validate:"required,min=0"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	shiftIDs, err := h.roster.Provision(tenant.ID, *req.LengthInDays)
	if err != nil {
		if len(shiftIDs) > 0 {
			slog.Warn("provisioning stopped partway, persisted shifts are kept", "tenantID", tenant.ID, "persisted", len(shiftIDs), "error", err)
		}
		h.domainError(w, r, err)
		return
	}

	h.successResponse(w, r, "provisioned", shiftIDs)
}

func (h *Handler) PublishAndProvision(w http.ResponseWriter, r *http.Request) {
	tenant := r.Context().Value(TenantCtx).(*domain.Tenant)

	state, shiftIDs, err := h.roster.PublishAndProvision(tenant.ID)
	if err != nil {
		if state != nil {
			// The boundary advance has already committed; only the backfill
			// is incomplete. Operators need to know the difference.
			slog.Warn("publish committed but provisioning failed", "tenantID", tenant.ID, "persisted", len(shiftIDs), "error", err)
		}
		h.domainError(w, r, err)
		return
	}

	h.notifyPublished(tenant, state, int(state.PublishLength))

	h.successResponse(w, r, "published and provisioned", struct {
		State    *domain.RosterState `json:"state"`
		ShiftIDs []int64             `json:"shiftIDs"`
	}{State: state, ShiftIDs: shiftIDs})
}

func (h *Handler) BuildRoster(w http.ResponseWriter, r *http.Request) {
	tenant := r.Context().Value(TenantCtx).(*domain.Tenant)

	snapshot, err := h.roster.BuildRoster(tenant.ID)
	if err != nil {
		h.domainError(w, r, err)
		return
	}

	h.successResponse(w, r, "roster snapshot", snapshot)
}

func (h *Handler) ApplyRoster(w http.ResponseWriter, r *http.Request) {
	tenant := r.Context().Value(TenantCtx).(*domain.Tenant)

	var snapshot domain.Roster
	if err := h.readJSON(r, &snapshot); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.roster.ApplyRoster(tenant.ID, &snapshot); err != nil {
		h.domainError(w, r, err)
		return
	}

	h.successResponse(w, r, "roster assignments merged", nil)
}

func (h *Handler) StartSolve(w http.ResponseWriter, r *http.Request) {
	tenant := r.Context().Value(TenantCtx).(*domain.Tenant)

	if err := h.roster.StartSolve(tenant.ID); err != nil {
		h.domainError(w, r, err)
		return
	}

	h.successResponse(w, r, "solve started", nil)
}

func (h *Handler) StopSolve(w http.ResponseWriter, r *http.Request) {
	tenant := r.Context().Value(TenantCtx).(*domain.Tenant)

	if err := h.roster.StopSolve(tenant.ID); err != nil {
		h.domainError(w, r, err)
		return
	}

	h.successResponse(w, r, "solve termination requested", nil)
}

func (h *Handler) GetSolveResult(w http.ResponseWriter, r *http.Request) {
	tenant := r.Context().Value(TenantCtx).(*domain.Tenant)

	result, err := h.roster.CurrentSolveResult(tenant.ID)
	if err != nil {
		h.domainError(w, r, err)
		return
	}

	if result == nil {
		h.successResponse(w, r, "no solve has completed yet", nil)
		return
	}

	h.successResponse(w, r, "latest solve result", result)
}

// notifyPublished queues a "roster published" mail for every employee with an
// email address. Notification is best effort and never fails the publish.
func (h *Handler) notifyPublished(tenant *domain.Tenant, state *domain.RosterState, lengthInDays int) {
	if lengthInDays <= 0 {
		return
	}

	employees, err := h.repository.ListEmployees(tenant.ID)
	if err != nil {
		slog.Warn("failed to list employees for publish notification", "tenantID", tenant.ID, "error", err)
		return
	}

	startDate := state.FirstDraftDate.AddDate(0, 0, -lengthInDays)
	endDate := state.FirstDraftDate.AddDate(0, 0, -1)

	for _, employee := range employees {
		if employee.Email == nil {
			continue
		}

		body, err := json.Marshal(domain.MailMessage{
			Type: "roster_published",
			To:   *employee.Email,
			Data: domain.RosterPublishedMailData{
				EmployeeName: employee.Name,
				TenantName:   tenant.Name,
				StartDate:    startDate.Format(time.DateOnly),
				EndDate:      endDate.Format(time.DateOnly),
			},
		})
		if err != nil {
			slog.Warn("failed to encode publish notification", "tenantID", tenant.ID, "error", err)
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.RabbitMQ.PublishTimeout)*time.Second)
		err = h.mailChannel.PublishWithContext(
			ctx,
			"",
			domain.NotificationQueue,
			true,
			false,
			amqp.Publishing{
				ContentType: "application/json",
				Body:        body,
			},
		)
		cancel()
		if err != nil {
			slog.Warn("failed to queue publish notification", "tenantID", tenant.ID, "error", err)
		}
	}
}
