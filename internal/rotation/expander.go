// Package rotation expands a tenant's rotation templates into concrete shift
// and availability instances. Expansion is a pure function of the tenant
// configuration, the roster state, the horizon length and the templates; it
// never touches storage.
package rotation

import (
	"fmt"
	"slices"
	"time"

	"github.com/rosterhub-dev/roster-manager/backend/internal/domain"
)

const timeOfDayLayout = "15:04"

type Expander struct{}

func NewExpander() *Expander {
	return &Expander{}
}

// Expand generates instances for the lengthInDays days following the current
// draft horizon (the extension window). The rotation cursor is anchored to
// the Unix epoch so that repeated provisioning keeps the pattern aligned no
// matter how often the window has been published forward.
func (e *Expander) Expand(cfg *domain.TenantConfiguration, state *domain.RosterState, lengthInDays int, templates []*domain.ShiftTemplate) ([]*domain.Shift, []*domain.EmployeeAvailability, error) {
	if cfg == nil || state == nil {
		return nil, nil, fmt.Errorf("tenant configuration and roster state are required: %w", domain.ErrInvalidArgument)
	}
	if cfg.RotationLength <= 0 {
		return nil, nil, fmt.Errorf("rotation length %d must be positive: %w", cfg.RotationLength, domain.ErrInvalidArgument)
	}

	loc, err := time.LoadLocation(cfg.TimeZone)
	if err != nil {
		return nil, nil, fmt.Errorf("tenant time zone %q: %w", cfg.TimeZone, domain.ErrInvalidArgument)
	}

	shifts := []*domain.Shift{}
	availabilities := []*domain.EmployeeAvailability{}
	seenAvailability := make(map[string]bool)

	firstDate := state.LastDraftDate().AddDate(0, 0, 1)
	for dayIndex := 0; dayIndex < lengthInDays; dayIndex++ {
		date := firstDate.AddDate(0, 0, dayIndex)
		rotationDay := int32(daysSinceEpoch(date) % int64(cfg.RotationLength))

		for _, template := range templates {
			if !slices.Contains(template.RotationDays, rotationDay) {
				continue
			}

			startTime, endTime, err := instanceTimes(template, date, loc)
			if err != nil {
				return nil, nil, err
			}

			var employeeID *int64
			if template.RotationEmployeeID != nil {
				id := *template.RotationEmployeeID
				employeeID = &id
			}

			shifts = append(shifts, &domain.Shift{
				TenantID:   cfg.TenantID,
				SpotID:     template.SpotID,
				StartTime:  startTime,
				EndTime:    endTime,
				EmployeeID: employeeID,
			})

			// A pinned rotation employee also gets a DESIRED availability
			// for the day, one per (employee, date).
			if employeeID != nil {
				key := fmt.Sprintf("%d|%s", *employeeID, date.Format(time.DateOnly))
				if !seenAvailability[key] {
					seenAvailability[key] = true
					availabilities = append(availabilities, &domain.EmployeeAvailability{
						TenantID:   cfg.TenantID,
						EmployeeID: *employeeID,
						Date:       date,
						State:      domain.AvailabilityDesired,
					})
				}
			}
		}
	}

	return shifts, availabilities, nil
}

func instanceTimes(template *domain.ShiftTemplate, date time.Time, loc *time.Location) (time.Time, time.Time, error) {
	start, err := time.Parse(timeOfDayLayout, template.StartTime)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("template %d start time %q: %w", template.ID, template.StartTime, domain.ErrInvalidArgument)
	}
	end, err := time.Parse(timeOfDayLayout, template.EndTime)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("template %d end time %q: %w", template.ID, template.EndTime, domain.ErrInvalidArgument)
	}

	startTime := time.Date(date.Year(), date.Month(), date.Day(), start.Hour(), start.Minute(), 0, 0, loc)
	endTime := time.Date(date.Year(), date.Month(), date.Day(), end.Hour(), end.Minute(), 0, 0, loc)
	if !endTime.After(startTime) {
		// Overnight shift, ends the next day.
		endTime = endTime.AddDate(0, 0, 1)
	}

	return startTime, endTime, nil
}

func daysSinceEpoch(date time.Time) int64 {
	return date.Unix() / (24 * 60 * 60)
}
