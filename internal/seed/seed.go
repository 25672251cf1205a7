// Package seed fills a fresh database with a small demo tenant so the API
// can be exercised without hand-crafting rows.
package seed

import (
	"errors"
	"fmt"
	"time"

	"github.com/rosterhub-dev/roster-manager/backend/internal/config"
	"github.com/rosterhub-dev/roster-manager/backend/internal/domain"
	"github.com/rosterhub-dev/roster-manager/backend/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

func strPtr(s string) *string { return &s }

// Demo creates the demo tenant with a one-week rotation and a two-week
// draft window. Running it against a database that already has the tenant
// returns an error instead of duplicating data.
func Demo(cfg *config.Config, repo *repository.Repository) error {
	if _, err := repo.GetTenantByName(cfg.Seed.TenantName); err == nil {
		return fmt.Errorf("tenant %q already exists", cfg.Seed.TenantName)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return err
	}

	secretHash, err := bcrypt.GenerateFromPassword([]byte(cfg.Seed.TenantSecret), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	tenant := &domain.Tenant{
		Name:       cfg.Seed.TenantName,
		SecretHash: string(secretHash),
	}
	if err := repo.CreateTenant(tenant); err != nil {
		return err
	}

	if err := repo.CreateTenantConfiguration(&domain.TenantConfiguration{
		TenantID:       tenant.ID,
		TimeZone:       "UTC",
		RotationLength: 7,
	}); err != nil {
		return err
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	if err := repo.CreateRosterState(&domain.RosterState{
		TenantID:         tenant.ID,
		LastHistoricDate: today.AddDate(0, 0, -1),
		FirstDraftDate:   today,
		DraftLength:      14,
		PublishLength:    7,
	}); err != nil {
		return err
	}

	frontDesk := &domain.Skill{TenantID: tenant.ID, Name: "Front Desk"}
	barista := &domain.Skill{TenantID: tenant.ID, Name: "Barista"}
	keyHolder := &domain.Skill{TenantID: tenant.ID, Name: "Key Holder"}
	for _, skill := range []*domain.Skill{frontDesk, barista, keyHolder} {
		if err := repo.CreateSkill(skill); err != nil {
			return err
		}
	}

	counter := &domain.Spot{TenantID: tenant.ID, Name: "Counter", RequiredSkillIDs: []int64{frontDesk.ID}}
	bar := &domain.Spot{TenantID: tenant.ID, Name: "Espresso Bar", RequiredSkillIDs: []int64{barista.ID}}
	closing := &domain.Spot{TenantID: tenant.ID, Name: "Closing", RequiredSkillIDs: []int64{frontDesk.ID, keyHolder.ID}}
	for _, spot := range []*domain.Spot{counter, bar, closing} {
		if err := repo.CreateSpot(spot); err != nil {
			return err
		}
	}

	employees := []*domain.Employee{
		{TenantID: tenant.ID, Name: "Amy Cole", Email: strPtr("amy@example.com"), SkillIDs: []int64{frontDesk.ID, keyHolder.ID}},
		{TenantID: tenant.ID, Name: "Beth Fox", Email: strPtr("beth@example.com"), SkillIDs: []int64{barista.ID}},
		{TenantID: tenant.ID, Name: "Carl Gray", Email: strPtr("carl@example.com"), SkillIDs: []int64{frontDesk.ID}},
		{TenantID: tenant.ID, Name: "Dana Hill", SkillIDs: []int64{frontDesk.ID, barista.ID}},
		{TenantID: tenant.ID, Name: "Eli Jones", Email: strPtr("eli@example.com"), SkillIDs: []int64{frontDesk.ID, keyHolder.ID}},
	}
	for _, employee := range employees {
		if err := repo.CreateEmployee(employee); err != nil {
			return err
		}
	}

	allWeek := []int32{0, 1, 2, 3, 4, 5, 6}
	weekdays := []int32{0, 1, 2, 3, 4}
	templates := []*domain.ShiftTemplate{
		{TenantID: tenant.ID, SpotID: counter.ID, RotationDays: allWeek, StartTime: "09:00", EndTime: "17:00"},
		{TenantID: tenant.ID, SpotID: bar.ID, RotationDays: allWeek, StartTime: "07:00", EndTime: "15:00"},
		{TenantID: tenant.ID, SpotID: closing.ID, RotationDays: weekdays, StartTime: "17:00", EndTime: "23:00", RotationEmployeeID: &employees[0].ID},
		// the bar also runs an overnight stocking shift on weekends
		{TenantID: tenant.ID, SpotID: bar.ID, RotationDays: []int32{5, 6}, StartTime: "22:00", EndTime: "06:00"},
	}
	for _, template := range templates {
		if err := repo.CreateShiftTemplate(template); err != nil {
			return err
		}
	}

	availabilities := []*domain.EmployeeAvailability{
		{TenantID: tenant.ID, EmployeeID: employees[1].ID, Date: today.AddDate(0, 0, 2), State: domain.AvailabilityUnavailable},
		{TenantID: tenant.ID, EmployeeID: employees[2].ID, Date: today.AddDate(0, 0, 3), State: domain.AvailabilityDesired},
		{TenantID: tenant.ID, EmployeeID: employees[3].ID, Date: today.AddDate(0, 0, 4), State: domain.AvailabilityUndesired},
	}
	for _, availability := range availabilities {
		if err := repo.CreateAvailability(availability); err != nil {
			return err
		}
	}

	return nil
}
