package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestRosterState_Regions(t *testing.T) {
	state := &RosterState{
		TenantID:         1,
		LastHistoricDate: date(2024, time.January, 9),
		FirstDraftDate:   date(2024, time.January, 12),
		DraftLength:      3,
		PublishLength:    7,
	}

	assert.Equal(t, date(2024, time.January, 10), state.FirstPublishedDate())
	assert.Equal(t, date(2024, time.January, 14), state.LastDraftDate())

	assert.True(t, state.IsHistoric(date(2024, time.January, 9)))
	assert.False(t, state.IsHistoric(date(2024, time.January, 10)))

	assert.True(t, state.IsPublished(date(2024, time.January, 10)))
	assert.True(t, state.IsPublished(date(2024, time.January, 11)))
	assert.False(t, state.IsPublished(date(2024, time.January, 12)))

	assert.True(t, state.IsDraft(date(2024, time.January, 12)))
	assert.True(t, state.IsDraft(date(2024, time.January, 14)))
	assert.False(t, state.IsDraft(date(2024, time.January, 15)))
	assert.False(t, state.IsDraft(date(2024, time.January, 11)))
}

func TestRosterState_EmptyDraftRegion(t *testing.T) {
	state := &RosterState{
		LastHistoricDate: date(2024, time.January, 9),
		FirstDraftDate:   date(2024, time.January, 12),
		DraftLength:      0,
	}

	// LastDraftDate falls before FirstDraftDate, so no day is a draft day
	assert.True(t, state.LastDraftDate().Before(state.FirstDraftDate))
	assert.False(t, state.IsDraft(date(2024, time.January, 12)))
	assert.True(t, state.IsPublished(date(2024, time.January, 11)))
}

func TestScore_Ordering(t *testing.T) {
	assert.True(t, Score{Hard: -1, Soft: 10}.Less(Score{Hard: 0, Soft: -50}))
	assert.True(t, Score{Hard: 0, Soft: -2}.Less(Score{Hard: 0, Soft: -1}))
	assert.False(t, Score{Hard: 0, Soft: 1}.Less(Score{Hard: 0, Soft: 1}))
}

func TestScore_Feasible(t *testing.T) {
	assert.True(t, Score{Hard: 0, Soft: -99}.Feasible())
	assert.False(t, Score{Hard: -1, Soft: 0}.Feasible())
}
