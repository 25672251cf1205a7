package domain

import "time"

// RosterState partitions a tenant's timeline into three contiguous regions:
// historic (up to LastHistoricDate), published, and draft. Publishing moves
// the published/draft boundary forward; nothing else mutates this record.
type RosterState struct {
	TenantID         int64     `json:"tenantID"`
	LastHistoricDate time.Time `json:"lastHistoricDate"`
	FirstDraftDate   time.Time `json:"firstDraftDate"`
	DraftLength      int32     `json:"draftLength"`
	PublishLength    int32     `json:"publishLength"`
	CreatedAt        time.Time `json:"createdAt"`
	Version          int32     `json:"-"`
}

// FirstPublishedDate is the day after the historic cutoff.
func (rs *RosterState) FirstPublishedDate() time.Time {
	return rs.LastHistoricDate.AddDate(0, 0, 1)
}

// LastDraftDate is the final day of the draft region. With DraftLength 0 it
// falls before FirstDraftDate, meaning the draft region is empty.
func (rs *RosterState) LastDraftDate() time.Time {
	return rs.FirstDraftDate.AddDate(0, 0, int(rs.DraftLength)-1)
}

func (rs *RosterState) IsHistoric(date time.Time) bool {
	return !date.After(rs.LastHistoricDate)
}

func (rs *RosterState) IsDraft(date time.Time) bool {
	return !date.Before(rs.FirstDraftDate) && !date.After(rs.LastDraftDate())
}

func (rs *RosterState) IsPublished(date time.Time) bool {
	return !rs.IsHistoric(date) && date.Before(rs.FirstDraftDate)
}
