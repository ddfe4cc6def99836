package dto

import (
	"encoding/json"
	"time"

	"github.com/zhurnal-erp/zhurnal_backend/internal/core/domain"
)

// CreateJournalRequest defines the payload for creating a journal node.
type CreateJournalRequest struct {
	Name            string          `json:"name" binding:"required"`
	ParentJournalID *string         `json:"parentJournalID"`
	IsTerminal      bool            `json:"isTerminal"`
	Extra           json.RawMessage `json:"extra"`
}

// UpdateJournalRequest defines the updatable fields of a journal. When
// ParentJournalID is set the journal is re-parented under that journal;
// moving a journal into its own subtree is refused.
type UpdateJournalRequest struct {
	Name            *string         `json:"name"`
	ParentJournalID *string         `json:"parentJournalID"`
	IsTerminal      *bool           `json:"isTerminal"`
	Extra           json.RawMessage `json:"extra"`
}

// JournalResponse defines the data returned for a journal node.
type JournalResponse struct {
	JournalID       string          `json:"journalID"`
	CompanyID       string          `json:"companyID"`
	Name            string          `json:"name"`
	ParentJournalID *string         `json:"parentJournalID"`
	IsTerminal      bool            `json:"isTerminal"`
	Extra           json.RawMessage `json:"extra,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
	CreatedBy       string          `json:"createdBy"`
}

// ListJournalsResponse wraps a list of journals.
type ListJournalsResponse struct {
	Journals []JournalResponse `json:"journals"`
}

// DescendantsRequest names the roots of a descendant closure query.
type DescendantsRequest struct {
	JournalIDs   []string `json:"journalIDs" binding:"required,min=1"`
	IncludeRoots bool     `json:"includeRoots"`
}

// DescendantsResponse returns the descendant closure of a root set.
type DescendantsResponse struct {
	JournalIDs []string `json:"journalIDs"`
}

// ToJournalResponse converts a domain.Journal to its response DTO.
func ToJournalResponse(j *domain.Journal) JournalResponse {
	return JournalResponse{
		JournalID:       j.JournalID,
		CompanyID:       j.CompanyID,
		Name:            j.Name,
		ParentJournalID: j.ParentJournalID,
		IsTerminal:      j.IsTerminal,
		Extra:           j.Extra,
		CreatedAt:       j.CreatedAt,
		CreatedBy:       j.CreatedBy,
	}
}

// ToJournalResponses converts a slice of domain journals.
func ToJournalResponses(journals []domain.Journal) []JournalResponse {
	responses := make([]JournalResponse, len(journals))
	for i := range journals {
		responses[i] = ToJournalResponse(&journals[i])
	}
	return responses
}
