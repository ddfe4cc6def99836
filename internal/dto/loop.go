package dto

import (
	"time"

	"github.com/zhurnal-erp/zhurnal_backend/internal/core/domain"
)

// CreateLoopRequest creates a loop from an ordered journal sequence. The
// engine adds the closing edge from the last journal back to the first.
type CreateLoopRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	JournalIDs  []string `json:"journalIDs" binding:"required,min=3"`
}

// InsertChainRequest splices a chain of journals into an existing edge.
type InsertChainRequest struct {
	InsertAfterJournalID  string   `json:"insertAfterJournalID" binding:"required"`
	InsertBeforeJournalID string   `json:"insertBeforeJournalID" binding:"required"`
	JournalChain          []string `json:"journalChain" binding:"required,min=1"`
}

// LoopConnectionResponse is one directed edge of a loop.
type LoopConnectionResponse struct {
	ConnectionID  string `json:"connectionID"`
	FromJournalID string `json:"fromJournalID"`
	ToJournalID   string `json:"toJournalID"`
	Position      int    `json:"position"`
}

// LoopResponse is the wire form of a loop with its ordered edges.
type LoopResponse struct {
	LoopID      string                   `json:"loopID"`
	Name        string                   `json:"name"`
	Description string                   `json:"description"`
	Status      domain.LoopStatus        `json:"status"`
	Connections []LoopConnectionResponse `json:"connections"`
	CreatedAt   time.Time                `json:"createdAt"`
	CreatedBy   string                   `json:"createdBy"`
}

// ListLoopsResponse wraps a loop listing page.
type ListLoopsResponse struct {
	Loops []LoopResponse `json:"loops"`
}

// ConnectionResponse reports whether a direct edge exists between two
// journals in any active loop.
type ConnectionResponse struct {
	Connected bool    `json:"connected"`
	LoopID    *string `json:"loopID,omitempty"`
}

// ToLoopResponse converts a loop and its edges to the response DTO.
func ToLoopResponse(loop *domain.Loop, connections []domain.LoopConnection) LoopResponse {
	connResponses := make([]LoopConnectionResponse, len(connections))
	for i, c := range connections {
		connResponses[i] = LoopConnectionResponse{
			ConnectionID:  c.ConnectionID,
			FromJournalID: c.FromJournalID,
			ToJournalID:   c.ToJournalID,
			Position:      c.Position,
		}
	}
	return LoopResponse{
		LoopID:      loop.LoopID,
		Name:        loop.Name,
		Description: loop.Description,
		Status:      loop.Status,
		Connections: connResponses,
		CreatedAt:   loop.CreatedAt,
		CreatedBy:   loop.CreatedBy,
	}
}
