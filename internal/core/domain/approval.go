package domain

import "time"

// ApprovalStatus is the lifecycle state of an approvable entity.
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "PENDING"
	ApprovalApproved ApprovalStatus = "APPROVED"
	ApprovalRejected ApprovalStatus = "REJECTED"
)

// ApprovableType identifies the kind of record held in the approval queue.
type ApprovableType string

const (
	ApprovablePartner         ApprovableType = "PARTNER"
	ApprovableGood            ApprovableType = "GOOD"
	ApprovableDocument        ApprovableType = "DOCUMENT"
	ApprovablePartnerLink     ApprovableType = "JOURNAL_PARTNER_LINK"
	ApprovableGoodLink        ApprovableType = "JOURNAL_GOOD_LINK"
	ApprovablePartnerGoodLink ApprovableType = "JOURNAL_PARTNER_GOOD_LINK"
)

// IsValid reports whether t names a known approvable entity type.
func (t ApprovableType) IsValid() bool {
	switch t {
	case ApprovablePartner, ApprovableGood, ApprovableDocument,
		ApprovablePartnerLink, ApprovableGoodLink, ApprovablePartnerGoodLink:
		return true
	default:
		return false
	}
}

// Approval carries the tiered approval state embedded in every approvable
// entity. CreationLevel is the depth of the journal the entity was created
// under (0 = root). CurrentPendingLevel starts at CreationLevel and
// decreases toward zero as each higher tier approves; it is only meaningful
// while the status is PENDING.
type Approval struct {
	ApprovalStatus      ApprovalStatus `json:"approvalStatus"`
	CreationLevel       int            `json:"creationLevel"`
	CurrentPendingLevel int            `json:"currentPendingLevel"`
}

// NewPendingApproval returns the initial approval state for an entity
// created under a journal at the given depth.
func NewPendingApproval(creationLevel int) Approval {
	return Approval{
		ApprovalStatus:      ApprovalPending,
		CreationLevel:       creationLevel,
		CurrentPendingLevel: creationLevel,
	}
}

// ApprovalTier is a user's approval authority. An unrestricted user matches
// every level; a restricted user matches exactly the depth of the journal
// their account is confined to. Unrestricted is modeled explicitly rather
// than as a sentinel depth value.
type ApprovalTier struct {
	Unrestricted bool `json:"unrestricted"`
	Level        int  `json:"level"`
}

// UnrestrictedTier is the tier of a user without a journal restriction.
var UnrestrictedTier = ApprovalTier{Unrestricted: true}

// TierAt returns the tier of a user restricted to a journal at the given depth.
func TierAt(level int) ApprovalTier {
	return ApprovalTier{Level: level}
}

// Matches reports whether the tier may act at the given pending level.
func (t ApprovalTier) Matches(level int) bool {
	return t.Unrestricted || t.Level == level
}

// ApprovableItem is a row in the approval queue: the approval state of one
// entity together with enough identifying data to act on it.
type ApprovableItem struct {
	EntityType ApprovableType `json:"entityType"`
	EntityID   string         `json:"entityID"`
	CompanyID  string         `json:"companyID"`
	JournalID  string         `json:"journalID"` // creation journal
	Label      string         `json:"label"`     // display name of the underlying record
	Approval
	CreatedAt time.Time `json:"createdAt"`
	CreatedBy string    `json:"createdBy"`
}
