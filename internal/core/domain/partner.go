package domain

// Partner is a counterparty (supplier, customer, contractor) of the company.
// Partners are approvable: they start PENDING at the tier of the journal
// they were created under.
type Partner struct {
	PartnerID         string `json:"partnerID"` // Primary Key (UUID)
	CompanyID         string `json:"companyID"`
	Name              string `json:"name"`
	Tin               string `json:"tin"` // taxpayer identification number
	Notes             string `json:"notes"`
	CreationJournalID string `json:"creationJournalID"`
	Approval
	AuditFields
}
