package domain

// UserCompanyRole defines the role of a user within a company.
type UserCompanyRole string

const (
	RoleAdmin    UserCompanyRole = "ADMIN"
	RoleMember   UserCompanyRole = "MEMBER"
	RoleReadOnly UserCompanyRole = "READONLY"
)

// roleRank orders roles for authorization checks.
var roleRank = map[UserCompanyRole]int{
	RoleReadOnly: 1,
	RoleMember:   2,
	RoleAdmin:    3,
}

// Satisfies reports whether the role grants at least the required role.
func (r UserCompanyRole) Satisfies(required UserCompanyRole) bool {
	return roleRank[r] >= roleRank[required]
}

// Company is the tenant boundary; journals, partners, goods, documents and
// loops all belong to exactly one company.
type Company struct {
	CompanyID   string `json:"companyID"` // Primary Key (UUID)
	Name        string `json:"name"`
	Description string `json:"description"`
	AuditFields
}

// UserCompany represents a user's membership and role within a company.
type UserCompany struct {
	UserID    string          `json:"userID"`
	CompanyID string          `json:"companyID"`
	Role      UserCompanyRole `json:"role"`
	AuditFields
}
