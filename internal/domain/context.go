package domain

import "errors"

// ErrMissingOrgScope indicates a repository call without a tenant scope.
var ErrMissingOrgScope = errors.New("organization scope is required")

// OrgContext carries the caller's tenant scope through every service and
// repository call. It is passed explicitly instead of being read from
// ambient session state so the data-access layer stays testable.
type OrgContext struct {
	OrgID  string
	UserID string
	Role   string
}

// Validate checks that the scope carries an organization id
func (o OrgContext) Validate() error {
	if o.OrgID == "" {
		return ErrMissingOrgScope
	}
	return nil
}

// Caller roles
const (
	RoleAdmin            = "admin"
	RoleExtensionOfficer = "extension_officer"
	RoleFieldAgent       = "field_agent"
)
