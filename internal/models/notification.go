package models

// StakeholderRole names a notification recipient group.
type StakeholderRole string

const (
	RoleReviewer    StakeholderRole = "reviewer"
	RoleHeadOfSales StakeholderRole = "head_of_sales"
)

// EscalationRoles lists every role alerted about unschedulable campaigns.
func EscalationRoles() []StakeholderRole {
	return []StakeholderRole{RoleReviewer, RoleHeadOfSales}
}

// Notification is a single message addressed to a stakeholder role.
type Notification struct {
	Role    StakeholderRole `json:"role"`
	Message string          `json:"message"`
}
