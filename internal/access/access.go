package access

// Role is the stored membership role of a user on a budget.
type Role string

const (
	RoleOwner  Role = "owner"
	RoleEditor Role = "editor"
	RoleViewer Role = "viewer"
	RoleNone   Role = "none"
)

// ParseRole maps a stored role string to a Role. Unknown or empty
// strings resolve to RoleNone so a missing membership row never grants
// capabilities by accident.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleOwner, RoleEditor, RoleViewer:
		return Role(s)
	default:
		return RoleNone
	}
}

// BudgetAccessState is the capability set a user holds on one budget.
// It is computed from the stored role on every budget switch and never
// persisted; treat values as immutable.
type BudgetAccessState struct {
	View                bool
	AddTransactions     bool
	ModifyFinancialData bool
	ManageMembers       bool
	DeleteBudget        bool
}

// CanEdit reports whether the holder may write financial data at all.
func (s BudgetAccessState) CanEdit() bool {
	return s.AddTransactions || s.ModifyFinancialData
}

// IsOwner reports whether the holder has full administrative control.
func (s BudgetAccessState) IsOwner() bool {
	return s.ManageMembers && s.DeleteBudget
}

// ForRole returns the fixed capability set for a role.
func ForRole(role Role) BudgetAccessState {
	switch role {
	case RoleOwner:
		return BudgetAccessState{
			View:                true,
			AddTransactions:     true,
			ModifyFinancialData: true,
			ManageMembers:       true,
			DeleteBudget:        true,
		}
	case RoleEditor:
		return BudgetAccessState{
			View:                true,
			AddTransactions:     true,
			ModifyFinancialData: true,
		}
	case RoleViewer:
		return BudgetAccessState{View: true}
	default:
		return BudgetAccessState{}
	}
}
