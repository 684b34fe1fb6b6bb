package domain

// Action is a permission token checked before a market operation is allowed.
type Action string

const (
	ActionPlaceBids          Action = "place_bids"
	ActionSellEnergy         Action = "sell_energy"
	ActionBuyEnergy          Action = "buy_energy"
	ActionViewAnalytics      Action = "view_analytics"
	ActionManageCertificates Action = "manage_certificates"
	ActionAccessAdmin        Action = "access_admin"
	ActionManageGrid         Action = "manage_grid"
	ActionViewAllUsers       Action = "view_all_users"
)

// rolePermissions is the static permission table. Read-only after init.
var rolePermissions = map[Role][]Action{
	RoleProducer: {ActionPlaceBids, ActionSellEnergy, ActionViewAnalytics, ActionManageCertificates},
	RoleConsumer: {ActionPlaceBids, ActionBuyEnergy, ActionViewAnalytics},
	RoleOperator: {ActionAccessAdmin, ActionManageGrid, ActionViewAllUsers, ActionViewAnalytics},
}

// roleFeatures lists the dashboard features per role, in display order.
var roleFeatures = map[Role][]string{
	RoleProducer: {"Energy Trading", "Production Analytics", "Certificate Tracker", "Smart Contracts"},
	RoleConsumer: {"Energy Marketplace", "Consumption Analytics", "Bidding Panel"},
	RoleOperator: {"Grid Operations", "Admin Console", "Market Oversight", "System Health"},
}

// HasPermission reports whether the identity may perform action. A nil
// identity, an unknown role, or an unlisted action all answer false; the
// evaluator never fails.
func HasPermission(u *User, action Action) bool {
	if u == nil {
		return false
	}
	for _, a := range rolePermissions[u.Role] {
		if a == action {
			return true
		}
	}
	return false
}

// AvailableFeatures returns the feature list for the identity's role, in
// display order. Empty for a nil identity or an unknown role.
func AvailableFeatures(u *User) []string {
	if u == nil {
		return nil
	}
	features := roleFeatures[u.Role]
	out := make([]string, len(features))
	copy(out, features)
	return out
}

// PermittedActions returns every action the identity's role allows.
func PermittedActions(u *User) []Action {
	if u == nil {
		return nil
	}
	actions := rolePermissions[u.Role]
	out := make([]Action, len(actions))
	copy(out, actions)
	return out
}
