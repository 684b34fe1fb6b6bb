package domain

import "testing"

func identity(role Role) *User {
	return &User{ID: "u1", Name: "Test", Role: role}
}

func TestHasPermission_PerRole(t *testing.T) {
	cases := []struct {
		role    Role
		action  Action
		allowed bool
	}{
		{RoleProducer, ActionPlaceBids, true},
		{RoleProducer, ActionSellEnergy, true},
		{RoleProducer, ActionAccessAdmin, false},
		{RoleConsumer, ActionPlaceBids, true},
		{RoleConsumer, ActionBuyEnergy, true},
		{RoleConsumer, ActionManageCertificates, false},
		{RoleOperator, ActionAccessAdmin, true},
		{RoleOperator, ActionManageGrid, true},
		{RoleOperator, ActionPlaceBids, false},
	}

	for _, tc := range cases {
		if got := HasPermission(identity(tc.role), tc.action); got != tc.allowed {
			t.Errorf("HasPermission(%s, %s) = %v, want %v", tc.role, tc.action, got, tc.allowed)
		}
	}
}

func TestHasPermission_TableExhaustive(t *testing.T) {
	// every action in the table answers true; everything else false
	for role, actions := range rolePermissions {
		listed := make(map[Action]struct{}, len(actions))
		for _, a := range actions {
			listed[a] = struct{}{}
			if !HasPermission(identity(role), a) {
				t.Errorf("listed action %s denied for %s", a, role)
			}
		}
		for _, a := range []Action{ActionPlaceBids, ActionSellEnergy, ActionBuyEnergy, ActionViewAnalytics, ActionManageCertificates, ActionAccessAdmin, ActionManageGrid, ActionViewAllUsers} {
			if _, ok := listed[a]; !ok && HasPermission(identity(role), a) {
				t.Errorf("unlisted action %s allowed for %s", a, role)
			}
		}
	}
}

func TestHasPermission_AbsentIdentity(t *testing.T) {
	if HasPermission(nil, ActionPlaceBids) {
		t.Fatalf("nil identity must never hold a permission")
	}
}

func TestHasPermission_UnknownRole(t *testing.T) {
	if HasPermission(identity(Role("auditor")), ActionViewAnalytics) {
		t.Fatalf("unknown role must be denied, not trusted")
	}
}

func TestAvailableFeatures_OrderPreserved(t *testing.T) {
	cases := map[Role][]string{
		RoleProducer: {"Energy Trading", "Production Analytics", "Certificate Tracker", "Smart Contracts"},
		RoleConsumer: {"Energy Marketplace", "Consumption Analytics", "Bidding Panel"},
		RoleOperator: {"Grid Operations", "Admin Console", "Market Oversight", "System Health"},
	}

	for role, want := range cases {
		got := AvailableFeatures(identity(role))
		if len(got) != len(want) {
			t.Fatalf("%s: got %d features, want %d", role, len(got), len(want))
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("%s: feature[%d] = %q, want %q", role, i, got[i], want[i])
			}
		}
	}
}

func TestAvailableFeatures_AbsentAndUnknown(t *testing.T) {
	if feats := AvailableFeatures(nil); len(feats) != 0 {
		t.Fatalf("nil identity: expected no features, got %v", feats)
	}
	if feats := AvailableFeatures(identity(Role("auditor"))); len(feats) != 0 {
		t.Fatalf("unknown role: expected no features, got %v", feats)
	}
}

func TestAvailableFeatures_CopyIsolated(t *testing.T) {
	got := AvailableFeatures(identity(RoleConsumer))
	got[0] = "mutated"
	again := AvailableFeatures(identity(RoleConsumer))
	if again[0] == "mutated" {
		t.Fatalf("feature table leaked a mutable reference")
	}
}

func TestPermittedActions(t *testing.T) {
	actions := PermittedActions(identity(RoleOperator))
	if len(actions) == 0 {
		t.Fatalf("expected operator actions")
	}
	if actions[0] != ActionAccessAdmin {
		t.Fatalf("expected access_admin first, got %s", actions[0])
	}
	if PermittedActions(nil) != nil {
		t.Fatalf("nil identity: expected nil actions")
	}
}
