package models

import (
	"testing"
)

func TestCanTransitionTo(t *testing.T) {
	tests := []struct {
		name string
		from string
		to   string
		want bool
	}{
		{"pending to confirmed", RequestStatusPending, RequestStatusConfirmed, true},
		{"pending straight to assigned", RequestStatusPending, RequestStatusTechnicianAssigned, true},
		{"pending to cancelled", RequestStatusPending, RequestStatusCancelled, true},
		{"pending cannot complete", RequestStatusPending, RequestStatusCompleted, false},
		{"pending cannot start work", RequestStatusPending, RequestStatusInProgress, false},
		{"confirmed to assigned", RequestStatusConfirmed, RequestStatusTechnicianAssigned, true},
		{"confirmed cannot go back", RequestStatusConfirmed, RequestStatusPending, false},
		{"assigned to in_progress", RequestStatusTechnicianAssigned, RequestStatusInProgress, true},
		{"assigned to cancelled", RequestStatusTechnicianAssigned, RequestStatusCancelled, true},
		{"assigned cannot complete directly", RequestStatusTechnicianAssigned, RequestStatusCompleted, false},
		{"in_progress to completed", RequestStatusInProgress, RequestStatusCompleted, true},
		{"in_progress to cancelled", RequestStatusInProgress, RequestStatusCancelled, true},
		{"completed is terminal", RequestStatusCompleted, RequestStatusCancelled, false},
		{"completed cannot restart", RequestStatusCompleted, RequestStatusInProgress, false},
		{"cancelled is terminal", RequestStatusCancelled, RequestStatusPending, false},
		{"cancelled cannot complete", RequestStatusCancelled, RequestStatusCompleted, false},
		{"unknown status", "garbage", RequestStatusConfirmed, false},
		{"self transition rejected", RequestStatusPending, RequestStatusPending, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &ServiceRequest{Status: tt.from}
			if got := r.CanTransitionTo(tt.to); got != tt.want {
				t.Errorf("CanTransitionTo(%q) from %q = %v, want %v", tt.to, tt.from, got, tt.want)
			}
		})
	}
}

func TestIsTerminal(t *testing.T) {
	for _, status := range []string{RequestStatusPending, RequestStatusConfirmed, RequestStatusTechnicianAssigned, RequestStatusInProgress} {
		if (&ServiceRequest{Status: status}).IsTerminal() {
			t.Errorf("IsTerminal() = true for %q", status)
		}
	}
	for _, status := range []string{RequestStatusCompleted, RequestStatusCancelled} {
		if !(&ServiceRequest{Status: status}).IsTerminal() {
			t.Errorf("IsTerminal() = false for %q", status)
		}
	}
}

func TestIsAssignedTo(t *testing.T) {
	techID := "tech-1"
	r := &ServiceRequest{TechnicianID: &techID}

	if !r.IsAssignedTo("tech-1") {
		t.Error("expected request to be assigned to tech-1")
	}
	if r.IsAssignedTo("tech-2") {
		t.Error("expected request not to be assigned to tech-2")
	}
	if (&ServiceRequest{}).IsAssignedTo("tech-1") {
		t.Error("unassigned request should not match any technician")
	}
}

func TestCanAccessRequest(t *testing.T) {
	techID := "tech-1"
	request := &ServiceRequest{UserID: "owner", TechnicianID: &techID}

	owner := &User{ID: "owner", Role: RoleUser}
	stranger := &User{ID: "stranger", Role: RoleUser}
	admin := &User{ID: "admin", Role: RoleAdmin}
	assignedTech := &Technician{ID: "tech-1", UserID: "tech-user-1"}
	otherTech := &Technician{ID: "tech-2", UserID: "tech-user-2"}
	techUser := &User{ID: "tech-user-1", Role: RoleUser, UserType: UserTypeTechnician}

	tests := []struct {
		name       string
		user       *User
		technician *Technician
		want       bool
	}{
		{"owner", owner, nil, true},
		{"admin", admin, nil, true},
		{"stranger", stranger, nil, false},
		{"assigned technician", techUser, assignedTech, true},
		{"other technician", techUser, otherTech, false},
		{"nil user", nil, assignedTech, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanAccessRequest(tt.user, tt.technician, request); got != tt.want {
				t.Errorf("CanAccessRequest() = %v, want %v", got, tt.want)
			}
		})
	}

	if CanAccessRequest(owner, nil, nil) {
		t.Error("nil request should never be accessible")
	}
}
