package models

// CanAccessRequest is the resource-level ownership predicate: a request row
// may be read by its owning user, its assigned technician, or an admin.
// technician is nil when the caller has no technician profile.
func CanAccessRequest(user *User, technician *Technician, request *ServiceRequest) bool {
	if user == nil || request == nil {
		return false
	}
	if user.IsAdmin() {
		return true
	}
	if request.UserID == user.ID {
		return true
	}
	if technician != nil && request.IsAssignedTo(technician.ID) {
		return true
	}
	return false
}
