package services

import "github.com/yukikurage/dashboard-api/internal/models"

// AdminAccessAllowed is the admin escalation policy.
//
// Admins always pass. Everyone else passes only while totalMemberships is zero, i.e. no
// owner anywhere has added a team member yet. The count is global and read on every
// request, so the waiver disappears for good as soon as the first membership exists.
//
// TODO: decide whether the waiver should be a one-time bootstrap tied to the first admin
// instead of the global membership count.
func AdminAccessAllowed(user *models.User, totalMemberships int64) bool {
	if user == nil {
		return false
	}
	return user.IsAdmin() || totalMemberships == 0
}
