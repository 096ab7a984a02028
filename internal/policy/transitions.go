package policy

import "hrdash/internal/models"

var leaveTransitions = map[string][]string{
	"approve": {models.StatusPending},
	"reject":  {models.StatusPending},
}

var leaveTargets = map[string]string{
	"approve": models.StatusApproved,
	"reject":  models.StatusRejected,
}

// LeaveTarget returns the status a review action moves a leave request to.
func LeaveTarget(action string) (string, bool) {
	status, ok := leaveTargets[action]
	return status, ok
}

func ValidLeaveTransition(action, fromStatus string) bool {
	allowed, ok := leaveTransitions[action]
	if !ok {
		return false
	}
	for _, status := range allowed {
		if status == fromStatus {
			return true
		}
	}
	return false
}
