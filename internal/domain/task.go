package domain

import "time"

type TaskStatus string

const (
	TaskStatusAssigned  TaskStatus = "assigned"
	TaskStatusAccepted  TaskStatus = "accepted"
	TaskStatusCompleted TaskStatus = "completed"
	TaskStatusCanceled  TaskStatus = "canceled"
)

type VolunteerTask struct {
	ID          int
	EventID     int
	Name        string
	Description string

	StartTime time.Time
	EndTime   time.Time

	NumberOfVolunteersRequired int
	AssignedVolunteers         []TaskSignup
}

type TaskSignup struct {
	ID     int
	TaskID int
	UserID string
	Status TaskStatus
}

// IsAssignedTo reports whether any assigned volunteer row belongs to userID.
func (t *VolunteerTask) IsAssignedTo(userID string) bool {
	if userID == "" {
		return false
	}
	for _, v := range t.AssignedVolunteers {
		if v.UserID == userID {
			return true
		}
	}
	return false
}
