package eventview

import (
	"context"
	"fmt"

	"github.com/baechuer/real-time-ressys/services/volunteer-service/internal/domain"
)

// WithUser returns a copy of v annotated for the caller. v itself is left
// untouched; slices that change are rebuilt rather than edited.
func (m *Mapper) WithUser(ctx context.Context, v EventView, e *domain.Event, who Identity, data DataAccess) (EventView, error) {
	out := v

	if who == nil || !who.IsSignedIn() {
		out.UserTasks = []TaskView{}
		return out, nil
	}
	if e == nil {
		return EventView{}, domain.ErrValidation("event is required")
	}

	userID := who.UserID()
	user, err := data.GetUser(ctx, userID)
	if err != nil {
		return EventView{}, fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		return EventView{}, domain.ErrNotFoundMeta("user profile not found", map[string]string{
			"user_id": userID,
		})
	}

	signups, err := data.GetEventSignups(ctx, v.ID, userID)
	if err != nil {
		return EventView{}, fmt.Errorf("get event signups: %w", err)
	}

	var assigned, unassigned []domain.VolunteerTask
	for _, t := range e.Tasks {
		if t.IsAssignedTo(userID) {
			assigned = append(assigned, t)
		} else {
			unassigned = append(unassigned, t)
		}
	}

	out.UserID = userID
	out.UserSkills = mapUserSkills(user.AssociatedSkills)
	out.IsUserVolunteeredForEvent = len(signups) > 0
	out.UserTasks = mapTasks(assigned, userID)
	out.Tasks = mapTasks(unassigned, userID)
	out.SignupForm = SignupForm{
		EventID:              v.ID,
		UserID:               userID,
		Name:                 user.Name,
		PreferredEmail:       user.Email,
		PreferredPhoneNumber: user.PhoneNumber,
	}
	return out, nil
}
