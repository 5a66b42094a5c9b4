package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func mustTime(t *testing.T, s string) time.Time {
	t.Helper()
	tt, err := time.Parse(time.RFC3339, s)
	if err != nil {
		t.Fatalf("bad time %q: %v", s, err)
	}
	return tt
}

func TestEvent_IsEnded(t *testing.T) {
	now := mustTime(t, "2025-12-25T10:00:00Z")

	t.Run("past_end_is_ended", func(t *testing.T) {
		e := &Event{EndTime: now.Add(-time.Minute)}
		assert.True(t, e.IsEnded(now))
	})

	t.Run("future_end_is_open", func(t *testing.T) {
		e := &Event{EndTime: now.Add(time.Minute)}
		assert.False(t, e.IsEnded(now))
	})

	t.Run("end_equal_to_now_is_open", func(t *testing.T) {
		e := &Event{EndTime: now}
		assert.False(t, e.IsEnded(now))
	})

	t.Run("compares_across_zones", func(t *testing.T) {
		// 2025-12-25T12:30:00+03:00 == 09:30Z
		end := mustTime(t, "2025-12-25T12:30:00+03:00")
		e := &Event{EndTime: end}
		assert.True(t, e.IsEnded(now))
	})
}

func TestEventType_Valid(t *testing.T) {
	assert.True(t, EventTypeRally.Valid())
	assert.True(t, EventTypeItinerary.Valid())
	assert.False(t, EventType("party").Valid())
}

func TestOrganization_HasPrivacyPolicy(t *testing.T) {
	var nilOrg *Organization
	assert.False(t, nilOrg.HasPrivacyPolicy())
	assert.False(t, (&Organization{}).HasPrivacyPolicy())
	assert.True(t, (&Organization{PrivacyPolicy: "we keep your data safe"}).HasPrivacyPolicy())
}

func TestVolunteerTask_IsAssignedTo(t *testing.T) {
	task := &VolunteerTask{
		AssignedVolunteers: []TaskSignup{
			{UserID: "user-1", Status: TaskStatusAssigned},
			{UserID: "user-2", Status: TaskStatusAccepted},
		},
	}

	assert.True(t, task.IsAssignedTo("user-2"))
	assert.False(t, task.IsAssignedTo("user-3"))
	assert.False(t, task.IsAssignedTo(""))
	assert.False(t, (&VolunteerTask{}).IsAssignedTo("user-1"))
}

func TestAppError_Error(t *testing.T) {
	err := ErrNotFoundMeta("user profile not found", map[string]string{"user_id": "u1"})
	assert.Contains(t, err.Error(), "not_found: user profile not found")
	assert.Contains(t, err.Error(), "user_id")

	assert.Equal(t, "validation_error: bad id", ErrValidation("bad id").Error())
}
