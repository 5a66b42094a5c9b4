package eventview

import (
	"time"

	"github.com/baechuer/real-time-ressys/services/volunteer-service/internal/domain"
)

// EventView is the presentation model of one event.
// NOTE: derived fields are snapshots taken when the view is built.
type EventView struct {
	ID int `json:"id"`

	OrganizationID   int    `json:"organization_id"`
	OrganizationName string `json:"organization_name"`
	HasPrivacyPolicy bool   `json:"has_privacy_policy"`

	CampaignID   int    `json:"campaign_id"`
	CampaignName string `json:"campaign_name"`
	TimeZoneID   string `json:"time_zone_id"`

	Title       string           `json:"title"`
	Description string           `json:"description"`
	EventType   domain.EventType `json:"event_type"`
	ImageURL    string           `json:"image_url,omitempty"`

	StartTime time.Time     `json:"start_time"`
	EndTime   time.Time     `json:"end_time"`
	Location  *LocationView `json:"location,omitempty"`

	Tasks     []TaskView `json:"tasks"`
	UserTasks []TaskView `json:"user_tasks"`

	UsersSignedUp              []SignupView `json:"users_signed_up"`
	NumberOfVolunteersRequired int          `json:"number_of_volunteers_required"`
	IsLimitVolunteers          bool         `json:"is_limit_volunteers"`
	IsAllowWaitList            bool         `json:"is_allow_wait_list"`

	RequiredSkills []SkillView `json:"required_skills"`
	UserSkills     []SkillView `json:"user_skills"`

	UserID                    string     `json:"user_id,omitempty"`
	IsUserVolunteeredForEvent bool       `json:"is_user_volunteered_for_event"`
	SignupForm                SignupForm `json:"signup_form"`

	// Derived
	IsClosed              bool `json:"is_closed"`
	NumberOfUsersSignedUp int  `json:"number_of_users_signed_up"`
	IsFull                bool `json:"is_full"`
	IsAllowSignups        bool `json:"is_allow_signups"`
}

type TaskView struct {
	ID          int       `json:"id"`
	EventID     int       `json:"event_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`

	NumberOfVolunteersRequired int  `json:"number_of_volunteers_required"`
	NumberOfAssignedVolunteers int  `json:"number_of_assigned_volunteers"`
	IsUserSignedUp             bool `json:"is_user_signed_up"`
}

type LocationView struct {
	Address1   string `json:"address1"`
	Address2   string `json:"address2,omitempty"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
}

type SkillView struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type SignupView struct {
	UserID     string    `json:"user_id"`
	SignupTime time.Time `json:"signup_time"`
}

// SignupForm pre-fills the volunteer signup form for the caller.
type SignupForm struct {
	EventID              int    `json:"event_id,omitempty"`
	UserID               string `json:"user_id,omitempty"`
	Name                 string `json:"name,omitempty"`
	PreferredEmail       string `json:"preferred_email,omitempty"`
	PreferredPhoneNumber string `json:"preferred_phone_number,omitempty"`
}
