package domain

import "time"

type EventType string

const (
	EventTypeRally     EventType = "rally"
	EventTypeItinerary EventType = "itinerary"
)

func (t EventType) Valid() bool {
	return t == EventTypeRally || t == EventTypeItinerary
}

// Event is a scheduled volunteer activity. Campaign, Location and the skill
// rows are optional and only present when the loader fetched them.
type Event struct {
	ID          int
	CampaignID  int
	Name        string
	Description string
	EventType   EventType
	ImageURL    string

	StartTime time.Time
	EndTime   time.Time

	Location *Location
	Campaign *Campaign

	Tasks          []VolunteerTask
	RequiredSkills []EventSkill
	Signups        []EventSignup

	NumberOfVolunteersRequired int
	IsLimitVolunteers          bool
	IsAllowWaitList            bool
}

func (e *Event) IsEnded(now time.Time) bool {
	return e.EndTime.UTC().Before(now.UTC())
}

type Campaign struct {
	ID                   int
	Name                 string
	TimeZoneID           string
	ManagingOrganization *Organization
}

type Organization struct {
	ID            int
	Name          string
	PrivacyPolicy string
}

func (o *Organization) HasPrivacyPolicy() bool {
	return o != nil && o.PrivacyPolicy != ""
}

type EventSkill struct {
	EventID int
	SkillID int
	Skill   *Skill
}

type EventSignup struct {
	ID                   int
	EventID              int
	UserID               string
	SignupTime           time.Time
	PreferredEmail       string
	PreferredPhoneNumber string
}
