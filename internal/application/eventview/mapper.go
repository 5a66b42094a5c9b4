package eventview

import (
	"sort"

	"github.com/baechuer/real-time-ressys/services/volunteer-service/internal/domain"
)

type Mapper struct {
	clock Clock
}

func New(clock Clock) *Mapper {
	return &Mapper{clock: clock}
}

// Map builds the anonymous view of a loaded event graph.
func (m *Mapper) Map(e *domain.Event) (EventView, error) {
	if e == nil {
		return EventView{}, domain.ErrValidation("event is required")
	}

	v := EventView{
		ID:          e.ID,
		Title:       e.Name,
		Description: e.Description,
		EventType:   e.EventType,
		ImageURL:    e.ImageURL,
		StartTime:   e.StartTime,
		EndTime:     e.EndTime,
		Location:    ToLocationView(e.Location),

		NumberOfVolunteersRequired: e.NumberOfVolunteersRequired,
		IsLimitVolunteers:          e.IsLimitVolunteers,
		IsAllowWaitList:            e.IsAllowWaitList,

		Tasks:          mapTasks(e.Tasks, ""),
		UserTasks:      []TaskView{},
		UsersSignedUp:  mapSignups(e.Signups),
		RequiredSkills: mapEventSkills(e.RequiredSkills),
	}

	if c := e.Campaign; c != nil {
		v.CampaignID = c.ID
		v.CampaignName = c.Name
		v.TimeZoneID = c.TimeZoneID
		if org := c.ManagingOrganization; org != nil {
			v.OrganizationID = org.ID
			v.OrganizationName = org.Name
			v.HasPrivacyPolicy = org.HasPrivacyPolicy()
		}
	}

	v.IsClosed = e.IsEnded(m.clock.Now())
	v.NumberOfUsersSignedUp = len(v.UsersSignedUp)
	v.IsFull = v.NumberOfUsersSignedUp >= v.NumberOfVolunteersRequired
	v.IsAllowSignups = !v.IsLimitVolunteers || !v.IsFull || v.IsAllowWaitList

	return v, nil
}

// MapAll maps every event, keeping input order.
func (m *Mapper) MapAll(events []*domain.Event) ([]EventView, error) {
	out := make([]EventView, 0, len(events))
	for _, e := range events {
		v, err := m.Map(e)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func mapTask(t domain.VolunteerTask, userID string) TaskView {
	return TaskView{
		ID:                         t.ID,
		EventID:                    t.EventID,
		Name:                       t.Name,
		Description:                t.Description,
		StartTime:                  t.StartTime,
		EndTime:                    t.EndTime,
		NumberOfVolunteersRequired: t.NumberOfVolunteersRequired,
		NumberOfAssignedVolunteers: len(t.AssignedVolunteers),
		IsUserSignedUp:             t.IsAssignedTo(userID),
	}
}

// mapTasks never returns nil; output is ordered by start time.
func mapTasks(tasks []domain.VolunteerTask, userID string) []TaskView {
	out := make([]TaskView, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, mapTask(t, userID))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartTime.Before(out[j].StartTime)
	})
	return out
}

func mapSignups(signups []domain.EventSignup) []SignupView {
	out := make([]SignupView, 0, len(signups))
	for _, s := range signups {
		out = append(out, SignupView{UserID: s.UserID, SignupTime: s.SignupTime})
	}
	return out
}

func toSkillView(s *domain.Skill) SkillView {
	return SkillView{ID: s.ID, Name: s.Name, Description: s.Description}
}

// nil in, nil out: "no skills loaded" stays distinguishable from "no skills".
func mapEventSkills(rows []domain.EventSkill) []SkillView {
	if rows == nil {
		return nil
	}
	out := make([]SkillView, 0, len(rows))
	for _, r := range rows {
		if r.Skill == nil {
			continue
		}
		out = append(out, toSkillView(r.Skill))
	}
	return out
}

func mapUserSkills(rows []domain.UserSkill) []SkillView {
	if rows == nil {
		return nil
	}
	out := make([]SkillView, 0, len(rows))
	for _, r := range rows {
		if r.Skill == nil {
			continue
		}
		out = append(out, toSkillView(r.Skill))
	}
	return out
}
