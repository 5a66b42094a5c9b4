package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/baechuer/real-time-ressys/services/volunteer-service/internal/domain"
)

type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type scanner interface {
	Scan(dest ...any) error
}

type Repo struct {
	db *sql.DB
}

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) GetByID(ctx context.Context, id int) (*domain.Event, error) {
	var out *domain.Event
	err := r.readTx(ctx, func(q queryer) error {
		e, err := scanEvent(q.QueryRowContext(ctx, getEventSQL, id))
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound("event not found")
		}
		if err != nil {
			return err
		}
		if err := loadChildren(ctx, q, e); err != nil {
			return err
		}
		out = e
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repo) ListByCampaign(ctx context.Context, campaignID int) ([]*domain.Event, error) {
	var out []*domain.Event
	err := r.readTx(ctx, func(q queryer) error {
		rows, err := q.QueryContext(ctx, listCampaignEventsSQL, campaignID)
		if err != nil {
			return err
		}
		var events []*domain.Event
		for rows.Next() {
			e, err := scanEvent(rows)
			if err != nil {
				rows.Close()
				return err
			}
			events = append(events, e)
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return err
		}
		rows.Close()

		// children need the connection the rows were holding
		for _, e := range events {
			if err := loadChildren(ctx, q, e); err != nil {
				return err
			}
		}
		out = events
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func scanEvent(row scanner) (*domain.Event, error) {
	var (
		e                        domain.Event
		eventType                string
		campaignFK               sql.NullInt64
		campaignID, orgID, locID sql.NullInt64
		c                        domain.Campaign
		o                        domain.Organization
		l                        domain.Location
	)
	err := row.Scan(
		&e.ID, &campaignFK, &e.Name, &e.Description, &eventType, &e.ImageURL,
		&e.StartTime, &e.EndTime,
		&e.NumberOfVolunteersRequired, &e.IsLimitVolunteers, &e.IsAllowWaitList,
		&campaignID, &c.Name, &c.TimeZoneID,
		&orgID, &o.Name, &o.PrivacyPolicy,
		&locID, &l.Address1, &l.Address2, &l.City, &l.State, &l.PostalCode, &l.Country,
	)
	if err != nil {
		return nil, err
	}

	e.EventType = domain.EventType(eventType)
	if !e.EventType.Valid() {
		return nil, domain.ErrInvalidState("invalid event_type in db")
	}
	if campaignFK.Valid {
		e.CampaignID = int(campaignFK.Int64)
	}
	if campaignID.Valid {
		c.ID = int(campaignID.Int64)
		if orgID.Valid {
			o.ID = int(orgID.Int64)
			c.ManagingOrganization = &o
		}
		e.Campaign = &c
	}
	if locID.Valid {
		l.ID = int(locID.Int64)
		e.Location = &l
	}
	return &e, nil
}

// GetRoster loads only the signups and task assignments of an event, for
// refreshing a cached graph.
func (r *Repo) GetRoster(ctx context.Context, eventID int) (domain.Roster, error) {
	var out domain.Roster
	err := r.readTx(ctx, func(q queryer) error {
		roster, err := loadRoster(ctx, q, eventID)
		if err != nil {
			return err
		}
		out = roster
		return nil
	})
	if err != nil {
		return domain.Roster{}, err
	}
	return out, nil
}

func loadChildren(ctx context.Context, q queryer, e *domain.Event) error {
	tasks, err := listTasks(ctx, q, e.ID)
	if err != nil {
		return fmt.Errorf("load tasks: %w", err)
	}
	e.Tasks = tasks

	skills, err := listEventSkills(ctx, q, e.ID)
	if err != nil {
		return fmt.Errorf("load skills: %w", err)
	}
	e.RequiredSkills = skills

	roster, err := loadRoster(ctx, q, e.ID)
	if err != nil {
		return err
	}
	e.ApplyRoster(roster)
	return nil
}

func loadRoster(ctx context.Context, q queryer, eventID int) (domain.Roster, error) {
	taskSignups, err := listTaskSignups(ctx, q, eventID)
	if err != nil {
		return domain.Roster{}, fmt.Errorf("load task signups: %w", err)
	}
	signups, err := listEventSignups(ctx, q, eventID)
	if err != nil {
		return domain.Roster{}, fmt.Errorf("load signups: %w", err)
	}
	return domain.Roster{Signups: signups, TaskSignups: taskSignups}, nil
}

func listTasks(ctx context.Context, q queryer, eventID int) ([]domain.VolunteerTask, error) {
	rows, err := q.QueryContext(ctx, listTasksSQL, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []domain.VolunteerTask{}
	for rows.Next() {
		var t domain.VolunteerTask
		if err := rows.Scan(
			&t.ID, &t.EventID, &t.Name, &t.Description,
			&t.StartTime, &t.EndTime, &t.NumberOfVolunteersRequired,
		); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// listTaskSignups skips canceled rows: a canceled signup neither assigns the
// task to the user nor counts toward its assigned volunteers.
func listTaskSignups(ctx context.Context, q queryer, eventID int) ([]domain.TaskSignup, error) {
	rows, err := q.QueryContext(ctx, listTaskSignupsSQL, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.TaskSignup{}
	for rows.Next() {
		var s domain.TaskSignup
		var status string
		if err := rows.Scan(&s.ID, &s.TaskID, &s.UserID, &status); err != nil {
			return nil, err
		}
		s.Status = domain.TaskStatus(status)
		out = append(out, s)
	}
	return out, rows.Err()
}

func listEventSkills(ctx context.Context, q queryer, eventID int) ([]domain.EventSkill, error) {
	rows, err := q.QueryContext(ctx, listEventSkillsSQL, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.EventSkill{}
	for rows.Next() {
		var s domain.Skill
		if err := rows.Scan(&s.ID, &s.Name, &s.Description); err != nil {
			return nil, err
		}
		out = append(out, domain.EventSkill{EventID: eventID, SkillID: s.ID, Skill: &s})
	}
	return out, rows.Err()
}

func listEventSignups(ctx context.Context, q queryer, eventID int) ([]domain.EventSignup, error) {
	rows, err := q.QueryContext(ctx, listEventSignupsSQL, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.EventSignup{}
	for rows.Next() {
		var s domain.EventSignup
		if err := rows.Scan(
			&s.ID, &s.EventID, &s.UserID, &s.SignupTime,
			&s.PreferredEmail, &s.PreferredPhoneNumber,
		); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
