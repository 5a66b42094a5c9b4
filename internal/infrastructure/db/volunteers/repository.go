package volunteers

import (
	"context"
	"errors"
	"fmt"

	"github.com/baechuer/real-time-ressys/services/volunteer-service/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository reads user profiles and event signups. It implements
// eventview.DataAccess.
type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// GetUser returns (nil, nil) when the user has no profile row.
func (r *Repository) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	var u domain.User
	err := r.pool.QueryRow(ctx, `
		SELECT id, COALESCE(name, ''), COALESCE(email, ''), COALESCE(phone_number, '')
		FROM users
		WHERE id = $1
	`, userID).Scan(&u.ID, &u.Name, &u.Email, &u.PhoneNumber)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select user: %w", err)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT s.id, s.name, COALESCE(s.description, '')
		FROM user_skills us
		JOIN skills s ON s.id = us.skill_id
		WHERE us.user_id = $1
		ORDER BY s.name ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("select user skills: %w", err)
	}
	defer rows.Close()

	u.AssociatedSkills = []domain.UserSkill{}
	for rows.Next() {
		var s domain.Skill
		if err := rows.Scan(&s.ID, &s.Name, &s.Description); err != nil {
			return nil, err
		}
		u.AssociatedSkills = append(u.AssociatedSkills, domain.UserSkill{UserID: u.ID, SkillID: s.ID, Skill: &s})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *Repository) GetEventSignups(ctx context.Context, eventID int, userID string) ([]domain.EventSignup, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, event_id, user_id, signup_time,
		       COALESCE(preferred_email, ''), COALESCE(preferred_phone_number, '')
		FROM event_signups
		WHERE event_id = $1 AND user_id = $2
		ORDER BY signup_time ASC, id ASC
	`, eventID, userID)
	if err != nil {
		return nil, fmt.Errorf("select event signups: %w", err)
	}
	defer rows.Close()

	var out []domain.EventSignup
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
