package domain

type Skill struct {
	ID          int
	Name        string
	Description string
}

type UserSkill struct {
	UserID  string
	SkillID int
	Skill   *Skill
}

// User is the application profile behind an authenticated identity.
type User struct {
	ID               string
	Name             string
	Email            string
	PhoneNumber      string
	AssociatedSkills []UserSkill
}
