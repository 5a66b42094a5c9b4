package domain

// Roster is the part of an event graph that changes with every signup:
// the event signups and the task assignments.
type Roster struct {
	Signups     []EventSignup
	TaskSignups []TaskSignup
}

// WithoutRoster returns a copy of e with signups and task assignments
// cleared. e is not modified.
func (e *Event) WithoutRoster() *Event {
	out := *e
	out.Signups = nil
	if e.Tasks != nil {
		out.Tasks = make([]VolunteerTask, len(e.Tasks))
		for i, t := range e.Tasks {
			t.AssignedVolunteers = nil
			out.Tasks[i] = t
		}
	}
	return &out
}

// ApplyRoster replaces signups and task assignments with r. Task signups
// for tasks not in the graph are dropped.
func (e *Event) ApplyRoster(r Roster) {
	e.Signups = r.Signups
	if e.Signups == nil {
		e.Signups = []EventSignup{}
	}

	index := make(map[int]int, len(e.Tasks))
	for i := range e.Tasks {
		e.Tasks[i].AssignedVolunteers = nil
		index[e.Tasks[i].ID] = i
	}
	for _, s := range r.TaskSignups {
		if i, ok := index[s.TaskID]; ok {
			e.Tasks[i].AssignedVolunteers = append(e.Tasks[i].AssignedVolunteers, s)
		}
	}
}
