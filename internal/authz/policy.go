package authz

import "context"

type Role string

const (
	RoleAdmin        Role = "admin"
	RoleTeacher      Role = "teacher"
	RoleTeacherAdmin Role = "teacher_admin"
	RoleParent       Role = "parent"
	RoleUser         Role = "user"
	RoleGuest        Role = "guest"
)

// ParseRole maps a stored role string to a known Role.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin, RoleTeacher, RoleTeacherAdmin, RoleParent, RoleUser, RoleGuest:
		return Role(s), true
	}
	return "", false
}

type Level string

const (
	LevelContent    Level = "content"
	LevelGovernance Level = "governance"
)

func ParseLevel(s string) (Level, bool) {
	switch Level(s) {
	case LevelContent, LevelGovernance:
		return Level(s), true
	}
	return "", false
}

type Action string

const (
	ActionCreate      Action = "create"
	ActionVote        Action = "vote"
	ActionViewResults Action = "view_results"
)

// RoleResolver looks up the role of an authenticated caller. Implemented
// outside this package by the identity directory.
type RoleResolver interface {
	Resolve(ctx context.Context, callerID int64) (Role, error)
}

// Policy is the pure permission table. It has no state beyond its
// configuration and performs no I/O.
type Policy struct {
	// teacher_admin is a teacher explicitly acting in an administrative
	// capacity; whether that role may vote on governance decisions is a
	// deployment choice.
	teacherAdminGovernanceVote bool
}

func NewPolicy(teacherAdminGovernanceVote bool) *Policy {
	return &Policy{teacherAdminGovernanceVote: teacherAdminGovernanceVote}
}

// Allowed reports whether role may perform action on a decision of the given
// level. Unknown roles, levels and actions are denied.
func (p *Policy) Allowed(role Role, level Level, action Action) bool {
	if _, ok := ParseRole(string(role)); !ok {
		return false
	}

	switch action {
	case ActionViewResults:
		// Not role-gated; visibility rules are enforced by the decision
		// service.
		return true
	case ActionCreate:
		switch level {
		case LevelGovernance:
			return role == RoleAdmin
		case LevelContent:
			return role == RoleAdmin || role == RoleTeacher || role == RoleTeacherAdmin
		}
	case ActionVote:
		switch level {
		case LevelGovernance:
			if role == RoleAdmin {
				return true
			}
			return role == RoleTeacherAdmin && p.teacherAdminGovernanceVote
		case LevelContent:
			switch role {
			case RoleAdmin, RoleTeacher, RoleTeacherAdmin, RoleParent, RoleUser:
				return true
			}
		}
	}
	return false
}
