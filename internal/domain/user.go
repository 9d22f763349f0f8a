package domain

type Role string

const (
	RoleStudent  Role = "student"
	RoleLecturer Role = "lecturer"
	RoleAdmin    Role = "admin"
)

type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusInactive Status = "INACTIVE"
	StatusDeleted  Status = "DELETED"
)

// User is a notification candidate. PushToken is the opaque delivery
// address for the configured push driver; empty means the user cannot be
// notified and is silently skipped.
type User struct {
	ID           int64
	Name         string
	Role         Role
	DepartmentID int64
	Level        int // students only; 0 otherwise
	Status       Status
	PushToken    string
}

// Notifiable reports whether the user may receive reminders at all.
func (u User) Notifiable() bool {
	return u.Status == StatusActive && u.PushToken != ""
}

// CarryOver links a student to a course they must track despite not
// belonging to its owning department/level. It only widens the reminder
// audience; it carries no other behavior.
type CarryOver struct {
	UserID   int64
	CourseID int64
}
