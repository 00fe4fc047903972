package employee

import "time"

type Employee struct {
	ID        string
	Name      string
	Position  *string
	Status    Status
	AvatarURL *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Status string

const (
	StatusActive   Status = "Active"
	StatusInactive Status = "Inactive"
)

// IsActive reports whether the employee participates in new daily logs
// and bulk payslip generation.
func (e Employee) IsActive() bool {
	return e.Status == StatusActive
}
