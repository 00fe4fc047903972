package employee

import "context"

type EmployeeRepository interface {
	Create(ctx context.Context, emp Employee) (Employee, error)
	GetByID(ctx context.Context, id string) (Employee, error)
	GetAll(ctx context.Context) ([]Employee, error)
	GetActive(ctx context.Context) ([]Employee, error)
	Update(ctx context.Context, req UpdateEmployeeRequest) error
	SetAvatarURL(ctx context.Context, id string, avatarURL string) error
	Delete(ctx context.Context, id string) error
	ReplaceAll(ctx context.Context, employees []Employee) error
}
