package employee

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/crewledger/crewledger-backend-go/internal/domain/employee"
	"github.com/crewledger/crewledger-backend-go/internal/pkg/storage"
	"github.com/google/uuid"
)

type EmployeeServiceImpl struct {
	employeeRepo employee.EmployeeRepository
	fileStorage  storage.FileStorage
}

func NewEmployeeService(employeeRepo employee.EmployeeRepository, fileStorage storage.FileStorage) employee.EmployeeService {
	return &EmployeeServiceImpl{
		employeeRepo: employeeRepo,
		fileStorage:  fileStorage,
	}
}

func (s *EmployeeServiceImpl) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	status := employee.StatusActive
	if req.Status != "" {
		status = employee.Status(req.Status)
	}

	now := time.Now()
	emp := employee.Employee{
		ID:        uuid.New().String(),
		Name:      req.Name,
		Position:  req.Position,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.employeeRepo.Create(ctx, emp)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("create employee: %w", err)
	}

	slog.Info("Employee created", "employee_id", created.ID, "name", created.Name)
	return toResponse(created), nil
}

func (s *EmployeeServiceImpl) Get(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return toResponse(emp), nil
}

func (s *EmployeeServiceImpl) List(ctx context.Context, activeOnly bool) ([]employee.EmployeeResponse, error) {
	var (
		employees []employee.Employee
		err       error
	)
	if activeOnly {
		employees, err = s.employeeRepo.GetActive(ctx)
	} else {
		employees, err = s.employeeRepo.GetAll(ctx)
	}
	if err != nil {
		return nil, err
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, emp := range employees {
		responses = append(responses, toResponse(emp))
	}
	return responses, nil
}

func (s *EmployeeServiceImpl) Update(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.ID); err != nil {
		return employee.EmployeeResponse{}, err
	}

	if err := s.employeeRepo.Update(ctx, req); err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("update employee: %w", err)
	}

	updated, err := s.employeeRepo.GetByID(ctx, req.ID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return toResponse(updated), nil
}

// UploadAvatar stores the image and records its public URL on the
// employee. The stored name is derived from the employee ID, so a re-upload
// replaces the previous avatar file.
func (s *EmployeeServiceImpl) UploadAvatar(ctx context.Context, id string, filename string, file io.Reader) (employee.EmployeeResponse, error) {
	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	ext := filepath.Ext(filename)
	path := fmt.Sprintf("avatars/%s%s", emp.ID, ext)

	storedPath, err := s.fileStorage.Upload(ctx, file, path)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("upload avatar: %w", err)
	}

	avatarURL := s.fileStorage.GetURL(storedPath)
	if err := s.employeeRepo.SetAvatarURL(ctx, emp.ID, avatarURL); err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("set avatar url: %w", err)
	}

	emp.AvatarURL = &avatarURL
	slog.Info("Employee avatar updated", "employee_id", emp.ID)
	return toResponse(emp), nil
}

func (s *EmployeeServiceImpl) Delete(ctx context.Context, id string) error {
	if _, err := s.employeeRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.employeeRepo.Delete(ctx, id)
}

func toResponse(emp employee.Employee) employee.EmployeeResponse {
	return employee.EmployeeResponse{
		ID:        emp.ID,
		Name:      emp.Name,
		Position:  emp.Position,
		Status:    string(emp.Status),
		AvatarURL: emp.AvatarURL,
	}
}
