package payslip

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/crewledger/crewledger-backend-go/internal/domain/dailylog"
	"github.com/crewledger/crewledger-backend-go/internal/domain/employee"
	"github.com/crewledger/crewledger-backend-go/internal/domain/payslip"
	"github.com/google/uuid"
)

// FeatureFlags gates operations that can be switched off remotely.
type FeatureFlags interface {
	BulkGenerateEnabled() bool
}

type PayslipServiceImpl struct {
	payslipRepo  payslip.PayslipRepository
	employeeRepo employee.EmployeeRepository
	logRepo      dailylog.DailyLogRepository
	flags        FeatureFlags
}

func NewPayslipService(
	payslipRepo payslip.PayslipRepository,
	employeeRepo employee.EmployeeRepository,
	logRepo dailylog.DailyLogRepository,
	flags FeatureFlags,
) payslip.PayslipService {
	return &PayslipServiceImpl{
		payslipRepo:  payslipRepo,
		employeeRepo: employeeRepo,
		logRepo:      logRepo,
		flags:        flags,
	}
}

// ========== GENERATION ==========

func (s *PayslipServiceImpl) Generate(ctx context.Context, req payslip.GeneratePayslipRequest) (payslip.PayslipResponse, error) {
	if err := req.Validate(); err != nil {
		return payslip.PayslipResponse{}, err
	}

	period, err := payslip.ParsePeriod(req.Period)
	if err != nil {
		return payslip.PayslipResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return payslip.PayslipResponse{}, err
	}

	logs, err := s.logRepo.GetAll(ctx)
	if err != nil {
		return payslip.PayslipResponse{}, fmt.Errorf("load daily logs: %w", err)
	}

	slip := Build(emp, period, logs, req.Allowance, req.Deduction, req.CarryOverLogIDs, uuid.New().String(), time.Now())

	if req.Save {
		saved, err := s.payslipRepo.UpsertByEmployeePeriod(ctx, slip)
		if err != nil {
			return payslip.PayslipResponse{}, fmt.Errorf("save payslip: %w", err)
		}
		slip = saved
		slog.Info("Payslip saved", "employee_id", slip.EmployeeID, "period", slip.Period.String(), "net", slip.NetSalary)
	}

	return toResponse(slip), nil
}

func (s *PayslipServiceImpl) BulkGenerate(ctx context.Context, req payslip.BulkGenerateRequest) (payslip.BulkGenerateResponse, error) {
	if err := req.Validate(); err != nil {
		return payslip.BulkGenerateResponse{}, err
	}

	if !s.flags.BulkGenerateEnabled() {
		return payslip.BulkGenerateResponse{}, payslip.ErrBulkGenerateDisabled
	}

	period, err := payslip.ParsePeriod(req.Period)
	if err != nil {
		return payslip.BulkGenerateResponse{}, err
	}

	active, err := s.employeeRepo.GetActive(ctx)
	if err != nil {
		return payslip.BulkGenerateResponse{}, fmt.Errorf("load active employees: %w", err)
	}

	logs, err := s.logRepo.GetAll(ctx)
	if err != nil {
		return payslip.BulkGenerateResponse{}, fmt.Errorf("load daily logs: %w", err)
	}

	slips := BulkBuild(period, active, logs, func() string { return uuid.New().String() }, time.Now())

	generated := make([]payslip.PayslipResponse, 0, len(slips))
	for _, slip := range slips {
		saved, err := s.payslipRepo.UpsertByEmployeePeriod(ctx, slip)
		if err != nil {
			return payslip.BulkGenerateResponse{}, fmt.Errorf("save payslip for employee %s: %w", slip.EmployeeID, err)
		}
		generated = append(generated, toResponse(saved))
	}

	skipped := len(active) - len(generated)
	slog.Info("Bulk payslip generation completed", "period", period.String(), "generated", len(generated), "skipped", skipped)

	return payslip.BulkGenerateResponse{Generated: generated, Skipped: skipped}, nil
}

// ========== HISTORY ==========

func (s *PayslipServiceImpl) Get(ctx context.Context, id string) (payslip.PayslipResponse, error) {
	slip, err := s.payslipRepo.GetByID(ctx, id)
	if err != nil {
		return payslip.PayslipResponse{}, err
	}
	return toResponse(slip), nil
}

func (s *PayslipServiceImpl) List(ctx context.Context) ([]payslip.PayslipResponse, error) {
	slips, err := s.payslipRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]payslip.PayslipResponse, 0, len(slips))
	for _, slip := range slips {
		responses = append(responses, toResponse(slip))
	}
	return responses, nil
}

func (s *PayslipServiceImpl) Delete(ctx context.Context, id string) error {
	return s.payslipRepo.Delete(ctx, id)
}

func toResponse(slip payslip.Payslip) payslip.PayslipResponse {
	entries := make([]payslip.LogEntryResponse, 0, len(slip.Entries))
	for _, e := range slip.Entries {
		entries = append(entries, payslip.LogEntryResponse{
			Date:            e.Date.Format("2006-01-02"),
			TaskNames:       e.TaskNames,
			TotalDailyGross: e.TotalDailyGross,
			WorkersPresent:  e.WorkersPresent,
			YourEarning:     e.YourEarning,
		})
	}

	return payslip.PayslipResponse{
		ID:                slip.ID,
		EmployeeID:        slip.EmployeeID,
		EmployeeName:      slip.EmployeeName,
		EmployeePosition:  slip.EmployeePosition,
		EmployeeAvatarURL: slip.EmployeeAvatarURL,
		Period:            slip.Period.String(),
		PeriodLabel:       slip.PeriodLabel,
		Entries:           entries,
		GrossSalary:       slip.GrossSalary,
		Allowance:         slip.Allowance,
		Deduction:         slip.Deduction,
		NetSalary:         slip.NetSalary,
		CreatedAt:         slip.CreatedAt.Format(time.RFC3339),
	}
}
