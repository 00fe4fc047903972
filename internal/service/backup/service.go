package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/crewledger/crewledger-backend-go/internal/domain/dailylog"
	"github.com/crewledger/crewledger-backend-go/internal/domain/employee"
	"github.com/crewledger/crewledger-backend-go/internal/domain/payslip"
	"github.com/crewledger/crewledger-backend-go/internal/domain/piecerate"
	"github.com/crewledger/crewledger-backend-go/internal/pkg/googledrive"
	"github.com/shopspring/decimal"
	"golang.org/x/oauth2"
)

// SnapshotVersion is bumped when the snapshot layout changes shape.
const SnapshotVersion = 1

var (
	ErrInvalidSnapshot   = fmt.Errorf("invalid backup snapshot")
	ErrDriveNotConnected = fmt.Errorf("google drive is not connected")
)

// Transactor runs fn atomically; a restore either applies every table or
// none.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type BackupService interface {
	// Export serializes the entire ledger to a JSON snapshot.
	Export(ctx context.Context) ([]byte, error)
	// Import replaces the entire ledger with the snapshot's content.
	Import(ctx context.Context, data []byte) error

	// DriveAuthURL starts the OAuth flow for Drive-backed backups.
	DriveAuthURL(state string) string
	// ConnectDrive completes the OAuth flow with the callback code.
	ConnectDrive(ctx context.Context, code string) error
	DriveConnected() bool
	// BackupToDrive exports and uploads the snapshot to Drive.
	BackupToDrive(ctx context.Context) error
	// RestoreFromDrive downloads the Drive snapshot and imports it.
	RestoreFromDrive(ctx context.Context) error
}

type BackupServiceImpl struct {
	employeeRepo employee.EmployeeRepository
	rateRepo     piecerate.PieceRateRepository
	logRepo      dailylog.DailyLogRepository
	payslipRepo  payslip.PayslipRepository
	transactor   Transactor
	drive        googledrive.DriveService

	mu         sync.RWMutex
	driveToken *oauth2.Token
}

func NewBackupService(
	employeeRepo employee.EmployeeRepository,
	rateRepo piecerate.PieceRateRepository,
	logRepo dailylog.DailyLogRepository,
	payslipRepo payslip.PayslipRepository,
	transactor Transactor,
	drive googledrive.DriveService,
) BackupService {
	return &BackupServiceImpl{
		employeeRepo: employeeRepo,
		rateRepo:     rateRepo,
		logRepo:      logRepo,
		payslipRepo:  payslipRepo,
		transactor:   transactor,
		drive:        drive,
	}
}

// ========== SNAPSHOT ==========

type snapshot struct {
	Version    int              `json:"version"`
	ExportedAt time.Time        `json:"exported_at"`
	Employees  []employeeRecord `json:"employees"`
	PieceRates []rateRecord     `json:"piece_rates"`
	DailyLogs  []logRecord      `json:"daily_logs"`
	Payslips   []payslipRecord  `json:"payslip_history"`
}

type employeeRecord struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Position  *string   `json:"position,omitempty"`
	Status    string    `json:"status"`
	AvatarURL *string   `json:"avatar_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type rateRecord struct {
	ID        string          `json:"id"`
	TaskName  string          `json:"task_name"`
	Rate      decimal.Decimal `json:"rate"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

type taskRecord struct {
	PieceRateID string          `json:"piece_rate_id"`
	TaskName    string          `json:"task_name"`
	Rate        decimal.Decimal `json:"rate"`
	Quantity    decimal.Decimal `json:"quantity"`
	SubTotal    decimal.Decimal `json:"sub_total"`
}

type customTaskRecord struct {
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
}

type logRecord struct {
	ID                 string             `json:"id"`
	Date               string             `json:"date"`
	Tasks              []taskRecord       `json:"tasks"`
	CustomTasks        []customTaskRecord `json:"custom_tasks,omitempty"`
	PresentEmployeeIDs []string           `json:"present_employee_ids"`
	TotalGrossEarnings decimal.Decimal    `json:"total_gross_earnings"`
	IndividualEarnings decimal.Decimal    `json:"individual_earnings"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
}

type entryRecord struct {
	Date            string          `json:"date"`
	TaskNames       string          `json:"task_names"`
	TotalDailyGross decimal.Decimal `json:"total_daily_gross"`
	WorkersPresent  int             `json:"workers_present"`
	YourEarning     decimal.Decimal `json:"your_earning"`
}

type payslipRecord struct {
	ID                string          `json:"id"`
	EmployeeID        string          `json:"employee_id"`
	EmployeeName      string          `json:"employee_name"`
	EmployeePosition  *string         `json:"employee_position,omitempty"`
	EmployeeAvatarURL *string         `json:"employee_avatar_url,omitempty"`
	Period            string          `json:"period"`
	PeriodLabel       string          `json:"period_label"`
	Entries           []entryRecord   `json:"entries"`
	GrossSalary       decimal.Decimal `json:"gross_salary"`
	Allowance         decimal.Decimal `json:"allowance"`
	Deduction         decimal.Decimal `json:"deduction"`
	NetSalary         decimal.Decimal `json:"net_salary"`
	CreatedAt         time.Time       `json:"created_at"`
}

func (s *BackupServiceImpl) Export(ctx context.Context) ([]byte, error) {
	employees, err := s.employeeRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("export employees: %w", err)
	}
	rates, err := s.rateRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("export piece rates: %w", err)
	}
	logs, err := s.logRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("export daily logs: %w", err)
	}
	slips, err := s.payslipRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("export payslips: %w", err)
	}

	snap := snapshot{
		Version:    SnapshotVersion,
		ExportedAt: time.Now(),
		Employees:  make([]employeeRecord, 0, len(employees)),
		PieceRates: make([]rateRecord, 0, len(rates)),
		DailyLogs:  make([]logRecord, 0, len(logs)),
		Payslips:   make([]payslipRecord, 0, len(slips)),
	}

	for _, emp := range employees {
		snap.Employees = append(snap.Employees, employeeRecord{
			ID:        emp.ID,
			Name:      emp.Name,
			Position:  emp.Position,
			Status:    string(emp.Status),
			AvatarURL: emp.AvatarURL,
			CreatedAt: emp.CreatedAt,
			UpdatedAt: emp.UpdatedAt,
		})
	}
	for _, rate := range rates {
		snap.PieceRates = append(snap.PieceRates, rateRecord{
			ID:        rate.ID,
			TaskName:  rate.TaskName,
			Rate:      rate.Rate,
			CreatedAt: rate.CreatedAt,
			UpdatedAt: rate.UpdatedAt,
		})
	}
	for _, log := range logs {
		snap.DailyLogs = append(snap.DailyLogs, toLogRecord(log))
	}
	for _, slip := range slips {
		snap.Payslips = append(snap.Payslips, toPayslipRecord(slip))
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}

	slog.Info("Backup exported",
		"employees", len(snap.Employees),
		"piece_rates", len(snap.PieceRates),
		"daily_logs", len(snap.DailyLogs),
		"payslips", len(snap.Payslips),
	)
	return data, nil
}

func (s *BackupServiceImpl) Import(ctx context.Context, data []byte) error {
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	if snap.Version == 0 || snap.Employees == nil || snap.PieceRates == nil {
		return ErrInvalidSnapshot
	}

	employees := make([]employee.Employee, 0, len(snap.Employees))
	for _, rec := range snap.Employees {
		employees = append(employees, employee.Employee{
			ID:        rec.ID,
			Name:      rec.Name,
			Position:  rec.Position,
			Status:    employee.Status(rec.Status),
			AvatarURL: rec.AvatarURL,
			CreatedAt: rec.CreatedAt,
			UpdatedAt: rec.UpdatedAt,
		})
	}

	rates := make([]piecerate.PieceRate, 0, len(snap.PieceRates))
	for _, rec := range snap.PieceRates {
		rates = append(rates, piecerate.PieceRate{
			ID:        rec.ID,
			TaskName:  rec.TaskName,
			Rate:      rec.Rate,
			CreatedAt: rec.CreatedAt,
			UpdatedAt: rec.UpdatedAt,
		})
	}

	logs := make([]dailylog.DailyGroupLog, 0, len(snap.DailyLogs))
	for _, rec := range snap.DailyLogs {
		log, err := fromLogRecord(rec)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
		}
		logs = append(logs, log)
	}

	slips := make([]payslip.Payslip, 0, len(snap.Payslips))
	for _, rec := range snap.Payslips {
		slip, err := fromPayslipRecord(rec)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
		}
		slips = append(slips, slip)
	}

	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.payslipRepo.ReplaceAll(ctx, slips); err != nil {
			return err
		}
		if err := s.logRepo.ReplaceAll(ctx, logs); err != nil {
			return err
		}
		if err := s.rateRepo.ReplaceAll(ctx, rates); err != nil {
			return err
		}
		return s.employeeRepo.ReplaceAll(ctx, employees)
	})
	if err != nil {
		return fmt.Errorf("restore snapshot: %w", err)
	}

	slog.Info("Backup restored",
		"employees", len(employees),
		"piece_rates", len(rates),
		"daily_logs", len(logs),
		"payslips", len(slips),
	)
	return nil
}

// ========== GOOGLE DRIVE ==========

func (s *BackupServiceImpl) DriveAuthURL(state string) string {
	return s.drive.RedirectURL(state)
}

func (s *BackupServiceImpl) ConnectDrive(ctx context.Context, code string) error {
	token, err := s.drive.Exchange(ctx, code)
	if err != nil {
		return fmt.Errorf("exchange authorization code: %w", err)
	}

	s.mu.Lock()
	s.driveToken = token
	s.mu.Unlock()

	slog.Info("Google Drive connected")
	return nil
}

func (s *BackupServiceImpl) DriveConnected() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.driveToken != nil
}

func (s *BackupServiceImpl) BackupToDrive(ctx context.Context) error {
	token := s.token()
	if token == nil {
		return ErrDriveNotConnected
	}

	data, err := s.Export(ctx)
	if err != nil {
		return err
	}

	if err := s.drive.UploadBackup(ctx, token, data); err != nil {
		return fmt.Errorf("upload backup to drive: %w", err)
	}

	slog.Info("Backup uploaded to Google Drive", "bytes", len(data))
	return nil
}

func (s *BackupServiceImpl) RestoreFromDrive(ctx context.Context) error {
	token := s.token()
	if token == nil {
		return ErrDriveNotConnected
	}

	data, err := s.drive.DownloadBackup(ctx, token)
	if err != nil {
		return err
	}

	return s.Import(ctx, data)
}

func (s *BackupServiceImpl) token() *oauth2.Token {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.driveToken
}

// ========== RECORD MAPPING ==========

func toLogRecord(log dailylog.DailyGroupLog) logRecord {
	rec := logRecord{
		ID:                 log.ID,
		Date:               log.Date.Format("2006-01-02"),
		Tasks:              make([]taskRecord, 0, len(log.Tasks)),
		PresentEmployeeIDs: log.PresentEmployeeIDs,
		TotalGrossEarnings: log.TotalGrossEarnings,
		IndividualEarnings: log.IndividualEarnings,
		CreatedAt:          log.CreatedAt,
		UpdatedAt:          log.UpdatedAt,
	}
	for _, t := range log.Tasks {
		rec.Tasks = append(rec.Tasks, taskRecord(t))
	}
	for _, c := range log.CustomTasks {
		rec.CustomTasks = append(rec.CustomTasks, customTaskRecord(c))
	}
	return rec
}

func fromLogRecord(rec logRecord) (dailylog.DailyGroupLog, error) {
	date, err := time.Parse("2006-01-02", rec.Date)
	if err != nil {
		return dailylog.DailyGroupLog{}, fmt.Errorf("invalid log date %q", rec.Date)
	}

	log := dailylog.DailyGroupLog{
		ID:                 rec.ID,
		Date:               date,
		Tasks:              make([]dailylog.DailyTask, 0, len(rec.Tasks)),
		PresentEmployeeIDs: rec.PresentEmployeeIDs,
		TotalGrossEarnings: rec.TotalGrossEarnings,
		IndividualEarnings: rec.IndividualEarnings,
		CreatedAt:          rec.CreatedAt,
		UpdatedAt:          rec.UpdatedAt,
	}
	for _, t := range rec.Tasks {
		log.Tasks = append(log.Tasks, dailylog.DailyTask(t))
	}
	for _, c := range rec.CustomTasks {
		log.CustomTasks = append(log.CustomTasks, dailylog.CustomTask(c))
	}
	return log, nil
}

func toPayslipRecord(slip payslip.Payslip) payslipRecord {
	rec := payslipRecord{
		ID:                slip.ID,
		EmployeeID:        slip.EmployeeID,
		EmployeeName:      slip.EmployeeName,
		EmployeePosition:  slip.EmployeePosition,
		EmployeeAvatarURL: slip.EmployeeAvatarURL,
		Period:            slip.Period.String(),
		PeriodLabel:       slip.PeriodLabel,
		Entries:           make([]entryRecord, 0, len(slip.Entries)),
		GrossSalary:       slip.GrossSalary,
		Allowance:         slip.Allowance,
		Deduction:         slip.Deduction,
		NetSalary:         slip.NetSalary,
		CreatedAt:         slip.CreatedAt,
	}
	for _, e := range slip.Entries {
		rec.Entries = append(rec.Entries, entryRecord{
			Date:            e.Date.Format("2006-01-02"),
			TaskNames:       e.TaskNames,
			TotalDailyGross: e.TotalDailyGross,
			WorkersPresent:  e.WorkersPresent,
			YourEarning:     e.YourEarning,
		})
	}
	return rec
}

func fromPayslipRecord(rec payslipRecord) (payslip.Payslip, error) {
	period, err := payslip.ParsePeriod(rec.Period)
	if err != nil {
		return payslip.Payslip{}, fmt.Errorf("invalid payslip period %q", rec.Period)
	}

	slip := payslip.Payslip{
		ID:                rec.ID,
		EmployeeID:        rec.EmployeeID,
		EmployeeName:      rec.EmployeeName,
		EmployeePosition:  rec.EmployeePosition,
		EmployeeAvatarURL: rec.EmployeeAvatarURL,
		Period:            period,
		PeriodLabel:       rec.PeriodLabel,
		Entries:           make([]payslip.LogEntry, 0, len(rec.Entries)),
		GrossSalary:       rec.GrossSalary,
		Allowance:         rec.Allowance,
		Deduction:         rec.Deduction,
		NetSalary:         rec.NetSalary,
		CreatedAt:         rec.CreatedAt,
	}
	for _, e := range rec.Entries {
		date, err := time.Parse("2006-01-02", e.Date)
		if err != nil {
			return payslip.Payslip{}, fmt.Errorf("invalid entry date %q", e.Date)
		}
		slip.Entries = append(slip.Entries, payslip.LogEntry{
			Date:            date,
			TaskNames:       e.TaskNames,
			TotalDailyGross: e.TotalDailyGross,
			WorkersPresent:  e.WorkersPresent,
			YourEarning:     e.YourEarning,
		})
	}
	return slip, nil
}
