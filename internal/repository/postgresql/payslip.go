package postgresql

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/crewledger/crewledger-backend-go/internal/domain/payslip"
	"github.com/crewledger/crewledger-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type payslipRepository struct {
	db *database.DB
}

func NewPayslipRepository(db *database.DB) payslip.PayslipRepository {
	return &payslipRepository{db: db}
}

// entryRecord is the JSONB shape of one contributing day.
type entryRecord struct {
	Date            string          `json:"date"`
	TaskNames       string          `json:"task_names"`
	TotalDailyGross decimal.Decimal `json:"total_daily_gross"`
	WorkersPresent  int             `json:"workers_present"`
	YourEarning     decimal.Decimal `json:"your_earning"`
}

func encodeEntries(entries []payslip.LogEntry) ([]byte, error) {
	records := make([]entryRecord, 0, len(entries))
	for _, e := range entries {
		records = append(records, entryRecord{
			Date:            e.Date.Format("2006-01-02"),
			TaskNames:       e.TaskNames,
			TotalDailyGross: e.TotalDailyGross,
			WorkersPresent:  e.WorkersPresent,
			YourEarning:     e.YourEarning,
		})
	}
	return json.Marshal(records)
}

func decodeEntries(data []byte) ([]payslip.LogEntry, error) {
	var records []entryRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	entries := make([]payslip.LogEntry, 0, len(records))
	for _, rec := range records {
		date, err := time.Parse("2006-01-02", rec.Date)
		if err != nil {
			return nil, fmt.Errorf("invalid entry date %q: %w", rec.Date, err)
		}
		entries = append(entries, payslip.LogEntry{
			Date:            date,
			TaskNames:       rec.TaskNames,
			TotalDailyGross: rec.TotalDailyGross,
			WorkersPresent:  rec.WorkersPresent,
			YourEarning:     rec.YourEarning,
		})
	}
	return entries, nil
}

// UpsertByEmployeePeriod relies on the unique index on
// (employee_id, period_year, period_month): regenerating a slip replaces
// the period's snapshot while keeping the original row ID.
func (r *payslipRepository) UpsertByEmployeePeriod(ctx context.Context, slip payslip.Payslip) (payslip.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	entriesJSON, err := encodeEntries(slip.Entries)
	if err != nil {
		return payslip.Payslip{}, fmt.Errorf("failed to encode entries: %w", err)
	}

	query := `
		INSERT INTO payslips (
			id, employee_id, employee_name, employee_position, employee_avatar_url,
			period_year, period_month, period_label, entries,
			gross_salary, allowance, deduction, net_salary, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (employee_id, period_year, period_month) DO UPDATE SET
			employee_name = EXCLUDED.employee_name,
			employee_position = EXCLUDED.employee_position,
			employee_avatar_url = EXCLUDED.employee_avatar_url,
			period_label = EXCLUDED.period_label,
			entries = EXCLUDED.entries,
			gross_salary = EXCLUDED.gross_salary,
			allowance = EXCLUDED.allowance,
			deduction = EXCLUDED.deduction,
			net_salary = EXCLUDED.net_salary,
			created_at = EXCLUDED.created_at
		RETURNING id, employee_id, employee_name, employee_position, employee_avatar_url,
			period_year, period_month, period_label, entries,
			gross_salary, allowance, deduction, net_salary, created_at
	`

	row := q.QueryRow(ctx, query,
		slip.ID,
		slip.EmployeeID,
		slip.EmployeeName,
		slip.EmployeePosition,
		slip.EmployeeAvatarURL,
		slip.Period.Year,
		int(slip.Period.Month),
		slip.PeriodLabel,
		entriesJSON,
		slip.GrossSalary,
		slip.Allowance,
		slip.Deduction,
		slip.NetSalary,
		slip.CreatedAt,
	)

	saved, err := scanPayslip(row)
	if err != nil {
		return payslip.Payslip{}, fmt.Errorf("failed to upsert payslip: %w", err)
	}

	return saved, nil
}

func (r *payslipRepository) GetByID(ctx context.Context, id string) (payslip.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	query := selectPayslipQuery + ` WHERE id = $1`

	slip, err := scanPayslip(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payslip.Payslip{}, payslip.ErrPayslipNotFound
		}
		return payslip.Payslip{}, fmt.Errorf("failed to get payslip: %w", err)
	}

	return slip, nil
}

func (r *payslipRepository) GetAll(ctx context.Context) ([]payslip.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	query := selectPayslipQuery + ` ORDER BY period_year DESC, period_month DESC, employee_name ASC`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list payslips: %w", err)
	}
	defer rows.Close()

	var slips []payslip.Payslip
	for rows.Next() {
		slip, err := scanPayslip(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payslip: %w", err)
		}
		slips = append(slips, slip)
	}

	return slips, rows.Err()
}

func (r *payslipRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM payslips WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete payslip: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payslip.ErrPayslipNotFound
	}

	return nil
}

func (r *payslipRepository) ReplaceAll(ctx context.Context, slips []payslip.Payslip) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM payslips`); err != nil {
		return fmt.Errorf("failed to clear payslips: %w", err)
	}

	for _, slip := range slips {
		if _, err := r.UpsertByEmployeePeriod(ctx, slip); err != nil {
			return err
		}
	}

	return nil
}

const selectPayslipQuery = `
	SELECT id, employee_id, employee_name, employee_position, employee_avatar_url,
		period_year, period_month, period_label, entries,
		gross_salary, allowance, deduction, net_salary, created_at
	FROM payslips
`

func scanPayslip(row pgx.Row) (payslip.Payslip, error) {
	var (
		slip        payslip.Payslip
		monthInt    int
		entriesJSON []byte
	)
	err := row.Scan(
		&slip.ID, &slip.EmployeeID, &slip.EmployeeName, &slip.EmployeePosition, &slip.EmployeeAvatarURL,
		&slip.Period.Year, &monthInt, &slip.PeriodLabel, &entriesJSON,
		&slip.GrossSalary, &slip.Allowance, &slip.Deduction, &slip.NetSalary, &slip.CreatedAt,
	)
	if err != nil {
		return payslip.Payslip{}, err
	}
	slip.Period.Month = time.Month(monthInt)

	if slip.Entries, err = decodeEntries(entriesJSON); err != nil {
		return payslip.Payslip{}, fmt.Errorf("failed to decode entries: %w", err)
	}

	return slip, nil
}
