package payslip

import (
	"fmt"
	"time"
)

// Period identifies one calendar month. The external "YYYY-MM" string is a
// presentation concern and is parsed here at the boundary; the core only
// ever sees the (year, month) pair.
type Period struct {
	Year  int
	Month time.Month
}

// ParsePeriod parses a "YYYY-MM" string.
func ParsePeriod(s string) (Period, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Period{}, fmt.Errorf("invalid period %q: %w", s, err)
	}
	return Period{Year: t.Year(), Month: t.Month()}, nil
}

// String returns the canonical "YYYY-MM" form.
func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
}

// Label returns the human-readable period shown on payslips, e.g.
// "March 2024".
func (p Period) Label() string {
	return fmt.Sprintf("%s %d", p.Month.String(), p.Year)
}

func (p Period) IsZero() bool {
	return p.Year == 0 && p.Month == 0
}
