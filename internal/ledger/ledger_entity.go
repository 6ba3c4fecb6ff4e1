package ledger

import (
	"time"

	"github.com/google/uuid"
)

// Balance holds the accrued/used day counters for one (employee, category)
// pair. Remaining is never stored; it is derived on read.
type Balance struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_balance_employee_category"`
	Category   string    `gorm:"type:varchar(30);not null;uniqueIndex:uq_balance_employee_category"`
	Accrued    int       `gorm:"type:int;not null;default:0"`
	Used       int       `gorm:"type:int;not null;default:0"`
	UpdatedAt  time.Time
}

func (Balance) TableName() string {
	return "leave_balances"
}

func (b Balance) Remaining() int {
	return b.Accrued - b.Used
}

const (
	CategoryAnnual     = "annual"
	CategorySick       = "sick"
	CategoryEmergency  = "emergency"
	CategoryFamilyCare = "familyCare"
	CategoryParental   = "parental"
)

// Categories lists the closed category enumeration in seeding order.
var Categories = []string{
	CategoryAnnual,
	CategorySick,
	CategoryEmergency,
	CategoryFamilyCare,
	CategoryParental,
}

func IsValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

// DefaultAccruals returns the opening accruals for a new employee. Parental
// leave is gender-conditioned: maternity 90 days, paternity 14. Emergency and
// family care start at zero and are topped up by HR accrual runs.
func DefaultAccruals(gender string) map[string]int {
	parental := 14
	if gender == "Female" {
		parental = 90
	}
	return map[string]int{
		CategoryAnnual:     21,
		CategorySick:       10,
		CategoryEmergency:  0,
		CategoryFamilyCare: 0,
		CategoryParental:   parental,
	}
}
