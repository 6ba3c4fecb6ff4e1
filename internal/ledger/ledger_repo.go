package ledger

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=ledger_repo.go -destination=mock/ledger_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Seed(ctx context.Context, employeeID uuid.UUID, gender string) error
	Get(ctx context.Context, employeeID, category string) (*Balance, error)
	FindByEmployee(ctx context.Context, employeeID string) ([]Balance, error)
	// CommitUsage runs the authoritative conditional update:
	// used = used + days, guarded by used + days <= accrued. Returns false
	// when the guard rejects the update or no row matches.
	CommitUsage(ctx context.Context, employeeID, category string, days int) (bool, error)
	Exists(ctx context.Context, employeeID, category string) (bool, error)
}

type repository struct {
	gormDB *gorm.DB
	db     *sql.DB
	tx     *sql.Tx
}

func NewRepository(gormDB *gorm.DB, db *sql.DB) Repository {
	return &repository{gormDB: gormDB, db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{gormDB: r.gormDB, db: r.db, tx: tx}
}

func (r *repository) Seed(ctx context.Context, employeeID uuid.UUID, gender string) error {
	query := `
        INSERT INTO leave_balances (id, employee_id, category, accrued, used, updated_at)
        VALUES ($1, $2, $3, $4, 0, NOW())
    `
	accruals := DefaultAccruals(gender)
	exec := r.execer()
	for _, category := range Categories {
		if _, err := exec.ExecContext(ctx, query, uuid.New(), employeeID, category, accruals[category]); err != nil {
			return err
		}
	}
	return nil
}

func (r *repository) Get(ctx context.Context, employeeID, category string) (*Balance, error) {
	query := `
SELECT id, employee_id, category, accrued, used, updated_at
FROM leave_balances
WHERE employee_id = $1 AND category = $2
`
	var b Balance
	err := r.querier().QueryRowContext(ctx, query, employeeID, category).Scan(
		&b.ID, &b.EmployeeID, &b.Category, &b.Accrued, &b.Used, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *repository) FindByEmployee(ctx context.Context, employeeID string) ([]Balance, error) {
	var balances []Balance
	err := r.gormDB.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("category ASC").
		Find(&balances).Error
	return balances, err
}

func (r *repository) CommitUsage(ctx context.Context, employeeID, category string, days int) (bool, error) {
	query := `
UPDATE leave_balances
SET used = used + $3, updated_at = NOW()
WHERE employee_id = $1
	AND category = $2
	AND used + $3 <= accrued
`
	res, err := r.execer().ExecContext(ctx, query, employeeID, category, days)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *repository) Exists(ctx context.Context, employeeID, category string) (bool, error) {
	query := `SELECT 1 FROM leave_balances WHERE employee_id = $1 AND category = $2 LIMIT 1`

	var one int
	err := r.querier().QueryRowContext(ctx, query, employeeID, category).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *repository) execer() interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
} {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

func (r *repository) querier() interface {
	QueryRowContext(context.Context, string, ...any) *sql.Row
} {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}
