package leave

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, l *Leave) error
	FindByID(ctx context.Context, id string) (*Leave, error)
	FindAll(ctx context.Context) ([]Leave, error)
	FindByEmployee(ctx context.Context, employeeID string) ([]Leave, error)
	// UpdateStatusFromPending persists a transition guarded by
	// status = 'pending', so a request already in a terminal state is never
	// overwritten. Returns false when the guard rejects the update.
	UpdateStatusFromPending(ctx context.Context, l *Leave) (bool, error)
	HasOverlappingPeriod(ctx context.Context, employeeID string, startDate, endDate time.Time) (bool, error)
	EmployeeExists(ctx context.Context, employeeID string) (bool, error)
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

func (r *repository) Create(ctx context.Context, l *Leave) error {
	query := `
        INSERT INTO leave_requests (
            id, employee_id, category, start_date, end_date, duration,
            reason, status, created_by, created_at, updated_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
    `
	_, err := r.execer().ExecContext(
		ctx, query,
		l.ID, l.EmployeeID, l.Category, l.StartDate, l.EndDate, l.Duration,
		l.Reason, l.Status, l.CreatedBy,
	)
	return err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Leave, error) {
	query := `
SELECT id, employee_id, category, start_date, end_date, duration,
	reason, status, created_by, approved_by, approved_at, rejection_reason,
	created_at, updated_at
FROM leave_requests
WHERE id = $1
`
	var (
		l               Leave
		approvedBy      uuid.NullUUID
		approvedAt      sql.NullTime
		rejectionReason sql.NullString
	)
	err := r.querier().QueryRowContext(ctx, query, id).Scan(
		&l.ID, &l.EmployeeID, &l.Category, &l.StartDate, &l.EndDate, &l.Duration,
		&l.Reason, &l.Status, &l.CreatedBy, &approvedBy, &approvedAt, &rejectionReason,
		&l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if approvedBy.Valid {
		l.ApprovedBy = &approvedBy.UUID
	}
	if approvedAt.Valid {
		l.ApprovedAt = &approvedAt.Time
	}
	if rejectionReason.Valid {
		l.RejectionReason = &rejectionReason.String
	}
	return &l, nil
}

func (r *repository) FindAll(ctx context.Context) ([]Leave, error) {
	var leaves []Leave
	err := r.gormDB.WithContext(ctx).
		Order("created_at DESC").
		Find(&leaves).Error
	return leaves, err
}

func (r *repository) FindByEmployee(ctx context.Context, employeeID string) ([]Leave, error) {
	var leaves []Leave
	err := r.gormDB.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("created_at DESC").
		Find(&leaves).Error
	return leaves, err
}

func (r *repository) UpdateStatusFromPending(ctx context.Context, l *Leave) (bool, error) {
	query := `
UPDATE leave_requests
SET status = $2,
	approved_by = $3,
	approved_at = $4,
	rejection_reason = $5,
	updated_at = NOW()
WHERE id = $1 AND status = 'pending'
`
	res, err := r.execer().ExecContext(ctx, query, l.ID, l.Status, l.ApprovedBy, l.ApprovedAt, l.RejectionReason)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *repository) HasOverlappingPeriod(ctx context.Context, employeeID string, startDate, endDate time.Time) (bool, error) {
	var count int64
	err := r.gormDB.WithContext(ctx).
		Model(&Leave{}).
		Where("employee_id = ?", employeeID).
		Where("status IN ?", []string{StatusPending, StatusApproved}).
		Where("NOT (end_date < ? OR start_date > ?)", startDate, endDate).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) EmployeeExists(ctx context.Context, employeeID string) (bool, error) {
	query := `SELECT 1 FROM employees WHERE id = $1 AND deleted_at IS NULL LIMIT 1`

	var one int
	err := r.querier().QueryRowContext(ctx, query, employeeID).Scan(&one)
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
