package leave_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"go-leavedesk/internal/leave"
	"go-leavedesk/internal/ledger"
	ledgererrors "go-leavedesk/internal/ledger/errors"
	leaveerrors "go-leavedesk/internal/leave/errors"
	"go-leavedesk/internal/messaging/kafka"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeLeaveRepository struct {
	withTxFn                  func(tx *sql.Tx) leave.Repository
	createFn                  func(ctx context.Context, l *leave.Leave) error
	findByIDFn                func(ctx context.Context, id string) (*leave.Leave, error)
	findAllFn                 func(ctx context.Context) ([]leave.Leave, error)
	findByEmployeeFn          func(ctx context.Context, employeeID string) ([]leave.Leave, error)
	updateStatusFromPendingFn func(ctx context.Context, l *leave.Leave) (bool, error)
	hasOverlappingPeriodFn    func(ctx context.Context, employeeID string, startDate, endDate time.Time) (bool, error)
	employeeExistsFn          func(ctx context.Context, employeeID string) (bool, error)
}

func (f *fakeLeaveRepository) WithTx(tx *sql.Tx) leave.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeLeaveRepository) Create(ctx context.Context, l *leave.Leave) error {
	if f.createFn != nil {
		return f.createFn(ctx, l)
	}
	return nil
}

func (f *fakeLeaveRepository) FindByID(ctx context.Context, id string) (*leave.Leave, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, sql.ErrNoRows
}

func (f *fakeLeaveRepository) FindAll(ctx context.Context) ([]leave.Leave, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx)
	}
	return nil, nil
}

func (f *fakeLeaveRepository) FindByEmployee(ctx context.Context, employeeID string) ([]leave.Leave, error) {
	if f.findByEmployeeFn != nil {
		return f.findByEmployeeFn(ctx, employeeID)
	}
	return nil, nil
}

func (f *fakeLeaveRepository) UpdateStatusFromPending(ctx context.Context, l *leave.Leave) (bool, error) {
	if f.updateStatusFromPendingFn != nil {
		return f.updateStatusFromPendingFn(ctx, l)
	}
	return true, nil
}

func (f *fakeLeaveRepository) HasOverlappingPeriod(ctx context.Context, employeeID string, startDate, endDate time.Time) (bool, error) {
	if f.hasOverlappingPeriodFn != nil {
		return f.hasOverlappingPeriodFn(ctx, employeeID, startDate, endDate)
	}
	return false, nil
}

func (f *fakeLeaveRepository) EmployeeExists(ctx context.Context, employeeID string) (bool, error) {
	if f.employeeExistsFn != nil {
		return f.employeeExistsFn(ctx, employeeID)
	}
	return true, nil
}

type fakeLedgerService struct {
	getBalancesFn     func(ctx context.Context, actorID, role, employeeID string) ([]ledger.BalanceResponse, error)
	getBalanceFn      func(ctx context.Context, employeeID, category string) (ledger.BalanceResponse, error)
	reserveCheckFn    func(ctx context.Context, employeeID, category string, days int) (bool, error)
	invalidateCacheFn func(ctx context.Context, employeeID string)
}

func (f *fakeLedgerService) GetBalances(ctx context.Context, actorID, role, employeeID string) ([]ledger.BalanceResponse, error) {
	if f.getBalancesFn != nil {
		return f.getBalancesFn(ctx, actorID, role, employeeID)
	}
	return nil, nil
}

func (f *fakeLedgerService) GetBalance(ctx context.Context, employeeID, category string) (ledger.BalanceResponse, error) {
	if f.getBalanceFn != nil {
		return f.getBalanceFn(ctx, employeeID, category)
	}
	return ledger.BalanceResponse{}, nil
}

func (f *fakeLedgerService) ReserveCheck(ctx context.Context, employeeID, category string, days int) (bool, error) {
	if f.reserveCheckFn != nil {
		return f.reserveCheckFn(ctx, employeeID, category, days)
	}
	return true, nil
}

func (f *fakeLedgerService) InvalidateCache(ctx context.Context, employeeID string) {
	if f.invalidateCacheFn != nil {
		f.invalidateCacheFn(ctx, employeeID)
	}
}

type fakeLedgerRepository struct {
	withTxFn         func(tx *sql.Tx) ledger.Repository
	seedFn           func(ctx context.Context, employeeID uuid.UUID, gender string) error
	getFn            func(ctx context.Context, employeeID, category string) (*ledger.Balance, error)
	findByEmployeeFn func(ctx context.Context, employeeID string) ([]ledger.Balance, error)
	commitUsageFn    func(ctx context.Context, employeeID, category string, days int) (bool, error)
	existsFn         func(ctx context.Context, employeeID, category string) (bool, error)
}

func (f *fakeLedgerRepository) WithTx(tx *sql.Tx) ledger.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeLedgerRepository) Seed(ctx context.Context, employeeID uuid.UUID, gender string) error {
	if f.seedFn != nil {
		return f.seedFn(ctx, employeeID, gender)
	}
	return nil
}

func (f *fakeLedgerRepository) Get(ctx context.Context, employeeID, category string) (*ledger.Balance, error) {
	if f.getFn != nil {
		return f.getFn(ctx, employeeID, category)
	}
	return &ledger.Balance{Accrued: 21, Used: 0}, nil
}

func (f *fakeLedgerRepository) FindByEmployee(ctx context.Context, employeeID string) ([]ledger.Balance, error) {
	if f.findByEmployeeFn != nil {
		return f.findByEmployeeFn(ctx, employeeID)
	}
	return nil, nil
}

func (f *fakeLedgerRepository) CommitUsage(ctx context.Context, employeeID, category string, days int) (bool, error) {
	if f.commitUsageFn != nil {
		return f.commitUsageFn(ctx, employeeID, category, days)
	}
	return true, nil
}

func (f *fakeLedgerRepository) Exists(ctx context.Context, employeeID, category string) (bool, error) {
	if f.existsFn != nil {
		return f.existsFn(ctx, employeeID, category)
	}
	return true, nil
}

type fakeOutboxRepository struct {
	createFn func(ctx context.Context, event kafka.OutboxEvent) error
}

func (f *fakeOutboxRepository) WithTx(tx *sql.Tx) kafka.OutboxRepository {
	return f
}

func (f *fakeOutboxRepository) Create(ctx context.Context, event kafka.OutboxEvent) error {
	if f.createFn != nil {
		return f.createFn(ctx, event)
	}
	return nil
}

func (f *fakeOutboxRepository) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutboxRepository) MarkSent(ctx context.Context, id string) error {
	return nil
}

func (f *fakeOutboxRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	return nil
}

type leaveServiceDeps struct {
	db         *sql.DB
	sqlMock    sqlmock.Sqlmock
	service    leave.Service
	repo       *fakeLeaveRepository
	ledgerSvc  *fakeLedgerService
	ledgerRepo *fakeLedgerRepository
	outbox     *fakeOutboxRepository
}

func setupLeaveServiceTest(t *testing.T) *leaveServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeLeaveRepository{}
	ledgerSvc := &fakeLedgerService{}
	ledgerRepo := &fakeLedgerRepository{}
	outbox := &fakeOutboxRepository{}
	svc := leave.NewServiceWithOutbox(db, repo, ledgerSvc, ledgerRepo, outbox)

	return &leaveServiceDeps{
		db:         db,
		sqlMock:    sqlMock,
		service:    svc,
		repo:       repo,
		ledgerSvc:  ledgerSvc,
		ledgerRepo: ledgerRepo,
		outbox:     outbox,
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func TestLeaveService_Submit(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		req := leave.CreateLeaveRequest{
			Category:  ledger.CategoryAnnual,
			StartDate: "2026-03-01",
			EndDate:   "2026-03-05",
			Reason:    "Family trip",
		}

		deps.ledgerSvc.reserveCheckFn = func(ctx context.Context, eid, category string, days int) (bool, error) {
			assert.Equal(t, employeeID, eid)
			assert.Equal(t, ledger.CategoryAnnual, category)
			assert.Equal(t, 5, days)
			return true, nil
		}
		deps.repo.createFn = func(ctx context.Context, l *leave.Leave) error {
			assert.Equal(t, uuid.MustParse(employeeID), l.EmployeeID)
			assert.Equal(t, 5, l.Duration)
			assert.Equal(t, leave.StatusPending, l.Status)
			return nil
		}

		resp, err := deps.service.Submit(ctx, employeeID, "employee", req)

		assert.NoError(t, err)
		assert.Equal(t, employeeID, resp.EmployeeID)
		assert.Equal(t, 5, resp.Duration)
		assert.Equal(t, leave.StatusPending, resp.Status)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("success single day window", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		req := leave.CreateLeaveRequest{
			Category:  ledger.CategorySick,
			StartDate: "2026-03-10",
			EndDate:   "2026-03-10",
		}

		var gotDuration int
		deps.repo.createFn = func(ctx context.Context, l *leave.Leave) error {
			gotDuration = l.Duration
			return nil
		}

		resp, err := deps.service.Submit(ctx, employeeID, "employee", req)

		assert.NoError(t, err)
		assert.Equal(t, 1, gotDuration)
		assert.Equal(t, 1, resp.Duration)
	})

	t.Run("negative insufficient balance persists nothing", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		req := leave.CreateLeaveRequest{
			Category:  ledger.CategoryAnnual,
			StartDate: "2026-03-01",
			EndDate:   "2026-03-30",
		}

		deps.ledgerSvc.reserveCheckFn = func(ctx context.Context, eid, category string, days int) (bool, error) {
			return false, nil
		}
		created := false
		deps.repo.createFn = func(ctx context.Context, l *leave.Leave) error {
			created = true
			return nil
		}

		_, err := deps.service.Submit(ctx, employeeID, "employee", req)

		assert.ErrorIs(t, err, ledgererrors.ErrInsufficientBalance)
		assert.False(t, created)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative overlap period", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		req := leave.CreateLeaveRequest{
			Category:  ledger.CategoryAnnual,
			StartDate: "2026-03-01",
			EndDate:   "2026-03-02",
		}

		deps.repo.hasOverlappingPeriodFn = func(ctx context.Context, eid string, startDate, endDate time.Time) (bool, error) {
			return true, nil
		}

		_, err := deps.service.Submit(ctx, employeeID, "employee", req)

		assert.ErrorIs(t, err, leaveerrors.ErrLeaveOverlap)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative end before start", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		req := leave.CreateLeaveRequest{
			Category:  ledger.CategoryAnnual,
			StartDate: "2026-03-05",
			EndDate:   "2026-03-01",
		}

		_, err := deps.service.Submit(ctx, employeeID, "employee", req)

		assert.ErrorIs(t, err, leaveerrors.ErrInvalidDateRange)
	})

	t.Run("negative employee submits on behalf of another", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		req := leave.CreateLeaveRequest{
			EmployeeID: uuid.New().String(),
			Category:   ledger.CategoryAnnual,
			StartDate:  "2026-03-01",
			EndDate:    "2026-03-02",
		}

		_, err := deps.service.Submit(ctx, employeeID, "employee", req)

		assert.ErrorIs(t, err, leaveerrors.ErrSubmitOnBehalfForbidden)
	})

	t.Run("hr submits on behalf of employee", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		hrID := uuid.New().String()
		req := leave.CreateLeaveRequest{
			EmployeeID: employeeID,
			Category:   ledger.CategoryAnnual,
			StartDate:  "2026-03-01",
			EndDate:    "2026-03-02",
		}

		deps.repo.createFn = func(ctx context.Context, l *leave.Leave) error {
			assert.Equal(t, uuid.MustParse(employeeID), l.EmployeeID)
			assert.Equal(t, uuid.MustParse(hrID), l.CreatedBy)
			return nil
		}

		resp, err := deps.service.Submit(ctx, hrID, "hr", req)

		assert.NoError(t, err)
		assert.Equal(t, employeeID, resp.EmployeeID)
		assert.Equal(t, hrID, resp.CreatedBy)
	})

	t.Run("negative unknown employee", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		req := leave.CreateLeaveRequest{
			Category:  ledger.CategoryAnnual,
			StartDate: "2026-03-01",
			EndDate:   "2026-03-02",
		}

		deps.repo.employeeExistsFn = func(ctx context.Context, eid string) (bool, error) {
			return false, nil
		}

		_, err := deps.service.Submit(ctx, employeeID, "employee", req)

		assert.ErrorIs(t, err, leaveerrors.ErrEmployeeNotFound)
	})
}

func pendingLeave(id, employeeID string, days int) *leave.Leave {
	return &leave.Leave{
		ID:         uuid.MustParse(id),
		EmployeeID: uuid.MustParse(employeeID),
		Category:   ledger.CategoryAnnual,
		StartDate:  time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2026, 3, days, 0, 0, 0, 0, time.UTC),
		Duration:   days,
		Status:     leave.StatusPending,
		CreatedBy:  uuid.MustParse(employeeID),
	}
}

func TestLeaveService_Approve(t *testing.T) {
	ctx := context.Background()
	id := uuid.New().String()
	employeeID := uuid.New().String()
	hrID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)

		deps.repo.findByIDFn = func(ctx context.Context, targetID string) (*leave.Leave, error) {
			return pendingLeave(targetID, employeeID, 5), nil
		}
		deps.ledgerRepo.commitUsageFn = func(ctx context.Context, eid, category string, days int) (bool, error) {
			assert.Equal(t, employeeID, eid)
			assert.Equal(t, ledger.CategoryAnnual, category)
			assert.Equal(t, 5, days)
			return true, nil
		}
		deps.ledgerRepo.getFn = func(ctx context.Context, eid, category string) (*ledger.Balance, error) {
			return &ledger.Balance{Accrued: 21, Used: 5}, nil
		}
		var queuedTopic string
		deps.outbox.createFn = func(ctx context.Context, event kafka.OutboxEvent) error {
			queuedTopic = event.Topic
			assert.Equal(t, employeeID, event.AggregateID)
			return nil
		}
		invalidated := ""
		deps.ledgerSvc.invalidateCacheFn = func(ctx context.Context, eid string) {
			invalidated = eid
		}

		resp, err := deps.service.UpdateStatus(ctx, hrID, "hr", id, leave.UpdateStatusRequest{Status: leave.StatusApproved})

		assert.NoError(t, err)
		assert.Equal(t, leave.StatusApproved, resp.Status)
		assert.NotNil(t, resp.ApprovedBy)
		assert.Equal(t, hrID, *resp.ApprovedBy)
		assert.Equal(t, "hr.leave.balance.v1", queuedTopic)
		assert.Equal(t, employeeID, invalidated)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative insufficient balance auto-rejects", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		// The auto-rejection itself commits.
		expectTx(t, deps.sqlMock, true)

		deps.repo.findByIDFn = func(ctx context.Context, targetID string) (*leave.Leave, error) {
			return pendingLeave(targetID, employeeID, 20), nil
		}
		deps.ledgerRepo.commitUsageFn = func(ctx context.Context, eid, category string, days int) (bool, error) {
			return false, nil
		}
		var persisted *leave.Leave
		deps.repo.updateStatusFromPendingFn = func(ctx context.Context, l *leave.Leave) (bool, error) {
			persisted = l
			return true, nil
		}

		_, err := deps.service.UpdateStatus(ctx, hrID, "hr", id, leave.UpdateStatusRequest{Status: leave.StatusApproved})

		assert.ErrorIs(t, err, ledgererrors.ErrInsufficientBalance)
		assert.NotNil(t, persisted)
		assert.Equal(t, leave.StatusRejected, persisted.Status)
		assert.NotNil(t, persisted.RejectionReason)
		assert.Contains(t, *persisted.RejectionReason, "insufficient")
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative already approved", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		deps.repo.findByIDFn = func(ctx context.Context, targetID string) (*leave.Leave, error) {
			l := pendingLeave(targetID, employeeID, 5)
			l.Status = leave.StatusApproved
			return l, nil
		}
		committed := false
		deps.ledgerRepo.commitUsageFn = func(ctx context.Context, eid, category string, days int) (bool, error) {
			committed = true
			return true, nil
		}

		_, err := deps.service.UpdateStatus(ctx, hrID, "hr", id, leave.UpdateStatusRequest{Status: leave.StatusApproved})

		assert.ErrorIs(t, err, leaveerrors.ErrInvalidStatusTransition)
		assert.False(t, committed)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative concurrent transition loses", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		deps.repo.findByIDFn = func(ctx context.Context, targetID string) (*leave.Leave, error) {
			return pendingLeave(targetID, employeeID, 5), nil
		}
		// Another transition won between the read and the guarded update.
		deps.repo.updateStatusFromPendingFn = func(ctx context.Context, l *leave.Leave) (bool, error) {
			return false, nil
		}

		_, err := deps.service.UpdateStatus(ctx, hrID, "hr", id, leave.UpdateStatusRequest{Status: leave.StatusApproved})

		assert.ErrorIs(t, err, leaveerrors.ErrInvalidStatusTransition)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative employee cannot approve", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		deps.repo.findByIDFn = func(ctx context.Context, targetID string) (*leave.Leave, error) {
			return pendingLeave(targetID, employeeID, 5), nil
		}

		_, err := deps.service.UpdateStatus(ctx, employeeID, "employee", id, leave.UpdateStatusRequest{Status: leave.StatusApproved})

		assert.Error(t, err)
	})

	t.Run("negative not found", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		deps.repo.findByIDFn = func(ctx context.Context, targetID string) (*leave.Leave, error) {
			return nil, sql.ErrNoRows
		}

		_, err := deps.service.UpdateStatus(ctx, hrID, "hr", id, leave.UpdateStatusRequest{Status: leave.StatusApproved})

		assert.ErrorIs(t, err, leaveerrors.ErrLeaveNotFound)
	})
}

func TestLeaveService_RejectAndCancel(t *testing.T) {
	ctx := context.Background()
	id := uuid.New().String()
	employeeID := uuid.New().String()
	hrID := uuid.New().String()

	t.Run("reject success", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		reason := "Team is short-staffed that week"

		deps.repo.findByIDFn = func(ctx context.Context, targetID string) (*leave.Leave, error) {
			return pendingLeave(targetID, employeeID, 5), nil
		}
		committed := false
		deps.ledgerRepo.commitUsageFn = func(ctx context.Context, eid, category string, days int) (bool, error) {
			committed = true
			return true, nil
		}

		resp, err := deps.service.UpdateStatus(ctx, hrID, "hr", id, leave.UpdateStatusRequest{
			Status:          leave.StatusRejected,
			RejectionReason: &reason,
		})

		assert.NoError(t, err)
		assert.Equal(t, leave.StatusRejected, resp.Status)
		assert.Equal(t, &reason, resp.RejectionReason)
		assert.False(t, committed, "rejection must not touch the ledger")
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative reject without reason", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		deps.repo.findByIDFn = func(ctx context.Context, targetID string) (*leave.Leave, error) {
			return pendingLeave(targetID, employeeID, 5), nil
		}

		_, err := deps.service.UpdateStatus(ctx, hrID, "hr", id, leave.UpdateStatusRequest{Status: leave.StatusRejected})

		assert.ErrorIs(t, err, leaveerrors.ErrRejectionReasonRequired)
	})

	t.Run("cancel by owner", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)

		deps.repo.findByIDFn = func(ctx context.Context, targetID string) (*leave.Leave, error) {
			return pendingLeave(targetID, employeeID, 5), nil
		}

		resp, err := deps.service.UpdateStatus(ctx, employeeID, "employee", id, leave.UpdateStatusRequest{Status: leave.StatusCancelled})

		assert.NoError(t, err)
		assert.Equal(t, leave.StatusCancelled, resp.Status)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative cancel by non-owner", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		deps.repo.findByIDFn = func(ctx context.Context, targetID string) (*leave.Leave, error) {
			return pendingLeave(targetID, employeeID, 5), nil
		}

		_, err := deps.service.UpdateStatus(ctx, uuid.New().String(), "employee", id, leave.UpdateStatusRequest{Status: leave.StatusCancelled})

		assert.ErrorIs(t, err, leaveerrors.ErrNotRequestOwner)
	})
}

func TestLeaveService_History(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		deps.repo.findByEmployeeFn = func(ctx context.Context, eid string) ([]leave.Leave, error) {
			assert.Equal(t, employeeID, eid)
			return []leave.Leave{
				*pendingLeave(uuid.New().String(), employeeID, 3),
			}, nil
		}

		resp, err := deps.service.History(ctx, employeeID, "employee", employeeID)

		assert.NoError(t, err)
		assert.Len(t, resp, 1)
		assert.Equal(t, employeeID, resp[0].EmployeeID)
	})

	t.Run("negative other employee's history", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.History(ctx, uuid.New().String(), "employee", employeeID)

		assert.Error(t, err)
	})

	t.Run("hr reads any history", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		deps.repo.findByEmployeeFn = func(ctx context.Context, eid string) ([]leave.Leave, error) {
			return nil, nil
		}

		_, err := deps.service.History(ctx, uuid.New().String(), "hr", employeeID)

		assert.NoError(t, err)
	})

	t.Run("negative repo error", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		deps.repo.findByEmployeeFn = func(ctx context.Context, eid string) ([]leave.Leave, error) {
			return nil, errors.New("db error")
		}

		_, err := deps.service.History(ctx, employeeID, "employee", employeeID)

		assert.Error(t, err)
	})
}

func TestDurationDays(t *testing.T) {
	t.Run("five day window", func(t *testing.T) {
		start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, 5, leave.DurationDays(start, end))
	})

	t.Run("same day counts as one", func(t *testing.T) {
		day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, 1, leave.DurationDays(day, day))
	})
}
