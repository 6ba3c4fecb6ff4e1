package leave

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go-leavedesk/internal/domain"
	"go-leavedesk/internal/events"
	"go-leavedesk/internal/ledger"
	ledgererrors "go-leavedesk/internal/ledger/errors"
	leaveerrors "go-leavedesk/internal/leave/errors"
	"go-leavedesk/internal/messaging/kafka"
	"go-leavedesk/internal/shared/apperror"
	"go-leavedesk/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	// Submit creates a pending request after an advisory balance check.
	// Nothing is persisted when the check fails.
	Submit(ctx context.Context, actorID, role string, req CreateLeaveRequest) (LeaveResponse, error)
	// UpdateStatus moves a pending request into a terminal state. Approval
	// commits ledger usage atomically; a failed commit auto-rejects the
	// request and surfaces the balance error.
	UpdateStatus(ctx context.Context, actorID, role, id string, req UpdateStatusRequest) (LeaveResponse, error)
	GetAll(ctx context.Context) ([]LeaveResponse, error)
	GetByID(ctx context.Context, actorID, role, id string) (LeaveResponse, error)
	History(ctx context.Context, actorID, role, employeeID string) ([]LeaveResponse, error)
}

type service struct {
	db         *sql.DB
	repo       Repository
	ledger     ledger.Service
	ledgerRepo ledger.Repository
	outbox     kafka.OutboxRepository
	logger     *zap.Logger
}

func NewService(db *sql.DB, repo Repository, ledgerSvc ledger.Service, ledgerRepo ledger.Repository, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, ledgerSvc, ledgerRepo, nil, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	ledgerSvc ledger.Service,
	ledgerRepo ledger.Repository,
	outboxRepo kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{
		db:         db,
		repo:       repo,
		ledger:     ledgerSvc,
		ledgerRepo: ledgerRepo,
		outbox:     outboxRepo,
		logger:     l,
	}
}

func (s *service) Submit(ctx context.Context, actorID, role string, req CreateLeaveRequest) (LeaveResponse, error) {
	s.logger.Debug("submit leave requested",
		zap.String("actor_id", actorID),
		zap.String("employee_id", req.EmployeeID),
		zap.String("category", req.Category),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidActorID
	}

	employeeID := req.EmployeeID
	if employeeID == "" {
		employeeID = actorID
	}
	if employeeID != actorID && !domain.CanManageLeave(role) {
		return LeaveResponse{}, leaveerrors.ErrSubmitOnBehalfForbidden
	}
	employeeUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidEmployeeID
	}

	if !ledger.IsValidCategory(req.Category) {
		return LeaveResponse{}, ledgererrors.ErrInvalidCategory
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return LeaveResponse{}, err
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return LeaveResponse{}, err
	}
	if startDate.After(endDate) {
		return LeaveResponse{}, leaveerrors.ErrInvalidDateRange
	}
	duration := DurationDays(startDate, endDate)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("submit leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, apperror.StorageUnavailable(err)
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	exists, err := qtx.EmployeeExists(ctx, employeeID)
	if err != nil {
		s.logger.Error("submit leave employee check failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if !exists {
		return LeaveResponse{}, leaveerrors.ErrEmployeeNotFound
	}

	overlap, err := qtx.HasOverlappingPeriod(ctx, employeeID, startDate, endDate)
	if err != nil {
		s.logger.Error("submit leave overlap check failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if overlap {
		s.logger.Warn("submit leave overlap detected",
			zap.String("employee_id", employeeID),
			zap.String("start_date", req.StartDate),
			zap.String("end_date", req.EndDate),
		)
		return LeaveResponse{}, leaveerrors.ErrLeaveOverlap
	}

	// Advisory only. Approval re-checks authoritatively via CommitUsage.
	enough, err := s.ledger.ReserveCheck(ctx, employeeID, req.Category, duration)
	if err != nil {
		return LeaveResponse{}, err
	}
	if !enough {
		s.logger.Warn("submit leave insufficient balance",
			zap.String("employee_id", employeeID),
			zap.String("category", req.Category),
			zap.Int("duration", duration),
		)
		return LeaveResponse{}, ledgererrors.ErrInsufficientBalance
	}

	l := &Leave{
		ID:         uuid.New(),
		EmployeeID: employeeUUID,
		Category:   req.Category,
		StartDate:  startDate,
		EndDate:    endDate,
		Duration:   duration,
		Reason:     req.Reason,
		Status:     StatusPending,
		CreatedBy:  actorUUID,
	}

	if err := qtx.Create(ctx, l); err != nil {
		s.logger.Error("submit leave persist failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("submit leave commit failed", zap.Error(err))
		return LeaveResponse{}, apperror.StorageUnavailable(err)
	}
	s.logger.Info("submit leave success",
		zap.String("leave_id", l.ID.String()),
		zap.String("employee_id", employeeID),
		zap.Int("duration", duration),
	)

	return mapToResponse(*l), nil
}

func (s *service) UpdateStatus(ctx context.Context, actorID, role, id string, req UpdateStatusRequest) (LeaveResponse, error) {
	s.logger.Debug("update leave status requested",
		zap.String("leave_id", id),
		zap.String("actor_id", actorID),
		zap.String("target_status", req.Status),
	)

	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidActorID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update leave status begin tx failed", zap.Error(err))
		return LeaveResponse{}, apperror.StorageUnavailable(err)
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}
	if l.Status != StatusPending {
		s.logger.Warn("update leave status not pending",
			zap.String("leave_id", id),
			zap.String("from_status", l.Status),
			zap.String("to_status", req.Status),
		)
		return LeaveResponse{}, leaveerrors.ErrInvalidStatusTransition
	}

	switch req.Status {
	case StatusApproved:
		if !domain.CanManageLeave(role) {
			return LeaveResponse{}, apperror.ErrForbidden
		}
		return s.approve(ctx, tx, qtx, l, actorUUID)

	case StatusRejected:
		if !domain.CanManageLeave(role) {
			return LeaveResponse{}, apperror.ErrForbidden
		}
		if req.RejectionReason == nil || *req.RejectionReason == "" {
			return LeaveResponse{}, leaveerrors.ErrRejectionReasonRequired
		}
		l.Status = StatusRejected
		l.ApprovedBy = nil
		l.ApprovedAt = nil
		l.RejectionReason = req.RejectionReason
		return s.persistTransition(ctx, tx, qtx, l)

	case StatusCancelled:
		if l.EmployeeID.String() != actorID {
			return LeaveResponse{}, leaveerrors.ErrNotRequestOwner
		}
		l.Status = StatusCancelled
		l.ApprovedBy = nil
		l.ApprovedAt = nil
		l.RejectionReason = nil
		return s.persistTransition(ctx, tx, qtx, l)

	default:
		return LeaveResponse{}, leaveerrors.ErrInvalidStatusTransition
	}
}

// approve commits ledger usage and the status change in one transaction. A
// failed usage commit flips the request to rejected instead of leaving it
// pending, and the balance error is surfaced to the caller.
func (s *service) approve(ctx context.Context, tx *sql.Tx, qtx Repository, l *Leave, actorUUID uuid.UUID) (LeaveResponse, error) {
	employeeID := l.EmployeeID.String()
	qledger := s.ledgerRepo.WithTx(tx)

	committed, err := qledger.CommitUsage(ctx, employeeID, l.Category, l.Duration)
	if err != nil {
		s.logger.Error("approve leave commit usage failed",
			zap.String("leave_id", l.ID.String()),
			zap.Error(err),
		)
		return LeaveResponse{}, err
	}

	if !committed {
		exists, err := qledger.Exists(ctx, employeeID, l.Category)
		if err != nil {
			return LeaveResponse{}, err
		}
		if !exists {
			return LeaveResponse{}, ledgererrors.ErrBalanceNotFound
		}

		reason := fmt.Sprintf("insufficient %s balance at approval", l.Category)
		l.Status = StatusRejected
		l.ApprovedBy = nil
		l.ApprovedAt = nil
		l.RejectionReason = &reason

		updated, err := qtx.UpdateStatusFromPending(ctx, l)
		if err != nil {
			return LeaveResponse{}, err
		}
		if !updated {
			return LeaveResponse{}, leaveerrors.ErrInvalidStatusTransition
		}
		if err := tx.Commit(); err != nil {
			return LeaveResponse{}, apperror.StorageUnavailable(err)
		}

		s.logger.Warn("approve leave auto-rejected for insufficient balance",
			zap.String("leave_id", l.ID.String()),
			zap.String("employee_id", employeeID),
			zap.String("category", l.Category),
			zap.Int("duration", l.Duration),
		)
		return LeaveResponse{}, ledgererrors.ErrInsufficientBalance
	}

	now := time.Now().UTC()
	l.Status = StatusApproved
	l.ApprovedBy = &actorUUID
	l.ApprovedAt = &now
	l.RejectionReason = nil

	updated, err := qtx.UpdateStatusFromPending(ctx, l)
	if err != nil {
		s.logger.Error("approve leave persist failed",
			zap.String("leave_id", l.ID.String()),
			zap.Error(err),
		)
		return LeaveResponse{}, err
	}
	if !updated {
		// Rolls back the usage commit as well.
		return LeaveResponse{}, leaveerrors.ErrInvalidStatusTransition
	}

	if s.outbox != nil {
		if err := s.enqueueBalanceChanged(ctx, tx, qledger, l); err != nil {
			s.logger.Error("approve leave enqueue event failed",
				zap.String("leave_id", l.ID.String()),
				zap.Error(err),
			)
			return LeaveResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("approve leave commit failed",
			zap.String("leave_id", l.ID.String()),
			zap.Error(err),
		)
		return LeaveResponse{}, apperror.StorageUnavailable(err)
	}

	s.ledger.InvalidateCache(ctx, employeeID)

	s.logger.Info("approve leave success",
		zap.String("leave_id", l.ID.String()),
		zap.String("employee_id", employeeID),
		zap.String("category", l.Category),
		zap.Int("duration", l.Duration),
	)
	return mapToResponse(*l), nil
}

func (s *service) enqueueBalanceChanged(ctx context.Context, tx *sql.Tx, qledger ledger.Repository, l *Leave) error {
	b, err := qledger.Get(ctx, l.EmployeeID.String(), l.Category)
	if err != nil {
		return err
	}

	payload, err := json.Marshal(events.BalanceChangedEvent{
		EventType:  "leave.balance_changed",
		EmployeeID: l.EmployeeID.String(),
		Category:   l.Category,
		NewBalance: b.Remaining(),
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "leave_balance",
		AggregateID:   l.EmployeeID.String(),
		EventType:     "leave.balance_changed",
		Topic:         events.BalanceChangedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func (s *service) persistTransition(ctx context.Context, tx *sql.Tx, qtx Repository, l *Leave) (LeaveResponse, error) {
	updated, err := qtx.UpdateStatusFromPending(ctx, l)
	if err != nil {
		s.logger.Error("update leave status persist failed",
			zap.String("leave_id", l.ID.String()),
			zap.String("target_status", l.Status),
			zap.Error(err),
		)
		return LeaveResponse{}, err
	}
	if !updated {
		return LeaveResponse{}, leaveerrors.ErrInvalidStatusTransition
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("update leave status commit failed",
			zap.String("leave_id", l.ID.String()),
			zap.Error(err),
		)
		return LeaveResponse{}, apperror.StorageUnavailable(err)
	}
	s.logger.Info("update leave status success",
		zap.String("leave_id", l.ID.String()),
		zap.String("status", l.Status),
	)
	return mapToResponse(*l), nil
}

func (s *service) GetAll(ctx context.Context) ([]LeaveResponse, error) {
	leaves, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

func (s *service) GetByID(ctx context.Context, actorID, role, id string) (LeaveResponse, error) {
	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}
	if !domain.CanViewEmployee(actorID, role, l.EmployeeID.String()) {
		return LeaveResponse{}, apperror.ErrForbidden
	}
	return mapToResponse(*l), nil
}

func (s *service) History(ctx context.Context, actorID, role, employeeID string) ([]LeaveResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, leaveerrors.ErrInvalidEmployeeID
	}
	if !domain.CanViewEmployee(actorID, role, employeeID) {
		return nil, apperror.ErrForbidden
	}

	leaves, err := s.repo.FindByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func mapToResponse(l Leave) LeaveResponse {
	resp := LeaveResponse{
		ID:         l.ID.String(),
		EmployeeID: l.EmployeeID.String(),
		Category:   l.Category,
		StartDate:  l.StartDate.Format("2006-01-02"),
		EndDate:    l.EndDate.Format("2006-01-02"),
		Duration:   l.Duration,
		Reason:     l.Reason,
		Status:     l.Status,
		CreatedBy:  l.CreatedBy.String(),
	}
	if l.ApprovedBy != nil {
		v := l.ApprovedBy.String()
		resp.ApprovedBy = &v
	}
	if l.ApprovedAt != nil {
		v := l.ApprovedAt.Format(time.RFC3339)
		resp.ApprovedAt = &v
	}
	resp.RejectionReason = l.RejectionReason
	return resp
}

func mapToListResponse(leaves []Leave) []LeaveResponse {
	resp := make([]LeaveResponse, len(leaves))
	for i, l := range leaves {
		resp[i] = mapToResponse(l)
	}
	return resp
}
