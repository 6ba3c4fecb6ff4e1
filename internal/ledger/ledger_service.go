package ledger

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"go-leavedesk/internal/domain"
	ledgererrors "go-leavedesk/internal/ledger/errors"
	"go-leavedesk/internal/shared/apperror"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	balancesKeyPrefix = "ledger:balances:"
	balancesCacheTTL  = 5 * time.Minute
)

func BalancesCacheKey(employeeID string) string {
	return balancesKeyPrefix + employeeID
}

//go:generate mockgen -source=ledger_service.go -destination=mock/ledger_service_mock.go -package=mock
type Service interface {
	// GetBalances returns the per-category counters for one employee.
	// Employees may only read their own ledger.
	GetBalances(ctx context.Context, actorID, role, employeeID string) ([]BalanceResponse, error)
	GetBalance(ctx context.Context, employeeID, category string) (BalanceResponse, error)
	// ReserveCheck is the advisory remaining >= days check used at submit
	// time. It holds no reservation; approval re-checks authoritatively.
	ReserveCheck(ctx context.Context, employeeID, category string, days int) (bool, error)
	// InvalidateCache drops the cached balances after a committed usage.
	InvalidateCache(ctx context.Context, employeeID string)
}

type service struct {
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("ledger.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("ledger.service")
	}
	return &service{repo: repo, rdb: rdb, sf: &singleflight.Group{}, logger: l}
}

func (s *service) GetBalances(ctx context.Context, actorID, role, employeeID string) ([]BalanceResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, ledgererrors.ErrInvalidEmployeeID
	}
	if !domain.CanViewEmployee(actorID, role, employeeID) {
		s.logger.Warn("balances access denied",
			zap.String("actor_id", actorID),
			zap.String("employee_id", employeeID),
		)
		return nil, apperror.ErrForbidden
	}

	if cached, ok := s.cachedBalances(ctx, employeeID); ok {
		return cached, nil
	}

	// Collapse concurrent cache misses for the same employee into one query.
	v, err, _ := s.sf.Do(employeeID, func() (any, error) {
		balances, err := s.repo.FindByEmployee(ctx, employeeID)
		if err != nil {
			return nil, err
		}
		if len(balances) == 0 {
			return nil, ledgererrors.ErrBalanceNotFound
		}
		resp := mapToListResponse(balances)
		s.storeBalances(ctx, employeeID, resp)
		return resp, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]BalanceResponse), nil
}

func (s *service) GetBalance(ctx context.Context, employeeID, category string) (BalanceResponse, error) {
	if !IsValidCategory(category) {
		return BalanceResponse{}, ledgererrors.ErrInvalidCategory
	}

	b, err := s.repo.Get(ctx, employeeID, category)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return BalanceResponse{}, ledgererrors.ErrBalanceNotFound
		}
		return BalanceResponse{}, err
	}
	return mapToResponse(*b), nil
}

func (s *service) ReserveCheck(ctx context.Context, employeeID, category string, days int) (bool, error) {
	b, err := s.GetBalance(ctx, employeeID, category)
	if err != nil {
		return false, err
	}
	return b.Remaining >= days, nil
}

func (s *service) InvalidateCache(ctx context.Context, employeeID string) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, BalancesCacheKey(employeeID)).Err(); err != nil {
		s.logger.Warn("invalidate balances cache failed",
			zap.String("employee_id", employeeID),
			zap.Error(err),
		)
	}
}

func (s *service) cachedBalances(ctx context.Context, employeeID string) ([]BalanceResponse, bool) {
	if s.rdb == nil {
		return nil, false
	}
	val, err := s.rdb.Get(ctx, BalancesCacheKey(employeeID)).Result()
	if err != nil {
		return nil, false
	}
	var resp []BalanceResponse
	if err := json.Unmarshal([]byte(val), &resp); err != nil {
		return nil, false
	}
	return resp, true
}

func (s *service) storeBalances(ctx context.Context, employeeID string, resp []BalanceResponse) {
	if s.rdb == nil {
		return
	}
	payload, err := json.Marshal(resp)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, BalancesCacheKey(employeeID), payload, balancesCacheTTL).Err(); err != nil {
		s.logger.Warn("store balances cache failed",
			zap.String("employee_id", employeeID),
			zap.Error(err),
		)
	}
}
