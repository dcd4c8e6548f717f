package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/SscSPs/wallet_ledger_app/internal/apperrors"
	"github.com/SscSPs/wallet_ledger_app/internal/core/domain"
	"github.com/SscSPs/wallet_ledger_app/internal/utils/pagination"
)

func (s *Store) Append(ctx context.Context, record domain.TransactionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[record.Reference]; ok {
		return fmt.Errorf("%w: %s", apperrors.ErrDuplicateReference, record.Reference)
	}
	record.Status = domain.StatusPending
	record.FinalizedAt = nil
	s.records[record.Reference] = &record
	return nil
}

func (s *Store) FindByReference(ctx context.Context, reference string) (*domain.TransactionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[reference]
	if !ok {
		return nil, apperrors.NewNotFoundError("transaction record " + reference)
	}
	out := *rec
	return &out, nil
}

func (s *Store) MarkFailed(ctx context.Context, reference string, kind apperrors.Kind, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[reference]
	if !ok {
		return apperrors.NewNotFoundError("transaction record " + reference)
	}
	if rec.Status != domain.StatusPending {
		return fmt.Errorf("%w: %s is %s", apperrors.ErrInvalidStatusChange, reference, rec.Status)
	}
	updated := *rec
	updated.Status = domain.StatusFailed
	updated.ErrorKind = kind
	updated.FinalizedAt = &at
	s.records[reference] = &updated
	return nil
}

func (s *Store) FailStalePending(ctx context.Context, olderThan time.Time, at time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for ref, rec := range s.records {
		if rec.Status != domain.StatusPending || !rec.CreatedAt.Before(olderThan) {
			continue
		}
		updated := *rec
		updated.Status = domain.StatusFailed
		updated.ErrorKind = apperrors.KindStoreUnavailable
		updated.FinalizedAt = &at
		s.records[ref] = &updated
		n++
	}
	return n, nil
}

// sortedRecords returns copies of the records matching keep, newest first.
func (s *Store) sortedRecords(keep func(*domain.TransactionRecord) bool) []domain.TransactionRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.TransactionRecord, 0)
	for _, rec := range s.records {
		if keep(rec) {
			out = append(out, *rec)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].TransactionID > out[j].TransactionID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (s *Store) ListByOwner(ctx context.Context, ownerID string, params domain.ListParams) ([]domain.TransactionRecord, *string, error) {
	all := s.sortedRecords(func(r *domain.TransactionRecord) bool { return r.OwnerID == ownerID })

	start := 0
	if params.NextToken != "" {
		cursorAt, cursorID, err := pagination.DecodeToken(params.NextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
		}
		start = len(all)
		for i, r := range all {
			if pagination.IsAfter(r.CreatedAt, r.TransactionID, cursorAt, cursorID) {
				start = i
				break
			}
		}
	} else if params.Page > 1 {
		start = (params.Page - 1) * params.Limit
	}
	if start >= len(all) {
		return []domain.TransactionRecord{}, nil, nil
	}

	end := start + params.Limit
	if params.Limit <= 0 || end > len(all) {
		end = len(all)
	}
	page := all[start:end]
	if end < len(all) {
		last := page[len(page)-1]
		token := pagination.EncodeToken(last.CreatedAt, last.TransactionID)
		return page, &token, nil
	}
	return page, nil, nil
}

func (s *Store) ListOutgoing(ctx context.Context, ownerID, category, currency string, period domain.Period) ([]domain.TransactionRecord, error) {
	match := domain.Budget{OwnerID: ownerID, Category: category, Period: period, Limit: domain.Zero(currency)}
	return s.sortedRecords(func(r *domain.TransactionRecord) bool {
		return r.Status == domain.StatusCompleted && r.CountsTowards(match)
	}), nil
}
