package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/wallet_ledger_app/internal/apperrors"
	"github.com/SscSPs/wallet_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/wallet_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/wallet_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/wallet_ledger_app/internal/utils/retry"
)

// operationEngine executes Transfer, BillPayment, Deposit and Withdrawal as all-or-nothing
// state transitions: INITIATED, VALIDATED, APPLIED, then COMMITTED or ABORTED.
type operationEngine struct {
	BaseService
	store      portsrepo.LedgerStore
	journal    portsrepo.Journal
	bills      portsrepo.BillRepository
	budgets    portsrepo.BudgetRepository
	aggregator *BudgetAggregator
	publisher  portssvc.EventPublisher
	policy     retry.Policy
}

// OperationEngineOption is a functional option for configuring the engine.
type OperationEngineOption func(*operationEngine)

// WithEventPublisher announces committed operations through p.
func WithEventPublisher(p portssvc.EventPublisher) OperationEngineOption {
	return func(e *operationEngine) { e.publisher = p }
}

// WithFinalizeRetryPolicy sets the policy used when recording failures in the journal.
func WithFinalizeRetryPolicy(p retry.Policy) OperationEngineOption {
	return func(e *operationEngine) { e.policy = p }
}

// WithEngineClock overrides the engine clock.
func WithEngineClock(now func() time.Time) OperationEngineOption {
	return func(e *operationEngine) { e.Now = now }
}

// WithBudgetAggregator shares an aggregator with other services.
func WithBudgetAggregator(a *BudgetAggregator) OperationEngineOption {
	return func(e *operationEngine) { e.aggregator = a }
}

// NewOperationEngine creates the operation engine over the given repositories.
func NewOperationEngine(repos portsrepo.RepositoryProvider, opts ...OperationEngineOption) portssvc.OperationSvc {
	e := &operationEngine{
		BaseService: newBaseService(),
		store:       repos.LedgerStore,
		journal:     repos.Journal,
		bills:       repos.BillRepo,
		budgets:     repos.BudgetRepo,
		policy:      retry.DefaultPolicy,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.aggregator == nil {
		e.aggregator = NewBudgetAggregator(repos.LedgerStore, repos.Journal)
	}
	return e
}

var _ portssvc.OperationSvc = (*operationEngine)(nil)

// Execute implements portssvc.OperationSvc.
func (e *operationEngine) Execute(ctx context.Context, ownerID string, req domain.OperationRequest) (*domain.OperationResult, error) {
	if ownerID == "" {
		return nil, fmt.Errorf("%w: owner is required", apperrors.ErrValidation)
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	logger := e.GetLogger(ctx).With(
		slog.String("reference", req.Reference),
		slog.String("operation", string(req.Kind)),
	)

	// INITIATED: an earlier execution of the same reference decides the outcome.
	prior, err := e.journal.FindByReference(ctx, req.Reference)
	switch {
	case err == nil:
		return e.replay(ownerID, req, prior)
	case !errors.Is(err, apperrors.ErrNotFound):
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrCancelled, err)
	}

	record, err := e.newRecord(ctx, ownerID, req)
	if err != nil {
		return nil, err
	}
	if err := e.journal.Append(ctx, record); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicateReference) {
			return nil, err
		}
		// Lost a race with a concurrent request carrying the same reference.
		prior, findErr := e.journal.FindByReference(ctx, req.Reference)
		if findErr != nil {
			return nil, findErr
		}
		return e.replay(ownerID, req, prior)
	}

	event, err := e.run(ctx, ownerID, req, record)
	if err != nil {
		logger.WarnContext(ctx, "Operation aborted", slog.String("error", err.Error()))
		return e.fail(ctx, req, record, err)
	}

	logger.InfoContext(ctx, "Operation committed",
		slog.String("transaction_id", record.TransactionID),
		slog.Int64("amount_minor_units", record.Amount.MinorUnits),
		slog.String("currency", record.Amount.Currency))
	e.publish(ctx, *event)

	return &domain.OperationResult{
		Reference:     req.Reference,
		Kind:          req.Kind,
		Status:        domain.StatusCompleted,
		TransactionID: record.TransactionID,
	}, nil
}

// newRecord builds the PENDING journal record for the source wallet. Bill payments read
// the bill once here for its amount and category; both are re-checked under lock.
func (e *operationEngine) newRecord(ctx context.Context, ownerID string, req domain.OperationRequest) (domain.TransactionRecord, error) {
	record := domain.TransactionRecord{
		TransactionID:  e.NewID(),
		WalletID:       req.SourceWalletID,
		OwnerID:        ownerID,
		Kind:           req.Kind.RecordKind(),
		Amount:         req.Amount,
		CounterpartyID: req.TargetWalletID,
		Reference:      req.Reference,
		Status:         domain.StatusPending,
		Category:       req.Category,
		Description:    req.Description,
		BillID:         req.BillID,
		CreatedAt:      e.Now(),
	}
	if req.Kind != domain.OperationBillPayment {
		return record, nil
	}

	bill, err := e.bills.FindBillByID(ctx, req.BillID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return domain.TransactionRecord{}, err
	}
	if err == nil && bill.OwnerID == ownerID {
		if record.Amount.Currency == "" {
			record.Amount = bill.Amount
		}
		// A bill payment always counts towards the bill's own category.
		record.Category = bill.Category
		if record.Description == "" {
			record.Description = bill.Name
		}
	}
	return record, nil
}

// replay turns an existing journal record into the caller's result.
func (e *operationEngine) replay(ownerID string, req domain.OperationRequest, prior *domain.TransactionRecord) (*domain.OperationResult, error) {
	if prior.OwnerID != ownerID || prior.Kind != req.Kind.RecordKind() {
		return nil, fmt.Errorf("%w: %s belongs to a different operation", apperrors.ErrDuplicateReference, req.Reference)
	}
	result := &domain.OperationResult{
		Reference:     prior.Reference,
		Kind:          req.Kind,
		Status:        prior.Status,
		TransactionID: prior.TransactionID,
		ErrorKind:     prior.ErrorKind,
		Replayed:      true,
	}
	if !prior.Status.IsTerminal() {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrOperationInProgress, prior.Reference)
	}
	if prior.Status == domain.StatusFailed {
		return result, fmt.Errorf("%w: reference %s failed earlier", apperrors.FromKind(prior.ErrorKind), prior.Reference)
	}
	return result, nil
}

// lockedState is everything a unit of work acquired for one operation.
type lockedState struct {
	source  *domain.Wallet
	target  *domain.Wallet
	bill    *domain.Bill
	budgets []domain.Budget
}

// run takes the operation from VALIDATED to COMMITTED. Any error leaves the store untouched.
func (e *operationEngine) run(ctx context.Context, ownerID string, req domain.OperationRequest, record domain.TransactionRecord) (*domain.OperationCommitted, error) {
	if req.Kind == domain.OperationTransfer && req.SourceWalletID == req.TargetWalletID {
		return nil, fmt.Errorf("%w: wallet %s", apperrors.ErrSelfTransfer, req.SourceWalletID)
	}
	if record.Amount.Currency == "" {
		// Bill payment whose bill could not be read for this owner.
		return nil, apperrors.NewNotFoundError("bill " + req.BillID)
	}

	uow, err := e.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	// Abort is a no-op once Commit has run.
	defer func() { _ = uow.Abort(context.WithoutCancel(ctx)) }()

	state, err := e.acquire(ctx, uow, req, lockSet(req))
	if err != nil {
		return nil, err
	}
	if err := e.validate(ownerID, req, record, state); err != nil {
		return nil, err
	}
	if err := e.acquireBudgets(ctx, uow, ownerID, record, state); err != nil {
		return nil, err
	}
	if err := e.stage(uow, ownerID, req, record, state); err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrCancelled, err)
	}
	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}

	event := &domain.OperationCommitted{
		Reference:      record.Reference,
		Kind:           req.Kind,
		TransactionID:  record.TransactionID,
		OwnerID:        ownerID,
		SourceWalletID: req.SourceWalletID,
		TargetWalletID: req.TargetWalletID,
		BillID:         req.BillID,
		Amount:         record.Amount,
		Category:       record.Category,
		CommittedAt:    e.Now(),
	}
	return event, nil
}

// lockSet lists the wallets and bill the operation touches, in canonical order.
// Budgets rank above both and are acquired afterwards by acquireBudgets.
func lockSet(req domain.OperationRequest) []portsrepo.EntityKey {
	keys := []portsrepo.EntityKey{{Type: domain.EntityWallet, ID: req.SourceWalletID}}
	switch req.Kind {
	case domain.OperationTransfer:
		keys = append(keys, portsrepo.EntityKey{Type: domain.EntityWallet, ID: req.TargetWalletID})
	case domain.OperationBillPayment:
		keys = append(keys, portsrepo.EntityKey{Type: domain.EntityBill, ID: req.BillID})
	}
	return portsrepo.SortKeys(keys)
}

func (e *operationEngine) acquire(ctx context.Context, uow portsrepo.UnitOfWork, req domain.OperationRequest, keys []portsrepo.EntityKey) (*lockedState, error) {
	state := &lockedState{}
	for _, key := range keys {
		switch key.Type {
		case domain.EntityWallet:
			w, err := uow.WalletForUpdate(ctx, key.ID)
			if err != nil {
				return nil, err
			}
			if key.ID == req.SourceWalletID {
				state.source = w
			} else {
				state.target = w
			}
		case domain.EntityBill:
			b, err := uow.BillForUpdate(ctx, key.ID)
			if err != nil {
				return nil, err
			}
			state.bill = b
		case domain.EntityBudget:
			b, err := uow.BudgetForUpdate(ctx, key.ID)
			if err != nil {
				return nil, err
			}
			state.budgets = append(state.budgets, *b)
		}
	}
	return state, nil
}

// acquireBudgets locks the budgets an outgoing record counts towards. The lookup runs
// while the source wallet is held: budget creation takes the same wallet before seeding,
// so a new budget is either found here or seeded after this operation has committed.
func (e *operationEngine) acquireBudgets(ctx context.Context, uow portsrepo.UnitOfWork, ownerID string, record domain.TransactionRecord, state *lockedState) error {
	if !record.Kind.IsOutgoing() || record.Category == "" {
		return nil
	}
	budgets, err := e.budgets.FindMatchingBudgets(ctx, ownerID, record.Category, record.Amount.Currency, record.CreatedAt)
	if err != nil {
		return err
	}
	keys := make([]portsrepo.EntityKey, 0, len(budgets))
	for _, b := range budgets {
		keys = append(keys, portsrepo.EntityKey{Type: domain.EntityBudget, ID: b.BudgetID})
	}
	for _, key := range portsrepo.SortKeys(keys) {
		b, err := uow.BudgetForUpdate(ctx, key.ID)
		if err != nil {
			return err
		}
		state.budgets = append(state.budgets, *b)
	}
	return nil
}

// validate applies the business checks against the locked state.
func (e *operationEngine) validate(ownerID string, req domain.OperationRequest, record domain.TransactionRecord, state *lockedState) error {
	source := state.source
	if source.OwnerID != ownerID {
		return apperrors.NewNotFoundError("wallet " + req.SourceWalletID)
	}
	if source.Balance.Currency != record.Amount.Currency {
		return fmt.Errorf("%w: wallet %s holds %s, operation is in %s",
			apperrors.ErrCurrencyMismatch, source.WalletID, source.Balance.Currency, record.Amount.Currency)
	}

	switch req.Kind {
	case domain.OperationTransfer:
		if state.target.Balance.Currency != record.Amount.Currency {
			return fmt.Errorf("%w: wallet %s holds %s, operation is in %s",
				apperrors.ErrCurrencyMismatch, state.target.WalletID, state.target.Balance.Currency, record.Amount.Currency)
		}
	case domain.OperationBillPayment:
		bill := state.bill
		if bill.OwnerID != ownerID {
			return apperrors.NewNotFoundError("bill " + req.BillID)
		}
		if bill.Status == domain.BillPaid {
			return fmt.Errorf("%w: bill %s", apperrors.ErrAlreadyPaid, bill.BillID)
		}
		if req.Category != "" && req.Category != bill.Category {
			return fmt.Errorf("%w: bill %s is in category %s, not %s",
				apperrors.ErrValidation, bill.BillID, bill.Category, req.Category)
		}
		cmp, err := bill.Amount.Compare(record.Amount)
		if err != nil {
			return err
		}
		if cmp != 0 {
			return fmt.Errorf("%w: bill %s is due %s, payment is %s",
				apperrors.ErrValidation, bill.BillID, bill.Amount.Format(), record.Amount.Format())
		}
	}

	if record.Kind.IsOutgoing() {
		remaining, err := source.Balance.Subtract(record.Amount)
		if err != nil {
			return err
		}
		if !remaining.IsNonNegative() {
			return fmt.Errorf("%w: wallet %s has %s, needs %s",
				apperrors.ErrInsufficientFunds, source.WalletID, source.Balance.Format(), record.Amount.Format())
		}
	}
	return nil
}

// stage computes the new state in memory and stages it on the unit of work.
func (e *operationEngine) stage(uow portsrepo.UnitOfWork, ownerID string, req domain.OperationRequest, record domain.TransactionRecord, state *lockedState) error {
	now := e.Now()

	source := *state.source
	var err error
	if record.Kind.IsOutgoing() {
		source.Balance, err = source.Balance.Subtract(record.Amount)
	} else {
		source.Balance, err = source.Balance.Add(record.Amount)
	}
	if err != nil {
		return err
	}
	source.Touch(ownerID, now)
	if err := uow.StageWallet(source); err != nil {
		return err
	}

	switch req.Kind {
	case domain.OperationTransfer:
		target := *state.target
		if target.Balance, err = target.Balance.Add(record.Amount); err != nil {
			return err
		}
		target.Touch(ownerID, now)
		if err := uow.StageWallet(target); err != nil {
			return err
		}
		if err := uow.StageRecord(domain.TransactionRecord{
			TransactionID:  e.NewID(),
			WalletID:       target.WalletID,
			OwnerID:        target.OwnerID,
			Kind:           domain.KindReceive,
			Amount:         record.Amount,
			CounterpartyID: source.WalletID,
			Reference:      domain.ReceiveReference(record.Reference),
			Status:         domain.StatusCompleted,
			Description:    record.Description,
			CreatedAt:      record.CreatedAt,
			FinalizedAt:    &now,
		}); err != nil {
			return err
		}
	case domain.OperationBillPayment:
		bill := *state.bill
		bill.Status = domain.BillPaid
		bill.PaidAt = &now
		bill.Touch(ownerID, now)
		if err := uow.StageBill(bill); err != nil {
			return err
		}
		if bill.Recurring {
			if err := uow.StageNewBill(bill.NextOccurrence(e.NewID(), now)); err != nil {
				return err
			}
		}
	}

	changed, err := e.aggregator.Apply(record, state.budgets)
	if err != nil {
		return err
	}
	for _, b := range changed {
		b.Touch(ownerID, now)
		if err := uow.StageBudget(b); err != nil {
			return err
		}
	}

	return uow.StageFinalize(record.Reference)
}

// fail records the abort in the journal and returns the FAILED result. The journal write
// outlives the caller's context so a cancelled request still leaves a terminal record.
func (e *operationEngine) fail(ctx context.Context, req domain.OperationRequest, record domain.TransactionRecord, cause error) (*domain.OperationResult, error) {
	if (errors.Is(cause, context.Canceled) || errors.Is(cause, context.DeadlineExceeded)) && !errors.Is(cause, apperrors.ErrCancelled) {
		cause = fmt.Errorf("%w: %w", apperrors.ErrCancelled, cause)
	}
	kind := apperrors.KindOf(cause)
	detached := context.WithoutCancel(ctx)

	err := e.policy.Do(detached, "mark failed", func(ctx context.Context) error {
		return e.journal.MarkFailed(ctx, record.Reference, kind, e.Now())
	})
	if errors.Is(err, apperrors.ErrInvalidStatusChange) {
		// The record was finalized by someone else: either our own commit landed despite
		// the reported error, or the stale sweeper got there first.
		current, findErr := e.journal.FindByReference(detached, record.Reference)
		switch {
		case findErr != nil:
			e.LogError(ctx, findErr, "Failed to re-read finalized record", slog.String("reference", record.Reference))
		case current.Status == domain.StatusCompleted:
			e.LogWarn(ctx, "Commit reported failure but record is completed",
				slog.String("reference", record.Reference), slog.String("error", cause.Error()))
			return &domain.OperationResult{
				Reference:     record.Reference,
				Kind:          req.Kind,
				Status:        domain.StatusCompleted,
				TransactionID: record.TransactionID,
			}, nil
		case current.Status == domain.StatusFailed:
			// Report what the journal holds so a replay of this reference answers the same.
			e.LogWarn(ctx, "Record was failed before this attempt could record its own failure",
				slog.String("reference", record.Reference),
				slog.String("stored_error_kind", string(current.ErrorKind)),
				slog.String("error", cause.Error()))
			return &domain.OperationResult{
				Reference:     record.Reference,
				Kind:          req.Kind,
				Status:        domain.StatusFailed,
				TransactionID: record.TransactionID,
				ErrorKind:     current.ErrorKind,
			}, fmt.Errorf("%w: reference %s failed", apperrors.FromKind(current.ErrorKind), record.Reference)
		}
	} else if err != nil {
		e.LogError(ctx, err, "Failed to record operation failure, leaving it to the pending sweeper",
			slog.String("reference", record.Reference))
	}

	return &domain.OperationResult{
		Reference:     record.Reference,
		Kind:          req.Kind,
		Status:        domain.StatusFailed,
		TransactionID: record.TransactionID,
		ErrorKind:     kind,
	}, cause
}

// publish announces a committed operation. Failures are logged, never returned: the
// operation is already durable.
func (e *operationEngine) publish(ctx context.Context, event domain.OperationCommitted) {
	if e.publisher == nil {
		return
	}
	if err := e.publisher.PublishOperationCommitted(context.WithoutCancel(ctx), event); err != nil {
		e.LogError(ctx, err, "Failed to publish operation event",
			slog.String("reference", event.Reference))
	}
}
