package services

import (
	portsrepo "github.com/SscSPs/wallet_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/wallet_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/wallet_ledger_app/internal/platform/config"
	"github.com/SscSPs/wallet_ledger_app/internal/utils/retry"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// publisher may be nil, in which case committed operations are not announced.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, publisher portssvc.EventPublisher) *portssvc.ServiceContainer {
	// The aggregator is shared so that budget creation and operations agree on spent.
	aggregator := NewBudgetAggregator(repos.LedgerStore, repos.Journal)

	opts := []OperationEngineOption{
		WithBudgetAggregator(aggregator),
		WithFinalizeRetryPolicy(retry.Policy{
			MaxRetries:      cfg.StoreCommitMaxRetries,
			InitialInterval: cfg.StoreCommitInitialBackoff,
			MaxInterval:     cfg.StoreCommitMaxBackoff,
		}),
	}
	if publisher != nil {
		opts = append(opts, WithEventPublisher(publisher))
	}

	return &portssvc.ServiceContainer{
		Operation:   NewOperationEngine(repos, opts...),
		Wallet:      NewWalletService(repos.WalletRepo),
		Bill:        NewBillService(repos.BillRepo),
		Budget:      NewBudgetService(repos, aggregator),
		Transaction: NewTransactionService(repos.Journal),
		Token:       NewTokenService(cfg),
	}
}
