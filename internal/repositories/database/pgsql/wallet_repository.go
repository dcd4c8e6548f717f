package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/wallet_ledger_app/internal/apperrors"
	"github.com/SscSPs/wallet_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/wallet_ledger_app/internal/core/ports/repositories"
	"github.com/SscSPs/wallet_ledger_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxWalletRepository struct {
	BaseRepository
}

func newPgxWalletRepository(pool *pgxpool.Pool) portsrepo.WalletRepository {
	return &PgxWalletRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.WalletRepository = (*PgxWalletRepository)(nil)

func (r *PgxWalletRepository) CreateWallet(ctx context.Context, wallet domain.Wallet) error {
	m := mapping.ToModelWallet(wallet)
	if m.Version == 0 {
		m.Version = 1
	}
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO wallets (`+walletColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		m.WalletID,
		m.OwnerID,
		m.BalanceMinor,
		m.CurrencyCode,
		m.Version,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: owner %s already has a wallet", apperrors.ErrDuplicate, m.OwnerID)
		}
		return classify(ctx, err, "failed to save wallet "+m.WalletID)
	}
	return nil
}

func (r *PgxWalletRepository) FindWalletByID(ctx context.Context, walletID string) (*domain.Wallet, error) {
	w, err := scanWallet(r.Pool.QueryRow(ctx, `SELECT `+walletColumns+` FROM wallets WHERE wallet_id = $1`, walletID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("wallet " + walletID)
		}
		return nil, classify(ctx, err, "failed to find wallet "+walletID)
	}
	return &w, nil
}

func (r *PgxWalletRepository) FindWalletByOwner(ctx context.Context, ownerID string) (*domain.Wallet, error) {
	w, err := scanWallet(r.Pool.QueryRow(ctx, `SELECT `+walletColumns+` FROM wallets WHERE owner_id = $1`, ownerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("wallet for owner " + ownerID)
		}
		return nil, classify(ctx, err, "failed to find wallet for owner "+ownerID)
	}
	return &w, nil
}
