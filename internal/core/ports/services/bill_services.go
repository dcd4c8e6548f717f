package services

import (
	"context"

	"github.com/SscSPs/wallet_ledger_app/internal/core/domain"
	"github.com/SscSPs/wallet_ledger_app/internal/dto"
)

// BillReaderSvc defines read operations for bills.
type BillReaderSvc interface {
	ListBills(ctx context.Context, ownerID string, params dto.ListBillsParams) (*dto.ListBillsResponse, error)
}

// BillWriterSvc defines bill creation. Paying a bill is an operation, see OperationSvc.
type BillWriterSvc interface {
	CreateBill(ctx context.Context, ownerID string, req dto.CreateBillRequest) (*domain.Bill, error)
}

// BillSvcFacade combines all bill service interfaces.
type BillSvcFacade interface {
	BillReaderSvc
	BillWriterSvc
}
