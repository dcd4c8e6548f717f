package repositories

import (
	"testing"

	"github.com/SscSPs/wallet_ledger_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestSortKeys(t *testing.T) {
	keys := []EntityKey{
		{Type: domain.EntityBudget, ID: "a"},
		{Type: domain.EntityWallet, ID: "w9"},
		{Type: domain.EntityBill, ID: "b1"},
		{Type: domain.EntityWallet, ID: "w1"},
		{Type: domain.EntityWallet, ID: "w9"},
	}

	got := SortKeys(keys)

	assert.Equal(t, []EntityKey{
		{Type: domain.EntityWallet, ID: "w1"},
		{Type: domain.EntityWallet, ID: "w9"},
		{Type: domain.EntityBill, ID: "b1"},
		{Type: domain.EntityBudget, ID: "a"},
	}, got)
}

func TestSortKeys_SameOrderRegardlessOfInput(t *testing.T) {
	a := []EntityKey{{Type: domain.EntityWallet, ID: "x"}, {Type: domain.EntityWallet, ID: "y"}}
	b := []EntityKey{{Type: domain.EntityWallet, ID: "y"}, {Type: domain.EntityWallet, ID: "x"}}
	assert.Equal(t, SortKeys(a), SortKeys(b))
}
