package apperrors

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"nil", nil, ""},
		{"wrapped funds", fmt.Errorf("%w: wallet w1", ErrInsufficientFunds), KindInsufficientFunds},
		{"not found", NewNotFoundError("bill b1"), KindNotFound},
		{"unknown kind is validation", ErrUnknownOperationKind, KindValidation},
		{"context cancelled", context.Canceled, KindCancelled},
		{"app error unwraps", NewAppError(http.StatusServiceUnavailable, "db down", ErrStoreUnavailable), KindStoreUnavailable},
		{"plain error", errors.New("boom"), KindInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestFromKindRoundTrip(t *testing.T) {
	for _, k := range []Kind{KindAlreadyPaid, KindSelfTransfer, KindStoreUnavailable, KindCancelled} {
		assert.Equal(t, k, KindOf(FromKind(k)))
	}
	assert.Error(t, FromKind("SOMETHING_ELSE"))
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(ErrValidation))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(NewNotFoundError("wallet")))
	assert.Equal(t, http.StatusConflict, HTTPStatus(ErrAlreadyPaid))
	assert.Equal(t, http.StatusConflict, HTTPStatus(ErrOperationInProgress))
	assert.Equal(t, http.StatusUnprocessableEntity, HTTPStatus(ErrInsufficientFunds))
	assert.Equal(t, http.StatusUnprocessableEntity, HTTPStatus(ErrCurrencyMismatch))
	assert.Equal(t, http.StatusServiceUnavailable, HTTPStatus(ErrStoreUnavailable))
	assert.Equal(t, http.StatusTeapot, HTTPStatus(NewAppError(http.StatusTeapot, "x", nil)))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("boom")))
}
