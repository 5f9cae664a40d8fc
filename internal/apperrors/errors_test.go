package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	partial := &PartialFailureError{Operation: "installment expansion", ParentID: "p1", CreatedIDs: []string{"p1"}, Expected: 3, Cause: errors.New("timeout")}

	tests := []struct {
		name string
		err  error
		want ErrorKind
	}{
		{"nil", nil, ""},
		{"validation", NewValidationError("amount", "must be greater than zero"), KindValidation},
		{"referential integrity", fmt.Errorf("%w: account in use", ErrReferentialIntegrity), KindReferentialIntegrity},
		{"not found", fmt.Errorf("account x: %w", ErrNotFound), KindNotFound},
		{"partial failure wins over persistence", partial, KindPartialFailure},
		{"duplicate", ErrDuplicate, KindDuplicate},
		{"unauthorized", ErrUnauthorized, KindUnauthorized},
		{"persistence", Persistence("save", errors.New("deadlock detected")), KindPersistence},
		{"network", Persistence("save", errors.New("dial tcp: connection refused")), KindNetwork},
		{"unknown", errors.New("boom"), KindUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.err))
		})
	}
}

func TestPersistence_PassesClassifiedErrorsThrough(t *testing.T) {
	notFound := fmt.Errorf("goal g1: %w", ErrNotFound)
	assert.Same(t, notFound, Persistence("find goal", notFound))
	assert.Nil(t, Persistence("find goal", nil))

	wrapped := Persistence("save", errors.New("deadlock detected"))
	assert.ErrorIs(t, wrapped, ErrPersistence)
	assert.Contains(t, wrapped.Error(), "save")
}

func TestPartialFailureError(t *testing.T) {
	cause := errors.New("connection reset")
	err := &PartialFailureError{Operation: "installment expansion", ParentID: "p1", CreatedIDs: []string{"p1", "c2"}, Expected: 3, Cause: cause}

	assert.ErrorIs(t, err, ErrPartialFailure)
	assert.ErrorIs(t, err, ErrPersistence)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "created 2 of 3 records")

	var target *PartialFailureError
	assert.True(t, errors.As(fmt.Errorf("create: %w", err), &target))
	assert.Equal(t, "p1", target.ParentID)
}

func TestValidationError_NamesField(t *testing.T) {
	err := NewValidationError("installments", "must be between %d and %d", 1, 48)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "validation error: installments: must be between 1 and 48", err.Error())
}

func TestAppError_KeepsPersistenceKind(t *testing.T) {
	err := NewAppError(500, "failed to commit transaction", Persistence("commit", errors.New("conn closed")))
	assert.ErrorIs(t, err, ErrPersistence)
	assert.Equal(t, KindPersistence, Classify(err))
	assert.Contains(t, err.Error(), "failed to commit transaction")
}
