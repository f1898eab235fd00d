package common

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestConvertMongoError(t *testing.T) {
	assert.Nil(t, ConvertMongoError(nil))

	err := ConvertMongoError(mongo.ErrNoDocuments)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, StatusNotFound, StatusOf(err))

	err = ConvertMongoError(fmt.Errorf("find: %w", mongo.ErrNoDocuments))
	assert.True(t, errors.Is(err, ErrNotFound))

	dup := mongo.WriteException{WriteErrors: mongo.WriteErrors{{Code: 11000, Message: "E11000 duplicate key"}}}
	err = ConvertMongoError(dup)
	assert.True(t, errors.Is(err, ErrDuplicate))
	assert.Equal(t, StatusConflict, StatusOf(err))

	err = ConvertMongoError(fmt.Errorf("server selection: %w", context.DeadlineExceeded))
	assert.Equal(t, StatusInternalServerError, StatusOf(err))
	assert.Contains(t, err.Error(), "server selection")

	err = ConvertMongoError(mongo.CommandError{Code: 2, Name: "BadValue", Message: "bad pipeline"})
	assert.Equal(t, "bad pipeline", err.Error())
	assert.Equal(t, StatusInternalServerError, StatusOf(err))

	err = ConvertMongoError(errors.New("socket closed"))
	assert.Equal(t, "socket closed", err.Error())
	assert.Equal(t, StatusInternalServerError, StatusOf(err))
}

func TestConvertMongoError_KeepsAppErrors(t *testing.T) {
	in := ErrValidation.WithMessage("name is required")
	out := ConvertMongoError(in)
	assert.Same(t, in, out)
}

func TestError_IsMatchesByCode(t *testing.T) {
	custom := ErrNotFound.WithMessage(MsgCustomerMissing)
	wrapped := fmt.Errorf("get customer: %w", custom)

	assert.True(t, errors.Is(wrapped, ErrNotFound))
	assert.False(t, errors.Is(wrapped, ErrValidation))
	assert.Equal(t, MsgCustomerMissing, custom.Error())
	assert.Equal(t, StatusNotFound, StatusOf(wrapped))
}

func TestStatusOf_PlainError(t *testing.T) {
	assert.Equal(t, StatusInternalServerError, StatusOf(errors.New("boom")))
}

func TestSentinels_HaveDistinctCodes(t *testing.T) {
	assert.False(t, errors.Is(ErrDuplicate, ErrConflict))
	assert.False(t, errors.Is(ErrConflict, ErrDuplicate))
	assert.False(t, errors.Is(ErrRequiredField, ErrValidation))
	assert.False(t, errors.Is(ErrValidation, ErrRequiredField))

	sentinels := []*Error{ErrValidation, ErrInvalidFormat, ErrRequiredField, ErrNotFound, ErrDuplicate, ErrConflict, ErrInternal}
	seen := map[string]bool{}
	for _, e := range sentinels {
		assert.False(t, seen[e.Code.Code], "duplicate code %s", e.Code.Code)
		seen[e.Code.Code] = true
	}
}

func TestConvertMongoError_NetworkErrorIs500(t *testing.T) {
	netErr := mongo.CommandError{Code: 6, Name: "HostUnreachable", Message: "connection refused", Labels: []string{"NetworkError"}}
	err := ConvertMongoError(netErr)
	assert.Equal(t, StatusInternalServerError, StatusOf(err))
	assert.Equal(t, netErr.Error(), err.Error())
}
