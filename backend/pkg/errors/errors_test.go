package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotFound_Message(t *testing.T) {
	err := NewNotFound("movie", 42)
	assert.Equal(t, "movie with identifier 42 does not exist", err.Error())
	assert.Equal(t, int64(42), err.ID)
	assert.True(t, IsNotFound(err))
	assert.False(t, IsValidation(err))
}

func TestIsErrorType_ThroughWrapping(t *testing.T) {
	err := fmt.Errorf("create movie: %w", NewValidationFailed("title is required"))

	assert.True(t, IsValidation(err))
	assert.False(t, IsNotFound(err))

	var vErr *ErrValidationFailed
	assert.True(t, stderrors.As(err, &vErr))
	assert.Equal(t, "title is required", vErr.Message)
}

func TestGraphQueryFailed_Unwraps(t *testing.T) {
	cause := stderrors.New("connection reset")
	err := NewGraphQueryFailed("fetch movie", cause)

	assert.ErrorIs(t, err, cause)
	assert.True(t, IsErrorType(err, ErrorTypeGraph))
	assert.Equal(t, "graph operation failed: fetch movie: connection reset", err.Error())
}

func TestIsRetryable(t *testing.T) {
	assert.False(t, IsRetryable(NewValidationFailed("bad")))
	assert.False(t, IsRetryable(NewNotFound("movie", 1)))
	assert.False(t, IsRetryable(NewGraphQueryFailed("search", stderrors.New("boom"))))
	assert.True(t, IsRetryable(fmt.Errorf("startup: %w", NewGraphConnectionFailed("bolt://x", stderrors.New("refused")))))
	assert.False(t, IsRetryable(nil))
}
