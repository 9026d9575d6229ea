package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppErrorMessage(t *testing.T) {
	err := New(CodeInvalidInput, "node id is empty")
	assert.Equal(t, "[INVALID_INPUT] node id is empty", err.Error())

	wrapped := Wrap(CodeParseError, "bad snapshot", stderrors.New("unexpected EOF"))
	assert.Equal(t, "[PARSE_ERROR] bad snapshot: unexpected EOF", wrapped.Error())
}

func TestAppErrorIsMatchesByCode(t *testing.T) {
	err := New(CodeSnapshotNotFound, "snapshot snap-1 not found")

	assert.True(t, stderrors.Is(err, ErrSnapshotNotFound))
	assert.False(t, stderrors.Is(err, ErrNodeNotFound))
}

func TestAppErrorUnwrap(t *testing.T) {
	cause := stderrors.New("disk full")
	err := Wrap(CodeDatabaseError, "insert failed", cause)

	assert.True(t, stderrors.Is(err, cause))
	assert.Equal(t, cause, stderrors.Unwrap(err))
}

func TestIsSnapshotNotFoundThroughWrapping(t *testing.T) {
	inner := New(CodeSnapshotNotFound, "snapshot missing")
	outer := fmt.Errorf("loading failed: %w", inner)

	assert.True(t, IsSnapshotNotFound(outer))
	assert.False(t, IsSnapshotNotFound(stderrors.New("plain error")))
	assert.False(t, IsSnapshotNotFound(nil))
}

func TestIsProviderError(t *testing.T) {
	err := Wrap(CodeProviderError, "lookup failed", stderrors.New("timeout"))
	assert.True(t, IsProviderError(err))
	assert.False(t, IsProviderError(ErrParseError))
}

func TestGetErrorCode(t *testing.T) {
	assert.Equal(t, CodeDownloadError, GetErrorCode(New(CodeDownloadError, "fetch failed")))
	assert.Equal(t, CodeTimeout, GetErrorCode(fmt.Errorf("wrapped: %w", ErrTimeout)))
	assert.Equal(t, CodeUnknown, GetErrorCode(stderrors.New("anonymous")))
}
