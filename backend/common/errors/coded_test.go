package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodedError(t *testing.T) {
	err := New(ErrMediaNotFound, "media not found")
	assert.Equal(t, "media not found", err.Error())
	assert.Equal(t, ErrMediaNotFound, CodeOf(err))
	assert.True(t, IsNotFound(err))

	wrapped := fmt.Errorf("outer: %w", err)
	assert.Equal(t, ErrMediaNotFound, CodeOf(wrapped))
	assert.True(t, HasCode(wrapped, ErrMediaNotFound))
}

func TestWrapKeepsCause(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := Wrap(cause, ErrRemoteStore, "remote delete failed")
	assert.Equal(t, "remote delete failed: connection refused", err.Error())
	assert.Equal(t, ErrRemoteStore, CodeOf(err))
	assert.ErrorIs(t, err, cause)
	assert.False(t, IsNotFound(err))
}

func TestCodeOf_PlainError(t *testing.T) {
	assert.Equal(t, ErrInternalServer, CodeOf(fmt.Errorf("boom")))
	assert.False(t, HasCode(fmt.Errorf("boom"), ErrRemoteStore))
}
