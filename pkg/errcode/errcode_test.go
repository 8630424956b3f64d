package errcode

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_IsMatchesByCode(t *testing.T) {
	wrapped := fmt.Errorf("%w: group id %q", ErrInvalidGroupID, "abc")

	assert.ErrorIs(t, wrapped, ErrInvalidGroupID)
	assert.ErrorIs(t, New(GroupNotFound, "group 42 not found"), ErrGroupNotFound)
	assert.NotErrorIs(t, wrapped, ErrGroupNotFound)
}

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Code
	}{
		{name: "sentinel", err: ErrSenderBlockedInGroup, want: SenderBlockedInGroup},
		{name: "wrapped", err: fmt.Errorf("store: %w", ErrAnonymousNotAllowed), want: AnonymousNotAllowed},
		{name: "infrastructure", err: errors.New("connection refused"), want: ""},
		{name: "nil", err: nil, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CodeOf(tt.err))
		})
	}
}

func TestIsInputError(t *testing.T) {
	assert.True(t, IsInputError(ErrRecipientMissing))
	assert.True(t, IsInputError(fmt.Errorf("%w: x", ErrInvalidGroupID)))
	assert.False(t, IsInputError(ErrGroupMessagingDisabled))
	assert.False(t, IsInputError(errors.New("boom")))
	assert.True(t, IsBusiness(ErrGroupMessagingDisabled))
}
