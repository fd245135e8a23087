package response

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorIs(t *testing.T) {
	errNotFound := NewError(http.StatusNotFound, "session not found")

	wrapped := fmt.Errorf("load session: %w", errNotFound)

	assert.True(t, errors.Is(wrapped, errNotFound))
	assert.True(t, errors.Is(wrapped, NewError(http.StatusNotFound, "session not found")))
	assert.False(t, errors.Is(wrapped, NewError(http.StatusBadRequest, "session not found")))
	assert.False(t, errors.Is(errors.New("session not found"), errNotFound))
}

func TestStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "response error", err: NewError(http.StatusTooManyRequests, "slow down"), want: http.StatusTooManyRequests},
		{name: "wrapped response error", err: fmt.Errorf("x: %w", NewError(http.StatusGone, "gone")), want: http.StatusGone},
		{name: "plain error", err: errors.New("boom"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusCode(tt.err))
		})
	}
}
