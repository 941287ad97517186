package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFatal(t *testing.T) {
	cause := errors.New("connection refused")

	err := Fatal("report writer", cause)
	require.True(t, IsFatal(err))
	require.ErrorIs(t, err, cause)
	require.EqualError(t, err, "fatal error in report writer: connection refused")

	wrapped := fmt.Errorf("supervisor: %w", err)
	require.True(t, IsFatal(wrapped))

	// Re-wrapping keeps the original component.
	again := Fatal("supervisor", err)
	var fe *FatalError
	require.True(t, errors.As(again, &fe))
	require.Equal(t, "report writer", fe.Component)
}

func TestFatal_Nil(t *testing.T) {
	require.NoError(t, Fatal("aggregator", nil))
	require.False(t, IsFatal(nil))
	require.False(t, IsFatal(errors.New("plain")))
}
