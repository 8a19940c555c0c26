package rpc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewErrorCarriesCodeAndMessage(t *testing.T) {
	err := NewError(CodeInvalidRequest, "server is shutting down")
	require.Equal(t, CodeInvalidRequest, err.Code)
	require.Equal(t, "server is shutting down", err.Message)
	require.Equal(t, "server is shutting down", err.Error())
}

func TestErrorCodesAreDistinct(t *testing.T) {
	codes := []int{
		CodeParseError,
		CodeInvalidRequest,
		CodeMethodNotFound,
		CodeInvalidParams,
		CodeInternalError,
		CodeServerNotInitialized,
		CodeRequestCancelled,
	}
	seen := make(map[int]bool, len(codes))
	for _, c := range codes {
		require.False(t, seen[c], "duplicate error code %d", c)
		seen[c] = true
	}
}
