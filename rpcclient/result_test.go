package rpcclient

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCallAttemptSucceeded(t *testing.T) {
	ok := CallAttempt{Status: StatusSuccess}
	require.True(t, ok.Succeeded())

	failed := CallAttempt{Status: StatusError}
	require.False(t, failed.Succeeded())
}

func TestDecodeResult(t *testing.T) {
	t.Run("string value", func(t *testing.T) {
		result := &ExecutionResult{Success: true, Data: json.RawMessage(`"0x1"`)}
		value, err := DecodeResult[string](result)
		require.NoError(t, err)
		require.Equal(t, "0x1", value)
	})

	t.Run("struct value", func(t *testing.T) {
		type receipt struct {
			BlockNumber string `json:"blockNumber"`
			Status      string `json:"status"`
		}
		result := &ExecutionResult{Success: true, Data: json.RawMessage(`{"blockNumber":"0x10","status":"0x1"}`)}
		value, err := DecodeResult[receipt](result)
		require.NoError(t, err)
		require.Equal(t, receipt{BlockNumber: "0x10", Status: "0x1"}, value)
	})

	t.Run("absent data decodes to zero value", func(t *testing.T) {
		result := &ExecutionResult{Success: true}
		value, err := DecodeResult[string](result)
		require.NoError(t, err)
		require.Equal(t, "", value)
	})

	t.Run("null data decodes to zero value", func(t *testing.T) {
		result := &ExecutionResult{Success: true, Data: json.RawMessage("null")}
		value, err := DecodeResult[string](result)
		require.NoError(t, err)
		require.Equal(t, "", value)
	})

	t.Run("failed execution", func(t *testing.T) {
		result := &ExecutionResult{
			Success: false,
			Errors:  []CallAttempt{{URL: "http://localhost:8545", Status: StatusError, Error: "connection refused"}},
		}
		_, err := DecodeResult[string](result)
		require.Error(t, err)
		require.Contains(t, err.Error(), "execution failed")
	})

	t.Run("nil result", func(t *testing.T) {
		_, err := DecodeResult[string](nil)
		require.Error(t, err)
	})

	t.Run("type mismatch", func(t *testing.T) {
		result := &ExecutionResult{Success: true, Data: json.RawMessage(`"0x1"`)}
		_, err := DecodeResult[int](result)
		require.Error(t, err)
	})
}
