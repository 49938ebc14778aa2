package cli

import (
	"encoding/json"
	"testing"

	"github.com/flashbots/multirpc/rpcclient"
	"github.com/stretchr/testify/require"
)

func TestClampAttempts(t *testing.T) {
	// negative flag values must not underflow into a huge attempt budget
	require.Equal(t, uint(1), clampAttempts(-3))
	require.Equal(t, uint(1), clampAttempts(0))
	require.Equal(t, uint(1), clampAttempts(1))
	require.Equal(t, uint(7), clampAttempts(7))
}

func TestParseParams(t *testing.T) {
	// empty input means no params
	params, err := parseParams("")
	require.NoError(t, err)
	require.Equal(t, []any{}, params)

	params, err = parseParams("[]")
	require.NoError(t, err)
	require.Equal(t, []any{}, params)

	// mixed types
	params, err = parseParams(`["0x1", false, 5]`)
	require.NoError(t, err)
	require.Equal(t, []any{"0x1", false, float64(5)}, params)

	// not an array
	_, err = parseParams(`{"block":"0x1"}`)
	require.Error(t, err)

	_, err = parseParams("not json")
	require.Error(t, err)
}

func TestDecodeHexQuantity(t *testing.T) {
	// regular quantity
	quantity, err := decodeHexQuantity(json.RawMessage(`"0x10"`))
	require.NoError(t, err)
	require.Equal(t, "16", quantity.Dec())

	// zero
	quantity, err = decodeHexQuantity(json.RawMessage(`"0x0"`))
	require.NoError(t, err)
	require.Equal(t, "0", quantity.Dec())

	// not a string result
	_, err = decodeHexQuantity(json.RawMessage(`{"block":"0x1"}`))
	require.Error(t, err)

	// missing 0x prefix
	_, err = decodeHexQuantity(json.RawMessage(`"12345"`))
	require.Error(t, err)
}

func TestFirstValue(t *testing.T) {
	// fallback-shaped result carries the value directly
	result := &rpcclient.ExecutionResult{Success: true, Data: json.RawMessage(`"0x1"`)}
	require.Equal(t, json.RawMessage(`"0x1"`), firstValue(result))

	// parallel-shaped result: the first successful attempt wins
	result = &rpcclient.ExecutionResult{
		Success: true,
		Responses: []rpcclient.CallAttempt{
			{Status: rpcclient.StatusError, Error: "connection refused"},
			{Status: rpcclient.StatusSuccess, Value: json.RawMessage(`"0x2"`)},
		},
	}
	require.Equal(t, json.RawMessage(`"0x2"`), firstValue(result))

	// nothing to pick from
	result = &rpcclient.ExecutionResult{Success: false}
	require.Nil(t, firstValue(result))
}
