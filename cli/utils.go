package cli

import (
	"encoding/json"
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/flashbots/multirpc/rpcclient"
	"github.com/holiman/uint256"
)

// clampAttempts converts the --request-attempts flag value. The first request
// always counts as one attempt, so anything below 1 (including negative flag
// values, which would underflow the uint) is raised to 1.
func clampAttempts(n int64) uint {
	if n < 1 {
		return 1
	}
	return uint(n)
}

// parseParams parses the --params flag, a JSON array like '["0x1", false]'
func parseParams(raw string) ([]any, error) {
	if raw == "" {
		return []any{}, nil
	}
	var params []any
	if err := json.Unmarshal([]byte(raw), &params); err != nil {
		return nil, err
	}
	return params, nil
}

// firstValue returns the single result value of an execution: the fallback
// value when set, otherwise the first successful parallel attempt's value.
func firstValue(result *rpcclient.ExecutionResult) json.RawMessage {
	if len(result.Data) > 0 {
		return result.Data
	}
	for _, attempt := range result.Responses {
		if attempt.Succeeded() {
			return attempt.Value
		}
	}
	return nil
}

// decodeHexQuantity decodes a string result like "0x4268" into a 256-bit number
func decodeHexQuantity(raw json.RawMessage) (*uint256.Int, error) {
	var quantity string
	if err := json.Unmarshal(raw, &quantity); err != nil {
		return nil, fmt.Errorf("result is not a string: %w", err)
	}
	value, err := hexutil.DecodeBig(quantity)
	if err != nil {
		return nil, err
	}
	ret, overflow := uint256.FromBig(value)
	if overflow {
		return nil, fmt.Errorf("quantity %s overflows uint256", quantity)
	}
	return ret, nil
}
