package rpcclient

import (
	"encoding/json"
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// fingerprint reduces a raw JSON value to a short stable hash so two
// successful responses can be compared without keeping the full payloads
// around. The value is canonicalized first, so formatting and object key
// order do not affect the comparison. xxhash is non-cryptographic; collision
// avoidance is all that is needed here.
func fingerprint(raw json.RawMessage) (string, error) {
	canonical, err := canonicalJSON(raw)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%016x", xxhash.Sum64(canonical)), nil
}

// canonicalJSON decodes a raw value and re-marshals it. encoding/json sorts
// object keys at every nesting level, which is exactly the stable ordering
// the fingerprint needs. A nil value is treated as JSON null.
func canonicalJSON(raw json.RawMessage) ([]byte, error) {
	if len(raw) == 0 {
		raw = json.RawMessage("null")
	}
	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return nil, fmt.Errorf("could not canonicalize value: %w", err)
	}
	return json.Marshal(value)
}
