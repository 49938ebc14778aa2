package rpcclient

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFingerprintKeyOrderIndependent(t *testing.T) {
	a, err := fingerprint(json.RawMessage(`{"a":1,"b":[{"y":2,"x":1}]}`))
	require.NoError(t, err)
	b, err := fingerprint(json.RawMessage(`{"b":[{"x":1,"y":2}],"a":1}`))
	require.NoError(t, err)
	require.Equal(t, a, b)
	require.Len(t, a, 16)
}

func TestFingerprintDetectsDifferences(t *testing.T) {
	a, err := fingerprint(json.RawMessage(`"0x1"`))
	require.NoError(t, err)
	b, err := fingerprint(json.RawMessage(`"0x2"`))
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}

func TestFingerprintArrayOrderSensitive(t *testing.T) {
	a, err := fingerprint(json.RawMessage(`[1,2,3]`))
	require.NoError(t, err)
	b, err := fingerprint(json.RawMessage(`[3,2,1]`))
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}

func TestFingerprintNull(t *testing.T) {
	// An absent result and an explicit null are the same value
	a, err := fingerprint(nil)
	require.NoError(t, err)
	b, err := fingerprint(json.RawMessage("null"))
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestFingerprintWhitespaceInsensitive(t *testing.T) {
	a, err := fingerprint(json.RawMessage(`{"a": 1,  "b": 2}`))
	require.NoError(t, err)
	b, err := fingerprint(json.RawMessage(`{"a":1,"b":2}`))
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestFingerprintInvalidJSON(t *testing.T) {
	_, err := fingerprint(json.RawMessage("{invalid"))
	require.Error(t, err)
}
