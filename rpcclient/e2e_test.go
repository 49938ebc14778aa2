package rpcclient

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/flashbots/go-utils/jsonrpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMockNode() *jsonrpc.MockJSONRPCServer {
	server := jsonrpc.NewMockJSONRPCServer()
	server.SetHandler("eth_chainId", func(req *jsonrpc.JSONRPCRequest) (any, error) {
		return "0x1", nil
	})
	return server
}

func TestE2E_Fallback(t *testing.T) {
	node1, node2 := setupMockNode(), setupMockNode()

	client, err := NewClient(ClientOpts{
		Log:      testLog,
		Strategy: StrategyFallback,
		RPCURLs:  []string{node1.URL, node2.URL},
	})
	require.NoError(t, err)

	result := client.Execute(context.Background(), "eth_chainId", nil)
	require.True(t, result.Success)
	require.Equal(t, json.RawMessage(`"0x1"`), result.Data)
	assert.Equal(t, node1.GetRequestCount("eth_chainId"), 1)
	assert.Equal(t, node2.GetRequestCount("eth_chainId"), 0)

	// ---
	// Make the first node fail, the second one answers
	// ---
	node1.SetHandler("eth_chainId", func(req *jsonrpc.JSONRPCRequest) (any, error) {
		return nil, &jsonrpc.JSONRPCError{Code: -32009, Message: "over quota"}
	})
	result = client.Execute(context.Background(), "eth_chainId", nil)
	require.True(t, result.Success)
	require.Equal(t, json.RawMessage(`"0x1"`), result.Data)
	require.Contains(t, result.Metadata.Responses[0].Error, "over quota")
	assert.Equal(t, node1.GetRequestCount("eth_chainId"), 2)
	assert.Equal(t, node2.GetRequestCount("eth_chainId"), 1)
}

func TestE2E_Parallel(t *testing.T) {
	node1, node2 := setupMockNode(), setupMockNode()

	client, err := NewClient(ClientOpts{
		Log:      testLog,
		Strategy: StrategyParallel,
		RPCURLs:  []string{node1.URL, node2.URL},
	})
	require.NoError(t, err)

	result := client.Execute(context.Background(), "eth_chainId", nil)
	require.True(t, result.Success)
	require.Len(t, result.Responses, 2)
	require.False(t, result.Metadata.HasInconsistencies)
	assert.Equal(t, node1.GetRequestCount("eth_chainId"), 1)
	assert.Equal(t, node2.GetRequestCount("eth_chainId"), 1)

	// ---
	// Let the nodes disagree about the chain id
	// ---
	node2.SetHandler("eth_chainId", func(req *jsonrpc.JSONRPCRequest) (any, error) {
		return "0x2", nil
	})
	result = client.Execute(context.Background(), "eth_chainId", nil)
	require.True(t, result.Success)
	require.True(t, result.Metadata.HasInconsistencies)
	assert.Equal(t, node1.GetRequestCount("eth_chainId"), 2)
	assert.Equal(t, node2.GetRequestCount("eth_chainId"), 2)
}

func TestE2E_StrategySwap(t *testing.T) {
	node1, node2 := setupMockNode(), setupMockNode()

	client, err := NewClient(ClientOpts{
		Log:      testLog,
		Strategy: StrategyFallback,
		RPCURLs:  []string{node1.URL, node2.URL},
	})
	require.NoError(t, err)

	result := client.Execute(context.Background(), "eth_chainId", nil)
	require.True(t, result.Success)
	assert.Equal(t, node1.GetRequestCount("eth_chainId"), 1)
	assert.Equal(t, node2.GetRequestCount("eth_chainId"), 0)

	// After the swap both nodes are queried
	require.NoError(t, client.UpdateStrategy(StrategyParallel))
	result = client.Execute(context.Background(), "eth_chainId", nil)
	require.True(t, result.Success)
	assert.Equal(t, node1.GetRequestCount("eth_chainId"), 2)
	assert.Equal(t, node2.GetRequestCount("eth_chainId"), 1)
}
