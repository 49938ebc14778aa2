package rpcclient

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

// testLog is used to log information in the test methods
var testLog = logrus.NewEntry(logrus.New())

// mockHandler produces the response for one JSON-RPC method: a result value
// (marshalled into the envelope, json.RawMessage passes through verbatim) or
// a JSON-RPC error.
type mockHandler func(req *rpcRequest) (any, *RPCError)

// mockNode is used to fake a JSON-RPC node's behavior. You can override the
// response for a method by registering a handler with SetHandler; methods
// without a handler answer with DefaultResult.
type mockNode struct {
	// Used to panic if impossible error happens
	t *testing.T

	// Used to count each request made to the node, whether it fails or not,
	// keyed by JSON-RPC method
	mu           sync.Mutex
	requestCount map[string]int
	handlers     map[string]mockHandler

	// DefaultResult is returned for methods without a registered handler
	DefaultResult json.RawMessage

	// StatusCode, when set, makes every request fail with that HTTP status
	// before any JSON-RPC handling
	StatusCode int

	// Server section
	Server        *httptest.Server
	ResponseDelay time.Duration
}

// newMockNode creates a mocked JSON-RPC node answering every method with
// "0x1" until handlers are registered
func newMockNode(t *testing.T) *mockNode {
	node := &mockNode{
		t:             t,
		requestCount:  make(map[string]int),
		handlers:      make(map[string]mockHandler),
		DefaultResult: json.RawMessage(`"0x1"`),
	}
	node.Server = httptest.NewServer(node.getRouter())
	return node
}

// getRouter registers the single JSON-RPC endpoint
func (m *mockNode) getRouter() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/", m.handleRPC).Methods(http.MethodPost)
	return r
}

// URL returns the address of the mocked node
func (m *mockNode) URL() string {
	return m.Server.URL
}

// GetRequestCount returns the number of requests made for a specific JSON-RPC method
func (m *mockNode) GetRequestCount(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.requestCount[method]
}

// SetHandler overrides the response for one JSON-RPC method
func (m *mockNode) SetHandler(method string, handler mockHandler) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[method] = handler
}

// handleRPC decodes the request envelope, counts it, and answers with the
// registered handler's value or DefaultResult
func (m *mockNode) handleRPC(w http.ResponseWriter, req *http.Request) {
	body, err := io.ReadAll(req.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rpcReq := new(rpcRequest)
	if err := json.Unmarshal(body, rpcReq); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	m.mu.Lock()
	m.requestCount[rpcReq.Method]++
	handler := m.handlers[rpcReq.Method]
	statusCode := m.StatusCode
	delay := m.ResponseDelay
	m.mu.Unlock()

	// Artificial delay, without holding the lock so concurrent requests overlap
	if delay > 0 {
		time.Sleep(delay)
	}

	if statusCode != 0 {
		http.Error(w, "mock node error", statusCode)
		return
	}

	response := rpcResponse{
		ID:      rpcReq.ID,
		JSONRPC: "2.0",
	}
	if handler != nil {
		value, rpcErr := handler(rpcReq)
		if rpcErr != nil {
			response.Error = rpcErr
		} else {
			result, err := json.Marshal(value)
			require.NoError(m.t, err)
			response.Result = result
		}
	} else {
		response.Result = m.DefaultResult
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	err = json.NewEncoder(w).Encode(response)
	require.NoError(m.t, err)
}
