package rpcclient

import (
	"encoding/json"
	"errors"
	"fmt"
)

type errorWithCode interface {
	Error() string  // returns the message
	ErrorCode() int // returns the code
}

// RPCError is the error object of a well-formed JSON-RPC 2.0 response. It is
// returned by Transport.Call when the endpoint answered the HTTP request but
// rejected the call itself.
type RPCError struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

func (err *RPCError) Error() string {
	if err.Message == "" {
		return fmt.Sprintf("json-rpc error %d", err.Code)
	}

	return err.Message
}

// ErrorCode returns the code of the error.
func (err *RPCError) ErrorCode() int { return err.Code }

type rpcRequest struct {
	ID      uint64 `json:"id"`
	JSONRPC string `json:"jsonrpc"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
}

func newRPCRequest(id uint64, method string, params []any) *rpcRequest {
	if params == nil {
		params = []any{}
	}
	return &rpcRequest{
		ID:      id,
		JSONRPC: "2.0",
		Method:  method,
		Params:  params,
	}
}

// rpcResponse keeps the result verbatim; the id is `any` because servers echo
// it back either as a number or a string.
type rpcResponse struct {
	ID      any             `json:"id"`
	JSONRPC string          `json:"jsonrpc"`
	Result  json.RawMessage `json:"result"`
	Error   *RPCError       `json:"error"`
}

// parseRPCResponse decodes a JSON-RPC response envelope. A body holding the
// bare JSON literal null is valid JSON but no envelope (unmarshalling it nils
// the pointer), so it is rejected instead of being handed to the caller.
func parseRPCResponse(data []byte) (*rpcResponse, error) {
	var resp *rpcResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, errors.New("response is not a json-rpc envelope")
	}
	return resp, nil
}
