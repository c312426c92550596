package testcomet

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	abci "github.com/cometbft/cometbft/abci/types"
	"github.com/cometbft/cometbft/p2p"
	coretypes "github.com/cometbft/cometbft/rpc/core/types"
	rpctypes "github.com/cometbft/cometbft/rpc/jsonrpc/types"
)

const (
	// DefaultNetwork is the chain ID reported by the status method.
	DefaultNetwork = "testcomet-1"
	// DefaultHeight is the latest block height reported by the status method.
	DefaultHeight = int64(42)
)

// ABCIQueryHandler answers an abci_query for one path. Returning an error
// produces a failed (non-zero code) ABCI response.
type ABCIQueryHandler func(data []byte) ([]byte, error)

// Server is an in-process CometBFT JSON-RPC endpoint answering the health,
// status and abci_query methods over HTTP.
type Server struct {
	*httptest.Server

	mu           sync.Mutex
	network      string
	height       int64
	healthy      bool
	abciHandlers map[string]ABCIQueryHandler
	calls        map[string]int
}

// NewServer starts a healthy Server which is closed when the test ends.
func NewServer(t testing.TB) *Server {
	t.Helper()

	server := &Server{
		network:      DefaultNetwork,
		height:       DefaultHeight,
		healthy:      true,
		abciHandlers: make(map[string]ABCIQueryHandler),
		calls:        make(map[string]int),
	}
	server.Server = httptest.NewServer(http.HandlerFunc(server.handleRPC))
	t.Cleanup(server.Close)

	return server
}

// SetNetwork sets the chain ID reported by the status method.
func (s *Server) SetNetwork(network string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.network = network
}

// SetHeight sets the latest block height reported by the status method.
func (s *Server) SetHeight(height int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.height = height
}

// SetHealthy controls whether the health method succeeds.
func (s *Server) SetHealthy(healthy bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.healthy = healthy
}

// HandleABCIQuery registers the handler answering abci_query requests on path.
func (s *Server) HandleABCIQuery(path string, handler ABCIQueryHandler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.abciHandlers[path] = handler
}

// Calls returns how many times method was requested.
func (s *Server) Calls(method string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[method]
}

func (s *Server) handleRPC(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Error reading request body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	var req rpctypes.RPCRequest
	if err = json.Unmarshal(body, &req); err != nil {
		http.Error(w, "Invalid JSON request", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	s.calls[req.Method]++
	network, height, healthy := s.network, s.height, s.healthy
	s.mu.Unlock()

	var response rpctypes.RPCResponse
	switch req.Method {
	case "health":
		if !healthy {
			response = rpctypes.NewRPCErrorResponse(req.ID, 500, "node is unhealthy", "")
			break
		}
		response = rpctypes.NewRPCSuccessResponse(req.ID, &coretypes.ResultHealth{})
	case "status":
		response = rpctypes.NewRPCSuccessResponse(req.ID, &coretypes.ResultStatus{
			NodeInfo: p2p.DefaultNodeInfo{Network: network},
			SyncInfo: coretypes.SyncInfo{LatestBlockHeight: height},
		})
	case "abci_query":
		response = s.handleABCIQuery(req, height)
	default:
		response = rpctypes.NewRPCErrorResponse(req.ID, 500, "unsupported method", req.Method)
	}

	w.Header().Set("Content-Type", "application/json")
	if err = json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleABCIQuery(req rpctypes.RPCRequest, height int64) rpctypes.RPCResponse {
	params := make(map[string]json.RawMessage)
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return rpctypes.NewRPCErrorResponse(req.ID, 500, "invalid params", err.Error())
	}

	var path string
	if err := json.Unmarshal(params["path"], &path); err != nil {
		return rpctypes.NewRPCErrorResponse(req.ID, 500, "missing path param", string(req.Params))
	}

	data, err := hex.DecodeString(string(bytes.Trim(params["data"], `"`)))
	if err != nil {
		return rpctypes.NewRPCErrorResponse(req.ID, 500, "invalid data param", err.Error())
	}

	s.mu.Lock()
	handler, ok := s.abciHandlers[path]
	s.mu.Unlock()

	queryRes := abci.ResponseQuery{Height: height}
	switch {
	case !ok:
		queryRes.Code = 6
		queryRes.Codespace = "testcomet"
		queryRes.Log = "unknown query path: " + path
	default:
		value, handlerErr := handler(data)
		if handlerErr != nil {
			queryRes.Code = 1
			queryRes.Codespace = "testcomet"
			queryRes.Log = handlerErr.Error()
			break
		}
		queryRes.Value = value
	}

	return rpctypes.NewRPCSuccessResponse(req.ID, &coretypes.ResultABCIQuery{Response: queryRes})
}
