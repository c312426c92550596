package bridge

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"net/url"
	"strings"
	"sync"
	"time"

	rpctypes "github.com/cometbft/cometbft/rpc/jsonrpc/types"
	cosmostypes "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/bech32"
	txtypes "github.com/cosmos/cosmos-sdk/types/tx"
	"github.com/gorilla/websocket"

	"github.com/sunnya97/cosmos-kit/pkg/logging"
	"github.com/sunnya97/cosmos-kit/pkg/polylog"
	"github.com/sunnya97/cosmos-kit/pkg/polylog/polyzero"
	"github.com/sunnya97/cosmos-kit/pkg/retry"
	"github.com/sunnya97/cosmos-kit/pkg/wallet"
)

const (
	wsPrefix  = "ws://"
	wssPrefix = "wss://"
)

var _ wallet.Client = (*Wallet)(nil)

// Wallet is a wallet.Client backed by a remote wallet reachable through a
// websocket bridge. The connection is dialed on the first request and redialed
// after a transport failure.
type Wallet struct {
	logger            polylog.Logger
	bridgeURL         string
	info              wallet.Info
	requestTimeout    time.Duration
	dialRetryStrategy retry.RetryStrategyFunc

	// mu serializes requests; a request owns the connection until its reply
	// arrives or it fails.
	mu     sync.Mutex
	conn   *websocket.Conn
	nextID int
	closed bool
}

// NewWallet validates bridgeURL and returns a wallet which is not connected yet.
func NewWallet(bridgeURL string, opts ...WalletOption) (*Wallet, error) {
	if err := validateBridgeURL(bridgeURL); err != nil {
		return nil, err
	}

	w := &Wallet{
		logger:    polyzero.NewLogger(polyzero.WithLevel(polyzero.InfoLevel.ZerologLevel())),
		bridgeURL: bridgeURL,
		info: wallet.Info{
			Name:       DefaultWalletName,
			PrettyName: DefaultPrettyName,
			Mode:       wallet.ModeWalletConnect,
		},
		requestTimeout:    DefaultRequestTimeout,
		dialRetryStrategy: defaultDialRetryStrategy,
	}
	for _, opt := range opts {
		opt(w)
	}

	w.logger = logging.ForComponent(w.logger, logging.ComponentBridgeWallet).With(
		logging.FieldWallet, string(w.info.Name),
		logging.FieldBridgeURL, w.bridgeURL,
	)
	return w, nil
}

func validateBridgeURL(bridgeURL string) error {
	if !strings.HasPrefix(bridgeURL, wsPrefix) && !strings.HasPrefix(bridgeURL, wssPrefix) {
		return ErrBridgeInvalidURL.Wrapf("%q: scheme must be ws or wss", bridgeURL)
	}
	parsed, err := url.Parse(bridgeURL)
	if err != nil {
		return ErrBridgeInvalidURL.Wrapf("%q [%v]", bridgeURL, err)
	}
	if parsed.Host == "" {
		return ErrBridgeInvalidURL.Wrapf("%q: missing host", bridgeURL)
	}
	return nil
}

// Info describes the bridge wallet. Bridged wallets are the ones offered on
// mobile, so they are never mobile-disabled.
func (w *Wallet) Info() wallet.Info {
	return w.info
}

// Enable asks the remote wallet to grant access to chainIDs.
func (w *Wallet) Enable(ctx context.Context, chainIDs ...string) error {
	return w.call(ctx, MethodEnable, EnableParams{ChainIDs: chainIDs}, nil)
}

// GetAccount returns the first account the remote wallet exposes for chainID.
func (w *Wallet) GetAccount(ctx context.Context, chainID string) (*wallet.Account, error) {
	accounts, err := w.getAccounts(ctx, chainID)
	if err != nil {
		return nil, err
	}
	if len(accounts) == 0 {
		return nil, wallet.ErrWalletNotExist.Wrapf("bridge returned no account for chain %s", chainID)
	}
	return accounts[0], nil
}

// GetOfflineSigner returns a signer which forwards sign requests for chainID
// to the remote wallet.
func (w *Wallet) GetOfflineSigner(ctx context.Context, chainID string) (wallet.OfflineSigner, error) {
	return &offlineSigner{wallet: w, chainID: chainID}, nil
}

// Close closes the bridge connection. It waits for an in-flight request and
// is safe to call more than once.
func (w *Wallet) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.closed = true
	if w.conn == nil {
		return nil
	}

	closeMsg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	_ = w.conn.WriteControl(websocket.CloseMessage, closeMsg, time.Now().Add(time.Second))
	err := w.conn.Close()
	w.conn = nil
	return err
}

func (w *Wallet) getAccounts(ctx context.Context, chainID string) ([]*wallet.Account, error) {
	var accountsData []AccountData
	if err := w.call(ctx, MethodGetAccounts, GetAccountsParams{ChainID: chainID}, &accountsData); err != nil {
		return nil, err
	}

	accounts := make([]*wallet.Account, 0, len(accountsData))
	for _, data := range accountsData {
		_, addressBz, err := bech32.DecodeAndConvert(data.Address)
		if err != nil {
			return nil, ErrBridgeDecode.Wrapf("account address %q [%v]", data.Address, err)
		}
		accounts = append(accounts, &wallet.Account{
			Name:    data.Name,
			Algo:    data.Algo,
			PubKey:  data.PubKey,
			Address: cosmostypes.AccAddress(addressBz),
		})
	}
	return accounts, nil
}

// call sends a JSON-RPC request and decodes the matching reply into result,
// which may be nil. Messages with other IDs are skipped.
func (w *Wallet) call(ctx context.Context, method string, params, result any) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrBridgeClosed
	}

	paramsBz, err := json.Marshal(params)
	if err != nil {
		return ErrBridgeDecode.Wrapf("encoding %s params [%v]", method, err)
	}

	conn, err := w.connLocked(ctx)
	if err != nil {
		return err
	}

	w.nextID++
	id := rpctypes.JSONRPCIntID(w.nextID)
	reqBz, err := json.Marshal(rpctypes.RPCRequest{
		JSONRPC: "2.0",
		ID:      id,
		Method:  method,
		Params:  paramsBz,
	})
	if err != nil {
		return ErrBridgeDecode.Wrapf("encoding %s request [%v]", method, err)
	}

	deadline := time.Now().Add(w.requestTimeout)
	_ = conn.SetWriteDeadline(deadline)
	_ = conn.SetReadDeadline(deadline)

	// Unblock the read below as soon as ctx is done.
	stop := context.AfterFunc(ctx, func() {
		_ = conn.SetReadDeadline(time.Now())
	})
	defer stop()

	logger := w.logger.With(logging.FieldMethod, method)
	logger.Debug().Msgf("sending request %d", w.nextID)

	if err = conn.WriteMessage(websocket.TextMessage, reqBz); err != nil {
		return w.transportErrLocked(ctx, method, err)
	}

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			return w.transportErrLocked(ctx, method, err)
		}

		var resp rpctypes.RPCResponse
		if err = json.Unmarshal(msg, &resp); err != nil {
			logger.Debug().Err(err).Msg("skipping undecodable bridge message")
			continue
		}
		if resp.ID != id {
			logger.Debug().Msgf("skipping bridge message with id %v", resp.ID)
			continue
		}

		if resp.Error != nil {
			return rpcError(method, resp.Error)
		}
		if result == nil {
			return nil
		}
		if err = json.Unmarshal(resp.Result, result); err != nil {
			return ErrBridgeDecode.Wrapf("%s result [%v]", method, err)
		}
		return nil
	}
}

// connLocked returns the open connection, dialing one if needed.
func (w *Wallet) connLocked(ctx context.Context) (*websocket.Conn, error) {
	if w.conn != nil {
		return w.conn, nil
	}

	dialer := *websocket.DefaultDialer
	if strings.HasPrefix(w.bridgeURL, wssPrefix) {
		dialer.TLSClientConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}

	attempt := 0
	conn, err := retry.Call(ctx, func(ctx context.Context) (*websocket.Conn, error) {
		attempt++

		conn, resp, err := dialer.DialContext(ctx, w.bridgeURL, nil)
		if resp != nil && resp.Body != nil {
			_ = resp.Body.Close()
		}
		if err != nil {
			w.logger.Debug().Err(err).Msgf("dial attempt %d failed", attempt)
			return nil, err
		}
		return conn, nil
	}, w.dialRetryStrategy)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	if err != nil {
		return nil, ErrBridgeDial.Wrapf("%s after %d attempt(s) [%v]", w.bridgeURL, attempt, err)
	}

	w.logger.Info().Msg("connected to wallet bridge")
	w.conn = conn
	return conn, nil
}

// transportErrLocked drops the broken connection so the next request redials.
func (w *Wallet) transportErrLocked(ctx context.Context, method string, err error) error {
	if w.conn != nil {
		_ = w.conn.Close()
		w.conn = nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	w.logger.Warn().Err(err).Str(logging.FieldMethod, method).Msg("bridge connection failed")
	return ErrBridgeTransport.Wrapf("%s [%v]", method, err)
}

func rpcError(method string, rpcErr *rpctypes.RPCError) error {
	if rpcErr.Code == CodeUserRejected {
		return wallet.ErrWalletRejected.Wrapf("%s: %s", method, rpcErr.Message)
	}
	return ErrBridgeRPC.Wrapf("%s: code %d: %s", method, rpcErr.Code, rpcErr.Message)
}

type offlineSigner struct {
	wallet  *Wallet
	chainID string
}

func (s *offlineSigner) GetAccounts(ctx context.Context) ([]*wallet.Account, error) {
	return s.wallet.getAccounts(ctx, s.chainID)
}

// SignDirect forwards signDoc to the remote wallet for approval and signing.
func (s *offlineSigner) SignDirect(
	ctx context.Context,
	signerAddress string,
	signDoc *txtypes.SignDoc,
) (*wallet.DirectSignResponse, error) {
	if signDoc == nil {
		return nil, ErrBridgeDecode.Wrap("nil sign doc")
	}

	params := SignDirectParams{
		ChainID:       s.chainID,
		SignerAddress: signerAddress,
		SignDoc:       signDocFromProto(signDoc),
	}
	var result SignDirectResult
	if err := s.wallet.call(ctx, MethodSignDirect, params, &result); err != nil {
		return nil, err
	}

	return &wallet.DirectSignResponse{
		Signed:    result.Signed.toProto(),
		PubKey:    result.PubKey,
		Signature: result.Signature,
	}, nil
}
