package testwallet

import (
	"context"
	"crypto/sha256"
	"sync"

	txtypes "github.com/cosmos/cosmos-sdk/types/tx"

	"github.com/sunnya97/cosmos-kit/pkg/wallet"
)

var _ wallet.Client = (*Client)(nil)

// ClientOption configures a fake Client.
type ClientOption func(*Client)

// Client is a fake wallet.Client holding one account per chain ID.
type Client struct {
	mu sync.Mutex

	accounts      map[string]*wallet.Account
	enableErr     error
	getAccountErr error

	enabledChainIDs []string
	enableCalls     int
}

func NewClient(opts ...ClientOption) *Client {
	c := &Client{accounts: make(map[string]*wallet.Account)}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithAccount exposes account on chainID.
func WithAccount(chainID string, account *wallet.Account) ClientOption {
	return func(c *Client) { c.accounts[chainID] = account }
}

func WithEnableError(err error) ClientOption {
	return func(c *Client) { c.enableErr = err }
}

func WithGetAccountError(err error) ClientOption {
	return func(c *Client) { c.getAccountErr = err }
}

func (c *Client) Enable(ctx context.Context, chainIDs ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.enableCalls++
	if c.enableErr != nil {
		return c.enableErr
	}
	c.enabledChainIDs = append(c.enabledChainIDs, chainIDs...)
	return nil
}

func (c *Client) GetAccount(ctx context.Context, chainID string) (*wallet.Account, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.getAccountErr != nil {
		return nil, c.getAccountErr
	}
	account, ok := c.accounts[chainID]
	if !ok {
		return nil, wallet.ErrWalletNotExist.Wrapf("no account for chain %s", chainID)
	}
	return account, nil
}

func (c *Client) GetOfflineSigner(ctx context.Context, chainID string) (wallet.OfflineSigner, error) {
	account, err := c.GetAccount(ctx, chainID)
	if err != nil {
		return nil, err
	}
	return &offlineSigner{account: account}, nil
}

// EnabledChainIDs returns every chain ID successfully enabled so far.
func (c *Client) EnabledChainIDs() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.enabledChainIDs...)
}

func (c *Client) EnableCalls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.enableCalls
}

// offlineSigner "signs" by hashing the SignDoc body, which is enough for
// asserting that requests reach the signer.
type offlineSigner struct {
	account *wallet.Account
}

func (s *offlineSigner) GetAccounts(ctx context.Context) ([]*wallet.Account, error) {
	return []*wallet.Account{s.account}, nil
}

func (s *offlineSigner) SignDirect(
	ctx context.Context,
	signerAddress string,
	signDoc *txtypes.SignDoc,
) (*wallet.DirectSignResponse, error) {
	signature := sha256.Sum256(signDoc.BodyBytes)
	return &wallet.DirectSignResponse{
		Signed:    signDoc,
		PubKey:    s.account.PubKey,
		Signature: signature[:],
	}, nil
}
