package keyring

import (
	"bytes"
	"context"
	"io"
	"os"
	"sync"

	"github.com/cosmos/cosmos-sdk/codec"
	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	cryptocodec "github.com/cosmos/cosmos-sdk/crypto/codec"
	"github.com/cosmos/cosmos-sdk/crypto/hd"
	cosmoskeyring "github.com/cosmos/cosmos-sdk/crypto/keyring"
	cosmostypes "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/bech32"
	txtypes "github.com/cosmos/cosmos-sdk/types/tx"
	signingtypes "github.com/cosmos/cosmos-sdk/types/tx/signing"
	"github.com/tyler-smith/go-bip39"

	"github.com/sunnya97/cosmos-kit/pkg/logging"
	"github.com/sunnya97/cosmos-kit/pkg/polylog"
	"github.com/sunnya97/cosmos-kit/pkg/polylog/polyzero"
	"github.com/sunnya97/cosmos-kit/pkg/wallet"
)

var _ wallet.Client = (*Wallet)(nil)

// keyringCodec unmarshals the key records stored in the keyring.
var keyringCodec codec.Codec

func init() {
	reg := codectypes.NewInterfaceRegistry()
	cryptocodec.RegisterInterfaces(reg)
	keyringCodec = codec.NewProtoCodec(reg)
}

// Wallet exposes one keyring key to every chain it is enabled on.
type Wallet struct {
	logger   polylog.Logger
	backend  string
	appName  string
	dir      string
	input    io.Reader
	keyName  string
	mnemonic string
	keyring  cosmoskeyring.Keyring

	mu              sync.RWMutex
	enabledChainIDs map[string]struct{}
}

// NewWallet opens the keyring (unless one is given with WithKeyring) and
// imports the configured mnemonic if its key does not exist yet.
func NewWallet(opts ...WalletOption) (*Wallet, error) {
	w := &Wallet{
		logger:          polyzero.NewLogger(polyzero.WithLevel(polyzero.InfoLevel.ZerologLevel())),
		backend:         cosmoskeyring.BackendMemory,
		appName:         DefaultAppName,
		input:           os.Stdin,
		keyName:         DefaultKeyName,
		enabledChainIDs: make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}

	if w.keyName == "" {
		return nil, ErrKeyringEmptyKeyName
	}
	if !isSupportedBackend(w.backend) {
		return nil, ErrKeyringInvalidBackend.Wrapf("backend %q", w.backend)
	}

	w.logger = logging.ForComponent(w.logger, logging.ComponentKeyringWallet).With(
		logging.FieldBackend, w.backend,
		logging.FieldKeyName, w.keyName,
	)

	if w.keyring == nil {
		kr, err := cosmoskeyring.New(w.appName, w.backend, w.dir, w.input, keyringCodec)
		if err != nil {
			return nil, ErrKeyringUnableToOpenKeyring.Wrapf("backend %q [%v]", w.backend, err)
		}
		w.keyring = kr
	}

	if w.mnemonic != "" {
		if err := w.importMnemonic(); err != nil {
			return nil, err
		}
	}

	return w, nil
}

// Info describes the wallet for its backend.
func (w *Wallet) Info() wallet.Info {
	return Info(w.backend)
}

// Keyring returns the underlying keyring.
func (w *Wallet) Keyring() cosmoskeyring.Keyring {
	return w.keyring
}

func (w *Wallet) importMnemonic() error {
	if !bip39.IsMnemonicValid(w.mnemonic) {
		return ErrKeyringInvalidMnemonic
	}

	// Skip if already imported.
	if _, err := w.keyring.Key(w.keyName); err == nil {
		w.logger.Debug().Msg("key already imported, skipping mnemonic")
		return nil
	}

	record, err := w.keyring.NewAccount(
		w.keyName,
		w.mnemonic,
		cosmoskeyring.DefaultBIP39Passphrase,
		cosmostypes.FullFundraiserPath,
		hd.Secp256k1,
	)
	if err != nil {
		return ErrKeyringImport.Wrapf("key %q [%v]", w.keyName, err)
	}

	address, err := record.GetAddress()
	if err != nil {
		return ErrKeyringImport.Wrapf("key %q [%v]", w.keyName, err)
	}
	w.logger.Info().Str(logging.FieldAddress, address.String()).Msg("imported key from mnemonic")
	return nil
}

// Enable grants the chains access to the key. It fails with
// wallet.ErrWalletNotExist when the key is missing from the keyring.
func (w *Wallet) Enable(ctx context.Context, chainIDs ...string) error {
	if _, err := w.keyring.Key(w.keyName); err != nil {
		return wallet.ErrWalletNotExist.Wrapf("key %q in %s keyring [%v]", w.keyName, w.backend, err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	for _, chainID := range chainIDs {
		w.enabledChainIDs[chainID] = struct{}{}
	}
	return nil
}

// GetAccount returns the key as an account. The chain must be enabled.
func (w *Wallet) GetAccount(ctx context.Context, chainID string) (*wallet.Account, error) {
	if !w.isEnabled(chainID) {
		return nil, ErrKeyringChainNotEnabled.Wrapf("chain %s", chainID)
	}

	record, err := w.keyring.Key(w.keyName)
	if err != nil {
		return nil, wallet.ErrWalletNotExist.Wrapf("key %q in %s keyring [%v]", w.keyName, w.backend, err)
	}

	pubKey, err := record.GetPubKey()
	if err != nil {
		return nil, err
	}
	address, err := record.GetAddress()
	if err != nil {
		return nil, err
	}

	return &wallet.Account{
		Name:    record.Name,
		Algo:    pubKey.Type(),
		PubKey:  pubKey.Bytes(),
		Address: address,
	}, nil
}

// GetOfflineSigner returns a signer for chainID. The chain must be enabled.
func (w *Wallet) GetOfflineSigner(ctx context.Context, chainID string) (wallet.OfflineSigner, error) {
	if !w.isEnabled(chainID) {
		return nil, ErrKeyringChainNotEnabled.Wrapf("chain %s", chainID)
	}
	return &offlineSigner{wallet: w, chainID: chainID}, nil
}

func (w *Wallet) isEnabled(chainID string) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	_, ok := w.enabledChainIDs[chainID]
	return ok
}

// NewMnemonic generates a 24 word mnemonic.
func NewMnemonic() (string, error) {
	entropy, err := bip39.NewEntropy(256)
	if err != nil {
		return "", err
	}
	return bip39.NewMnemonic(entropy)
}

type offlineSigner struct {
	wallet  *Wallet
	chainID string
}

func (s *offlineSigner) GetAccounts(ctx context.Context) ([]*wallet.Account, error) {
	account, err := s.wallet.GetAccount(ctx, s.chainID)
	if err != nil {
		return nil, err
	}
	return []*wallet.Account{account}, nil
}

// SignDirect signs the serialized signDoc with the wallet key. signerAddress
// may use any bech32 prefix but must decode to the key's address.
func (s *offlineSigner) SignDirect(
	ctx context.Context,
	signerAddress string,
	signDoc *txtypes.SignDoc,
) (*wallet.DirectSignResponse, error) {
	if signDoc == nil {
		return nil, ErrKeyringSign.Wrap("nil sign doc")
	}
	if signDoc.ChainId != s.chainID {
		return nil, ErrKeyringSign.Wrapf("sign doc chain id %q, signer chain id %q", signDoc.ChainId, s.chainID)
	}

	account, err := s.wallet.GetAccount(ctx, s.chainID)
	if err != nil {
		return nil, err
	}

	_, signerBz, err := bech32.DecodeAndConvert(signerAddress)
	if err != nil {
		return nil, ErrKeyringSignerMismatch.Wrapf("address %q [%v]", signerAddress, err)
	}
	if !bytes.Equal(signerBz, account.Address) {
		return nil, ErrKeyringSignerMismatch.Wrapf("address %q", signerAddress)
	}

	signBytes, err := signDoc.Marshal()
	if err != nil {
		return nil, ErrKeyringSign.Wrapf("marshal sign doc [%v]", err)
	}

	signature, pubKey, err := s.wallet.keyring.SignByAddress(
		account.Address,
		signBytes,
		signingtypes.SignMode_SIGN_MODE_DIRECT,
	)
	if err != nil {
		return nil, ErrKeyringSign.Wrapf("address %q [%v]", signerAddress, err)
	}

	return &wallet.DirectSignResponse{
		Signed:    signDoc,
		PubKey:    pubKey.Bytes(),
		Signature: signature,
	}, nil
}
