package keyring

import (
	"io"

	cosmoskeyring "github.com/cosmos/cosmos-sdk/crypto/keyring"

	"github.com/sunnya97/cosmos-kit/pkg/polylog"
)

const (
	DefaultAppName = "walletkit"
	DefaultKeyName = "default"
)

// WalletOption configures a Wallet.
type WalletOption func(*Wallet)

// WithBackend selects the keyring backend: os, file, test or memory.
func WithBackend(backend string) WalletOption {
	return func(w *Wallet) { w.backend = backend }
}

func WithAppName(appName string) WalletOption {
	return func(w *Wallet) { w.appName = appName }
}

// WithDir sets the keyring root directory for the file and test backends.
func WithDir(dir string) WalletOption {
	return func(w *Wallet) { w.dir = dir }
}

// WithInput sets where the file backend reads its passphrase from.
func WithInput(input io.Reader) WalletOption {
	return func(w *Wallet) { w.input = input }
}

// WithKeyName selects the key used for every chain.
func WithKeyName(keyName string) WalletOption {
	return func(w *Wallet) { w.keyName = keyName }
}

// WithMnemonic imports the mnemonic under the key name unless the key already
// exists.
func WithMnemonic(mnemonic string) WalletOption {
	return func(w *Wallet) { w.mnemonic = mnemonic }
}

// WithKeyring uses an already opened keyring instead of opening one.
func WithKeyring(kr cosmoskeyring.Keyring) WalletOption {
	return func(w *Wallet) { w.keyring = kr }
}

func WithLogger(logger polylog.Logger) WalletOption {
	return func(w *Wallet) { w.logger = logger }
}
