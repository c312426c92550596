package keyring

import (
	cosmoskeyring "github.com/cosmos/cosmos-sdk/crypto/keyring"

	"github.com/sunnya97/cosmos-kit/pkg/wallet"
)

// Backends lists the keyring backends a wallet can be opened on.
var Backends = []string{
	cosmoskeyring.BackendOS,
	cosmoskeyring.BackendFile,
	cosmoskeyring.BackendTest,
	cosmoskeyring.BackendMemory,
}

var prettyNames = map[string]string{
	cosmoskeyring.BackendOS:     "Keyring (OS)",
	cosmoskeyring.BackendFile:   "Keyring (file)",
	cosmoskeyring.BackendTest:   "Keyring (test)",
	cosmoskeyring.BackendMemory: "Keyring (memory)",
}

// WalletName returns the wallet name of a keyring backend, e.g. "keyring-os".
func WalletName(backend string) wallet.Name {
	return wallet.Name("keyring-" + backend)
}

// Info describes the keyring wallet of backend. Keyring wallets live on the
// local machine and are never offered on mobile.
func Info(backend string) wallet.Info {
	prettyName, ok := prettyNames[backend]
	if !ok {
		prettyName = "Keyring (" + backend + ")"
	}
	return wallet.Info{
		Name:           WalletName(backend),
		PrettyName:     prettyName,
		Mode:           wallet.ModeExtension,
		MobileDisabled: true,
	}
}

func isSupportedBackend(backend string) bool {
	_, ok := prettyNames[backend]
	return ok
}
