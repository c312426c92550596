package wallet

import (
	"context"
	"time"

	cosmostypes "github.com/cosmos/cosmos-sdk/types"
)

// Name uniquely identifies a wallet backend, e.g. "keyring-os".
type Name string

// Mode describes how a wallet backend is reached.
type Mode string

const (
	// ModeExtension wallets live alongside the application (e.g. a local keyring).
	ModeExtension Mode = "extension"
	// ModeWalletConnect wallets are reached remotely through a bridge.
	ModeWalletConnect Mode = "wallet-connect"
)

// Info is the static description of a wallet backend.
type Info struct {
	Name       Name
	PrettyName string
	Mode       Mode
	// MobileDisabled wallets are hidden when the environment is mobile.
	MobileDisabled bool
	Logo           string
}

// Device is the kind of device the application runs on.
type Device string

const (
	DeviceDesktop Device = "desktop"
	DeviceMobile  Device = "mobile"
)

// Env describes the environment the application runs in.
type Env struct {
	Device Device
	OS     string
}

// IsMobile reports whether the environment is a mobile device.
func (env Env) IsMobile() bool {
	return env.Device == DeviceMobile
}

// SessionOptions bounds how long a connection stays alive.
type SessionOptions struct {
	// Duration after which a connected wallet is disconnected. Zero means
	// the session never expires.
	Duration time.Duration
	// OnExpire is called after an expired session has been disconnected.
	OnExpire func()
}

// Callbacks are lifecycle hooks invoked by a ChainWallet. Any of them may be nil.
type Callbacks struct {
	// BeforeConnect runs before the wallet client is enabled. A non-nil error
	// aborts the connection attempt.
	BeforeConnect    func(ctx context.Context) error
	AfterConnect     func(ctx context.Context)
	BeforeDisconnect func(ctx context.Context)
	AfterDisconnect  func(ctx context.Context)
}

// Account is the account a wallet exposes for a chain.
type Account struct {
	Name    string
	Algo    string
	PubKey  []byte
	Address cosmostypes.AccAddress
}
