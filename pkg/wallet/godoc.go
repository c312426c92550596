// Package wallet defines the types shared by every wallet backend and the
// contracts between wallet backends, chain wallet adapters and the wallet
// repository.
//
// A Client is a chain-agnostic wallet backend (a keyring, a remote wallet
// behind a bridge, ...). A ChainWallet binds one Client to one chain and owns
// the connection state for that pair.
package wallet
