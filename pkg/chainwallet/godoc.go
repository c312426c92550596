// Package chainwallet implements wallet.ChainWallet: one wallet backend bound
// to one chain.
//
// A ChainWallet owns the connection state machine of that pair
// (disconnected, connecting, connected, rejected, error, not exist), runs
// the lifecycle callbacks, expires sessions and resolves a healthy RPC or
// REST endpoint for the chain on demand. Resolved endpoints are cached for a
// short TTL, and the Stargate and CosmWasm clients built on them are reused
// until the wallet disconnects.
package chainwallet
