// Package walletrepo coordinates the wallet adapters registered for one chain.
//
// A WalletRepo enforces that at most one adapter is connected at a time (the
// mutex, enabled by default), aggregates endpoint and client lookups across
// adapters by falling back in registration order, hides mobile-disabled
// adapters on mobile and asks a pluggable view to let the user pick a wallet
// when the choice is ambiguous.
//
// The repo never retries and never times out on its own: adapter errors from
// Connect and Disconnect are returned unmodified, and contexts are forwarded
// to adapters as is.
package walletrepo
