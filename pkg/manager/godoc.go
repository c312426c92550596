// Package manager builds the wallet repositories of an application: one
// chainwallet per (wallet, chain) pair and one WalletRepo per chain. It also
// persists connected sessions and restores them on startup.
package manager
