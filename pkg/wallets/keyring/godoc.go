// Package keyring is a wallet.Client backed by a Cosmos SDK keyring. It is
// the local, extension-style wallet of the kit: one key, usable on every
// chain, signing in SIGN_MODE_DIRECT.
package keyring
