// Package chain holds the read-only chain descriptors a wallet repository is
// bound to: the chain registry entry, its asset list and any preferred
// endpoints configured by the application.
//
// Records are usually loaded from a YAML registry file, see ParseRegistry.
package chain
