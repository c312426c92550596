// Package client defines the read-only chain clients handed out by wallet
// adapters and wallet repositories.
//
// The implementations live in the stargate and cosmwasm subpackages and talk
// to a CometBFT RPC endpoint; callers only depend on the interfaces here.
package client
