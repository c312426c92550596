// Package testcomet provides an in-process CometBFT RPC server for tests which
// need a reachable node: endpoint probing, Stargate and CosmWasm queries.
package testcomet
