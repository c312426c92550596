// Package cosmwasm implements client.CosmWasmClient. Contract state is read
// with the x/wasm gRPC queries sent over abci_query; the request and
// response messages are encoded directly with protowire so no wasmd
// dependency is needed.
package cosmwasm
