// Package stargate implements client.StargateClient on top of a CometBFT RPC
// endpoint. Module queries are tunnelled through abci_query using a Cosmos
// SDK client context as the gRPC connection.
package stargate
