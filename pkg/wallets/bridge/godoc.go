// Package bridge implements a wallet.Client which forwards every request to a
// remote wallet (typically a mobile app) through a websocket bridge.
//
// Requests are JSON-RPC 2.0 messages:
//   - cosmos_enable      {"chainIds": [...]}
//   - cosmos_getAccounts {"chainId": "..."}
//   - cosmos_signDirect  {"chainId": "...", "signerAddress": "...", "signDoc": {...}}
//
// A JSON-RPC error with code 4001 means the user rejected the request on the
// remote device.
package bridge
