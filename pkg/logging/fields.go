// Package logging defines the field and component names used for structured
// logging across the wallet kit, so that log lines can be filtered
// consistently regardless of which package emitted them.
package logging

import "github.com/sunnya97/cosmos-kit/pkg/polylog"

// Standard field names.
const (
	FieldComponent = "component"

	FieldChainName  = "chain_name"
	FieldChainNames = "chain_names"
	FieldChainID    = "chain_id"
	FieldWallet     = "wallet"
	FieldWallets    = "wallets"
	FieldAddress    = "address"
	FieldStatus     = "status"
	FieldOldStatus  = "old_status"
	FieldNewStatus  = "new_status"

	FieldEndpoint  = "endpoint"
	FieldAccessor  = "accessor"
	FieldMethod    = "method"
	FieldResult    = "result"
	FieldReason    = "reason"
	FieldDuration  = "duration"
	FieldExpiresAt = "expires_at"
	FieldBridgeURL = "bridge_url"
	FieldBackend   = "backend"
	FieldKeyName   = "key_name"
	FieldCount     = "count"
	FieldMutex     = "mutex"
	FieldMobile    = "mobile"
)

// Component names for the "component" field.
const (
	ComponentWalletRepo    = "wallet_repo"
	ComponentChainWallet   = "chain_wallet"
	ComponentWalletManager = "wallet_manager"
	ComponentKeyringWallet = "keyring_wallet"
	ComponentBridgeWallet  = "bridge_wallet"
	ComponentSessionStore  = "session_store"
	ComponentSelectorView  = "selector_view"
	ComponentCLI           = "cli"
)

// Result values for the "result" field.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
	ResultEmpty   = "empty"
	ResultSkipped = "skipped"
)

// ForComponent returns a child logger tagged with the given component name.
func ForComponent(logger polylog.Logger, component string) polylog.Logger {
	return logger.With(FieldComponent, component)
}

// ForChainComponent returns a child logger tagged with the component and chain name.
func ForChainComponent(logger polylog.Logger, component, chainName string) polylog.Logger {
	return logger.With(
		FieldComponent, component,
		FieldChainName, chainName,
	)
}
