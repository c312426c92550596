package chain

import (
	cosmostypes "github.com/cosmos/cosmos-sdk/types"
)

// Endpoint is a single API endpoint advertised by the chain registry.
type Endpoint struct {
	Address  string
	Provider string
}

// APIs groups the endpoints advertised by the chain registry.
type APIs struct {
	RPC  []Endpoint
	REST []Endpoint
}

// FeeToken is a denom accepted for fees along with its average gas price.
type FeeToken struct {
	Denom           string
	AverageGasPrice float64
}

// Info is the chain registry entry of a chain.
type Info struct {
	ChainName    string
	ChainID      string
	PrettyName   string
	Bech32Prefix string
	APIs         APIs
	FeeTokens    []FeeToken
}

// LogoURIs are the image locations of an asset logo.
type LogoURIs struct {
	PNG string
	SVG string
}

// Asset is one asset of a chain asset list.
type Asset struct {
	Base     string
	Symbol   string
	Display  string
	LogoURIs LogoURIs
}

// AssetList is the chain registry asset list of a chain.
type AssetList struct {
	ChainName string
	Assets    []Asset
}

// Endpoints overrides or complements the registry endpoints of a chain.
type Endpoints struct {
	RPC  []string
	REST []string
	// IsLazy disables endpoint probing: the first candidate is used as is.
	IsLazy bool
}

// Record is everything known about a chain. It is never mutated once built.
type Record struct {
	Name               string
	Info               Info
	AssetList          *AssetList
	PreferredEndpoints *Endpoints
	// GasPrice is nil when the application configured none.
	GasPrice *cosmostypes.DecCoin
}
