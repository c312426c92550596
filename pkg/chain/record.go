package chain

import (
	"strconv"

	sdkmath "cosmossdk.io/math"
	cosmostypes "github.com/cosmos/cosmos-sdk/types"
)

// Logo returns the logo of the chain's first asset, preferring SVG over PNG.
// It returns "" when there is no asset list or the first asset has no logo.
func (r *Record) Logo() string {
	if r.AssetList == nil || len(r.AssetList.Assets) == 0 {
		return ""
	}

	logoURIs := r.AssetList.Assets[0].LogoURIs
	if logoURIs.SVG != "" {
		return logoURIs.SVG
	}
	return logoURIs.PNG
}

// ChainID returns the chain ID from the chain registry entry.
func (r *Record) ChainID() string {
	return r.Info.ChainID
}

// DefaultGasPrice returns the configured gas price, or else the average gas
// price of the chain's first fee token. It reports false when neither is
// usable.
func (r *Record) DefaultGasPrice() (cosmostypes.DecCoin, bool) {
	if r.GasPrice != nil {
		return *r.GasPrice, true
	}
	if len(r.Info.FeeTokens) == 0 {
		return cosmostypes.DecCoin{}, false
	}

	feeToken := r.Info.FeeTokens[0]
	if err := cosmostypes.ValidateDenom(feeToken.Denom); err != nil {
		return cosmostypes.DecCoin{}, false
	}
	amount, err := sdkmath.LegacyNewDecFromStr(strconv.FormatFloat(feeToken.AverageGasPrice, 'f', -1, 64))
	if err != nil || amount.IsNegative() {
		return cosmostypes.DecCoin{}, false
	}
	return cosmostypes.NewDecCoinFromDec(feeToken.Denom, amount), true
}

// IsLazy reports whether endpoints should be used without probing them first.
func (r *Record) IsLazy() bool {
	return r.PreferredEndpoints != nil && r.PreferredEndpoints.IsLazy
}

// RPCCandidates returns the RPC endpoints to try, preferred endpoints first.
func (r *Record) RPCCandidates() []string {
	var preferred []string
	if r.PreferredEndpoints != nil {
		preferred = r.PreferredEndpoints.RPC
	}
	return mergeCandidates(preferred, r.Info.APIs.RPC)
}

// RESTCandidates returns the REST endpoints to try, preferred endpoints first.
func (r *Record) RESTCandidates() []string {
	var preferred []string
	if r.PreferredEndpoints != nil {
		preferred = r.PreferredEndpoints.REST
	}
	return mergeCandidates(preferred, r.Info.APIs.REST)
}

// mergeCandidates concatenates preferred and registry endpoints, dropping
// empty and duplicate addresses while preserving order.
func mergeCandidates(preferred []string, registry []Endpoint) []string {
	seen := make(map[string]struct{}, len(preferred)+len(registry))
	candidates := make([]string, 0, len(preferred)+len(registry))

	add := func(address string) {
		if address == "" {
			return
		}
		if _, ok := seen[address]; ok {
			return
		}
		seen[address] = struct{}{}
		candidates = append(candidates, address)
	}

	for _, address := range preferred {
		add(address)
	}
	for _, endpoint := range registry {
		add(endpoint.Address)
	}
	return candidates
}
