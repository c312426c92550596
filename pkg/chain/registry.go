package chain

import (
	"net/url"
	"os"

	cosmostypes "github.com/cosmos/cosmos-sdk/types"
	yaml "gopkg.in/yaml.v2"
)

// YAMLRegistry is the structure used to unmarshal the chain registry file.
type YAMLRegistry struct {
	Chains        []YAMLChain                  `yaml:"chains"`
	Assets        []YAMLAssetList              `yaml:"assets"`
	Endpoints     map[string]YAMLEndpoints     `yaml:"endpoints"`
	SignerOptions map[string]YAMLSignerOptions `yaml:"signer_options"`
}

// YAMLChain is the structure used to unmarshal a chain registry entry.
type YAMLChain struct {
	ChainName    string         `yaml:"chain_name"`
	ChainID      string         `yaml:"chain_id"`
	PrettyName   string         `yaml:"pretty_name"`
	Bech32Prefix string         `yaml:"bech32_prefix"`
	APIs         YAMLAPIs       `yaml:"apis"`
	FeeTokens    []YAMLFeeToken `yaml:"fee_tokens"`
}

// YAMLAPIs is the structure used to unmarshal the apis section of a chain.
type YAMLAPIs struct {
	RPC  []YAMLEndpoint `yaml:"rpc"`
	REST []YAMLEndpoint `yaml:"rest"`
}

type YAMLEndpoint struct {
	Address  string `yaml:"address"`
	Provider string `yaml:"provider"`
}

type YAMLFeeToken struct {
	Denom           string  `yaml:"denom"`
	AverageGasPrice float64 `yaml:"average_gas_price"`
}

// YAMLAssetList is the structure used to unmarshal the asset list of a chain.
type YAMLAssetList struct {
	ChainName string      `yaml:"chain_name"`
	Assets    []YAMLAsset `yaml:"assets"`
}

type YAMLAsset struct {
	Base     string       `yaml:"base"`
	Symbol   string       `yaml:"symbol"`
	Display  string       `yaml:"display"`
	LogoURIs YAMLLogoURIs `yaml:"logo_uris"`
}

type YAMLLogoURIs struct {
	PNG string `yaml:"png"`
	SVG string `yaml:"svg"`
}

// YAMLEndpoints is the structure used to unmarshal the preferred endpoints of
// a chain, keyed by chain name.
type YAMLEndpoints struct {
	RPC    []string `yaml:"rpc"`
	REST   []string `yaml:"rest"`
	IsLazy bool     `yaml:"is_lazy"`
}

// YAMLSignerOptions is the structure used to unmarshal the signer options of a
// chain, keyed by chain name.
type YAMLSignerOptions struct {
	GasPrice string `yaml:"gas_price"`
}

// LoadRegistryFile reads and parses the chain registry file at path.
func LoadRegistryFile(path string) ([]*Record, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, ErrChainRegistryRead.Wrapf("path: %s [%v]", path, err)
	}
	return ParseRegistry(content)
}

// ParseRegistry parses the chain registry content into records, in the order
// the chains are listed.
func ParseRegistry(content []byte) ([]*Record, error) {
	var yamlRegistry YAMLRegistry

	if len(content) == 0 {
		return nil, ErrChainRegistryEmpty
	}

	if err := yaml.Unmarshal(content, &yamlRegistry); err != nil {
		return nil, ErrChainRegistryUnmarshalYAML.Wrap(err.Error())
	}

	if len(yamlRegistry.Chains) == 0 {
		return nil, ErrChainRegistryEmpty.Wrap("no chains defined")
	}

	records := make([]*Record, 0, len(yamlRegistry.Chains))
	recordsByName := make(map[string]*Record, len(yamlRegistry.Chains))
	for _, yamlChain := range yamlRegistry.Chains {
		record, err := hydrateRecord(yamlChain)
		if err != nil {
			return nil, err
		}
		if _, ok := recordsByName[record.Name]; ok {
			return nil, ErrChainRegistryDuplicateChain.Wrapf("chain name: %s", record.Name)
		}
		recordsByName[record.Name] = record
		records = append(records, record)
	}

	for _, yamlAssetList := range yamlRegistry.Assets {
		record, ok := recordsByName[yamlAssetList.ChainName]
		if !ok {
			return nil, ErrChainRegistryUnknownChain.Wrapf("asset list for chain %q", yamlAssetList.ChainName)
		}
		record.AssetList = hydrateAssetList(yamlAssetList)
	}

	for chainName, yamlEndpoints := range yamlRegistry.Endpoints {
		record, ok := recordsByName[chainName]
		if !ok {
			return nil, ErrChainRegistryUnknownChain.Wrapf("endpoints for chain %q", chainName)
		}
		endpoints, err := hydrateEndpoints(chainName, yamlEndpoints)
		if err != nil {
			return nil, err
		}
		record.PreferredEndpoints = endpoints
	}

	for chainName, yamlSignerOptions := range yamlRegistry.SignerOptions {
		record, ok := recordsByName[chainName]
		if !ok {
			return nil, ErrChainRegistryUnknownChain.Wrapf("signer options for chain %q", chainName)
		}
		if yamlSignerOptions.GasPrice == "" {
			continue
		}
		gasPrice, err := cosmostypes.ParseDecCoin(yamlSignerOptions.GasPrice)
		if err != nil {
			return nil, ErrChainRegistryInvalidGas.Wrapf("chain %q: %v", chainName, err)
		}
		record.GasPrice = &gasPrice
	}

	return records, nil
}

func hydrateRecord(yamlChain YAMLChain) (*Record, error) {
	if yamlChain.ChainName == "" {
		return nil, ErrChainRegistryInvalidChain.Wrap("chain name is required")
	}
	if yamlChain.ChainID == "" {
		return nil, ErrChainRegistryInvalidChain.Wrapf("chain %q: chain id is required", yamlChain.ChainName)
	}

	rpcEndpoints, err := hydrateAPIEndpoints(yamlChain.ChainName, yamlChain.APIs.RPC)
	if err != nil {
		return nil, err
	}
	restEndpoints, err := hydrateAPIEndpoints(yamlChain.ChainName, yamlChain.APIs.REST)
	if err != nil {
		return nil, err
	}

	feeTokens := make([]FeeToken, 0, len(yamlChain.FeeTokens))
	for _, yamlFeeToken := range yamlChain.FeeTokens {
		feeTokens = append(feeTokens, FeeToken{
			Denom:           yamlFeeToken.Denom,
			AverageGasPrice: yamlFeeToken.AverageGasPrice,
		})
	}

	prettyName := yamlChain.PrettyName
	if prettyName == "" {
		prettyName = yamlChain.ChainName
	}

	return &Record{
		Name: yamlChain.ChainName,
		Info: Info{
			ChainName:    yamlChain.ChainName,
			ChainID:      yamlChain.ChainID,
			PrettyName:   prettyName,
			Bech32Prefix: yamlChain.Bech32Prefix,
			APIs: APIs{
				RPC:  rpcEndpoints,
				REST: restEndpoints,
			},
			FeeTokens: feeTokens,
		},
	}, nil
}

func hydrateAPIEndpoints(chainName string, yamlEndpoints []YAMLEndpoint) ([]Endpoint, error) {
	endpoints := make([]Endpoint, 0, len(yamlEndpoints))
	for _, yamlEndpoint := range yamlEndpoints {
		if err := validateEndpointURL(chainName, yamlEndpoint.Address); err != nil {
			return nil, err
		}
		endpoints = append(endpoints, Endpoint{
			Address:  yamlEndpoint.Address,
			Provider: yamlEndpoint.Provider,
		})
	}
	return endpoints, nil
}

func hydrateAssetList(yamlAssetList YAMLAssetList) *AssetList {
	assets := make([]Asset, 0, len(yamlAssetList.Assets))
	for _, yamlAsset := range yamlAssetList.Assets {
		assets = append(assets, Asset{
			Base:    yamlAsset.Base,
			Symbol:  yamlAsset.Symbol,
			Display: yamlAsset.Display,
			LogoURIs: LogoURIs{
				PNG: yamlAsset.LogoURIs.PNG,
				SVG: yamlAsset.LogoURIs.SVG,
			},
		})
	}
	return &AssetList{
		ChainName: yamlAssetList.ChainName,
		Assets:    assets,
	}
}

func hydrateEndpoints(chainName string, yamlEndpoints YAMLEndpoints) (*Endpoints, error) {
	for _, address := range append(append([]string{}, yamlEndpoints.RPC...), yamlEndpoints.REST...) {
		if err := validateEndpointURL(chainName, address); err != nil {
			return nil, err
		}
	}
	return &Endpoints{
		RPC:    yamlEndpoints.RPC,
		REST:   yamlEndpoints.REST,
		IsLazy: yamlEndpoints.IsLazy,
	}, nil
}

func validateEndpointURL(chainName, address string) error {
	endpointURL, err := url.Parse(address)
	if err != nil {
		return ErrChainRegistryInvalidURL.Wrapf("chain %q: %v", chainName, err)
	}
	if endpointURL.Scheme == "" || endpointURL.Host == "" {
		return ErrChainRegistryInvalidURL.Wrapf("chain %q: %q is not an absolute url", chainName, address)
	}
	return nil
}
