package bridge

import (
	txtypes "github.com/cosmos/cosmos-sdk/types/tx"
)

// JSON-RPC methods served by a wallet bridge.
const (
	MethodEnable      = "cosmos_enable"
	MethodGetAccounts = "cosmos_getAccounts"
	MethodSignDirect  = "cosmos_signDirect"
)

// CodeUserRejected is the JSON-RPC error code a bridge returns when the user
// declines a request on the remote device.
const CodeUserRejected = 4001

type EnableParams struct {
	ChainIDs []string `json:"chainIds"`
}

type GetAccountsParams struct {
	ChainID string `json:"chainId"`
}

type SignDirectParams struct {
	ChainID       string  `json:"chainId"`
	SignerAddress string  `json:"signerAddress"`
	SignDoc       SignDoc `json:"signDoc"`
}

// SignDoc is the JSON form of a tx SignDoc. Byte fields are base64 encoded.
type SignDoc struct {
	BodyBytes     []byte `json:"bodyBytes"`
	AuthInfoBytes []byte `json:"authInfoBytes"`
	ChainID       string `json:"chainId"`
	AccountNumber uint64 `json:"accountNumber,string"`
}

// AccountData is a single entry of the cosmos_getAccounts result.
type AccountData struct {
	Name    string `json:"name,omitempty"`
	Address string `json:"address"`
	Algo    string `json:"algo"`
	PubKey  []byte `json:"pubkey"`
}

// SignDirectResult is the cosmos_signDirect result. Signed may differ from the
// requested document when the user adjusted fees on the remote device.
type SignDirectResult struct {
	Signed    SignDoc `json:"signed"`
	PubKey    []byte  `json:"pubkey"`
	Signature []byte  `json:"signature"`
}

func signDocFromProto(doc *txtypes.SignDoc) SignDoc {
	return SignDoc{
		BodyBytes:     doc.BodyBytes,
		AuthInfoBytes: doc.AuthInfoBytes,
		ChainID:       doc.ChainId,
		AccountNumber: doc.AccountNumber,
	}
}

func (doc SignDoc) toProto() *txtypes.SignDoc {
	return &txtypes.SignDoc{
		BodyBytes:     doc.BodyBytes,
		AuthInfoBytes: doc.AuthInfoBytes,
		ChainId:       doc.ChainID,
		AccountNumber: doc.AccountNumber,
	}
}
