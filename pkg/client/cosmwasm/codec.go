package cosmwasm

import (
	"google.golang.org/protobuf/encoding/protowire"
)

const (
	smartContractStatePath = "/cosmwasm.wasm.v1.Query/SmartContractState"
	rawContractStatePath   = "/cosmwasm.wasm.v1.Query/RawContractState"
)

// Field numbers shared by QuerySmartContractStateRequest and
// QueryRawContractStateRequest.
const (
	requestAddressField protowire.Number = 1
	requestDataField    protowire.Number = 2
)

// responseDataField is the data field of both response messages.
const responseDataField protowire.Number = 1

// encodeContractStateRequest encodes a contract state request: the contract
// address followed by the query data (JSON for smart queries, key for raw).
func encodeContractStateRequest(contractAddress string, data []byte) []byte {
	var b []byte
	b = protowire.AppendTag(b, requestAddressField, protowire.BytesType)
	b = protowire.AppendString(b, contractAddress)
	b = protowire.AppendTag(b, requestDataField, protowire.BytesType)
	b = protowire.AppendBytes(b, data)
	return b
}

// decodeContractStateResponse returns the data field of a contract state
// response. Unknown fields are skipped.
func decodeContractStateResponse(b []byte) ([]byte, error) {
	var data []byte
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, ErrCosmWasmDecodeMessage.Wrap(protowire.ParseError(n).Error())
		}
		b = b[n:]

		if num == responseDataField && typ == protowire.BytesType {
			value, m := protowire.ConsumeBytes(b)
			if m < 0 {
				return nil, ErrCosmWasmDecodeMessage.Wrap(protowire.ParseError(m).Error())
			}
			data = append([]byte(nil), value...)
			b = b[m:]
			continue
		}

		m := protowire.ConsumeFieldValue(num, typ, b)
		if m < 0 {
			return nil, ErrCosmWasmDecodeMessage.Wrap(protowire.ParseError(m).Error())
		}
		b = b[m:]
	}
	return data, nil
}
