package cosmwasm_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"

	"github.com/sunnya97/cosmos-kit/pkg/client/cosmwasm"
	"github.com/sunnya97/cosmos-kit/testutil/testcomet"
)

const (
	contractAddress = "osmo1contract"

	smartContractStatePath = "/cosmwasm.wasm.v1.Query/SmartContractState"
	rawContractStatePath   = "/cosmwasm.wasm.v1.Query/RawContractState"
)

// decodeRequest returns the address and query data fields of a contract
// state request.
func decodeRequest(t *testing.T, b []byte) (address string, data []byte) {
	t.Helper()

	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		require.GreaterOrEqual(t, n, 0)
		require.Equal(t, protowire.BytesType, typ)
		b = b[n:]

		value, m := protowire.ConsumeBytes(b)
		require.GreaterOrEqual(t, m, 0)
		b = b[m:]

		switch num {
		case 1:
			address = string(value)
		case 2:
			data = value
		}
	}
	return address, data
}

// encodeResponse encodes a contract state response with an extra unknown
// field to exercise skipping.
func encodeResponse(data []byte) []byte {
	var b []byte
	b = protowire.AppendTag(b, 7, protowire.VarintType)
	b = protowire.AppendVarint(b, 99)
	b = protowire.AppendTag(b, 1, protowire.BytesType)
	b = protowire.AppendBytes(b, data)
	return b
}

func newTestServer(t *testing.T) *testcomet.Server {
	t.Helper()

	server := testcomet.NewServer(t)
	server.HandleABCIQuery(smartContractStatePath, func(data []byte) ([]byte, error) {
		address, query := decodeRequest(t, data)
		require.Equal(t, contractAddress, address)
		require.JSONEq(t, `{"config":{}}`, string(query))
		return encodeResponse([]byte(`{"owner":"osmo1owner"}`)), nil
	})
	server.HandleABCIQuery(rawContractStatePath, func(data []byte) ([]byte, error) {
		address, key := decodeRequest(t, data)
		require.Equal(t, contractAddress, address)
		if string(key) != "config" {
			return encodeResponse(nil), nil
		}
		return encodeResponse([]byte("raw-config")), nil
	})
	return server
}

func TestClient_QueryContractSmart(t *testing.T) {
	server := newTestServer(t)

	cosmWasmClient, err := cosmwasm.NewClient(server.URL)
	require.NoError(t, err)

	ctx := context.Background()

	res, err := cosmWasmClient.QueryContractSmart(ctx, contractAddress, []byte(`{"config":{}}`))
	require.NoError(t, err)
	require.JSONEq(t, `{"owner":"osmo1owner"}`, string(res))
}

func TestClient_QueryContractRaw(t *testing.T) {
	server := newTestServer(t)

	cosmWasmClient, err := cosmwasm.NewClient(server.URL)
	require.NoError(t, err)

	ctx := context.Background()

	value, err := cosmWasmClient.QueryContractRaw(ctx, contractAddress, []byte("config"))
	require.NoError(t, err)
	require.Equal(t, []byte("raw-config"), value)

	value, err = cosmWasmClient.QueryContractRaw(ctx, contractAddress, []byte("missing"))
	require.NoError(t, err)
	require.Empty(t, value)
}

func TestClient_QueryErrors(t *testing.T) {
	server := testcomet.NewServer(t)

	cosmWasmClient, err := cosmwasm.NewClient(server.URL)
	require.NoError(t, err)

	ctx := context.Background()

	tests := []struct {
		desc          string
		query         func() error
		expectedError error
	}{
		{
			desc: "empty contract address",
			query: func() error {
				_, err := cosmWasmClient.QueryContractSmart(ctx, "", []byte(`{}`))
				return err
			},
			expectedError: cosmwasm.ErrCosmWasmInvalidQuery,
		},
		{
			desc: "invalid json",
			query: func() error {
				_, err := cosmWasmClient.QueryContractSmart(ctx, contractAddress, []byte(`{`))
				return err
			},
			expectedError: cosmwasm.ErrCosmWasmInvalidQuery,
		},
		{
			desc: "raw query without address",
			query: func() error {
				_, err := cosmWasmClient.QueryContractRaw(ctx, "", []byte("k"))
				return err
			},
			expectedError: cosmwasm.ErrCosmWasmInvalidQuery,
		},
		{
			desc: "node without wasm module",
			query: func() error {
				_, err := cosmWasmClient.QueryContractSmart(ctx, contractAddress, []byte(`{}`))
				return err
			},
			expectedError: cosmwasm.ErrCosmWasmQuery,
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			require.ErrorIs(t, tt.query(), tt.expectedError)
		})
	}
}

func TestClient_Stargate(t *testing.T) {
	server := testcomet.NewServer(t)
	server.SetHeight(77)

	cosmWasmClient, err := cosmwasm.NewClient(server.URL)
	require.NoError(t, err)

	height, err := cosmWasmClient.Height(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(77), height)
}
