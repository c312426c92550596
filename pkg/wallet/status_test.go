package wallet_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sunnya97/cosmos-kit/pkg/wallet"
)

func TestStatus_String(t *testing.T) {
	tests := []struct {
		status   wallet.Status
		expected string
	}{
		{status: wallet.StatusDisconnected, expected: "disconnected"},
		{status: wallet.StatusConnecting, expected: "connecting"},
		{status: wallet.StatusConnected, expected: "connected"},
		{status: wallet.StatusNotExist, expected: "not_exist"},
		{status: wallet.StatusRejected, expected: "rejected"},
		{status: wallet.StatusError, expected: "error"},
		{status: wallet.Status(42), expected: "unknown"},
	}

	for _, test := range tests {
		t.Run(test.expected, func(t *testing.T) {
			require.Equal(t, test.expected, test.status.String())
		})
	}
}

func TestStatus_ZeroValueIsDisconnected(t *testing.T) {
	var status wallet.Status
	require.Equal(t, wallet.StatusDisconnected, status)
}

func TestEnv_IsMobile(t *testing.T) {
	require.True(t, wallet.Env{Device: wallet.DeviceMobile, OS: "android"}.IsMobile())
	require.False(t, wallet.Env{Device: wallet.DeviceDesktop, OS: "linux"}.IsMobile())
	require.False(t, wallet.Env{}.IsMobile())
}
