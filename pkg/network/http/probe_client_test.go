package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	nethttp "github.com/sunnya97/cosmos-kit/pkg/network/http"
	"github.com/sunnya97/cosmos-kit/testutil/testpolylog"
)

func TestProbeClient_Get(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/ok" {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(strings.Repeat("x", 1024)))
	}))
	t.Cleanup(server.Close)

	logger, _ := testpolylog.NewBufferedLogger()
	probeClient := nethttp.NewProbeClient()

	statusCode, err := probeClient.Get(context.Background(), logger, server.URL+"/ok")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, statusCode)

	statusCode, err = probeClient.Get(context.Background(), logger, server.URL+"/down")
	require.NoError(t, err)
	require.Equal(t, http.StatusServiceUnavailable, statusCode)

	total, failed := probeClient.Stats()
	require.EqualValues(t, 2, total)
	require.EqualValues(t, 0, failed)
}

func TestProbeClient_TransportError(t *testing.T) {
	logger, logBuf := testpolylog.NewBufferedLogger()
	probeClient := nethttp.NewProbeClient()

	_, err := probeClient.Get(context.Background(), logger, "http://127.0.0.1:1/")
	require.Error(t, err)
	require.Contains(t, logBuf.String(), "endpoint probe failed")

	total, failed := probeClient.Stats()
	require.EqualValues(t, 1, total)
	require.EqualValues(t, 1, failed)
}

func TestProbeClient_ConcurrencyLimit(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	t.Cleanup(server.Close)
	t.Cleanup(func() { close(release) })

	logger, _ := testpolylog.NewBufferedLogger()
	probeClient := nethttp.NewProbeClient(nethttp.WithMaxConcurrent(1))

	go func() {
		_, _ = probeClient.Get(context.Background(), logger, server.URL)
	}()
	require.Eventually(t, func() bool {
		total, _ := probeClient.Stats()
		return total == 1
	}, time.Second, 5*time.Millisecond)

	// The only slot is held: the second probe gives up with its context.
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := probeClient.Get(ctx, logger, server.URL)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}
