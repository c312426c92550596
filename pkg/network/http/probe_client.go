package http

import (
	"context"
	"crypto/tls"
	"io"
	"net"
	"net/http"
	"net/http/httptrace"
	"sync/atomic"
	"time"

	"github.com/sunnya97/cosmos-kit/pkg/logging"
	"github.com/sunnya97/cosmos-kit/pkg/network/concurrency"
	"github.com/sunnya97/cosmos-kit/pkg/polylog"
)

// maxDrainedBodySize is how much of a probe response is read so the
// connection can be reused.
const maxDrainedBodySize = 64 * 1024

// ProbeClientOption configures a ProbeClient.
type ProbeClientOption func(*ProbeClient)

// WithHTTPClient replaces the underlying client.
func WithHTTPClient(httpClient *http.Client) ProbeClientOption {
	return func(c *ProbeClient) { c.httpClient = httpClient }
}

// WithMaxConcurrent bounds the number of probes in flight.
func WithMaxConcurrent(maxConcurrent int) ProbeClientOption {
	return func(c *ProbeClient) { c.limiter = concurrency.NewLimiter(maxConcurrent) }
}

// ProbeClient sends endpoint health checks.
type ProbeClient struct {
	httpClient *http.Client
	limiter    *concurrency.Limiter

	totalProbes  atomic.Uint64
	failedProbes atomic.Uint64
}

// NewProbeClient returns a client whose transport fails fast on unreachable
// hosts. Probe deadlines come from the request contexts.
func NewProbeClient(opts ...ProbeClientOption) *ProbeClient {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          32,
		MaxIdleConnsPerHost:   2,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ResponseHeaderTimeout: 5 * time.Second,
		TLSClientConfig:       &tls.Config{MinVersion: tls.VersionTLS12},
		ForceAttemptHTTP2:     true,
	}

	c := &ProbeClient{
		httpClient: &http.Client{Transport: transport},
		limiter:    concurrency.NewLimiter(concurrency.DefaultMaxConcurrent),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get requests url and returns the response status code. The body is
// drained and discarded.
func (c *ProbeClient) Get(ctx context.Context, logger polylog.Logger, url string) (int, error) {
	if !c.limiter.Acquire(ctx) {
		return 0, ctx.Err()
	}
	defer c.limiter.Release()

	c.totalProbes.Add(1)
	timings := &probeTimings{start: time.Now()}
	ctx = httptrace.WithClientTrace(ctx, timings.trace())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		c.failedProbes.Add(1)
		return 0, err
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		c.failedProbes.Add(1)
		timings.log(logger, url, err)
		return 0, err
	}
	defer res.Body.Close()

	_, _ = io.Copy(io.Discard, io.LimitReader(res.Body, maxDrainedBodySize))
	return res.StatusCode, nil
}

// Stats returns the number of probes sent and how many of them failed at the
// transport level.
func (c *ProbeClient) Stats() (total, failed uint64) {
	return c.totalProbes.Load(), c.failedProbes.Load()
}

// probeTimings records when each phase of a request completed, relative to
// start.
type probeTimings struct {
	start time.Time

	dnsDone       atomic.Int64
	connectDone   atomic.Int64
	tlsDone       atomic.Int64
	firstByte     atomic.Int64
	reusedConn    atomic.Bool
	remoteAddress atomic.Value
}

func (pt *probeTimings) since() int64 {
	return int64(time.Since(pt.start))
}

func (pt *probeTimings) trace() *httptrace.ClientTrace {
	return &httptrace.ClientTrace{
		DNSDone: func(httptrace.DNSDoneInfo) {
			pt.dnsDone.Store(pt.since())
		},
		ConnectDone: func(_, addr string, err error) {
			if err == nil {
				pt.connectDone.Store(pt.since())
				pt.remoteAddress.Store(addr)
			}
		},
		TLSHandshakeDone: func(tls.ConnectionState, error) {
			pt.tlsDone.Store(pt.since())
		},
		GotConn: func(info httptrace.GotConnInfo) {
			pt.reusedConn.Store(info.Reused)
		},
		GotFirstResponseByte: func() {
			pt.firstByte.Store(pt.since())
		},
	}
}

// log writes the timing breakdown of a failed probe at debug level. Phases
// which never completed are reported as zero.
func (pt *probeTimings) log(logger polylog.Logger, url string, err error) {
	remoteAddress, _ := pt.remoteAddress.Load().(string)
	logger.Debug().
		Err(err).
		Str(logging.FieldEndpoint, url).
		Str("remote_address", remoteAddress).
		Bool("reused_conn", pt.reusedConn.Load()).
		Dur("dns_done", time.Duration(pt.dnsDone.Load())).
		Dur("connect_done", time.Duration(pt.connectDone.Load())).
		Dur("tls_done", time.Duration(pt.tlsDone.Load())).
		Dur("first_byte", time.Duration(pt.firstByte.Load())).
		Dur(logging.FieldDuration, time.Duration(pt.since())).
		Msg("endpoint probe failed")
}
