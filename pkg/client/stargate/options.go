package stargate

import "time"

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithRequestTimeout bounds every HTTP request made to the RPC endpoint.
// Zero disables the timeout.
func WithRequestTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.requestTimeout = timeout
	}
}
