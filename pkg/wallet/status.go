package wallet

// Status is the connection state of a ChainWallet.
type Status int

const (
	// StatusDisconnected is the zero value: every wallet starts disconnected.
	StatusDisconnected Status = iota
	StatusConnecting
	StatusConnected
	// StatusNotExist means the wallet backend is not available.
	StatusNotExist
	// StatusRejected means the user or backend refused the connection.
	StatusRejected
	StatusError
)

var statusNames = map[Status]string{
	StatusDisconnected: "disconnected",
	StatusConnecting:   "connecting",
	StatusConnected:    "connected",
	StatusNotExist:     "not_exist",
	StatusRejected:     "rejected",
	StatusError:        "error",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}
