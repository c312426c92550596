package testwallet

import (
	"fmt"
	"sync"
)

// Recorder collects calls made on fakes sharing it, in call order.
type Recorder struct {
	mu    sync.Mutex
	calls []string
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) record(method string, walletName any) {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, fmt.Sprintf("%s:%s", method, walletName))
}

// Calls returns every recorded call as "method:wallet".
func (r *Recorder) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

// CallsOf returns the recorded calls of method only.
func (r *Recorder) CallsOf(method string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	var calls []string
	for _, call := range r.calls {
		if len(call) > len(method) && call[:len(method)+1] == method+":" {
			calls = append(calls, call)
		}
	}
	return calls
}
