package testutil

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/reglet-dev/wallet-sdk/domain/ports"
)

var _ ports.Transport = (*RecordingTransport)(nil)

// Call is a request observed by RecordingTransport.
type Call struct {
	Method string
	Params []any
}

// ParamsJSON returns the call's params as they would appear on the wire.
func (c Call) ParamsJSON() string {
	data, err := json.Marshal(c.Params)
	if err != nil {
		return fmt.Sprintf("<unmarshalable: %v>", err)
	}
	return string(data)
}

type reply struct {
	result json.RawMessage
	err    error
}

// RecordingTransport is an in-memory transport that records every request and
// answers from scripted replies keyed by method.
type RecordingTransport struct {
	replies map[string]reply
	calls   []Call
	mu      sync.Mutex
	closed  bool
}

// NewRecordingTransport creates an empty RecordingTransport.
func NewRecordingTransport() *RecordingTransport {
	return &RecordingTransport{replies: make(map[string]reply)}
}

// Reply scripts a JSON result for method.
func (t *RecordingTransport) Reply(method string, resultJSON string) *RecordingTransport {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.replies[method] = reply{result: json.RawMessage(resultJSON)}
	return t
}

// Fail scripts an error for method.
func (t *RecordingTransport) Fail(method string, err error) *RecordingTransport {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.replies[method] = reply{err: err}
	return t
}

// Request implements ports.Transport.
func (t *RecordingTransport) Request(ctx context.Context, result any, method string, params ...any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	t.mu.Lock()
	t.calls = append(t.calls, Call{Method: method, Params: params})
	r, ok := t.replies[method]
	t.mu.Unlock()

	if !ok {
		return fmt.Errorf("no reply scripted for %s", method)
	}
	if r.err != nil {
		return r.err
	}
	if result == nil {
		return nil
	}
	return json.Unmarshal(r.result, result)
}

// Info implements ports.Transport.
func (t *RecordingTransport) Info() ports.TransportInfo {
	return ports.TransportInfo{Key: "recording", Name: "Recording Transport", Type: "custom"}
}

// Close implements ports.Transport.
func (t *RecordingTransport) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closed = true
}

// Calls returns a copy of the recorded requests.
func (t *RecordingTransport) Calls() []Call {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]Call(nil), t.calls...)
}

// Closed reports whether Close was called.
func (t *RecordingTransport) Closed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.closed
}
