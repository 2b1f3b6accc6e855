package kuma

import "github.com/pkg/errors"

// CallError wraps the (ok=false, msg) response Kuma returns when an RPC
// call is rejected, e.g. validation failures or duplicate names.
type CallError struct {
	Event   string
	Message string
}

func (e *CallError) Error() string {
	return "kuma: " + e.Event + ": " + e.Message
}

var (
	// ErrNotReady reports a client that has not yet finished populating
	// its push-caches (and logging in, if configured) after connecting.
	// call() does not check readiness and never returns it; Connect
	// waits for readiness instead.
	ErrNotReady = errors.New("kuma: client is not ready")
	// ErrDisconnected is returned by call() when the underlying
	// Socket.IO connection is down.
	ErrDisconnected = errors.New("kuma: client is disconnected")
	// ErrTimeout is returned when an RPC call's ack does not arrive
	// within the configured timeout.
	ErrTimeout = errors.New("kuma: call timed out waiting for ack")
)
