package kuma

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

// call emits a Socket.IO event with args as its arguments and waits for
// its ack, then verifies Kuma's "ok" flag and returns the value pointer
// selects inside the payload, undecoded (callers convert it with
// asInt64, decodeSlice or remarshal). This mirrors kuma-client's generic
// `call<A, T>(&self, event, args, pointer) -> Result<T>` helper: every
// RPC in this package is a thin wrapper around it.
func (c *Client) call(ctx context.Context, event string, pointer string, args ...any) (any, error) {
	c.mu.RLock()
	t := c.transport
	st := c.state
	c.mu.RUnlock()

	if t == nil || st == StateDisconnected {
		return nil, ErrDisconnected
	}

	resultCh := make(chan ackResult, 1)
	callArgs := append(append([]any{}, args...), func(ackArgs ...any) {
		resultCh <- decodeAck(ackArgs)
	})

	t.Emit(event, callArgs...)

	timeout := c.callTimeout
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-timer.C:
		return nil, ErrTimeout
	case res := <-resultCh:
		if res.err != nil {
			return nil, res.err
		}
		return extractResponse(res.payload, pointer)
	}
}

// decodeAck interprets a Socket.IO ack callback's arguments. Kuma's acks
// always resolve to a single object argument with "ok" and optionally
// "msg"/"monitorID"/etc fields; response[0] is that object.
func decodeAck(args []any) ackResult {
	if len(args) == 0 {
		return ackResult{err: errors.New("kuma: empty ack response")}
	}
	payload := args[0]
	m, ok := payload.(map[string]any)
	if !ok {
		return ackResult{payload: payload}
	}
	if okVal, present := m["ok"]; present {
		if ok, _ := okVal.(bool); !ok {
			msg, _ := m["msg"].(string)
			return ackResult{err: &CallError{Message: msg}}
		}
	}
	return ackResult{payload: payload}
}
