// Package kuma implements a Socket.IO RPC client for Uptime Kuma's
// real-time API: the same event/ack protocol Kuma's own web frontend
// speaks, reimplemented so AutoKuma can drive monitors, notifications,
// docker hosts, tags, maintenance windows and status pages without a
// browser in the loop.
package kuma

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/autokuma-go/autokuma/internal/model"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
)

// State is the connection lifecycle of a Client.
type State int

const (
	StateDisconnected State = iota
	StateConnecting
	StateConnected
	StateReady
)

func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateReady:
		return "ready"
	default:
		return "unknown"
	}
}

// readiness tracks the four push-caches Kuma streams on connect
// (monitorList, notificationList, maintenanceList, statusPageList) plus,
// when credentials are configured, whether login has completed. The
// client is not Ready until all of these have arrived at least once.
type readiness struct {
	mu sync.RWMutex

	haveMonitors      bool
	haveNotifications bool
	haveMaintenance   bool
	haveStatusPages   bool
	haveLoggedIn      bool
	requireLogin      bool

	monitors      map[string]*model.Monitor
	notifications map[string]*model.Notification
	maintenance   map[string]*model.Maintenance
	dockerHosts   map[string]*model.DockerHost
	statusPages   map[string]*model.StatusPage
}

func newReadiness(requireLogin bool) *readiness {
	return &readiness{
		requireLogin:  requireLogin,
		monitors:      map[string]*model.Monitor{},
		notifications: map[string]*model.Notification{},
		maintenance:   map[string]*model.Maintenance{},
		dockerHosts:   map[string]*model.DockerHost{},
		statusPages:   map[string]*model.StatusPage{},
	}
}

func (r *readiness) ready() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.requireLogin && !r.haveLoggedIn {
		return false
	}
	return r.haveMonitors && r.haveNotifications && r.haveMaintenance && r.haveStatusPages
}

// Client is a connected (or reconnecting) RPC session against a single
// Uptime Kuma instance. All exported methods are safe for concurrent
// use; a single Client is normally shared by one reconcile loop plus any
// background event handling the transport does on its own goroutines.
type Client struct {
	log    log.Logger
	url    string
	user   string
	pass   string

	insecureSkipVerify bool

	mu        sync.RWMutex
	state     State
	transport transport
	ready     *readiness

	callTimeout time.Duration
}

type ackResult struct {
	payload any
	err     error
}

// Options configures a new Client.
type Options struct {
	URL                string
	Username           string
	Password           string
	InsecureSkipVerify bool
	CallTimeout        time.Duration
}

func New(logger log.Logger, opts Options) *Client {
	if opts.CallTimeout == 0 {
		opts.CallTimeout = 30 * time.Second
	}
	return &Client{
		log:                logger,
		url:                opts.URL,
		user:               opts.Username,
		pass:               opts.Password,
		insecureSkipVerify: opts.InsecureSkipVerify,
		state:              StateDisconnected,
		ready:              newReadiness(opts.Username != ""),
		callTimeout:        opts.CallTimeout,
	}
}

func (c *Client) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

func (c *Client) setState(s State) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
	level.Debug(c.log).Log("msg", "connection state changed", "state", s.String())
}

// Connect dials the Kuma instance and blocks until the client reaches
// StateReady, ctx is cancelled, or the dial itself fails.
func (c *Client) Connect(ctx context.Context) error {
	c.setState(StateConnecting)

	t, err := dial(ctx, c.url, c.insecureSkipVerify)
	if err != nil {
		c.setState(StateDisconnected)
		return errors.Wrap(err, "dialing kuma")
	}

	c.mu.Lock()
	c.transport = t
	c.mu.Unlock()

	c.registerHandlers(t)

	t.On("connect", func(args ...any) {
		c.setState(StateConnected)
		if c.user != "" {
			go c.doLogin(ctx)
		}
	})
	t.On("disconnect", func(args ...any) {
		c.setState(StateDisconnected)
	})

	return c.waitReady(ctx)
}

func (c *Client) waitReady(ctx context.Context) error {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()
	for {
		if c.ready.ready() {
			c.setState(StateReady)
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// Disconnect tears down the underlying Socket.IO connection.
func (c *Client) Disconnect() {
	c.mu.Lock()
	t := c.transport
	c.transport = nil
	c.mu.Unlock()
	if t != nil {
		t.Close()
	}
	c.setState(StateDisconnected)
}

func (c *Client) doLogin(ctx context.Context) {
	payload, err := c.call(ctx, "login", "/", map[string]any{
		"username": c.user,
		"password": c.pass,
		"token":    "",
	})
	if err != nil {
		level.Error(c.log).Log("msg", "login failed", "err", err)
		return
	}
	_ = payload
	c.ready.mu.Lock()
	c.ready.haveLoggedIn = true
	c.ready.mu.Unlock()
	level.Info(c.log).Log("msg", "authenticated with kuma")
}

// registerHandlers wires the push-cache events Kuma streams unsolicited
// after connecting. monitorList, notificationList, maintenanceList and
// statusPageList gate readiness; the per-monitor heartbeat/important
// events are ignored by AutoKuma (it only cares about configuration, not
// runtime status).
func (c *Client) registerHandlers(t transport) {
	t.On("monitorList", func(args ...any) {
		if len(args) == 0 {
			return
		}
		var raw map[string]json.RawMessage
		if !decodeArg(args[0], &raw) {
			return
		}
		monitors := map[string]*model.Monitor{}
		for id, data := range raw {
			var m model.Monitor
			if err := json.Unmarshal(data, &m); err != nil {
				level.Warn(c.log).Log("msg", "failed to decode monitor push", "id", id, "err", err)
				continue
			}
			monitors[id] = &m
		}
		c.ready.mu.Lock()
		c.ready.monitors = monitors
		c.ready.haveMonitors = true
		c.ready.mu.Unlock()
	})

	t.On("notificationList", func(args ...any) {
		if len(args) == 0 {
			return
		}
		var list []*model.Notification
		if !decodeArg(args[0], &list) {
			return
		}
		byID := map[string]*model.Notification{}
		for _, n := range list {
			if n.ID != nil {
				byID[n.Name] = n
			}
		}
		c.ready.mu.Lock()
		c.ready.notifications = byID
		c.ready.haveNotifications = true
		c.ready.mu.Unlock()
	})

	t.On("maintenanceList", func(args ...any) {
		if len(args) == 0 {
			return
		}
		var list []*model.Maintenance
		decodeArg(args[0], &list)
		byID := map[string]*model.Maintenance{}
		for _, m := range list {
			byID[m.Title] = m
		}
		c.ready.mu.Lock()
		c.ready.maintenance = byID
		c.ready.haveMaintenance = true
		c.ready.mu.Unlock()
	})

	t.On("statusPageList", func(args ...any) {
		if len(args) == 0 {
			return
		}
		var pages map[string]*model.StatusPage
		decodeArg(args[0], &pages)
		c.ready.mu.Lock()
		c.ready.statusPages = pages
		c.ready.haveStatusPages = true
		c.ready.mu.Unlock()
	})
}

func decodeArg(arg any, out any) bool {
	b, err := json.Marshal(arg)
	if err != nil {
		return false
	}
	return json.Unmarshal(b, out) == nil
}
