package ble

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/chaz8081/ledctl/internal/ble/protocol"
)

// DefaultConnectTimeout is used by callers that have no configured timeout.
const DefaultConnectTimeout = 10 * time.Second

var errLinkDropped = errors.New("link dropped while connecting")

// State is the lifecycle state of a Session.
type State int32

const (
	StateDisconnected State = iota
	StateConnecting
	StateConnected
	StateDisconnecting
)

func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateDisconnecting:
		return "disconnecting"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithLogger sets the session logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) SessionOption {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithStateHook registers fn to observe every state transition. fn runs
// with the session lock held and must not call back into the Session.
func WithStateHook(fn func(from, to State)) SessionOption {
	return func(s *Session) {
		s.stateHook = fn
	}
}

// Session is the connection to one controller. Connect, Send and
// Disconnect must not be called concurrently; notification callbacks may
// be added and removed at any time from any goroutine.
type Session struct {
	adapter   Adapter
	address   string
	logger    *slog.Logger
	notify    *notifyRegistry
	stateHook func(from, to State)

	mu            sync.Mutex
	state         State
	attempt       uint64 // bumped per Connect and by an aborting Disconnect
	dropped       uint64 // attempt whose link dropped before reaching Connected
	cancelConnect context.CancelFunc
	conn          Connection
	writeChar     Characteristic
	notifyChar    Characteristic
}

// NewSession creates a disconnected session bound to address.
func NewSession(adapter Adapter, address string, opts ...SessionOption) *Session {
	s := &Session{
		adapter: adapter,
		address: address,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.notify = newNotifyRegistry(s.logger)
	return s
}

// Address returns the device address this session is bound to.
func (s *Session) Address() string { return s.address }

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// IsConnected reports whether the session is in StateConnected.
func (s *Session) IsConnected() bool {
	return s.State() == StateConnected
}

// setStateLocked moves to next (caller must hold mu).
func (s *Session) setStateLocked(next State) {
	prev := s.state
	s.state = next
	if s.stateHook != nil && prev != next {
		s.stateHook(prev, next)
	}
}

// Connect opens the link, discovers the controller characteristics and
// subscribes to notifications. It is only legal while disconnected. On
// failure the session is left disconnected and the error wraps
// ErrConnectionTimeout or ErrConnectionFailure. A timeout <= 0 relies on
// ctx alone.
func (s *Session) Connect(ctx context.Context, timeout time.Duration) error {
	var cancel context.CancelFunc
	if timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, timeout)
	} else {
		ctx, cancel = context.WithCancel(ctx)
	}
	defer cancel()

	s.mu.Lock()
	if s.state != StateDisconnected {
		st := s.state
		s.mu.Unlock()
		return fmt.Errorf("ble: connect while %s: %w", st, ErrInvalidState)
	}
	s.attempt++
	attempt := s.attempt
	s.cancelConnect = cancel
	s.setStateLocked(StateConnecting)
	s.mu.Unlock()

	s.logger.Info("[BLE] connecting", "address", s.address, "timeout", timeout)
	conn, writeChar, notifyChar, err := s.establish(ctx, attempt)

	s.mu.Lock()
	if err == nil && s.attempt != attempt {
		// Disconnect aborted this attempt while the link was coming up.
		err = context.Canceled
	}
	if err == nil && s.dropped == attempt {
		err = errLinkDropped
	}
	if err != nil {
		if s.attempt == attempt {
			s.cancelConnect = nil
			s.setStateLocked(StateDisconnected)
		}
		s.mu.Unlock()
		if conn != nil {
			s.release(conn, notifyChar)
		}
		return s.connectError(ctx, err)
	}
	s.cancelConnect = nil
	s.conn = conn
	s.writeChar = writeChar
	s.notifyChar = notifyChar
	s.setStateLocked(StateConnected)
	s.mu.Unlock()

	s.logger.Info("[BLE] connected", "address", s.address)
	return nil
}

// establish performs the transport steps of Connect. On error, conn is
// returned non-nil if the link came up and must be released.
func (s *Session) establish(ctx context.Context, attempt uint64) (conn Connection, writeChar, notifyChar Characteristic, err error) {
	if err := s.adapter.Enable(); err != nil {
		return nil, nil, nil, fmt.Errorf("enable adapter: %w", err)
	}

	conn, err = s.adapter.Connect(ctx, s.address)
	if err != nil {
		return nil, nil, nil, err
	}
	conn.OnDisconnect(func() { s.linkLost(conn, attempt) })

	writeChar, err = conn.DiscoverCharacteristic(ServiceUUID, WriteCharUUID)
	if err != nil {
		return conn, nil, nil, fmt.Errorf("discover write characteristic: %w", err)
	}
	nc, err := conn.DiscoverCharacteristic(ServiceUUID, NotifyCharUUID)
	if err != nil {
		return conn, nil, nil, fmt.Errorf("discover notify characteristic: %w", err)
	}
	if err := nc.Subscribe(s.notify.dispatch); err != nil {
		return conn, nil, nil, fmt.Errorf("subscribe notifications: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return conn, nil, nc, err
	}
	return conn, writeChar, nc, nil
}

func (s *Session) connectError(ctx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		s.logger.Warn("[BLE] connect timed out", "address", s.address)
		return fmt.Errorf("ble: connect to %s: %w", s.address, ErrConnectionTimeout)
	}
	s.logger.Warn("[BLE] connect failed", "address", s.address, "error", err)
	return fmt.Errorf("ble: connect to %s: %w: %w", s.address, ErrConnectionFailure, err)
}

// release tears down a link that never reached StateConnected.
func (s *Session) release(conn Connection, notifyChar Characteristic) {
	if notifyChar != nil {
		if err := notifyChar.Unsubscribe(); err != nil {
			s.logger.Debug("[BLE] unsubscribe during release failed", "error", err)
		}
	}
	if err := conn.Disconnect(); err != nil {
		s.logger.Debug("[BLE] disconnect during release failed", "error", err)
	}
}

// linkLost handles a drop reported by the transport. A drop while attempt
// is still connecting is recorded so Connect fails. No reconnect is attempted.
func (s *Session) linkLost(conn Connection, attempt uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateConnecting && s.attempt == attempt {
		s.logger.Warn("[BLE] link lost while connecting", "address", s.address)
		s.dropped = attempt
		return
	}
	if s.conn != conn || s.state != StateConnected {
		return
	}
	s.logger.Warn("[BLE] link lost", "address", s.address)
	s.clearLocked()
	s.setStateLocked(StateDisconnected)
}

func (s *Session) clearLocked() {
	s.conn = nil
	s.writeChar = nil
	s.notifyChar = nil
}

// Send writes one command frame. It returns an ErrInvalidState error unless
// connected, and an ErrConnectionFailure error if the write fails.
func (s *Session) Send(cmd protocol.Command) error {
	if cmd.IsZero() {
		return fmt.Errorf("ble: send empty command: %w", protocol.ErrValidation)
	}

	s.mu.Lock()
	if s.state != StateConnected {
		st := s.state
		s.mu.Unlock()
		return fmt.Errorf("ble: send %s while %s: %w", cmd.Tag(), st, ErrInvalidState)
	}
	writeChar := s.writeChar
	s.mu.Unlock()

	frame := cmd.Bytes()
	s.logger.Debug("[BLE] write", "address", s.address, "command", cmd.Tag(), "data", hex.EncodeToString(frame))
	if err := writeChar.Write(frame); err != nil {
		return fmt.Errorf("ble: write %s to %s: %w: %w", cmd.Tag(), s.address, ErrConnectionFailure, err)
	}
	return nil
}

// Disconnect unsubscribes and releases the link. It is a no-op when already
// disconnected. Called while connecting, it aborts the attempt.
func (s *Session) Disconnect() error {
	s.mu.Lock()
	switch s.state {
	case StateDisconnected, StateDisconnecting:
		s.mu.Unlock()
		return nil
	case StateConnecting:
		cancel := s.cancelConnect
		s.attempt++
		s.cancelConnect = nil
		s.setStateLocked(StateDisconnecting)
		s.setStateLocked(StateDisconnected)
		s.mu.Unlock()
		if cancel != nil {
			cancel()
		}
		s.logger.Info("[BLE] connect aborted", "address", s.address)
		return nil
	}

	conn := s.conn
	notifyChar := s.notifyChar
	s.setStateLocked(StateDisconnecting)
	s.mu.Unlock()

	if err := notifyChar.Unsubscribe(); err != nil {
		s.logger.Warn("[BLE] unsubscribe failed", "address", s.address, "error", err)
	}
	err := conn.Disconnect()

	s.mu.Lock()
	s.clearLocked()
	s.setStateLocked(StateDisconnected)
	s.mu.Unlock()

	if err != nil {
		s.logger.Warn("[BLE] disconnect failed", "address", s.address, "error", err)
		return fmt.Errorf("ble: disconnect %s: %w: %w", s.address, ErrConnectionFailure, err)
	}
	s.logger.Info("[BLE] disconnected", "address", s.address)
	return nil
}

// AddNotificationCallback registers fn for raw notification payloads. It may
// be called in any state; callbacks added before Connect take effect once
// the subscription is installed.
func (s *Session) AddNotificationCallback(fn NotificationFunc) CallbackID {
	return s.notify.add(fn)
}

// RemoveNotificationCallback unregisters a callback. It reports whether id
// was registered. The callback receives no payload whose dispatch starts
// after this returns.
func (s *Session) RemoveNotificationCallback(id CallbackID) bool {
	return s.notify.remove(id)
}
