package ble

import (
	"encoding/hex"
	"fmt"
	"log/slog"
	"sync"
)

// NotificationFunc receives one raw notification payload. The slice is the
// callback's own copy. A returned error is logged and does not affect
// delivery to other callbacks.
type NotificationFunc func(payload []byte) error

// CallbackID identifies a registered NotificationFunc for removal.
type CallbackID uint64

type registration struct {
	id CallbackID
	fn NotificationFunc
}

// notifyRegistry is an ordered callback list. Dispatch delivers to a
// snapshot taken when the dispatch begins, so a removal is honoured from
// the next dispatch onward.
type notifyRegistry struct {
	logger *slog.Logger

	mu     sync.Mutex
	nextID CallbackID
	regs   []registration

	// dispatchMu keeps payloads in arrival order when the transport
	// delivers from more than one goroutine.
	dispatchMu sync.Mutex
}

func newNotifyRegistry(logger *slog.Logger) *notifyRegistry {
	return &notifyRegistry{logger: logger}
}

func (r *notifyRegistry) add(fn NotificationFunc) CallbackID {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	r.regs = append(r.regs, registration{id: r.nextID, fn: fn})
	return r.nextID
}

func (r *notifyRegistry) remove(id CallbackID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, reg := range r.regs {
		if reg.id == id {
			// Copy so an in-flight snapshot keeps its backing array intact.
			regs := make([]registration, 0, len(r.regs)-1)
			regs = append(regs, r.regs[:i]...)
			r.regs = append(regs, r.regs[i+1:]...)
			return true
		}
	}
	return false
}

func (r *notifyRegistry) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.regs)
}

func (r *notifyRegistry) snapshot() []registration {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.regs
}

// dispatch delivers payload to every registered callback in registration
// order. Errors and panics are logged per callback.
func (r *notifyRegistry) dispatch(payload []byte) {
	r.dispatchMu.Lock()
	defer r.dispatchMu.Unlock()

	r.logger.Debug("[BLE] notification", "data", hex.EncodeToString(payload))
	for _, reg := range r.snapshot() {
		buf := make([]byte, len(payload))
		copy(buf, payload)
		if err := r.invoke(reg, buf); err != nil {
			r.logger.Error("[BLE] notification callback failed", "callback", reg.id, "error", err)
		}
	}
}

func (r *notifyRegistry) invoke(reg registration, payload []byte) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic: %v", p)
		}
	}()
	return reg.fn(payload)
}
