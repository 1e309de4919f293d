// Package proxy holds a pool of proxy endpoints for targets that block direct
// automated traffic. Rotation is plain round-robin; proxy selection is opted
// into per target by the caller, never auto-detected, and a dead proxy
// surfaces as an ordinary login failure upstream.
package proxy

import (
	"fmt"
	"sync"
)

// Endpoint is one proxy server, optionally with credentials.
type Endpoint struct {
	Host     string `json:"host" validate:"required"`
	Port     int    `json:"port" validate:"required,gte=1,lte=65535"`
	Username string `json:"username,omitempty"`
	Password string `json:"password,omitempty"`
}

// Server renders the endpoint in the form the browser's --proxy-server flag
// expects. Credentials are not embedded; they go through the auth handler.
func (e Endpoint) Server() string {
	return fmt.Sprintf("http://%s:%d", e.Host, e.Port)
}

// Rotator yields pool endpoints round-robin. Safe for concurrent use.
type Rotator struct {
	mu   sync.Mutex
	pool []Endpoint
	next int
}

// NewRotator creates a Rotator over the given pool. The pool may be empty;
// Next then reports no endpoint and direct connections are used.
func NewRotator(pool []Endpoint) *Rotator {
	r := &Rotator{pool: make([]Endpoint, len(pool))}
	copy(r.pool, pool)
	return r
}

// Next returns the next endpoint in round-robin order. The second return is
// false when the pool is empty.
func (r *Rotator) Next() (Endpoint, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.pool) == 0 {
		return Endpoint{}, false
	}
	e := r.pool[r.next]
	r.next = (r.next + 1) % len(r.pool)
	return e, true
}

// Size returns the number of endpoints in the pool.
func (r *Rotator) Size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pool)
}
