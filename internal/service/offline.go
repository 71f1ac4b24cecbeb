package service

import (
	"errors"
	"sync/atomic"
)

// ErrOffline is returned by every mutating operation while the process
// runs against the sample catalog.
var ErrOffline = errors.New("unavailable while offline")

// OfflineGate records whether the initial database probe failed. Once
// offline, the process stays offline; a restart that reaches the
// database is the only way back.
type OfflineGate struct {
	offline atomic.Bool
}

func NewOfflineGate() *OfflineGate {
	return &OfflineGate{}
}

func (g *OfflineGate) SetOffline() {
	g.offline.Store(true)
}

func (g *OfflineGate) Offline() bool {
	return g.offline.Load()
}

// Check short-circuits mutations in offline mode.
func (g *OfflineGate) Check() error {
	if g.offline.Load() {
		return ErrOffline
	}
	return nil
}
