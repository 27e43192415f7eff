// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package health

import (
	"sync"
	"time"
)

// Source is the pool engine as seen by the health check.
type Source interface {
	Progress() (opNum uint32, lastTime uint64)
	Check() error
}

type Operation struct {
	Number uint32 `json:"number"`
	Time   uint64 `json:"time"`
}

type Status struct {
	Healthy       bool       `json:"healthy"`
	LastOperation *Operation `json:"lastOperation"`
	CheckedAt     time.Time  `json:"checkedAt"`
	Error         string     `json:"error,omitempty"`
}

type Health struct {
	lock   sync.Mutex
	source Source
	now    func() time.Time
}

func New(source Source) *Health {
	return &Health{source: source, now: time.Now}
}

// Status probes the engine. Probes are serialised.
func (h *Health) Status() (*Status, error) {
	h.lock.Lock()
	defer h.lock.Unlock()

	err := h.source.Check()
	opNum, lastTime := h.source.Progress()

	status := &Status{
		Healthy:       err == nil,
		LastOperation: &Operation{Number: opNum, Time: lastTime},
		CheckedAt:     h.now().UTC(),
	}
	if err != nil {
		status.Error = err.Error()
	}
	return status, nil
}
