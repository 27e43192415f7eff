// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"github.com/pkg/errors"

	"github.com/vechain/multirewards/events"
	"github.com/vechain/multirewards/state"
)

// Builder helper to build genesis state.
type Builder struct {
	stateProcs []func(state *state.State, journal *events.Buffer) error
}

// State add a state process
func (b *Builder) State(proc func(state *state.State, journal *events.Buffer) error) *Builder {
	b.stateProcs = append(b.stateProcs, proc)
	return b
}

// Build runs the state processes in order and returns the events they emitted.
// The caller commits the state.
func (b *Builder) Build(state *state.State) ([]*events.Event, error) {
	journal := events.NewBuffer()
	for _, proc := range b.stateProcs {
		if err := proc(state, journal); err != nil {
			return nil, errors.Wrap(err, "state process")
		}
	}
	return journal.Events(), nil
}
