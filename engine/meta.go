// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package engine

import (
	"github.com/holiman/uint256"

	"github.com/vechain/multirewards/builtin/solidity"
	"github.com/vechain/multirewards/state"
	"github.com/vechain/multirewards/thor"
)

// metaAddress is the reserved storage space of the engine itself.
var metaAddress = thor.BytesToAddress([]byte("engine-meta"))

var (
	genesisIDSlot = thor.Blake2b([]byte("genesis-id"))
	opNumberSlot  = thor.Blake2b([]byte("op-number"))
	lastTimeSlot  = thor.Blake2b([]byte("last-time"))
)

// meta is committed together with the operation it describes.
type meta struct {
	genesisID *solidity.Uint256
	opNumber  *solidity.Uint256
	lastTime  *solidity.Uint256
}

func newMeta(st *state.State) *meta {
	ctx := solidity.NewContext(metaAddress, st)
	return &meta{
		genesisID: solidity.NewUint256(ctx, genesisIDSlot),
		opNumber:  solidity.NewUint256(ctx, opNumberSlot),
		lastTime:  solidity.NewUint256(ctx, lastTimeSlot),
	}
}

func (m *meta) GenesisID() (thor.Bytes32, error) {
	v, err := m.genesisID.Get()
	if err != nil {
		return thor.Bytes32{}, err
	}
	return thor.Bytes32(v.Bytes32()), nil
}

func (m *meta) SetGenesisID(id thor.Bytes32) {
	m.genesisID.Set(new(uint256.Int).SetBytes32(id[:]))
}

func (m *meta) Progress() (opNum uint32, lastTime uint64, err error) {
	op, err := m.opNumber.Get()
	if err != nil {
		return 0, 0, err
	}
	t, err := m.lastTime.Get()
	if err != nil {
		return 0, 0, err
	}
	return uint32(op.Uint64()), t.Uint64(), nil
}

func (m *meta) SetProgress(opNum uint32, lastTime uint64) {
	m.opNumber.Set(uint256.NewInt(uint64(opNum)))
	m.lastTime.Set(uint256.NewInt(lastTime))
}
