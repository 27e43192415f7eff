// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package thor

import (
	"github.com/ethereum/go-ethereum/crypto/blake2b"
)

// Blake2b computes the blake2b-256 checksum of the concatenated data.
func Blake2b(data ...[]byte) (h Bytes32) {
	if len(data) == 1 {
		return blake2b.Sum256(data[0])
	}
	w, _ := blake2b.New256(nil)
	for _, b := range data {
		w.Write(b)
	}
	w.Sum(h[:0])
	return
}
