// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package thor

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// Bytes32 is a storage slot key or a hash, such as the genesis id.
type Bytes32 [32]byte

var (
	_ json.Marshaler   = (*Bytes32)(nil)
	_ json.Unmarshaler = (*Bytes32)(nil)
)

func (b Bytes32) String() string {
	return "0x" + hex.EncodeToString(b[:])
}

func (b Bytes32) Bytes() []byte {
	return b[:]
}

func (b Bytes32) IsZero() bool {
	return b == Bytes32{}
}

func (b *Bytes32) MarshalJSON() ([]byte, error) {
	if b == nil {
		return json.Marshal(nil)
	}
	return json.Marshal(b.String())
}

func (b *Bytes32) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseBytes32(s)
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

// ParseBytes32 accepts 64 hex digits with an optional 0x prefix.
func ParseBytes32(s string) (b Bytes32, err error) {
	err = decodeFixedHex(s, b[:])
	return
}

// BytesToBytes32 left-pads or left-crops b to 32 bytes.
func BytesToBytes32(b []byte) Bytes32 {
	return Bytes32(common.BytesToHash(b))
}

// decodeFixedHex fills out from s, which must hold exactly len(out) bytes.
func decodeFixedHex(s string, out []byte) error {
	if len(s) == len(out)*2+2 {
		if strings.ToLower(s[:2]) != "0x" {
			return errors.New("invalid prefix")
		}
		s = s[2:]
	}
	if len(s) != len(out)*2 {
		return errors.New("invalid length")
	}
	_, err := hex.Decode(out, []byte(s))
	return err
}
