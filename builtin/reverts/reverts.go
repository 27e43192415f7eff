// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reverts

import (
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
)

// Revert kinds raised by the built-in contracts.
var (
	ErrInvalidAmount         = New("invalid amount")
	ErrUnauthorized          = New("unauthorized")
	ErrDuplicateRegistration = New("reward token already registered")
	ErrInsufficientFunding   = New("provided reward too high")
	ErrExternalTransfer      = New("external transfer failed")
	ErrUnknownToken          = New("unknown reward token")
	ErrInvalidDuration       = New("invalid duration")
	ErrPeriodActive          = New("reward period still active")
	ErrPaused                = New("pool is paused")
	ErrOverflow              = New("arithmetic overflow")
)

// ErrRevert is a revert raised by a built-in contract.
// A revert created by Reason unwraps to the kind it was derived from.
type ErrRevert struct {
	kind    *ErrRevert
	message string
}

// New creates a revert kind with the given message.
func New(message string) *ErrRevert {
	return &ErrRevert{message: message}
}

// Reason derives a revert of the same kind carrying extra detail.
func (e *ErrRevert) Reason(format string, args ...any) *ErrRevert {
	return &ErrRevert{
		kind:    e.Kind(),
		message: e.Kind().message + ": " + fmt.Sprintf(format, args...),
	}
}

// Kind returns the sentinel kind of the revert.
func (e *ErrRevert) Kind() *ErrRevert {
	if e.kind != nil {
		return e.kind
	}
	return e
}

func (e *ErrRevert) Error() string {
	return e.message
}

func (e *ErrRevert) Unwrap() error {
	if e.kind == nil {
		return nil
	}
	return e.kind
}

// Bytes returns the revert message ABI encoded as Error(string).
func (e *ErrRevert) Bytes() []byte {
	if e == nil {
		return nil
	}

	// 4-byte selector for Error(string)
	selector, _ := hex.DecodeString("08c379a0")
	msg := []byte(e.message)
	padded := ((len(msg) + 31) / 32) * 32

	encoded := make([]byte, 0, 4+32+32+padded)
	encoded = append(encoded, selector...)

	word := make([]byte, 32)
	binary.BigEndian.PutUint64(word[24:], 32)
	encoded = append(encoded, word...)

	word = make([]byte, 32)
	binary.BigEndian.PutUint64(word[24:], uint64(len(msg)))
	encoded = append(encoded, word...)

	data := make([]byte, padded)
	copy(data, msg)
	return append(encoded, data...)
}

// IsRevertErr reports whether err is, or wraps, a revert.
func IsRevertErr(err any) bool {
	e, ok := err.(error)
	if !ok || e == nil {
		return false
	}
	_, ok = AsRevert(e)
	return ok
}

// AsRevert extracts the revert from err, if any.
func AsRevert(err error) (*ErrRevert, bool) {
	var re *ErrRevert
	if errors.As(err, &re) && re != nil {
		return re, true
	}
	return nil, false
}
