// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package log provides the structured logger used across the node.
// It is a thin layer over go-ethereum's slog based logger.
package log

import (
	"io"
	"log/slog"

	ethlog "github.com/ethereum/go-ethereum/log"
)

// Logger writes key/value pairs to a Handler.
type Logger = ethlog.Logger

const (
	LevelTrace = ethlog.LevelTrace
	LevelDebug = ethlog.LevelDebug
	LevelInfo  = ethlog.LevelInfo
	LevelWarn  = ethlog.LevelWarn
	LevelError = ethlog.LevelError
	LevelCrit  = ethlog.LevelCrit
)

// WithContext returns a new logger with the given context attached.
func WithContext(ctx ...any) Logger {
	return ethlog.New(ctx...)
}

// Root returns the root logger.
func Root() Logger { return ethlog.Root() }

// SetDefault sets the default root logger.
func SetDefault(l Logger) { ethlog.SetDefault(l) }

// NewLogger returns a logger with the specified handler set.
func NewLogger(h slog.Handler) Logger { return ethlog.NewLogger(h) }

// JSONHandler returns a handler which prints records in JSON format.
func JSONHandler(wr io.Writer) slog.Handler { return ethlog.JSONHandler(wr) }

// FromLegacyLevel converts the 0..5 verbosity scale to a slog level.
func FromLegacyLevel(lvl int) slog.Level { return ethlog.FromLegacyLevel(lvl) }

// Discard returns a logger which drops every record.
func Discard() Logger { return ethlog.NewLogger(slog.DiscardHandler) }
