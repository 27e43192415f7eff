// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import (
	"context"
	"log/slog"
	"sync/atomic"

	ethlog "github.com/ethereum/go-ethereum/log"
)

// rootHandler lets package loggers, created at init, follow SetHandler.
var rootHandler = newSwapHandler(slog.DiscardHandler)

func init() {
	ethlog.SetDefault(ethlog.NewLogger(rootHandler))
}

// SetHandler replaces the handler behind the root logger and every logger
// derived from it.
func SetHandler(h slog.Handler) {
	rootHandler.target.Store(&h)
}

type swapHandler struct {
	target *atomic.Pointer[slog.Handler]
	derive []func(slog.Handler) slog.Handler
}

func newSwapHandler(h slog.Handler) *swapHandler {
	target := new(atomic.Pointer[slog.Handler])
	target.Store(&h)
	return &swapHandler{target: target}
}

func (s *swapHandler) current() slog.Handler {
	h := *s.target.Load()
	for _, fn := range s.derive {
		h = fn(h)
	}
	return h
}

func (s *swapHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return (*s.target.Load()).Enabled(ctx, level)
}

func (s *swapHandler) Handle(ctx context.Context, r slog.Record) error {
	return s.current().Handle(ctx, r)
}

func (s *swapHandler) with(fn func(slog.Handler) slog.Handler) *swapHandler {
	derive := make([]func(slog.Handler) slog.Handler, 0, len(s.derive)+1)
	derive = append(derive, s.derive...)
	return &swapHandler{target: s.target, derive: append(derive, fn)}
}

func (s *swapHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return s.with(func(h slog.Handler) slog.Handler { return h.WithAttrs(attrs) })
}

func (s *swapHandler) WithGroup(name string) slog.Handler {
	return s.with(func(h slog.Handler) slog.Handler { return h.WithGroup(name) })
}
