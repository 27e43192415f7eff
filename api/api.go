// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"net/http"
	"strings"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/vechain/multirewards/api/accounts"
	"github.com/vechain/multirewards/api/events"
	"github.com/vechain/multirewards/api/pool"
	"github.com/vechain/multirewards/api/rewards"
	"github.com/vechain/multirewards/api/subscriptions"
	"github.com/vechain/multirewards/engine"
	"github.com/vechain/multirewards/log"
	"github.com/vechain/multirewards/thor"
)

var logger = log.WithContext("pkg", "api")

type Options struct {
	AllowedOrigins  string
	EnableOps       bool
	EnableReqLogger bool
	EnableMetrics   bool
	LogsLimit       uint64
	MessageCache    int
}

// New return api router
func New(eng *engine.Engine, genesisID thor.Bytes32, opts Options) (http.HandlerFunc, func()) {
	origins := strings.Split(strings.TrimSpace(opts.AllowedOrigins), ",")
	for i, o := range origins {
		origins[i] = strings.ToLower(strings.TrimSpace(o))
	}

	router := mux.NewRouter()

	pool.New(eng, opts.EnableOps).
		Mount(router, "/pool")
	accounts.New(eng, opts.EnableOps).
		Mount(router, "/accounts")
	rewards.New(eng, opts.EnableOps).
		Mount(router, "/rewards")
	events.New(eng.LogDB(), opts.LogsLimit).
		Mount(router, "/events")
	subs := subscriptions.New(eng, origins, opts.MessageCache)
	subs.Mount(router, "/subscriptions")

	if opts.EnableMetrics {
		router.Use(metricsMiddleware)
	}
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("x-genesis-id", genesisID.String())
			next.ServeHTTP(w, r)
		})
	})

	handler := handlers.CompressHandler(router)
	handler = handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedHeaders([]string{"content-type", "x-genesis-id"}),
		handlers.ExposedHeaders([]string{"x-genesis-id"}),
	)(handler)

	if opts.EnableReqLogger {
		handler = RequestLoggerHandler(handler, logger)
	}

	return handler.ServeHTTP, subs.Close // subscriptions handles hijacked conns, which need to be closed
}
