// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package subscriptions

import (
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/vechain/multirewards/api/utils"
	"github.com/vechain/multirewards/engine"
	"github.com/vechain/multirewards/log"
	"github.com/vechain/multirewards/logdb"
)

var logger = log.WithContext("pkg", "subscriptions")

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 7) / 10
)

type Subscriptions struct {
	engine   *engine.Engine
	upgrader *websocket.Upgrader
	cache    *messageCache
	done     chan struct{}
	wg       sync.WaitGroup
}

func New(engine *engine.Engine, allowedOrigins []string, cacheSize int) *Subscriptions {
	return &Subscriptions{
		engine: engine,
		upgrader: &websocket.Upgrader{
			EnableCompression: true,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				return slices.Contains(allowedOrigins, "*") || slices.Contains(allowedOrigins, origin)
			},
		},
		cache: newMessageCache(cacheSize),
		done:  make(chan struct{}),
	}
}

func (s *Subscriptions) handleSubjectEvent(w http.ResponseWriter, req *http.Request) error {
	filter, err := parseEventFilter(req.URL.Query())
	if err != nil {
		return utils.BadRequest(err)
	}

	// subscribe before the handshake so no event committed after it is missed
	ch := make(chan []*logdb.Event, 64)
	sub := s.engine.SubscribeEvents(ch)
	defer sub.Unsubscribe()

	conn, err := s.upgrader.Upgrade(w, req, nil)
	if err != nil {
		// the upgrader has already responded
		logger.Debug("upgrade failed", "err", err)
		return nil
	}
	s.wg.Add(1)
	defer s.wg.Done()
	defer conn.Close()

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		conn.SetReadLimit(512)
		conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					logger.Debug("read error", "err", err)
				}
				return
			}
		}
	}()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, "server closing"), time.Now().Add(writeWait))
			return nil
		case <-closed:
			return nil
		case err := <-sub.Err():
			if err != nil {
				logger.Debug("subscription error", "err", err)
			}
			return nil
		case evs := <-ch:
			for _, ev := range evs {
				if !filter.Match(ev) {
					continue
				}
				msg, _, err := s.cache.GetOrAdd(ev)
				if err != nil {
					return nil
				}
				conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
					logger.Debug("write error", "err", err)
					return nil
				}
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return nil
			}
		}
	}
}

// Close terminates all websocket connections.
func (s *Subscriptions) Close() {
	close(s.done)
	s.wg.Wait()
}

func (s *Subscriptions) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/event").
		Methods(http.MethodGet).
		Name("WS /subscriptions/event").
		HandlerFunc(utils.WrapHandlerFunc(s.handleSubjectEvent))
}
