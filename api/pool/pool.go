// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/multirewards/api/types"
	"github.com/vechain/multirewards/api/utils"
	"github.com/vechain/multirewards/builtin/multirewards"
	"github.com/vechain/multirewards/engine"
)

type Pools struct {
	engine    *engine.Engine
	enableOps bool
}

func New(engine *engine.Engine, enableOps bool) *Pools {
	return &Pools{
		engine,
		enableOps,
	}
}

func (p *Pools) getPool() (*Pool, error) {
	opNum, lastTime := p.engine.Progress()
	out := &Pool{OpNumber: opNum, Time: lastTime}
	err := p.engine.View(func(pool *multirewards.MultiRewards, _ uint64) (err error) {
		out.Address = pool.Address()
		if out.Admin, err = pool.Admin(); err != nil {
			return err
		}
		if out.StakingToken, err = pool.StakingToken(); err != nil {
			return err
		}
		if out.Paused, err = pool.Paused(); err != nil {
			return err
		}
		total, err := pool.TotalSupply()
		if err != nil {
			return err
		}
		out.TotalSupply = types.Amount(total)
		out.RewardTokens, err = pool.RewardTokens()
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (p *Pools) handleGetPool(w http.ResponseWriter, _ *http.Request) error {
	pool, err := p.getPool()
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, pool)
}

func (p *Pools) handleSetPaused(w http.ResponseWriter, req *http.Request) error {
	var body SetPaused
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	res, err := p.engine.SetPaused(body.Caller, body.Paused)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, types.ConvertResult(res))
}

func (p *Pools) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodGet).
		Name("GET /pool").
		HandlerFunc(utils.WrapHandlerFunc(p.handleGetPool))
	if p.enableOps {
		sub.Path("/paused").
			Methods(http.MethodPost).
			Name("POST /pool/paused").
			HandlerFunc(utils.WrapHandlerFunc(p.handleSetPaused))
	}
}
