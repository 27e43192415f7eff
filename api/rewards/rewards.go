// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package rewards

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/multirewards/api/types"
	"github.com/vechain/multirewards/api/utils"
	"github.com/vechain/multirewards/builtin/multirewards"
	"github.com/vechain/multirewards/engine"
	"github.com/vechain/multirewards/thor"
)

type Rewards struct {
	engine    *engine.Engine
	enableOps bool
}

func New(engine *engine.Engine, enableOps bool) *Rewards {
	return &Rewards{
		engine,
		enableOps,
	}
}

func getReward(pool *multirewards.MultiRewards, token thor.Address, now uint64) (*Reward, error) {
	data, err := pool.RewardData(token)
	if err != nil {
		return nil, err
	}
	rpt, err := pool.RewardPerToken(token, now)
	if err != nil {
		return nil, err
	}
	applicable, err := pool.LastTimeRewardApplicable(token, now)
	if err != nil {
		return nil, err
	}
	forDuration, err := pool.GetRewardForDuration(token)
	if err != nil {
		return nil, err
	}
	return &Reward{
		Token:                    token,
		Distributor:              data.Distributor,
		Duration:                 data.Duration,
		PeriodFinish:             data.PeriodFinish,
		RewardRate:               types.Amount(data.RewardRate),
		LastUpdateTime:           data.LastUpdateTime,
		RewardPerTokenStored:     types.Amount(data.RewardPerTokenStored),
		RewardPerToken:           types.Amount(rpt),
		LastTimeRewardApplicable: applicable,
		RewardForDuration:        types.Amount(forDuration),
	}, nil
}

func (r *Rewards) handleGetRewards(w http.ResponseWriter, _ *http.Request) error {
	var out []*Reward
	err := r.engine.View(func(pool *multirewards.MultiRewards, now uint64) error {
		tokens, err := pool.RewardTokens()
		if err != nil {
			return err
		}
		out = make([]*Reward, 0, len(tokens))
		for _, token := range tokens {
			reward, err := getReward(pool, token, now)
			if err != nil {
				return err
			}
			out = append(out, reward)
		}
		return nil
	})
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, out)
}

func parseToken(req *http.Request) (thor.Address, error) {
	token, err := thor.ParseAddress(mux.Vars(req)["token"])
	if err != nil {
		return thor.Address{}, utils.BadRequest(errors.WithMessage(err, "token"))
	}
	return *token, nil
}

func (r *Rewards) handleGetReward(w http.ResponseWriter, req *http.Request) error {
	token, err := parseToken(req)
	if err != nil {
		return err
	}
	var out *Reward
	err = r.engine.View(func(pool *multirewards.MultiRewards, now uint64) (err error) {
		out, err = getReward(pool, token, now)
		return
	})
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, out)
}

func (r *Rewards) handleAddReward(w http.ResponseWriter, req *http.Request) error {
	var body AddReward
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	res, err := r.engine.AddReward(body.Caller, body.Token, body.Distributor, body.Duration)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, types.ConvertResult(res))
}

func (r *Rewards) handleNotify(w http.ResponseWriter, req *http.Request) error {
	token, err := parseToken(req)
	if err != nil {
		return err
	}
	var body Notify
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	amount, err := types.ParseAmount(body.Amount)
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "amount"))
	}
	res, err := r.engine.NotifyRewardAmount(body.Caller, token, amount)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, types.ConvertResult(res))
}

func (r *Rewards) handleSetDuration(w http.ResponseWriter, req *http.Request) error {
	token, err := parseToken(req)
	if err != nil {
		return err
	}
	var body SetDuration
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	res, err := r.engine.SetRewardsDuration(body.Caller, token, body.Duration)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, types.ConvertResult(res))
}

func (r *Rewards) handleSetDistributor(w http.ResponseWriter, req *http.Request) error {
	token, err := parseToken(req)
	if err != nil {
		return err
	}
	var body SetDistributor
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	res, err := r.engine.SetRewardsDistributor(body.Caller, token, body.Distributor)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, types.ConvertResult(res))
}

func (r *Rewards) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodGet).
		Name("GET /rewards").
		HandlerFunc(utils.WrapHandlerFunc(r.handleGetRewards))
	sub.Path("/{token}").
		Methods(http.MethodGet).
		Name("GET /rewards/{token}").
		HandlerFunc(utils.WrapHandlerFunc(r.handleGetReward))

	if !r.enableOps {
		return
	}
	sub.Path("").
		Methods(http.MethodPost).
		Name("POST /rewards").
		HandlerFunc(utils.WrapHandlerFunc(r.handleAddReward))
	sub.Path("/{token}/notify").
		Methods(http.MethodPost).
		Name("POST /rewards/{token}/notify").
		HandlerFunc(utils.WrapHandlerFunc(r.handleNotify))
	sub.Path("/{token}/duration").
		Methods(http.MethodPost).
		Name("POST /rewards/{token}/duration").
		HandlerFunc(utils.WrapHandlerFunc(r.handleSetDuration))
	sub.Path("/{token}/distributor").
		Methods(http.MethodPost).
		Name("POST /rewards/{token}/distributor").
		HandlerFunc(utils.WrapHandlerFunc(r.handleSetDistributor))
}
