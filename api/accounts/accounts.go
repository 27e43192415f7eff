// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package accounts

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/vechain/multirewards/api/types"
	"github.com/vechain/multirewards/api/utils"
	"github.com/vechain/multirewards/builtin/multirewards"
	"github.com/vechain/multirewards/engine"
	"github.com/vechain/multirewards/thor"
)

type Accounts struct {
	engine    *engine.Engine
	enableOps bool
}

func New(engine *engine.Engine, enableOps bool) *Accounts {
	return &Accounts{
		engine,
		enableOps,
	}
}

func (a *Accounts) getAccount(addr thor.Address) (*Account, error) {
	acc := &Account{}
	err := a.engine.View(func(pool *multirewards.MultiRewards, now uint64) error {
		staked, err := pool.BalanceOf(addr)
		if err != nil {
			return err
		}
		acc.Staked = types.Amount(staked)

		tokens, err := pool.RewardTokens()
		if err != nil {
			return err
		}
		acc.Earned = make([]*types.TokenAmount, 0, len(tokens))
		for _, token := range tokens {
			earned, err := pool.Earned(addr, token, now)
			if err != nil {
				return err
			}
			acc.Earned = append(acc.Earned, &types.TokenAmount{Token: token, Amount: types.Amount(earned)})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return acc, nil
}

func parseAddress(req *http.Request, name string) (thor.Address, error) {
	addr, err := thor.ParseAddress(mux.Vars(req)[name])
	if err != nil {
		return thor.Address{}, utils.BadRequest(errors.WithMessage(err, name))
	}
	return *addr, nil
}

func (a *Accounts) handleGetAccount(w http.ResponseWriter, req *http.Request) error {
	addr, err := parseAddress(req, "address")
	if err != nil {
		return err
	}
	acc, err := a.getAccount(addr)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, acc)
}

func (a *Accounts) handleGetBalance(w http.ResponseWriter, req *http.Request) error {
	addr, err := parseAddress(req, "address")
	if err != nil {
		return err
	}
	token, err := parseAddress(req, "token")
	if err != nil {
		return err
	}
	bal, err := a.engine.TokenBalance(token, addr)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &Balance{Token: token, Balance: types.Amount(bal)})
}

func parseAmountRequest(req *http.Request) (*uint256.Int, error) {
	var body AmountRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return nil, utils.BadRequest(errors.WithMessage(err, "body"))
	}
	amount, err := types.ParseAmount(body.Amount)
	if err != nil {
		return nil, utils.BadRequest(errors.WithMessage(err, "amount"))
	}
	return amount, nil
}

// handleOp wraps a pool operation issued by the account in the path.
func (a *Accounts) handleOp(op func(caller thor.Address, req *http.Request) (*engine.Result, error)) utils.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) error {
		caller, err := parseAddress(req, "address")
		if err != nil {
			return err
		}
		res, err := op(caller, req)
		if err != nil {
			return err
		}
		return utils.WriteJSON(w, types.ConvertResult(res))
	}
}

func (a *Accounts) stake(caller thor.Address, req *http.Request) (*engine.Result, error) {
	amount, err := parseAmountRequest(req)
	if err != nil {
		return nil, err
	}
	return a.engine.Stake(caller, amount)
}

func (a *Accounts) withdraw(caller thor.Address, req *http.Request) (*engine.Result, error) {
	amount, err := parseAmountRequest(req)
	if err != nil {
		return nil, err
	}
	return a.engine.Withdraw(caller, amount)
}

func (a *Accounts) claim(caller thor.Address, _ *http.Request) (*engine.Result, error) {
	return a.engine.GetReward(caller)
}

func (a *Accounts) exit(caller thor.Address, _ *http.Request) (*engine.Result, error) {
	return a.engine.Exit(caller)
}

func (a *Accounts) transfer(caller thor.Address, req *http.Request) (*engine.Result, error) {
	var body TransferRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return nil, utils.BadRequest(errors.WithMessage(err, "body"))
	}
	amount, err := types.ParseAmount(body.Amount)
	if err != nil {
		return nil, utils.BadRequest(errors.WithMessage(err, "amount"))
	}
	return a.engine.Transfer(caller, body.Token, body.To, amount)
}

func (a *Accounts) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/{address}").
		Methods(http.MethodGet).
		Name("GET /accounts/{address}").
		HandlerFunc(utils.WrapHandlerFunc(a.handleGetAccount))
	sub.Path("/{address}/balances/{token}").
		Methods(http.MethodGet).
		Name("GET /accounts/{address}/balances/{token}").
		HandlerFunc(utils.WrapHandlerFunc(a.handleGetBalance))

	if !a.enableOps {
		return
	}
	ops := map[string]func(thor.Address, *http.Request) (*engine.Result, error){
		"stake":    a.stake,
		"withdraw": a.withdraw,
		"claim":    a.claim,
		"exit":     a.exit,
		"transfer": a.transfer,
	}
	for name, op := range ops {
		sub.Path("/{address}/" + name).
			Methods(http.MethodPost).
			Name("POST /accounts/{address}/" + name).
			HandlerFunc(utils.WrapHandlerFunc(a.handleOp(op)))
	}
}
