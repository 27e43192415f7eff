// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package registry

import (
	"github.com/vechain/multirewards/builtin/reverts"
	"github.com/vechain/multirewards/builtin/solidity"
	"github.com/vechain/multirewards/thor"
)

var (
	tokensSlot  = thor.Blake2b([]byte("registry-tokens"))
	configsSlot = thor.Blake2b([]byte("registry-configs"))
)

// Config is the per token configuration.
// A registered token always has a non-zero duration.
type Config struct {
	Distributor thor.Address
	Duration    uint64
}

// Registry keeps the reward tokens in registration order.
type Registry struct {
	tokens  *solidity.Array[thor.Address]
	configs *solidity.Mapping[thor.Address, *Config]
}

func New(ctx *solidity.Context) *Registry {
	return &Registry{
		tokens:  solidity.NewArray[thor.Address](ctx, tokensSlot),
		configs: solidity.NewMapping[thor.Address, *Config](ctx, configsSlot),
	}
}

func (r *Registry) Register(token, distributor thor.Address, duration uint64) error {
	if duration == 0 {
		return reverts.ErrInvalidDuration.Reason("duration must be positive")
	}
	cfg, err := r.configs.Get(token)
	if err != nil {
		return err
	}
	if cfg.Duration != 0 {
		return reverts.ErrDuplicateRegistration.Reason("%v", token)
	}
	if err := r.tokens.Push(token); err != nil {
		return err
	}
	return r.configs.Set(token, &Config{Distributor: distributor, Duration: duration})
}

// Get returns the config of a registered token.
func (r *Registry) Get(token thor.Address) (*Config, error) {
	cfg, err := r.configs.Get(token)
	if err != nil {
		return nil, err
	}
	if cfg.Duration == 0 {
		return nil, reverts.ErrUnknownToken.Reason("%v", token)
	}
	return cfg, nil
}

// Tokens returns the registered tokens in registration order.
func (r *Registry) Tokens() ([]thor.Address, error) {
	return r.tokens.All()
}

func (r *Registry) SetDistributor(token, distributor thor.Address) error {
	cfg, err := r.Get(token)
	if err != nil {
		return err
	}
	cfg.Distributor = distributor
	return r.configs.Set(token, cfg)
}

func (r *Registry) SetDuration(token thor.Address, duration uint64) error {
	if duration == 0 {
		return reverts.ErrInvalidDuration.Reason("duration must be positive")
	}
	cfg, err := r.Get(token)
	if err != nil {
		return err
	}
	cfg.Duration = duration
	return r.configs.Set(token, cfg)
}
