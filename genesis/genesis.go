// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"encoding/json"
	"fmt"
	"math/big"
	"os"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/vechain/multirewards/builtin/multirewards"
	"github.com/vechain/multirewards/builtin/token"
	"github.com/vechain/multirewards/events"
	"github.com/vechain/multirewards/state"
	"github.com/vechain/multirewards/thor"
)

// Config is the user supplied genesis of a pool.
type Config struct {
	LaunchTime   uint64       `yaml:"launchTime" json:"launchTime"`
	Pool         thor.Address `yaml:"pool" json:"pool"`
	Admin        thor.Address `yaml:"admin" json:"admin"`
	StakingToken thor.Address `yaml:"stakingToken" json:"stakingToken"`
	Paused       bool         `yaml:"paused" json:"paused"`
	Rewards      []Reward     `yaml:"rewards" json:"rewards"`
	Accounts     []Account    `yaml:"accounts" json:"accounts"`
}

// Reward is a reward token registered at genesis.
type Reward struct {
	Token       thor.Address `yaml:"token" json:"token"`
	Distributor thor.Address `yaml:"distributor" json:"distributor"`
	Duration    uint64       `yaml:"duration" json:"duration"`
}

// Account is an initial token balance.
type Account struct {
	Token   thor.Address          `yaml:"token" json:"token"`
	Address thor.Address          `yaml:"address" json:"address"`
	Balance *math.HexOrDecimal256 `yaml:"balance" json:"balance"`
}

// Genesis is a validated genesis config.
type Genesis struct {
	config  *Config
	id      thor.Bytes32
	builder *Builder
}

// Load reads a yaml (or json) genesis file.
func Load(path string) (*Genesis, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read genesis file")
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, "decode genesis file")
	}
	return New(&cfg)
}

// New validates the config and prepares the genesis builder.
func New(cfg *Config) (*Genesis, error) {
	if cfg.Pool.IsZero() {
		return nil, errors.New("pool address must be set")
	}
	if cfg.Admin.IsZero() {
		return nil, errors.New("admin must be set")
	}
	if cfg.StakingToken.IsZero() {
		return nil, errors.New("staking token must be set")
	}

	seen := make(map[thor.Address]bool)
	for _, r := range cfg.Rewards {
		if r.Token == cfg.StakingToken {
			return nil, fmt.Errorf("%v: staking token cannot be a reward token", r.Token)
		}
		if seen[r.Token] {
			return nil, fmt.Errorf("%v: duplicated reward token", r.Token)
		}
		if r.Duration == 0 {
			return nil, fmt.Errorf("%v: duration must be positive", r.Token)
		}
		seen[r.Token] = true
	}

	balances := make([]*uint256.Int, 0, len(cfg.Accounts))
	for _, a := range cfg.Accounts {
		if a.Balance == nil {
			return nil, fmt.Errorf("%v: balance must be set", a.Address)
		}
		bal, overflow := uint256.FromBig((*big.Int)(a.Balance))
		if overflow || bal.IsZero() {
			return nil, fmt.Errorf("%v: balance must be a non-zero uint256", a.Address)
		}
		balances = append(balances, bal)
	}

	data, err := json.Marshal(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "encode genesis")
	}

	builder := new(Builder).
		State(func(st *state.State, journal *events.Buffer) error {
			for i, a := range cfg.Accounts {
				if err := token.New(a.Token, st, journal).Mint(a.Address, balances[i]); err != nil {
					return errors.WithMessagef(err, "mint %v", a.Address)
				}
			}
			return nil
		}).
		State(func(st *state.State, journal *events.Buffer) error {
			pool := multirewards.New(cfg.Pool, st, func(addr thor.Address) multirewards.Asset {
				return token.New(addr, st, journal).Vault(cfg.Pool)
			}, journal)
			pool.Initialize(cfg.Admin, cfg.StakingToken)
			for _, r := range cfg.Rewards {
				if err := pool.AddReward(cfg.Admin, r.Token, r.Distributor, r.Duration); err != nil {
					return errors.WithMessagef(err, "add reward %v", r.Token)
				}
			}
			return pool.SetPaused(cfg.Admin, cfg.Paused)
		})

	return &Genesis{
		config:  cfg,
		id:      thor.Blake2b(data),
		builder: builder,
	}, nil
}

// ID identifies the genesis config, used to reject a data dir built from another one.
func (g *Genesis) ID() thor.Bytes32 {
	return g.id
}

func (g *Genesis) Config() *Config {
	return g.config
}

// Build writes the genesis state.
func (g *Genesis) Build(st *state.State) ([]*events.Event, error) {
	return g.builder.Build(st)
}
