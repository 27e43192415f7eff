// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	cli "gopkg.in/urfave/cli.v1"
)

var (
	dataDirFlag = cli.StringFlag{
		Name:   "data-dir",
		Value:  defaultDataDir(),
		Usage:  "directory for pool databases",
		EnvVar: "MULTIREWARDS_DATA_DIR",
	}
	configFlag = cli.StringFlag{
		Name:   "config",
		Usage:  "path to a yaml genesis file (development pool if not set)",
		EnvVar: "MULTIREWARDS_CONFIG",
	}
	apiAddrFlag = cli.StringFlag{
		Name:   "api-addr",
		Value:  "localhost:8669",
		Usage:  "API service listening address",
		EnvVar: "MULTIREWARDS_API_ADDR",
	}
	apiCorsFlag = cli.StringFlag{
		Name:   "api-cors",
		Value:  "",
		Usage:  "comma separated list of domains from which to accept cross origin requests to API",
		EnvVar: "MULTIREWARDS_API_CORS",
	}
	apiEnableOpsFlag = cli.BoolFlag{
		Name:   "api-enable-ops",
		Usage:  "accept pool operations over the API, callers are not authenticated",
		EnvVar: "MULTIREWARDS_API_ENABLE_OPS",
	}
	apiLogsLimitFlag = cli.Uint64Flag{
		Name:   "api-logs-limit",
		Value:  1000,
		Usage:  "limit the number of events returned by /events API",
		EnvVar: "MULTIREWARDS_API_LOGS_LIMIT",
	}
	enableAPILogsFlag = cli.BoolFlag{
		Name:   "enable-api-logs",
		Usage:  "enables API requests logging",
		EnvVar: "MULTIREWARDS_ENABLE_API_LOGS",
	}
	verbosityFlag = cli.IntFlag{
		Name:   "verbosity",
		Value:  3,
		Usage:  "log verbosity (0-5)",
		EnvVar: "MULTIREWARDS_VERBOSITY",
	}
	jsonLogsFlag = cli.BoolFlag{
		Name:   "json-logs",
		Usage:  "output logs in JSON format",
		EnvVar: "MULTIREWARDS_JSON_LOGS",
	}
	enableMetricsFlag = cli.BoolFlag{
		Name:   "enable-metrics",
		Usage:  "enables metrics collection",
		EnvVar: "MULTIREWARDS_ENABLE_METRICS",
	}
	metricsAddrFlag = cli.StringFlag{
		Name:   "metrics-addr",
		Value:  "localhost:2112",
		Usage:  "metrics service listening address",
		EnvVar: "MULTIREWARDS_METRICS_ADDR",
	}
	enableAdminFlag = cli.BoolFlag{
		Name:   "enable-admin",
		Usage:  "enables admin server",
		EnvVar: "MULTIREWARDS_ENABLE_ADMIN",
	}
	adminAddrFlag = cli.StringFlag{
		Name:   "admin-addr",
		Value:  "localhost:2113",
		Usage:  "admin service listening address",
		EnvVar: "MULTIREWARDS_ADMIN_ADDR",
	}
	cacheFlag = cli.IntFlag{
		Name:   "cache",
		Value:  256,
		Usage:  "megabytes of ram allocated to the state database",
		EnvVar: "MULTIREWARDS_CACHE",
	}
)
