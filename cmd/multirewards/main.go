// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// multirewards runs a staking pool with an HTTP API in front of it.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"golang.org/x/sync/errgroup"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/multirewards/admin"
	"github.com/vechain/multirewards/api"
	"github.com/vechain/multirewards/engine"
	"github.com/vechain/multirewards/health"
	"github.com/vechain/multirewards/log"
	"github.com/vechain/multirewards/metrics"
)

var (
	version   string
	gitCommit string
	gitTag    string

	logger = log.WithContext("pkg", "main")
)

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func main() {
	app := cli.App{
		Version: fullVersion(),
		Name:    "MultiRewards",
		Usage:   "Staking pool paying several reward tokens",
		Flags: []cli.Flag{
			dataDirFlag,
			configFlag,
			apiAddrFlag,
			apiCorsFlag,
			apiEnableOpsFlag,
			apiLogsLimitFlag,
			enableAPILogsFlag,
			verbosityFlag,
			jsonLogsFlag,
			enableMetricsFlag,
			metricsAddrFlag,
			enableAdminFlag,
			adminAddrFlag,
			cacheFlag,
		},
		Action: defaultAction,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func defaultAction(ctx *cli.Context) error {
	defer func() { logger.Info("exited") }()

	logLevel := initLogger(ctx)

	if ctx.Bool(enableMetricsFlag.Name) {
		metrics.InitializePrometheusMetrics()
	}

	gene, err := selectGenesis(ctx)
	if err != nil {
		return err
	}
	instanceDir, err := makeInstanceDir(ctx, gene)
	if err != nil {
		return err
	}

	mainDB, err := openMainDB(ctx, instanceDir)
	if err != nil {
		return err
	}
	defer func() { logger.Info("closing main database..."); mainDB.Close() }()

	logDB, err := openLogDB(instanceDir)
	if err != nil {
		return err
	}
	defer func() { logger.Info("closing log database..."); logDB.Close() }()

	eng, err := engine.New(stateStore(mainDB), logDB, gene, engine.SystemClock, stateCacheSize(ctx))
	if err != nil {
		return err
	}
	defer eng.Close()

	handler, closeSubs := api.New(eng, gene.ID(), api.Options{
		AllowedOrigins:  ctx.String(apiCorsFlag.Name),
		EnableOps:       ctx.Bool(apiEnableOpsFlag.Name),
		EnableReqLogger: ctx.Bool(enableAPILogsFlag.Name),
		EnableMetrics:   ctx.Bool(enableMetricsFlag.Name),
		LogsLimit:       ctx.Uint64(apiLogsLimitFlag.Name),
		MessageCache:    1000,
	})
	defer closeSubs()

	exitCtx := handleExitSignal()
	group, groupCtx := errgroup.WithContext(exitCtx)

	apiURL, err := serve(group, groupCtx, "API", ctx.String(apiAddrFlag.Name), handler)
	if err != nil {
		return err
	}
	if ctx.Bool(enableMetricsFlag.Name) {
		metricsURL, err := serve(group, groupCtx, "metrics", ctx.String(metricsAddrFlag.Name), metricsHandler())
		if err != nil {
			return err
		}
		logger.Info("metrics server started", "url", metricsURL)
	}
	if ctx.Bool(enableAdminFlag.Name) {
		adminURL, err := serve(group, groupCtx, "admin", ctx.String(adminAddrFlag.Name), admin.HTTPHandler(logLevel, health.New(eng)))
		if err != nil {
			return err
		}
		logger.Info("admin server started", "url", adminURL)
	}

	printStartupMessage(gene, eng, instanceDir, apiURL, ctx.Bool(apiEnableOpsFlag.Name))

	if err := group.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
