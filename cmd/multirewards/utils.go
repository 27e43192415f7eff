// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"os/user"
	"path/filepath"
	"syscall"
	"time"

	"github.com/elastic/gosigar"
	"github.com/ethereum/go-ethereum/common/fdlimit"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/multirewards/engine"
	"github.com/vechain/multirewards/genesis"
	"github.com/vechain/multirewards/kv"
	"github.com/vechain/multirewards/log"
	"github.com/vechain/multirewards/logdb"
	"github.com/vechain/multirewards/lvldb"
	"github.com/vechain/multirewards/metrics"
)

// devLaunchTime keeps the development genesis id stable across restarts.
const devLaunchTime = 1735689600

// stateBucket prefixes the contract storage in the main database.
const stateBucket = kv.Bucket("s")

func initLogger(ctx *cli.Context) *slog.LevelVar {
	var lvl slog.LevelVar
	lvl.Set(log.FromLegacyLevel(ctx.Int(verbosityFlag.Name)))

	var handler slog.Handler
	if ctx.Bool(jsonLogsFlag.Name) {
		handler = log.JSONHandlerWithLevel(os.Stderr, &lvl)
	} else {
		useColor := (isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())) && os.Getenv("TERM") != "dumb"
		handler = log.NewTerminalHandlerWithLevel(os.Stderr, &lvl, useColor)
	}
	log.SetHandler(handler)
	return &lvl
}

func selectGenesis(ctx *cli.Context) (*genesis.Genesis, error) {
	path := ctx.String(configFlag.Name)
	if path == "" {
		return genesis.NewDevnet(devLaunchTime), nil
	}
	gene, err := genesis.Load(path)
	if err != nil {
		return nil, errors.WithMessagef(err, "load genesis [%v]", path)
	}
	return gene, nil
}

func instanceDirName(gene *genesis.Genesis) string {
	return fmt.Sprintf("instance-%x", gene.ID().Bytes()[24:])
}

func makeInstanceDir(ctx *cli.Context, gene *genesis.Genesis) (string, error) {
	dataDir := ctx.String(dataDirFlag.Name)
	if dataDir == "" {
		return "", fmt.Errorf("unable to infer default data dir, use -%s to specify", dataDirFlag.Name)
	}
	instanceDir := filepath.Join(dataDir, instanceDirName(gene))
	if err := os.MkdirAll(instanceDir, 0o700); err != nil {
		return "", errors.Wrapf(err, "create data dir [%v]", instanceDir)
	}
	return instanceDir, nil
}

func normalizeCacheSize(sizeMB int) int {
	if sizeMB < 64 {
		sizeMB = 64
	}

	var mem gosigar.Mem
	if err := mem.Get(); err != nil {
		logger.Warn("failed to get total mem", "err", err)
		return sizeMB
	}
	return limitCacheSize(sizeMB, mem.Total)
}

// limitCacheSize caps the cache at half of the physical memory.
func limitCacheSize(sizeMB int, totalMem uint64) int {
	limitMB := int(totalMem / 1024 / 1024 / 2)
	if sizeMB > limitMB {
		logger.Warn("cache size(MB) limited", "limit", limitMB)
		return limitMB
	}
	return sizeMB
}

func suggestFDCache() (int, error) {
	limit, err := fdlimit.Current()
	if err != nil {
		return 0, errors.Wrap(err, "get fd limit")
	}
	if limit <= 1024 {
		logger.Warn("low fd limit, increase it if possible", "limit", limit)
	}
	return min(limit/2, 5120), nil
}

// stateCacheSize is the number of storage slots kept in memory.
func stateCacheSize(ctx *cli.Context) int {
	return normalizeCacheSize(ctx.Int(cacheFlag.Name)) * 1024
}

func openMainDB(ctx *cli.Context, dataDir string) (*lvldb.LevelDB, error) {
	cacheMB := normalizeCacheSize(ctx.Int(cacheFlag.Name))
	logger.Debug("cache size(MB)", "size", cacheMB)

	fdCache, err := suggestFDCache()
	if err != nil {
		return nil, err
	}
	logger.Debug("fd cache", "n", fdCache)

	dir := filepath.Join(dataDir, "main.db")
	db, err := lvldb.New(dir, lvldb.Options{
		CacheSize:              cacheMB / 2,
		OpenFilesCacheCapacity: fdCache,
	})
	if err != nil {
		return nil, errors.WithMessagef(err, "open main database [%v]", dir)
	}
	return db, nil
}

func stateStore(db kv.Store) kv.Store {
	return stateBucket.NewStore(db)
}

func openLogDB(dataDir string) (*logdb.LogDB, error) {
	dir := filepath.Join(dataDir, "events.db")
	db, err := logdb.New(dir)
	if err != nil {
		return nil, errors.WithMessagef(err, "open log database [%v]", dir)
	}
	return db, nil
}

func metricsHandler() http.Handler {
	router := mux.NewRouter()
	router.PathPrefix("/metrics").Handler(metrics.HTTPHandler())
	return handlers.CompressHandler(router)
}

// serve runs an http server in the group until ctx is done.
func serve(group *errgroup.Group, ctx context.Context, name, addr string, handler http.Handler) (string, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return "", errors.Wrapf(err, "listen %s addr [%v]", name, addr)
	}
	srv := &http.Server{Handler: handler, ReadHeaderTimeout: time.Second}

	group.Go(func() error {
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrapf(err, "%s server", name)
		}
		return nil
	})
	group.Go(func() error {
		<-ctx.Done()
		logger.Info("stopping server...", "name", name)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return "http://" + listener.Addr().String() + "/", nil
}

func handleExitSignal() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		exitSignalCh := make(chan os.Signal, 1)
		signal.Notify(exitSignalCh, os.Interrupt, syscall.SIGTERM)

		sig := <-exitSignalCh
		logger.Info("exit signal received", "signal", sig)
		cancel()
	}()
	return ctx
}

func printStartupMessage(gene *genesis.Genesis, eng *engine.Engine, dataDir, apiURL string, opsEnabled bool) {
	opNum, lastTime := eng.Progress()
	ops := "read only"
	if opsEnabled {
		ops = "operations enabled"
	}
	fmt.Printf(`Starting %v
    Genesis     [ %v ]
    Pool        [ %v ]
    Operation   [ #%v %v ]
    Data dir    [ %v ]
    API portal  [ %v (%v) ]
`,
		fullVersion(),
		gene.ID(),
		eng.Pool(),
		opNum, time.Unix(int64(lastTime), 0).UTC().Format(time.RFC3339),
		dataDir,
		apiURL, ops)
}

func homeDir() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	if usr, err := user.Current(); err == nil {
		return usr.HomeDir
	}
	return ""
}

func defaultDataDir() string {
	if home := homeDir(); home != "" {
		return filepath.Join(home, ".org.vechain.multirewards")
	}
	return ""
}
