package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"
	goinspect "github.com/meme-bots/go-inspect"
	"github.com/meme-bots/go-inspect/config"
	"github.com/meme-bots/go-inspect/sol"
	"github.com/meme-bots/go-inspect/types"
	"github.com/meme-bots/go-inspect/utils"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const usage = `usage: inspector [flags] <command> [args]

<mint> may be a birdeye, pump.fun or solscan token URL, <pool> a
DexScreener pair URL.

commands:
  token <mint>                       token info
  metadata <mint>                    on-chain token metadata
  pda <mint>                         metadata account address
  pool [-liquidity] [-price] <pool>  pool info
  pair <pool>                        the pool's token pair
  liquidity <pool>                   live vault balances
  price <pool>                       price ratio
  abi                                AMM contract schema
  watch [-interval d] [-metrics-addr addr] <pool>...

flags:
`

type app struct {
	cfg       *types.Config
	inspector types.Inspector
	logger    *zap.Logger
	timeout   time.Duration
	save      bool
}

func main() {
	var (
		configFile string
		outputDir  string
		timeout    time.Duration
		noSave     bool
	)
	flag.StringVar(&configFile, "config", "", "YAML config file")
	flag.StringVar(&outputDir, "out", "", "directory for JSON results (overrides config)")
	flag.DurationVar(&timeout, "timeout", 30*time.Second, "timeout for a single command")
	flag.BoolVar(&noSave, "no-save", false, "do not write JSON results")
	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	if err := config.LoadEnv(); err != nil {
		fail(err)
	}

	logger, err := newLogger(os.Getenv("LOG_LEVEL"))
	if err != nil {
		fail(err)
	}
	defer logger.Sync() //nolint:errcheck

	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		fail(err)
	}
	if outputDir != "" {
		cfg.OutputDir = outputDir
	}

	a := &app{
		cfg:     cfg,
		logger:  logger,
		timeout: timeout,
		save:    !noSave,
	}
	if err := a.run(flag.Arg(0), flag.Args()[1:]); err != nil {
		fail(err)
	}
}

func (a *app) run(command string, args []string) error {
	// watch owns a metrics registry, everything else runs without one.
	if command == "watch" {
		return a.watch(args)
	}

	inspector, err := goinspect.NewInspector(*a.cfg, a.logger, nil)
	if err != nil {
		return err
	}
	defer inspector.Close()
	a.inspector = inspector

	ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
	defer cancel()

	switch command {
	case "token":
		return a.token(ctx, args)
	case "metadata":
		return a.metadata(ctx, args)
	case "pda":
		return a.pda(args)
	case "pool":
		return a.pool(ctx, args)
	case "pair":
		return a.pair(ctx, args)
	case "liquidity":
		return a.liquidity(ctx, args)
	case "price":
		return a.price(ctx, args)
	case "abi":
		return a.abi()
	}
	return fmt.Errorf("unknown command %q", command)
}

func (a *app) token(ctx context.Context, args []string) error {
	mint, err := a.tokenArg(args)
	if err != nil {
		return err
	}
	info, err := a.inspector.GetTokenInfo(ctx, mint)
	if err != nil {
		return err
	}
	renderToken(info)
	return a.persist("token_"+mint+".json", info)
}

func (a *app) metadata(ctx context.Context, args []string) error {
	mint, err := a.tokenArg(args)
	if err != nil {
		return err
	}
	meta, err := a.inspector.GetTokenMetadata(ctx, mint)
	if err != nil {
		return err
	}
	if meta == nil {
		color.Yellow("no metadata account for %s", mint)
		return nil
	}
	renderMetadata(mint, meta)
	return a.persist("metadata_"+mint+".json", meta)
}

func (a *app) pda(args []string) error {
	mint, err := a.tokenArg(args)
	if err != nil {
		return err
	}
	address, bump, err := a.inspector.DeriveMetadataAddress(mint)
	if err != nil {
		return err
	}
	fmt.Printf("%s (bump %d)\n", address, bump)
	return nil
}

func (a *app) pool(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("pool", flag.ContinueOnError)
	withLiquidity := fs.Bool("liquidity", false, "include live vault balances")
	withPrice := fs.Bool("price", false, "include the price ratio")
	if err := fs.Parse(args); err != nil {
		return err
	}
	address, err := a.poolArg(ctx, fs.Args())
	if err != nil {
		return err
	}

	info, err := a.inspector.GetPoolWithExtendedInfo(ctx, address, types.ExtendedInfoOptions{
		WithLiquidity: *withLiquidity,
		WithPrice:     *withPrice,
	})
	if err != nil {
		return err
	}
	renderPool(address, info)
	return a.persist("pool_"+address+".json", info)
}

func (a *app) pair(ctx context.Context, args []string) error {
	address, err := a.poolArg(ctx, args)
	if err != nil {
		return err
	}
	pair, err := a.inspector.GetPoolTokenPair(ctx, address)
	if err != nil {
		return err
	}
	renderPair(address, pair)
	return a.persist("pair_"+address+".json", pair)
}

func (a *app) liquidity(ctx context.Context, args []string) error {
	address, err := a.poolArg(ctx, args)
	if err != nil {
		return err
	}
	liquidity, err := a.inspector.GetPoolLiquidity(ctx, address)
	if err != nil {
		return err
	}
	renderLiquidity(address, liquidity)
	return a.persist("liquidity_"+address+".json", liquidity)
}

func (a *app) price(ctx context.Context, args []string) error {
	address, err := a.poolArg(ctx, args)
	if err != nil {
		return err
	}
	price, err := a.inspector.GetPriceRatio(ctx, address)
	if err != nil {
		return err
	}
	renderPrice(address, price)
	return a.persist("price_"+address+".json", price)
}

func (a *app) abi() error {
	fmt.Println(a.inspector.GetContractABI())
	return nil
}

func (a *app) watch(args []string) error {
	fs := flag.NewFlagSet("watch", flag.ContinueOnError)
	interval := fs.Duration("interval", 10*time.Second, "polling interval")
	metricsAddr := fs.String("metrics-addr", "", "serve Prometheus metrics on this address")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return errors.New("watch needs at least one pool address")
	}

	reg := prometheus.NewRegistry()
	s, err := sol.NewSolana(a.cfg, a.logger, reg)
	if err != nil {
		return err
	}
	defer s.Close()

	if *metricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		server := &http.Server{Addr: *metricsAddr, Handler: mux}
		go func() {
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				a.logger.Error("metrics server stopped", zap.Error(err))
			}
		}()
		defer server.Close()
		color.Cyan("metrics on http://%s/metrics", *metricsAddr)
	}

	ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
	defer cancel()
	pools := make([]string, 0, fs.NArg())
	for _, input := range fs.Args() {
		pool, err := s.ResolvePoolAddress(ctx, input)
		if err != nil {
			return err
		}
		pools = append(pools, pool)
	}

	watcher, err := sol.NewPoolWatcher(s, pools, *interval, printSample, s.Metrics(), a.logger.Named("watch"))
	if err != nil {
		return err
	}
	if err := watcher.Start(); err != nil {
		return err
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	return watcher.Close()
}

// tokenArg accepts a mint address or a token page URL.
func (a *app) tokenArg(args []string) (string, error) {
	if len(args) != 1 {
		return "", errors.New("expected exactly one mint address")
	}
	return a.inspector.ResolveTokenAddress(args[0])
}

// poolArg accepts a pool address or a DexScreener pair URL.
func (a *app) poolArg(ctx context.Context, args []string) (string, error) {
	if len(args) != 1 {
		return "", errors.New("expected exactly one pool address")
	}
	return a.inspector.ResolvePoolAddress(ctx, args[0])
}

func (a *app) persist(name string, v interface{}) error {
	if !a.save {
		return nil
	}
	path, err := utils.WriteJSON(a.cfg.OutputDir, name, v)
	if err != nil {
		return err
	}
	color.Green("saved %s", path)
	return nil
}

func newLogger(level string) (*zap.Logger, error) {
	if strings.EqualFold(level, "debug") {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	if level != "" {
		lvl, err := zap.ParseAtomicLevel(strings.ToLower(level))
		if err != nil {
			return nil, err
		}
		cfg.Level = lvl
	} else {
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	return cfg.Build()
}

func fail(err error) {
	color.New(color.FgRed).Fprintf(os.Stderr, "error: %s\n", err)
	os.Exit(1)
}
