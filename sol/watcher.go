package sol

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/meme-bots/go-inspect/sol/common"
	"github.com/meme-bots/go-inspect/types"
	"github.com/meme-bots/go-inspect/utils"
	"go.uber.org/zap"
)

type (
	watcherState uint8

	PriceSource interface {
		GetPriceRatio(ctx context.Context, address string) (*types.PriceRatio, error)
	}

	PriceSample struct {
		Pool  string
		Price *types.PriceRatio
		Err   error
		At    time.Time
	}

	// PoolWatcher polls the price of a set of pools. onSample is called from
	// one goroutine per pool, so it must be safe for concurrent use.
	PoolWatcher struct {
		source   PriceSource
		pools    []string
		interval time.Duration
		onSample func(PriceSample)
		metrics  *Metrics
		logger   *zap.Logger

		ctx          context.Context
		cancel       context.CancelFunc
		subprocesses utils.Subprocesses

		lastLock sync.RWMutex
		last     map[string]PriceSample

		stateMu sync.Mutex
		state   watcherState
	}
)

const (
	_ watcherState = iota
	watcherStatePending
	watcherStateOpen
	watcherStateClosed
)

func NewPoolWatcher(
	source PriceSource,
	pools []string,
	interval time.Duration,
	onSample func(PriceSample),
	metrics *Metrics,
	logger *zap.Logger,
) (*PoolWatcher, error) {
	if len(pools) == 0 {
		return nil, errors.New("no pools to watch")
	}
	for _, pool := range pools {
		if !common.IsValidAddress(pool) {
			return nil, fmt.Errorf("%w: %q", types.ErrInvalidAddress, pool)
		}
	}
	if interval <= 0 {
		return nil, fmt.Errorf("invalid watch interval %s", interval)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &PoolWatcher{
		source:   source,
		pools:    pools,
		interval: interval,
		onSample: onSample,
		metrics:  metrics,
		logger:   logger,
		ctx:      ctx,
		cancel:   cancel,
		last:     make(map[string]PriceSample, len(pools)),
		state:    watcherStatePending,
	}, nil
}

func (w *PoolWatcher) Start() error {
	w.stateMu.Lock()
	defer w.stateMu.Unlock()

	if w.state != watcherStatePending {
		return errors.New("cannot Start() watcher that has already been started")
	}

	w.state = watcherStateOpen
	for _, pool := range w.pools {
		pool := pool
		w.subprocesses.Go(func() {
			w.WatchPool(pool)
		})
	}
	return nil
}

func (w *PoolWatcher) Close() error {
	w.stateMu.Lock()
	defer w.stateMu.Unlock()

	if w.state != watcherStateOpen {
		return errors.New("cannot Close() watcher that isn't open")
	}

	w.state = watcherStateClosed
	w.cancel()
	w.subprocesses.Wait()
	return nil
}

// WatchPool samples pool immediately and then once per interval until the
// watcher is closed.
func (w *PoolWatcher) WatchPool(pool string) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		w.sample(pool)

		select {
		case <-ticker.C:
		case <-w.ctx.Done():
			return
		}
	}
}

func (w *PoolWatcher) Latest(pool string) (PriceSample, bool) {
	w.lastLock.RLock()
	defer w.lastLock.RUnlock()
	s, ok := w.last[pool]
	return s, ok
}

func (w *PoolWatcher) sample(pool string) {
	price, err := w.source.GetPriceRatio(w.ctx, pool)
	if err != nil && w.ctx.Err() != nil {
		return
	}

	s := PriceSample{Pool: pool, Price: price, Err: err, At: time.Now()}
	if err != nil {
		w.logger.Warn("price sample failed", zap.String("pool", pool), zap.Error(err))
	} else if w.metrics != nil {
		w.metrics.WatchedPrices.WithLabelValues(pool, "base_to_quote").Set(price.BaseToQuote)
		w.metrics.WatchedPrices.WithLabelValues(pool, "quote_to_base").Set(price.QuoteToBase)
	}

	w.lastLock.Lock()
	w.last[pool] = s
	w.lastLock.Unlock()

	if w.onSample != nil {
		w.onSample(s)
	}
}
