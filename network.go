package goinspect

import (
	"github.com/meme-bots/go-inspect/sol"
	"github.com/meme-bots/go-inspect/types"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// NewInspector builds the Solana backend from cfg. Missing fields take
// their defaults.
func NewInspector(cfg types.Config, logger *zap.Logger, reg prometheus.Registerer) (types.Inspector, error) {
	return sol.NewSolana(&cfg, logger, reg)
}
