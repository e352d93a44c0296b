package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/meme-bots/go-inspect/sol"
	"github.com/meme-bots/go-inspect/types"
	"github.com/meme-bots/go-inspect/utils"
	"github.com/samber/lo"
)

func newTable(title string) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle(title)
	t.SetStyle(table.StyleLight)
	return t
}

func renderToken(info *types.TokenInfo) {
	t := newTable(info.Address)
	t.AppendRow(table.Row{"Symbol", info.Symbol})
	if info.Metadata != nil {
		t.AppendRow(table.Row{"Name", info.Metadata.Name})
		t.AppendRow(table.Row{"URI", info.Metadata.URI})
	}
	t.AppendRow(table.Row{"Decimals", info.Decimals})
	if info.Supply != nil {
		t.AppendRow(table.Row{"Supply", uiAmount(*info.Supply, info.Decimals)})
	}
	t.AppendRow(table.Row{"Mint authority", optional(info.MintAuthority)})
	t.AppendRow(table.Row{"Freeze authority", optional(info.FreezeAuthority)})
	if info.LogoURI != "" {
		t.AppendRow(table.Row{"Logo", info.LogoURI})
	}
	t.Render()
}

func renderMetadata(mint string, meta *types.TokenMetadata) {
	t := newTable(mint)
	t.AppendRow(table.Row{"Name", meta.Name})
	t.AppendRow(table.Row{"Symbol", meta.Symbol})
	t.AppendRow(table.Row{"URI", meta.URI})
	t.Render()
}

func renderPool(address string, info *types.PoolInfo) {
	t := newTable(address)
	t.SetCaption("Raydium AMM v4 pool")
	t.AppendHeader(table.Row{"", "Base", "Quote"})
	t.AppendRow(table.Row{"Symbol", info.BaseToken.Symbol, info.QuoteToken.Symbol})
	t.AppendRow(table.Row{"Mint", info.BaseTokenAddress, info.QuoteTokenAddress})
	t.AppendRow(table.Row{"Decimals", info.BaseToken.Decimals, info.QuoteToken.Decimals})
	t.AppendRow(table.Row{"Vault", info.BaseVault, info.QuoteVault})
	if info.Liquidity != nil {
		t.AppendRow(table.Row{"Reserve",
			uiAmount(info.Liquidity.BaseTokenAmount, info.Liquidity.BaseTokenDecimals),
			uiAmount(info.Liquidity.QuoteTokenAmount, info.Liquidity.QuoteTokenDecimals)})
	}
	t.AppendSeparator()
	t.AppendRow(table.Row{"LP mint", info.LpTokenAddress, ""})
	t.AppendRow(table.Row{"LP supply", info.LpSupply, ""})
	t.AppendRow(table.Row{"Authority", info.Authority, ""})
	t.AppendRow(table.Row{"Nonce", info.Nonce, ""})
	t.AppendRow(table.Row{"Open time", info.OpenTime, ""})
	if info.Price != nil {
		t.AppendSeparator()
		t.AppendRow(table.Row{"Price",
			fmt.Sprintf("1 %s = %s %s", info.BaseToken.Symbol, utils.PrettyFloat(info.Price.BaseToQuote), info.QuoteToken.Symbol),
			fmt.Sprintf("1 %s = %s %s", info.QuoteToken.Symbol, utils.PrettyFloat(info.Price.QuoteToBase), info.BaseToken.Symbol)})
	}
	t.Render()
}

func renderPair(address string, pair *types.PoolTokenPair) {
	t := newTable(address)
	t.AppendHeader(table.Row{"", "Base", "Quote"})
	t.AppendRow(table.Row{"Symbol", pair.BaseToken.Symbol, pair.QuoteToken.Symbol})
	t.AppendRow(table.Row{"Mint", pair.BaseToken.Address, pair.QuoteToken.Address})
	t.AppendRow(table.Row{"Decimals", pair.BaseToken.Decimals, pair.QuoteToken.Decimals})
	t.Render()
}

func renderLiquidity(address string, l *types.PoolLiquidity) {
	t := newTable(address)
	t.AppendHeader(table.Row{"", "Raw", "Amount"})
	t.AppendRow(table.Row{"Base", l.BaseTokenAmount, uiAmount(l.BaseTokenAmount, l.BaseTokenDecimals)})
	t.AppendRow(table.Row{"Quote", l.QuoteTokenAmount, uiAmount(l.QuoteTokenAmount, l.QuoteTokenDecimals)})
	t.Render()
}

func renderPrice(address string, p *types.PriceRatio) {
	t := newTable(address)
	t.AppendRow(table.Row{"Base → Quote", utils.PrettyFloat(p.BaseToQuote)})
	t.AppendRow(table.Row{"Quote → Base", utils.PrettyFloat(p.QuoteToBase)})
	t.Render()
}

func printSample(s sol.PriceSample) {
	at := s.At.Format("15:04:05")
	if s.Err != nil {
		color.Red("%s %s %s", at, s.Pool, s.Err)
		return
	}
	color.Cyan("%s %s base→quote %s quote→base %s", at, s.Pool,
		utils.PrettyFloat(s.Price.BaseToQuote), utils.PrettyFloat(s.Price.QuoteToBase))
}

func uiAmount(raw string, decimals uint8) string {
	v, err := utils.UiAmount(raw, decimals)
	if err != nil {
		return raw
	}
	return utils.AbbreviateDecimal(v)
}

func optional(s *string) string {
	return lo.FromPtrOr(s, "none")
}
