package raydium

import (
	"encoding/json"
	"sync"
)

type (
	ABIField struct {
		Name string `json:"name"`
		Type string `json:"type"`
	}

	ABIAccountMeta struct {
		Name     string `json:"name"`
		IsMut    bool   `json:"isMut"`
		IsSigner bool   `json:"isSigner"`
	}

	ABIInstruction struct {
		Name          string           `json:"name"`
		Discriminator uint8            `json:"discriminator"`
		Accounts      []ABIAccountMeta `json:"accounts"`
		Args          []ABIField       `json:"args"`
	}

	ABIAccount struct {
		Name   string     `json:"name"`
		Size   int        `json:"size"`
		Fields []ABIField `json:"fields"`
	}

	ABI struct {
		Version      string           `json:"version"`
		Name         string           `json:"name"`
		ProgramID    string           `json:"programId"`
		Instructions []ABIInstruction `json:"instructions"`
		Accounts     []ABIAccount     `json:"accounts"`
	}
)

var swapAccounts = []ABIAccountMeta{
	{Name: "tokenProgram"},
	{Name: "amm", IsMut: true},
	{Name: "ammAuthority"},
	{Name: "ammOpenOrders", IsMut: true},
	{Name: "ammTargetOrders", IsMut: true},
	{Name: "poolCoinTokenAccount", IsMut: true},
	{Name: "poolPcTokenAccount", IsMut: true},
	{Name: "serumProgram"},
	{Name: "serumMarket", IsMut: true},
	{Name: "serumBids", IsMut: true},
	{Name: "serumAsks", IsMut: true},
	{Name: "serumEventQueue", IsMut: true},
	{Name: "serumCoinVaultAccount", IsMut: true},
	{Name: "serumPcVaultAccount", IsMut: true},
	{Name: "serumVaultSigner"},
	{Name: "userSourceTokenAccount", IsMut: true},
	{Name: "userDestinationTokenAccount", IsMut: true},
	{Name: "userSourceOwner", IsSigner: true},
}

// ContractABI describes the AMM program for reference only; nothing here is executed.
var ContractABI = ABI{
	Version:   "4.0.0",
	Name:      "raydium_amm",
	ProgramID: ProgramID.String(),
	Instructions: []ABIInstruction{
		{
			Name:          "initialize2",
			Discriminator: 1,
			Accounts: []ABIAccountMeta{
				{Name: "tokenProgram"},
				{Name: "splAssociatedTokenAccount"},
				{Name: "systemProgram"},
				{Name: "rent"},
				{Name: "amm", IsMut: true},
				{Name: "ammAuthority"},
				{Name: "ammOpenOrders", IsMut: true},
				{Name: "lpMint", IsMut: true},
				{Name: "coinMint"},
				{Name: "pcMint"},
				{Name: "poolCoinTokenAccount", IsMut: true},
				{Name: "poolPcTokenAccount", IsMut: true},
				{Name: "poolWithdrawQueue", IsMut: true},
				{Name: "ammTargetOrders", IsMut: true},
				{Name: "poolTempLp", IsMut: true},
				{Name: "serumProgram"},
				{Name: "serumMarket"},
				{Name: "userWallet", IsMut: true, IsSigner: true},
				{Name: "userTokenCoin", IsMut: true},
				{Name: "userTokenPc", IsMut: true},
				{Name: "userLpTokenAccount", IsMut: true},
			},
			Args: []ABIField{
				{Name: "nonce", Type: "u8"},
				{Name: "openTime", Type: "u64"},
				{Name: "initPcAmount", Type: "u64"},
				{Name: "initCoinAmount", Type: "u64"},
			},
		},
		{
			Name:          "deposit",
			Discriminator: 3,
			Accounts: []ABIAccountMeta{
				{Name: "tokenProgram"},
				{Name: "amm", IsMut: true},
				{Name: "ammAuthority"},
				{Name: "ammOpenOrders"},
				{Name: "ammTargetOrders", IsMut: true},
				{Name: "lpMintAddress", IsMut: true},
				{Name: "poolCoinTokenAccount", IsMut: true},
				{Name: "poolPcTokenAccount", IsMut: true},
				{Name: "serumMarket"},
				{Name: "userCoinTokenAccount", IsMut: true},
				{Name: "userPcTokenAccount", IsMut: true},
				{Name: "userLpTokenAccount", IsMut: true},
				{Name: "userOwner", IsSigner: true},
				{Name: "serumEventQueue"},
			},
			Args: []ABIField{
				{Name: "maxCoinAmount", Type: "u64"},
				{Name: "maxPcAmount", Type: "u64"},
				{Name: "baseSide", Type: "u64"},
			},
		},
		{
			Name:          "withdraw",
			Discriminator: 4,
			Accounts: []ABIAccountMeta{
				{Name: "tokenProgram"},
				{Name: "amm", IsMut: true},
				{Name: "ammAuthority"},
				{Name: "ammOpenOrders", IsMut: true},
				{Name: "ammTargetOrders", IsMut: true},
				{Name: "lpMintAddress", IsMut: true},
				{Name: "poolCoinTokenAccount", IsMut: true},
				{Name: "poolPcTokenAccount", IsMut: true},
				{Name: "userLpTokenAccount", IsMut: true},
				{Name: "userCoinTokenAccount", IsMut: true},
				{Name: "userPcTokenAccount", IsMut: true},
				{Name: "userOwner", IsSigner: true},
			},
			Args: []ABIField{
				{Name: "amount", Type: "u64"},
			},
		},
		{
			Name:          "swapBaseIn",
			Discriminator: 9,
			Accounts:      swapAccounts,
			Args: []ABIField{
				{Name: "amountIn", Type: "u64"},
				{Name: "minimumAmountOut", Type: "u64"},
			},
		},
		{
			Name:          "swapBaseOut",
			Discriminator: 11,
			Accounts:      swapAccounts,
			Args: []ABIField{
				{Name: "maxAmountIn", Type: "u64"},
				{Name: "amountOut", Type: "u64"},
			},
		},
	},
	Accounts: []ABIAccount{
		{
			Name: "PoolState",
			Size: PoolStateSize,
			Fields: []ABIField{
				{Name: "version", Type: "u8"},
				{Name: "isInitialized", Type: "u8"},
				{Name: "nonce", Type: "u8"},
				{Name: "ammId", Type: "publicKey"},
				{Name: "baseTokenMint", Type: "publicKey"},
				{Name: "quoteTokenMint", Type: "publicKey"},
				{Name: "lpTokenMint", Type: "publicKey"},
				{Name: "baseVault", Type: "publicKey"},
				{Name: "quoteVault", Type: "publicKey"},
				{Name: "authority", Type: "publicKey"},
				{Name: "openTime", Type: "u64"},
				{Name: "lpSupply", Type: "u64"},
				{Name: "baseReserve", Type: "u64"},
				{Name: "quoteReserve", Type: "u64"},
				{Name: "targetBaseReserve", Type: "u64"},
				{Name: "targetQuoteReserve", Type: "u64"},
				{Name: "baseDepositLimit", Type: "u64"},
				{Name: "quoteDepositLimit", Type: "u64"},
				{Name: "state", Type: "u8"},
				{Name: "resetFlag", Type: "u8"},
				{Name: "minBaseAPY", Type: "u64"},
				{Name: "maxBaseAPY", Type: "u64"},
				{Name: "minQuoteAPY", Type: "u64"},
				{Name: "maxQuoteAPY", Type: "u64"},
				{Name: "totalDepositsPending", Type: "u64"},
				{Name: "totalWithdrawsPending", Type: "u64"},
				{Name: "poolOpenTime", Type: "u64"},
			},
		},
	},
}

var (
	abiOnce sync.Once
	abiJSON string
)

// ContractABIJSON is ContractABI as compact JSON.
func ContractABIJSON() string {
	abiOnce.Do(func() {
		data, err := json.Marshal(ContractABI)
		if err != nil {
			panic(err)
		}
		abiJSON = string(data)
	})
	return abiJSON
}
