package contract

import (
	"math/big"

	ethabi "github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	baseabi "github.com/padx/goapi/base/abi"
	bCtx "github.com/padx/goapi/base/ctx"
	"github.com/padx/goapi/domain"
	"github.com/padx/goapi/service/chain"
)

type Erc20Contract interface {
	Name(ctx bCtx.Ctx, chainId int32, addr domain.Address) (string, error)
	Symbol(ctx bCtx.Ctx, chainId int32, addr domain.Address) (string, error)
	Decimals(ctx bCtx.Ctx, chainId int32, addr domain.Address) (int32, error)
	BalanceOf(ctx bCtx.Ctx, chainId int32, addr, owner domain.Address) (*big.Int, error)
	Allowance(ctx bCtx.Ctx, chainId int32, addr, owner, spender domain.Address) (*big.Int, error)
	ApproveCalldata(spender domain.Address, amount *big.Int) ([]byte, error)
}

type Erc20 struct {
	chainService chain.Client
	abi          ethabi.ABI
}

func NewErc20(chainService chain.Client) *Erc20 {
	return &Erc20{
		chainService: chainService,
		abi:          baseabi.ERC20TokenABI,
	}
}

func (e *Erc20) Name(ctx bCtx.Ctx, chainId int32, addr domain.Address) (string, error) {
	unpacked, err := e.chainService.Call(ctx, chainId, common.HexToAddress(string(addr)), nil, e.abi, "name")
	if err != nil {
		return "", err
	}
	return unpacked[0].(string), nil
}

func (e *Erc20) Symbol(ctx bCtx.Ctx, chainId int32, addr domain.Address) (string, error) {
	unpacked, err := e.chainService.Call(ctx, chainId, common.HexToAddress(string(addr)), nil, e.abi, "symbol")
	if err != nil {
		return "", err
	}
	return unpacked[0].(string), nil
}

func (e *Erc20) Decimals(ctx bCtx.Ctx, chainId int32, addr domain.Address) (int32, error) {
	unpacked, err := e.chainService.Call(ctx, chainId, common.HexToAddress(string(addr)), nil, e.abi, "decimals")
	if err != nil {
		return 0, err
	}
	return int32(unpacked[0].(uint8)), nil
}

func (e *Erc20) BalanceOf(ctx bCtx.Ctx, chainId int32, addr, owner domain.Address) (*big.Int, error) {
	unpacked, err := e.chainService.Call(ctx, chainId, common.HexToAddress(string(addr)), nil, e.abi, "balanceOf", common.HexToAddress(string(owner)))
	if err != nil {
		return nil, err
	}
	return unpacked[0].(*big.Int), nil
}

func (e *Erc20) Allowance(ctx bCtx.Ctx, chainId int32, addr, owner, spender domain.Address) (*big.Int, error) {
	unpacked, err := e.chainService.Call(ctx, chainId, common.HexToAddress(string(addr)), nil, e.abi, "allowance", common.HexToAddress(string(owner)), common.HexToAddress(string(spender)))
	if err != nil {
		return nil, err
	}
	return unpacked[0].(*big.Int), nil
}

func (e *Erc20) ApproveCalldata(spender domain.Address, amount *big.Int) ([]byte, error) {
	return e.abi.Pack("approve", common.HexToAddress(string(spender)), amount)
}
