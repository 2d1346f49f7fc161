package abi

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

var ERC20TokenABI abi.ABI

var erc20ABI = `[` +
	`{"type":"function","name":"name","constant":true,"stateMutability":"view","inputs":[],"outputs":[{"type":"string"}]},` +
	`{"type":"function","name":"symbol","constant":true,"stateMutability":"view","inputs":[],"outputs":[{"type":"string"}]},` +
	`{"type":"function","name":"decimals","constant":true,"stateMutability":"view","inputs":[],"outputs":[{"type":"uint8"}]},` +
	`{"type":"function","name":"balanceOf","constant":true,"stateMutability":"view","inputs":[{"type":"address","name":"owner"}],"outputs":[{"type":"uint256"}]},` +
	`{"type":"function","name":"allowance","constant":true,"stateMutability":"view","inputs":[{"type":"address","name":"owner"},{"type":"address","name":"spender"}],"outputs":[{"type":"uint256"}]},` +
	`{"type":"function","name":"approve","inputs":[{"type":"address","name":"spender"},{"type":"uint256","name":"amount"}],"outputs":[{"type":"bool"}]}` +
	`]`

func init() {
	_abi, err := abi.JSON(strings.NewReader(erc20ABI))
	if err != nil {
		panic("Failed to parse erc20 abi")
	}
	ERC20TokenABI = _abi
}
