package repository

import (
	"time"

	"github.com/padx/goapi/base/ctx"
	"github.com/padx/goapi/domain"
	hcdomain "github.com/padx/goapi/domain/healthcheck"
	"github.com/padx/goapi/service/chain"
)

type impl struct {
	chainId     domain.ChainId
	chainClient chain.Client
}

// New creates new healthCheckRepo object representation of HealthCheckRepo interface
func New(chainId domain.ChainId, chainClient chain.Client) hcdomain.HealthCheckRepo {
	return &impl{
		chainId:     chainId,
		chainClient: chainClient,
	}
}

func (im *impl) PingChain(context ctx.Ctx) error {
	ctx, cancel := ctx.WithTimeout(context, 2*time.Second)
	defer cancel()

	eth, err := im.chainClient.Eth(int32(im.chainId))
	if err != nil {
		context.WithField("err", err).Error("chain client unavailable")
		return err
	}
	if _, err := eth.BlockNumber(ctx); err != nil {
		context.WithField("err", err).Error("ping rpc error")
		return err
	}
	return nil
}
