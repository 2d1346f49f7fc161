package main

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/viper"

	"github.com/go-playground/validator/v10"
	"github.com/padx/goapi/base/ctx"
	"github.com/padx/goapi/base/log"
	bValidator "github.com/padx/goapi/base/validator"
	"github.com/padx/goapi/domain"
	"github.com/padx/goapi/domain/listing"
	mmiddleware "github.com/padx/goapi/middleware"
	"github.com/padx/goapi/service/cache"
	"github.com/padx/goapi/service/cache/provider/primitive"
	"github.com/padx/goapi/service/chain"
	"github.com/padx/goapi/service/chain/contract"
	"github.com/padx/goapi/service/wallet"
	hc_delivery "github.com/padx/goapi/stores/healthcheck/delivery/http"
	hc_repo "github.com/padx/goapi/stores/healthcheck/repository"
	hc_usecase "github.com/padx/goapi/stores/healthcheck/usecase"
	listing_delivery "github.com/padx/goapi/stores/listing/delivery/http"
	listing_repository "github.com/padx/goapi/stores/listing/repository"
	listing_usecase "github.com/padx/goapi/stores/listing/usecase"
	referral_delivery "github.com/padx/goapi/stores/referral/delivery/http"
	referral_repository "github.com/padx/goapi/stores/referral/repository"
	referral_usecase "github.com/padx/goapi/stores/referral/usecase"
	txn_usecase "github.com/padx/goapi/stores/txn/usecase"
)

func init() {
	viper.SetConfigType("yaml")
	viper.SetConfigFile(`infra/configs/config.yaml`)
	err := viper.ReadInConfig()
	if err != nil {
		panic(err)
	}

	if viper.GetBool(`debug`) {
		log.Log().Info("Service RUN on DEBUG mode")
	}
}

func main() {
	// init echo
	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{}))
	e.Use(middleware.RequestID())
	middL := mmiddleware.InitMiddleware()
	e.Use(middL.ResponseLogger())
	e.Use(middL.AddContext())
	e.Use(middleware.CORS())
	e.Validator = bValidator.NewCustomValidator(validator.New())

	context := ctx.Background()

	mmiddleware.SetupCache(viper.GetInt("cache.sizeMb"))

	// init chain service
	chainId := domain.ChainId(viper.GetInt32("chain.chainId"))
	rpcs := map[int32]string{
		int32(chainId): viper.GetString("chain.rpcUrl"),
	}
	chainService, err := chain.NewClient(context, &chain.ClientCfg{
		RpcUrls: rpcs,
	})
	if err != nil {
		context.WithField("err", err).Warn("chainService started with error")
	}

	// the signing key comes from the environment, never the config file
	signer, err := wallet.NewPrivateKeySigner(os.Getenv("WALLET_PRIVATE_KEY"))
	if err != nil {
		context.WithField("err", err).Panic("invalid wallet key")
	}
	ethClient, err := chainService.Eth(int32(chainId))
	if err != nil {
		context.WithField("err", err).Panic("no rpc client for configured chain")
	}
	transactor := chain.NewTransactor(&chain.TransactorCfg{
		ChainId: chainId,
		Client:  ethClient,
		Signer:  signer,
	})

	launchpadAddr := domain.Address(viper.GetString("launchpad.address")).ToLower()
	launchpad := contract.NewLaunchpad(chainService, chainId, launchpadAddr)
	erc20 := contract.NewErc20(chainService)

	tokenInfoCache := cache.New(cache.ServiceConfig{
		Ttl:   24 * time.Hour,
		Pfx:   "goapi",
		Cache: primitive.NewPrimitive("tokenInfo", viper.GetInt("cache.sizeMb")),
	})

	phaseCfg := listing.PhaseConfig{
		GraduationThresholdBps: viper.GetInt32("launchpad.graduationThresholdBps"),
		RefundWindow:           viper.GetDuration("launchpad.refundWindow"),
		OperatorWithdrawDelay:  viper.GetDuration("launchpad.operatorWithdrawDelay"),
	}
	model := listing.PricingModel(viper.GetString("launchpad.pricingModel"))
	if model == "" {
		model = listing.PricingFixed
	}

	// construct repository, usecase and delivery
	hcRepo := hc_repo.New(chainId, chainService)
	hc := hc_usecase.New(hcRepo)

	listingRepo := listing_repository.NewChainRepo(&listing_repository.ChainRepoCfg{
		ChainId:        chainId,
		Launchpad:      launchpad,
		Erc20:          erc20,
		TokenInfoCache: tokenInfoCache,
		Model:          model,
	})
	listingUC := listing_usecase.NewListingUseCase(&listing_usecase.ListingUseCaseCfg{
		Repo:        listingRepo,
		PhaseConfig: phaseCfg,
		Operator:    domain.Address(viper.GetString("launchpad.operator")).ToLower(),
	})
	refresher := listing_usecase.NewRefresher(&listing_usecase.RefresherCfg{
		UseCase:  listingUC,
		Interval: viper.GetDuration("launchpad.refreshInterval"),
	})

	txnUC := txn_usecase.NewTxnUseCase(&txn_usecase.TxnUseCaseCfg{
		ChainId:    chainId,
		Transactor: transactor,
		Erc20:      erc20,
	})

	referralRepo := referral_repository.NewFileRepo(viper.GetString("referral.dir"))
	referralUC := referral_usecase.NewReferralUseCase(&referral_usecase.ReferralUseCaseCfg{
		Repo:      referralRepo,
		Txn:       txnUC,
		Launchpad: launchpad,
	})

	builder := listing_delivery.NewIntentBuilder(launchpad)

	hc_delivery.New(e, hc)
	listing_delivery.New(e, listingUC, txnUC, refresher, builder)
	referral_delivery.New(e, referralUC)

	refresher.Start(context)

	go func() {
		if err := e.Start(viper.GetString("server.address")); err != nil && err != http.ErrServerClosed {
			log.Log().WithField("err", err).Error("shutting down the server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with a timeout of 10 seconds.
	// Use a buffered channel to avoid missing signals as recommended for signal.Notify
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	sig := <-quit
	log.Log().WithField("signal", sig).Info("received signal")

	refresher.Stop()

	ctx, cancel := ctx.WithTimeout(context, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Log().WithField("err", err).Error("shutting down the server")
	} else {
		log.Log().Info("shutdown server successfully")
	}
}
