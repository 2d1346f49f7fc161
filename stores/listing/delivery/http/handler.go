package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	bCtx "github.com/padx/goapi/base/ctx"
	"github.com/padx/goapi/base/delivery"
	"github.com/padx/goapi/base/pricefmt"
	"github.com/padx/goapi/domain"
	"github.com/padx/goapi/domain/listing"
	"github.com/padx/goapi/domain/txn"
	"github.com/padx/goapi/middleware"
	"github.com/padx/goapi/stores/listing/usecase"
)

type handler struct {
	listing   listing.UseCase
	txn       txn.UseCase
	refresher *usecase.Refresher
	builder   *IntentBuilder
}

func New(
	e *echo.Echo,
	listingUC listing.UseCase,
	txnUC txn.UseCase,
	refresher *usecase.Refresher,
	builder *IntentBuilder,
) {
	h := &handler{listingUC, txnUC, refresher, builder}

	gs := e.Group("/listings")
	gs.GET("", h.getActive, middleware.CacheHttp(10*time.Second))
	gs.GET("/terminal", h.getTerminal, middleware.CacheHttp(30*time.Second))
	gs.POST("", h.list)
	gs.POST("/refresh", h.refresh)

	g := e.Group("/listing/:id")
	g.GET("", h.get)
	g.GET("/actions", h.getActions)
	g.POST("/buy", h.buy)
	g.POST("/cancel", h.action(txn.KindCancel))
	g.POST("/claim-refund", h.action(txn.KindClaimRefund))
	g.POST("/claim-tokens", h.action(txn.KindClaimTokens))
	g.POST("/withdraw-unsold", h.action(txn.KindWithdrawUnsold))
	g.POST("/claim-pool-funds", h.action(txn.KindClaimPoolFunds))

	op := e.Group("/operator")
	op.POST("/withdraw-payment-tokens", h.withdraw(txn.KindWithdrawPaymentTokens))
	op.POST("/withdraw-tokens", h.withdraw(txn.KindWithdrawTokens))
}

func (h *handler) getActive(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)

	p := &listing.SearchParams{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	return delivery.MakeJsonResp(c, http.StatusOK, h.listing.Active(ctx, p))
}

func (h *handler) getTerminal(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)

	p := &listing.SearchParams{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	return delivery.MakeJsonResp(c, http.StatusOK, h.listing.Terminal(ctx, p))
}

func (h *handler) get(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)

	id, err := parseListingId(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid listing id")
	}
	v, err := h.listing.Get(ctx, id)
	if err != nil {
		ctx.WithField("err", err).Error("listing.Get failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, v)
}

func (h *handler) getActions(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)

	id, err := parseListingId(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid listing id")
	}

	p := &struct {
		Wallet string `query:"wallet" validate:"required"`
	}{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err.Error())
	}

	actions, err := h.listing.ActionsFor(ctx, id, listing.Caller{Address: domain.Address(p.Wallet)})
	if err != nil {
		ctx.WithField("err", err).Error("listing.ActionsFor failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, actions)
}

func (h *handler) refresh(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)

	snap, err := h.listing.Refresh(ctx)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, map[string]interface{}{
		"active":    len(snap.Active),
		"terminal":  len(snap.Terminal),
		"failed":    snap.Failed,
		"fetchedAt": snap.FetchedAt,
	})
}

type listPayload struct {
	Wallet          string `json:"wallet" validate:"required"`
	TokenAddress    string `json:"tokenAddress" validate:"required"`
	PaymentToken    string `json:"paymentToken" validate:"required"`
	Amount          string `json:"amount" validate:"required"`
	PricePerShare   string `json:"pricePerShare" validate:"required"`
	TokenDecimals   int32  `json:"tokenDecimals" validate:"required"`
	EndTime         int64  `json:"endTime" validate:"required"`
	ReferralActive  bool   `json:"referralActive"`
	ReferralPercent int32  `json:"referralPercent" validate:"gte=0,lte=100"`
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)

	p := &listPayload{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err.Error())
	}

	amount, err := pricefmt.ToRaw(p.Amount, p.TokenDecimals)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	price, err := pricefmt.ToRaw(p.PricePerShare, pricefmt.PriceStorageDecimals)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	intent, err := h.builder.List(p, amount, price)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	return h.execute(c, ctx, intent)
}

type buyPayload struct {
	Wallet          string `json:"wallet" validate:"required"`
	Amount          string `json:"amount" validate:"required"`
	ReferralCode    string `json:"referralCode"`
	MaxCostAccepted string `json:"maxCostAccepted"`
}

// buy parses the display amount against the listed token's decimals,
// derives the payment spend and runs the orchestrated purchase. The
// refresher is paused for the duration so the snapshot the caller
// decided on stays visible until settlement.
func (h *handler) buy(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)

	id, err := parseListingId(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid listing id")
	}

	p := &buyPayload{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err.Error())
	}

	v, err := h.listing.Get(ctx, id)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	amount, err := pricefmt.ToRaw(p.Amount, v.Token.Decimals)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	intent, err := h.builder.Buy(v, domain.Address(p.Wallet), amount, domain.ReferralCode(p.ReferralCode))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	return h.execute(c, ctx, intent)
}

// action covers the single-argument listing calls that only need the id
// and the caller's wallet.
func (h *handler) action(kind txn.Kind) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Get("ctx").(bCtx.Ctx)

		id, err := parseListingId(c)
		if err != nil {
			return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid listing id")
		}

		p := &struct {
			Wallet string `json:"wallet" validate:"required"`
		}{}
		if err := c.Bind(p); err != nil {
			return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid payload")
		}
		if err := c.Validate(p); err != nil {
			return delivery.MakeJsonResp(c, http.StatusBadRequest, err.Error())
		}

		intent, err := h.builder.Simple(kind, id, domain.Address(p.Wallet))
		if err != nil {
			return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
		}
		return h.execute(c, ctx, intent)
	}
}

type withdrawPayload struct {
	Wallet        string `json:"wallet" validate:"required"`
	Token         string `json:"token" validate:"required"`
	Amount        string `json:"amount" validate:"required"`
	TokenDecimals int32  `json:"tokenDecimals" validate:"required"`
	To            string `json:"to" validate:"required"`
}

// withdraw covers the operator sweep calls. The contract enforces both
// the operator role and the withdraw delay; this layer only encodes.
func (h *handler) withdraw(kind txn.Kind) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Get("ctx").(bCtx.Ctx)

		p := &withdrawPayload{}
		if err := c.Bind(p); err != nil {
			return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid payload")
		}
		if err := c.Validate(p); err != nil {
			return delivery.MakeJsonResp(c, http.StatusBadRequest, err.Error())
		}

		amount, err := pricefmt.ToRaw(p.Amount, p.TokenDecimals)
		if err != nil {
			return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
		}

		intent, err := h.builder.Withdraw(kind, domain.Address(p.Token), amount, domain.Address(p.To), domain.Address(p.Wallet))
		if err != nil {
			return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
		}
		return h.execute(c, ctx, intent)
	}
}

func (h *handler) execute(c echo.Context, ctx bCtx.Ctx, intent *txn.Intent) error {
	if h.refresher != nil {
		h.refresher.Pause()
		defer h.refresher.Resume()
	}

	receipt, err := h.txn.Execute(ctx, intent)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	// the chain has changed; refresh so the next read reflects it
	if _, err := h.listing.Refresh(ctx); err != nil {
		ctx.WithField("err", err).Warn("post-transaction refresh failed")
	}
	return delivery.MakeJsonResp(c, http.StatusOK, map[string]interface{}{
		"txHash":  receipt.TxHash,
		"gasUsed": receipt.GasUsed,
	})
}

func parseListingId(c echo.Context) (domain.ListingId, error) {
	raw, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, err
	}
	return domain.ListingId(raw), nil
}
