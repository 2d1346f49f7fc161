package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	bCtx "github.com/padx/goapi/base/ctx"
	"github.com/padx/goapi/base/delivery"
	"github.com/padx/goapi/domain"
	"github.com/padx/goapi/domain/referral"
)

type handler struct {
	referral referral.UseCase
}

func New(e *echo.Echo, referralUC referral.UseCase) {
	h := &handler{referralUC}

	g := e.Group("/listing/:id")
	g.POST("/referral-code", h.getOrGenerate)
	g.GET("/referral-link", h.link)
}

type payload struct {
	Wallet string `json:"wallet" validate:"required"`
	Origin string `json:"origin" validate:"required,url"`
}

// getOrGenerate returns the wallet's code for the listing together with
// the composed share link. Cached codes come back without a
// transaction; a miss generates one on-chain and blocks until the
// receipt confirms.
func (h *handler) getOrGenerate(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)

	raw, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid listing id")
	}
	id := domain.ListingId(raw)

	p := &payload{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err.Error())
	}

	code, err := h.referral.GetOrGenerate(ctx, id, domain.Address(p.Wallet))
	if err != nil {
		ctx.WithField("err", err).Error("referral.GetOrGenerate failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, map[string]interface{}{
		"code": code,
		"link": h.referral.Link(ctx, p.Origin, id, code),
	})
}

// link serves only already-cached codes. It never generates one, so a
// miss is a plain not-found instead of a surprise transaction.
func (h *handler) link(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)

	raw, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid listing id")
	}
	id := domain.ListingId(raw)

	wallet := c.QueryParam("wallet")
	origin := c.QueryParam("origin")
	if wallet == "" || origin == "" {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "wallet and origin are required")
	}

	code, ok := h.referral.Lookup(ctx, id, domain.Address(wallet))
	if !ok {
		return delivery.MakeJsonResp(c, http.StatusNotFound, domain.ErrNotFound)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, map[string]interface{}{
		"code": code,
		"link": h.referral.Link(ctx, origin, id, code),
	})
}
