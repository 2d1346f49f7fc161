package listing

import (
	"time"

	"github.com/padx/goapi/domain"
	"github.com/shopspring/decimal"
)

type Phase string

const (
	PhaseActive          Phase = "active"
	PhaseCancelled       Phase = "cancelled"
	PhaseClaimable       Phase = "claimable"
	PhaseRefundable      Phase = "refundable"
	PhaseExpiredNoAction Phase = "expired"
)

func (p Phase) IsTerminal() bool {
	return p != PhaseActive
}

type Action string

const (
	ActionBuy                  Action = "buy"
	ActionCancel               Action = "cancel"
	ActionClaimRefund          Action = "claimRefund"
	ActionClaimTokens          Action = "claimTokens"
	ActionWithdrawUnsold       Action = "withdrawUnsold"
	ActionClaimPoolFunds       Action = "claimPoolFunds"
	ActionWithdrawExpiredFunds Action = "withdrawExpiredFunds"
	ActionWithdrawTokens       Action = "withdrawTokens"
	ActionGenerateReferral     Action = "generateReferral"
)

// PhaseConfig carries the per-deployment lifecycle constants. Observed
// deployments disagree on both values (85% vs 98.5% graduation, 22
// minutes vs 30 days operator delay), so neither is hard-coded.
type PhaseConfig struct {
	// GraduationThresholdBps is the sold percentage, in basis points,
	// past which an expired listing becomes claimable instead of
	// refundable.
	GraduationThresholdBps int32

	// RefundWindow bounds how long after expiry refunds stay open.
	RefundWindow time.Duration

	// OperatorWithdrawDelay is how long past endTime the marketplace
	// operator must wait before sweeping expired funds.
	OperatorWithdrawDelay time.Duration
}

const (
	DefaultGraduationThresholdBps = int32(8500)
	DefaultRefundWindow           = 30 * 24 * time.Hour
	DefaultOperatorWithdrawDelay  = 30 * 24 * time.Hour
)

func (c PhaseConfig) withDefaults() PhaseConfig {
	if c.GraduationThresholdBps == 0 {
		c.GraduationThresholdBps = DefaultGraduationThresholdBps
	}
	if c.RefundWindow == 0 {
		c.RefundWindow = DefaultRefundWindow
	}
	if c.OperatorWithdrawDelay == 0 {
		c.OperatorWithdrawDelay = DefaultOperatorWithdrawDelay
	}
	return c
}

// Caller identifies who is asking for allowed actions. Operator is a
// distinct role from seller.
type Caller struct {
	Address    domain.Address
	IsOperator bool
}

var hundred = decimal.NewFromInt(100)

// PercentageSold returns the sold percentage over the sellable supply,
// clamped to [0, 100]. The referral reserve is excluded from the
// denominator; a listing fully reserved for referrals reports 0.
func PercentageSold(l *Listing) float64 {
	if l.InitialAmount == nil || l.InitialAmount.Sign() <= 0 {
		return 0
	}
	available := decimal.NewFromBigInt(l.InitialAmount, 0)
	if l.ReferralActive && l.ReferralReserve != nil {
		available = available.Sub(decimal.NewFromBigInt(l.ReferralReserve, 0))
	}
	if available.Sign() <= 0 {
		return 0
	}
	sold := decimal.Zero
	if l.SoldAmount != nil {
		sold = decimal.NewFromBigInt(l.SoldAmount, 0)
	}
	pct := sold.Div(available).Mul(hundred)
	// clamp against rounding drift from integer division upstream
	if pct.GreaterThan(hundred) {
		pct = hundred
	}
	if pct.Sign() < 0 {
		pct = decimal.Zero
	}
	return pct.InexactFloat64()
}

// ResolvePhase maps a listing snapshot and the current time to its
// lifecycle phase. Deterministic, no hidden state; re-evaluated on
// every refresh.
func ResolvePhase(l *Listing, now time.Time, cfg PhaseConfig) Phase {
	cfg = cfg.withDefaults()
	if !l.Active {
		return PhaseCancelled
	}
	if !l.IsExpired(now) {
		return PhaseActive
	}
	pct := PercentageSold(l)
	if graduated(pct, cfg.GraduationThresholdBps) {
		return PhaseClaimable
	}
	refundDeadline := time.Unix(l.EndTime, 0).Add(cfg.RefundWindow)
	if !now.After(refundDeadline) {
		return PhaseRefundable
	}
	return PhaseExpiredNoAction
}

func graduated(pct float64, thresholdBps int32) bool {
	return pct*100 >= float64(thresholdBps)
}

// AllowedActions computes the action set the caller may perform on the
// listing at the given time. Buyer position reads are the caller's
// concern; pass nil when unknown and buyer claim actions are omitted.
func AllowedActions(l *Listing, caller Caller, pos *Position, now time.Time, cfg PhaseConfig) []Action {
	cfg = cfg.withDefaults()
	phase := ResolvePhase(l, now, cfg)
	pct := PercentageSold(l)
	isSeller := caller.Address.Equals(l.Seller)
	expired := l.IsExpired(now)

	var actions []Action
	switch phase {
	case PhaseActive:
		if !isSeller {
			actions = append(actions, ActionBuy)
			if l.ReferralActive {
				actions = append(actions, ActionGenerateReferral)
			}
		}
		if isSeller {
			actions = append(actions, ActionCancel)
		}
	case PhaseRefundable:
		if pos != nil && pos.Paid != nil && pos.Paid.Sign() > 0 && !pos.Refunded {
			actions = append(actions, ActionClaimRefund)
		}
	case PhaseClaimable:
		if pos != nil && pos.Locked != nil && pos.Locked.Sign() > 0 && !pos.Claimed {
			actions = append(actions, ActionClaimTokens)
		}
	}

	if isSeller && expired {
		if graduated(pct, cfg.GraduationThresholdBps) {
			actions = append(actions, ActionClaimPoolFunds)
		} else {
			actions = append(actions, ActionWithdrawUnsold)
		}
	}

	if caller.IsOperator && expired {
		operatorAt := time.Unix(l.EndTime, 0).Add(cfg.OperatorWithdrawDelay)
		if now.After(operatorAt) {
			actions = append(actions, ActionWithdrawExpiredFunds, ActionWithdrawTokens)
		}
	}
	return actions
}
