package txn

import (
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/core/types"
	"github.com/padx/goapi/base/ctx"
	"github.com/padx/goapi/domain"
)

type Kind string

const (
	KindList                  Kind = "list"
	KindBuy                   Kind = "buy"
	KindCancel                Kind = "cancel"
	KindGenerateReferral      Kind = "generateReferral"
	KindClaimRefund           Kind = "claimRefund"
	KindClaimTokens           Kind = "claimTokens"
	KindWithdrawUnsold        Kind = "withdrawUnsold"
	KindClaimPoolFunds        Kind = "claimPoolFunds"
	KindWithdrawPaymentTokens Kind = "withdrawPaymentTokens"
	KindWithdrawTokens        Kind = "withdrawTokens"
)

type State string

const (
	StateIdle          State = "idle"
	StateApproving     State = "approving"
	StateEstimatingGas State = "estimatingGas"
	StateSubmitted     State = "submitted"
	StateConfirmed     State = "confirmed"
	StateFailed        State = "failed"
)

// Spend marks a call that moves a token balance into the contract and
// therefore needs an allowance check first.
type Spend struct {
	Token  domain.Address
	Amount *big.Int
}

// Intent is a mutating request against the launchpad contract. From is
// captured when the caller fills the form; it is re-checked against the
// signer right before submission to catch wallet switches.
type Intent struct {
	Kind      Kind
	ListingId domain.ListingId
	From      domain.Address
	To        domain.Address
	Data      []byte
	Value     *big.Int
	Spend     *Spend
}

// Pending is the ephemeral record of an in-flight intent. It is never
// persisted and is dropped once the transaction settles either way.
type Pending struct {
	Id          string
	Kind        Kind
	ListingId   domain.ListingId
	Amount      *big.Int
	GasEstimate uint64
	State       State
	StartedAt   time.Time
}

// Receipt is the settled outcome reported to the caller. Exactly one of
// success with a tx hash or a classified error; no ambiguous state.
type Receipt struct {
	TxHash  domain.TxHash
	GasUsed uint64
	Logs    []types.Log
}

type UseCase interface {
	// Execute runs the full approve-if-needed, estimate, submit, confirm
	// sequence and blocks until settlement.
	Execute(ctx.Ctx, *Intent) (*Receipt, error)
}
