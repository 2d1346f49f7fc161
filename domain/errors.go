package domain

import "errors"

var (
	// ErrInternalServerError will throw if any the Internal Server Error happen
	ErrInternalServerError = errors.New("Internal Server Error")
	// ErrNotFound will throw if the requested item is not exists
	ErrNotFound = errors.New("Your requested Item is not found")
	// ErrBadParamInput will throw if the given request-body or params is not valid
	ErrBadParamInput       = errors.New("Given Param is not valid")
	ErrInvalidNumberFormat = errors.New("invalid number format")
	ErrInvalidChainId      = errors.New("invalid chain id")

	// request error
	ErrInvalidAddress = errors.New("Invalid address")

	// transaction failure taxonomy
	ErrUserRejected          = errors.New("user rejected transaction")
	ErrInsufficientBalance   = errors.New("insufficient token balance")
	ErrInsufficientAllowance = errors.New("insufficient allowance")
	ErrGasEstimationFailed   = errors.New("gas estimation failed")
	ErrContractReverted      = errors.New("contract reverted")
	ErrStaleWalletAddress    = errors.New("wallet address changed since intent was created")

	// fetch / persistence degradations
	ErrListingFetchFailed   = errors.New("listing fetch failed")
	ErrStoragePersistFailed = errors.New("failed to persist local storage")

	// contract protocol violation, e.g. an expected event missing from a receipt
	ErrMissingReferralEvent = errors.New("referral code event not found in receipt")
)
