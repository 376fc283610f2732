package checkout

import "errors"

var (
	// ErrNotAuthenticated asks the caller to prompt sign-in; it is not
	// logged as an error.
	ErrNotAuthenticated = errors.New("checkout requires a signed-in user")

	ErrEmptyCart = errors.New("cart is empty, nothing to checkout")

	// ErrCheckoutInFlight rejects a second attempt while one is
	// running; the cart must never be double-submitted.
	ErrCheckoutInFlight = errors.New("a checkout is already in progress")

	ErrPromoRejected = errors.New("promo code rejected")
)
