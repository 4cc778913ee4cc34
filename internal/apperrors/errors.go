package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates that the caller is not authenticated or the credentials are invalid.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates that the authenticated caller lacks permission for the operation.
var ErrForbidden = errors.New("forbidden")

// ErrPromoNotApplicable indicates that a promo code exists but cannot be applied
// (expired, exhausted, or deactivated).
var ErrPromoNotApplicable = errors.New("promo code not applicable")

// ErrInsufficientStock indicates that an order requested more units than the product has in stock.
var ErrInsufficientStock = errors.New("insufficient stock")

// ErrRateUnavailable indicates that no exchange rate could be resolved for a currency,
// not even an approximate fallback.
var ErrRateUnavailable = errors.New("exchange rate unavailable")
