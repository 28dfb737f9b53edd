package utils

import "errors"

// Common application errors used across services.
var (
	ErrInvalidToken       = errors.New("INVALID_TOKEN")
	ErrInvalidCredentials = errors.New("INVALID_CREDENTIALS")
	ErrAccountInactive    = errors.New("ACCOUNT_INACTIVE")
	ErrEmailTaken         = errors.New("EMAIL_TAKEN")
	ErrProductNotFound    = errors.New("PRODUCT_NOT_FOUND")
	ErrCategoryNotFound   = errors.New("CATEGORY_NOT_FOUND")
	ErrInvalidPrice       = errors.New("INVALID_PRICE")
	ErrOutOfStock         = errors.New("OUT_OF_STOCK")
	ErrCartEmpty          = errors.New("CART_EMPTY")
	ErrOrderNotFound      = errors.New("ORDER_NOT_FOUND")
	ErrOrderNotPayable    = errors.New("ORDER_NOT_PAYABLE")
	ErrInvalidSignature   = errors.New("INVALID_SIGNATURE")
	ErrPageNotFound       = errors.New("PAGE_NOT_FOUND")
	ErrShipmentNotFound   = errors.New("SHIPMENT_NOT_FOUND")
)
