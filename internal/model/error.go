package model

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON         = "INVALID_JSON"
	ErrCodeMissingField        = "MISSING_FIELD"
	ErrCodeProductNotFound     = "PRODUCT_NOT_FOUND"
	ErrCodeCategoryNotFound    = "CATEGORY_NOT_FOUND"
	ErrCodeInvalidQuantity     = "INVALID_QUANTITY"
	ErrCodeInvalidTransition   = "INVALID_TRANSITION"
	ErrCodeEmptyCart           = "EMPTY_CART"
	ErrCodeMissingDeliveryInfo = "MISSING_DELIVERY_INFO"
	ErrCodeDeliveryPending     = "DELIVERY_PENDING"
	ErrCodeSmartListClosed     = "SMART_LIST_CLOSED"
	ErrCodeSearchSuperseded    = "SEARCH_SUPERSEDED"
	ErrCodeUnknownEvent        = "UNKNOWN_EVENT"
	ErrCodeUnauthorised        = "UNAUTHORIZED"
	ErrCodeInternalError       = "INTERNAL_ERROR"
)

// Domain errors for business logic
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrProductNotFound     = NewDomainError(ErrCodeProductNotFound, "Product not found in catalogue")
	ErrCategoryNotFound    = NewDomainError(ErrCodeCategoryNotFound, "Category has no products")
	ErrInvalidQuantity     = NewDomainError(ErrCodeInvalidQuantity, "Quantity must be a whole number up to 9999")
	ErrInvalidTransition   = NewDomainError(ErrCodeInvalidTransition, "Navigation not allowed from the current view")
	ErrEmptyCart           = NewDomainError(ErrCodeEmptyCart, "Cart is empty")
	ErrMissingDeliveryInfo = NewDomainError(ErrCodeMissingDeliveryInfo, "Por favor, preencha todos os campos de entrega.")
	ErrDeliveryPending     = NewDomainError(ErrCodeDeliveryPending, "Delivery details must be submitted before payment")
	ErrSmartListClosed     = NewDomainError(ErrCodeSmartListClosed, "Smart list dialog was closed")
	ErrSearchSuperseded    = NewDomainError(ErrCodeSearchSuperseded, "Search was replaced by a newer one")
	ErrUnknownEvent        = NewDomainError(ErrCodeUnknownEvent, "Unknown navigation event")
)
