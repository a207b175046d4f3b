package cart

import (
	"context"
	"fmt"

	"github.com/shop/backend/internal/domain/shared/valueobject"
)

// VerificationStatus is the outcome of an address verification call
type VerificationStatus string

const (
	VerificationStatusVerified           VerificationStatus = "VERIFIED"
	VerificationStatusCorrected          VerificationStatus = "CORRECTED"
	VerificationStatusUndeliverable      VerificationStatus = "UNDELIVERABLE"
	VerificationStatusInvalid            VerificationStatus = "INVALID"
	VerificationStatusServiceUnavailable VerificationStatus = "SERVICE_UNAVAILABLE"
)

// VerificationResult is the response shape the core depends on
type VerificationResult struct {
	Status              VerificationStatus
	StandardizedAddress *valueobject.Address
	VerificationID      string
	ErrorMessage        string
	FieldErrors         map[string]string
}

// AddressVerifier is the external verification collaborator. Submit calls
// it before mutating the cart so an invalid address never commits side
// effects.
type AddressVerifier interface {
	Verify(ctx context.Context, address valueobject.Address) (*VerificationResult, error)
}

// AddressVerificationError is raised when the verification service rejects
// an address or is unavailable. Status distinguishes caller error
// (INVALID, UNDELIVERABLE) from infrastructure error (SERVICE_UNAVAILABLE).
type AddressVerificationError struct {
	Status  VerificationStatus
	Field   string
	Message string
}

// Error implements the error interface
func (e *AddressVerificationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("address verification failed (%s): %s: %s", e.Status, e.Field, e.Message)
	}
	return fmt.Sprintf("address verification failed (%s): %s", e.Status, e.Message)
}

// IsCallerError returns true if the address itself was rejected, as
// opposed to the service being unreachable
func (e *AddressVerificationError) IsCallerError() bool {
	return e.Status == VerificationStatusInvalid || e.Status == VerificationStatusUndeliverable
}
