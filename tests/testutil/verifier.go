package testutil

import (
	"context"
	"sync"

	appcart "github.com/shop/backend/internal/application/cart"
	"github.com/shop/backend/internal/domain/shared/valueobject"
)

// StubVerifier is an in-process AddressVerifier that returns a canned
// result. It records the addresses it was asked to verify.
type StubVerifier struct {
	mu       sync.Mutex
	result   *appcart.VerificationResult
	err      error
	verified []valueobject.Address
}

// NewStubVerifier creates a verifier that reports every address as
// VERIFIED until configured otherwise.
func NewStubVerifier() *StubVerifier {
	return &StubVerifier{
		result: &appcart.VerificationResult{Status: appcart.VerificationStatusVerified},
	}
}

// Verify returns the configured result or error.
func (v *StubVerifier) Verify(ctx context.Context, address valueobject.Address) (*appcart.VerificationResult, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.verified = append(v.verified, address)
	if v.err != nil {
		return nil, v.err
	}
	return v.result, nil
}

// Return makes subsequent Verify calls produce the given result.
func (v *StubVerifier) Return(result *appcart.VerificationResult) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.result = result
	v.err = nil
}

// FailWith makes subsequent Verify calls return err.
func (v *StubVerifier) FailWith(err error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.err = err
}

// CallCount returns how many times Verify was called.
func (v *StubVerifier) CallCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.verified)
}

var _ appcart.AddressVerifier = (*StubVerifier)(nil)
