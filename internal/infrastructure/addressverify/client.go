package addressverify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	appcart "github.com/shop/backend/internal/application/cart"
	"github.com/shop/backend/internal/domain/shared/valueobject"
	"github.com/shop/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// HTTPVerifier calls an external address verification service over HTTP.
// Transport failures and non-2xx responses are reported as
// SERVICE_UNAVAILABLE so the caller can distinguish them from a rejected
// address.
type HTTPVerifier struct {
	baseURL string
	apiKey  string
	client  *http.Client
	logger  *zap.Logger
}

// NewHTTPVerifier creates a new HTTPVerifier from configuration
func NewHTTPVerifier(cfg config.AddressVerifyConfig, logger *zap.Logger) *HTTPVerifier {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &HTTPVerifier{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

type verifyRequest struct {
	Street1    string `json:"street1"`
	Street2    string `json:"street2,omitempty"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

type verifyResponse struct {
	Status              string            `json:"status"`
	VerificationID      string            `json:"verification_id"`
	StandardizedAddress *verifyRequest    `json:"standardized_address,omitempty"`
	ErrorMessage        string            `json:"error_message,omitempty"`
	FieldErrors         map[string]string `json:"field_errors,omitempty"`
}

// Verify submits the address to the verification service and maps the
// response onto the application-level result
func (v *HTTPVerifier) Verify(ctx context.Context, address valueobject.Address) (*appcart.VerificationResult, error) {
	payload := verifyRequest{
		Street1:    address.Street1(),
		Street2:    address.Street2(),
		City:       address.City(),
		State:      address.State(),
		PostalCode: address.PostalCode(),
		Country:    address.Country(),
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode verification request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.baseURL+"/v1/verify", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build verification request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if v.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+v.apiKey)
	}

	resp, err := v.client.Do(req)
	if err != nil {
		v.logger.Warn("address verification service unreachable", zap.Error(err))
		return unavailableResult("verification service unreachable"), nil
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		v.logger.Warn("address verification service error",
			zap.Int("status_code", resp.StatusCode),
		)
		return unavailableResult(fmt.Sprintf("verification service returned status %d", resp.StatusCode)), nil
	}

	var decoded verifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		v.logger.Warn("malformed verification response", zap.Error(err))
		return unavailableResult("malformed verification response"), nil
	}

	result := &appcart.VerificationResult{
		Status:         appcart.VerificationStatus(decoded.Status),
		VerificationID: decoded.VerificationID,
		ErrorMessage:   decoded.ErrorMessage,
		FieldErrors:    decoded.FieldErrors,
	}

	switch result.Status {
	case appcart.VerificationStatusVerified,
		appcart.VerificationStatusCorrected,
		appcart.VerificationStatusUndeliverable,
		appcart.VerificationStatusInvalid:
	default:
		// Unknown status from the service, treat as unavailable
		return unavailableResult("unknown verification status: " + decoded.Status), nil
	}

	if decoded.StandardizedAddress != nil {
		opts := []valueobject.AddressOption{}
		if decoded.StandardizedAddress.Street2 != "" {
			opts = append(opts, valueobject.WithStreet2(decoded.StandardizedAddress.Street2))
		}
		if decoded.StandardizedAddress.Country != "" {
			opts = append(opts, valueobject.WithCountry(decoded.StandardizedAddress.Country))
		}
		standardized, err := valueobject.NewAddress(
			decoded.StandardizedAddress.Street1,
			decoded.StandardizedAddress.City,
			decoded.StandardizedAddress.State,
			decoded.StandardizedAddress.PostalCode,
			opts...,
		)
		if err != nil {
			v.logger.Warn("verification service returned invalid standardized address", zap.Error(err))
			return unavailableResult("invalid standardized address from service"), nil
		}
		result.StandardizedAddress = &standardized
	}

	return result, nil
}

func unavailableResult(msg string) *appcart.VerificationResult {
	return &appcart.VerificationResult{
		Status:       appcart.VerificationStatusServiceUnavailable,
		ErrorMessage: msg,
	}
}

// Ensure HTTPVerifier implements AddressVerifier
var _ appcart.AddressVerifier = (*HTTPVerifier)(nil)
