package payment

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// MercadoPagoClient talks to the Mercado Pago REST API. Requests carry a
// bounded timeout; on timeout callers treat the call as a gateway failure.
type MercadoPagoClient struct {
	baseURL     string
	accessToken string
	http        *http.Client
}

func NewMercadoPagoClient(baseURL, accessToken string) *MercadoPagoClient {
	return &MercadoPagoClient{
		baseURL:     baseURL,
		accessToken: accessToken,
		http:        &http.Client{Timeout: 10 * time.Second},
	}
}

var _ Gateway = (*MercadoPagoClient)(nil)

type preferenceResponse struct {
	ID        string `json:"id"`
	InitPoint string `json:"init_point"`
}

type paymentResponse struct {
	ID                json.Number `json:"id"`
	Status            string      `json:"status"`
	ExternalReference string      `json:"external_reference"`
	Payer             struct {
		Email string `json:"email"`
	} `json:"payer"`
}

func (m *MercadoPagoClient) CreatePreference(req PreferenceRequest) (CheckoutSession, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return CheckoutSession{}, err
	}

	httpReq, err := http.NewRequest(http.MethodPost, m.baseURL+"/checkout/preferences", bytes.NewReader(body))
	if err != nil {
		return CheckoutSession{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+m.accessToken)
	httpReq.Header.Set("X-Idempotency-Key", uuid.NewString())

	res, err := m.http.Do(httpReq)
	if err != nil {
		return CheckoutSession{}, fmt.Errorf("%w: create preference: %v", ErrGateway, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return CheckoutSession{}, fmt.Errorf("%w: create preference: status %d", ErrGateway, res.StatusCode)
	}

	var pref preferenceResponse
	if err := json.NewDecoder(res.Body).Decode(&pref); err != nil {
		return CheckoutSession{}, fmt.Errorf("%w: decode preference: %v", ErrGateway, err)
	}

	return CheckoutSession{ID: pref.ID, RedirectURL: pref.InitPoint}, nil
}

func (m *MercadoPagoClient) GetPayment(paymentID string) (Payment, error) {
	httpReq, err := http.NewRequest(http.MethodGet, m.baseURL+"/v1/payments/"+paymentID, nil)
	if err != nil {
		return Payment{}, err
	}
	httpReq.Header.Set("Authorization", "Bearer "+m.accessToken)

	res, err := m.http.Do(httpReq)
	if err != nil {
		return Payment{}, fmt.Errorf("%w: get payment %s: %v", ErrGateway, paymentID, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return Payment{}, fmt.Errorf("%w: get payment %s: status %d", ErrGateway, paymentID, res.StatusCode)
	}

	var p paymentResponse
	if err := json.NewDecoder(res.Body).Decode(&p); err != nil {
		return Payment{}, fmt.Errorf("%w: decode payment %s: %v", ErrGateway, paymentID, err)
	}

	return Payment{
		ID:                p.ID.String(),
		Status:            p.Status,
		ExternalReference: p.ExternalReference,
		PayerEmail:        p.Payer.Email,
	}, nil
}
