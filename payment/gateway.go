// Package payment wraps the hosted-pay-page gateway. Every request is signed
// with hex(sha256(payload + apiPath + saltKey)) + "###" + saltIndex in the
// X-VERIFY header; the provider rejects anything else.
package payment

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/inkpress/bookshop-backend-go/config"
	"github.com/sirupsen/logrus"
)

const (
	payPath       = "/pg/v1/pay"
	statusPath    = "/pg/v1/status"
	clientTimeout = 15 * time.Second
)

// Provider status codes surfaced by CheckStatus. The raw response is kept
// verbatim for callers that need more than the code.
const (
	CodeSuccess = "PAYMENT_SUCCESS"
	CodePending = "PAYMENT_PENDING"
	CodeError   = "PAYMENT_ERROR"
)

// Error is a gateway failure: network trouble, a malformed response or a
// provider-side rejection. It is always logged and surfaced as a failed
// result, never a crash.
type Error struct {
	Op      string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("payment %s: %s", e.Op, e.Message)
}

type Gateway struct {
	cfg    config.Payment
	client *http.Client
	log    *logrus.Logger
}

func NewGateway(cfg config.Payment, log *logrus.Logger) (*Gateway, error) {
	if cfg.MerchantID == "" || cfg.SaltKey == "" {
		return nil, fmt.Errorf("payment gateway misconfigured: merchant id and salt key are required")
	}
	return &Gateway{
		cfg:    cfg,
		client: &http.Client{Timeout: clientTimeout},
		log:    log,
	}, nil
}

// InitiateRequest carries the order fields the pay call needs.
type InitiateRequest struct {
	TxnID       string
	UserID      string
	AmountPaise int64
	Mobile      string
}

type paymentInstrument struct {
	Type string `json:"type"`
}

type payRequest struct {
	MerchantID            string            `json:"merchantId"`
	MerchantTransactionID string            `json:"merchantTransactionId"`
	MerchantUserID        string            `json:"merchantUserId"`
	Amount                int64             `json:"amount"`
	RedirectURL           string            `json:"redirectUrl"`
	RedirectMode          string            `json:"redirectMode"`
	CallbackURL           string            `json:"callbackUrl"`
	MobileNumber          string            `json:"mobileNumber"`
	PaymentInstrument     paymentInstrument `json:"paymentInstrument"`
}

type payResponse struct {
	Success bool   `json:"success"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Data    struct {
		InstrumentResponse struct {
			RedirectInfo struct {
				URL string `json:"url"`
			} `json:"redirectInfo"`
		} `json:"instrumentResponse"`
	} `json:"data"`
}

// Initiate asks the provider for a hosted-pay-page redirect URL for the
// transaction. The amount is in paise.
func (g *Gateway) Initiate(ctx context.Context, req InitiateRequest) (string, error) {
	payload := payRequest{
		MerchantID:            g.cfg.MerchantID,
		MerchantTransactionID: req.TxnID,
		MerchantUserID:        req.UserID,
		Amount:                req.AmountPaise,
		RedirectURL:           g.cfg.CallbackBaseURL + "/api/payment/redirect/" + req.TxnID,
		RedirectMode:          "REDIRECT",
		CallbackURL:           g.cfg.CallbackBaseURL + "/api/payment/callback",
		MobileNumber:          req.Mobile,
		PaymentInstrument:     paymentInstrument{Type: "PAY_PAGE"},
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return "", g.fail("initiate", req.TxnID, "encode payload: "+err.Error())
	}
	encoded := base64.StdEncoding.EncodeToString(raw)

	body, err := json.Marshal(map[string]string{"request": encoded})
	if err != nil {
		return "", g.fail("initiate", req.TxnID, "encode request: "+err.Error())
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.cfg.BaseURL()+payPath, bytes.NewReader(body))
	if err != nil {
		return "", g.fail("initiate", req.TxnID, err.Error())
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-VERIFY", g.sign(encoded+payPath))

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return "", g.fail("initiate", req.TxnID, "gateway unreachable: "+err.Error())
	}
	defer resp.Body.Close()

	var parsed payResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", g.fail("initiate", req.TxnID, "malformed gateway response: "+err.Error())
	}
	if !parsed.Success {
		msg := parsed.Message
		if msg == "" {
			msg = parsed.Code
		}
		return "", g.fail("initiate", req.TxnID, "gateway declined: "+msg)
	}

	url := parsed.Data.InstrumentResponse.RedirectInfo.URL
	if url == "" {
		return "", g.fail("initiate", req.TxnID, "gateway response missing redirect url")
	}

	g.log.WithFields(logrus.Fields{"txnId": req.TxnID, "amount": req.AmountPaise}).Info("payment initiated")
	return url, nil
}

// StatusResponse carries the provider's verdict for a transaction. Raw holds
// the provider response verbatim; callers interpret provider-specific fields
// themselves.
type StatusResponse struct {
	Success bool            `json:"success"`
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Raw     json.RawMessage `json:"raw"`
}

// CheckStatus polls the provider for a previously initiated transaction.
// The status endpoint signs the API path instead of a body and wants the
// merchant id repeated in its own header.
func (g *Gateway) CheckStatus(ctx context.Context, txnID string) (*StatusResponse, error) {
	path := fmt.Sprintf("%s/%s/%s", statusPath, g.cfg.MerchantID, txnID)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, g.cfg.BaseURL()+path, nil)
	if err != nil {
		return nil, g.fail("status", txnID, err.Error())
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-VERIFY", g.sign(path))
	httpReq.Header.Set("X-MERCHANT-ID", g.cfg.MerchantID)

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return nil, g.fail("status", txnID, "gateway unreachable: "+err.Error())
	}
	defer resp.Body.Close()

	var raw json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, g.fail("status", txnID, "malformed gateway response: "+err.Error())
	}

	var parsed StatusResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, g.fail("status", txnID, "malformed gateway response: "+err.Error())
	}
	parsed.Raw = raw
	return &parsed, nil
}

// VerifyCallback checks the X-VERIFY header the provider sends with its
// server-to-server callback against the base64 body it signed.
func (g *Gateway) VerifyCallback(encodedBody, header string) bool {
	return header == g.sign(encodedBody)
}

func (g *Gateway) sign(data string) string {
	sum := sha256.Sum256([]byte(data + g.cfg.SaltKey))
	return hex.EncodeToString(sum[:]) + "###" + g.cfg.SaltIndex
}

func (g *Gateway) fail(op, txnID, msg string) *Error {
	g.log.WithFields(logrus.Fields{"op": op, "txnId": txnID}).Error(msg)
	return &Error{Op: op, Message: msg}
}
