package payment

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"purenest-be/internal/logger"

	"go.uber.org/zap"
)

const razorpayBaseURL = "https://api.razorpay.com/v1"

type razorpayGateway struct {
	keyID      string
	keySecret  string
	baseURL    string
	httpClient *http.Client
}

// NewRazorpayGateway builds a Gateway backed by the Razorpay REST API.
func NewRazorpayGateway(keyID, keySecret string) Gateway {
	if keyID == "" || keySecret == "" {
		logger.L().Warn("Razorpay credentials are empty, payment features will fail")
	}

	return &razorpayGateway{
		keyID:     keyID,
		keySecret: keySecret,
		baseURL:   razorpayBaseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// do sends an authenticated request and decodes the JSON response into out.
// Timeouts surface as ErrGatewayTimeout; non-2xx responses as
// ErrGatewayRejected, with the gateway body kept out of the returned error.
func (g *razorpayGateway) do(ctx context.Context, method, path string, body any, out any) error {
	log := logger.FromCtx(ctx).With(
		zap.String("gateway", "razorpay"),
		zap.String("path", path),
	)

	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	req.SetBasicAuth(g.keyID, g.keySecret)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		var netErr net.Error
		if errors.Is(err, context.DeadlineExceeded) ||
			(errors.As(err, &netErr) && netErr.Timeout()) {
			log.Error("gateway request timed out", zap.Error(err))
			return ErrGatewayTimeout
		}
		log.Error("gateway request failed", zap.Error(err))
		return fmt.Errorf("razorpay request: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read razorpay response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Error("gateway returned non-success status",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("response", bodyBytes),
		)
		return ErrGatewayRejected
	}

	if out != nil {
		if err := json.Unmarshal(bodyBytes, out); err != nil {
			log.Error("failed decoding gateway response", zap.Error(err))
			return err
		}
	}

	return nil
}

func (g *razorpayGateway) CreateOrder(ctx context.Context, amountMinor int64, currency, receipt string) (*GatewayOrder, error) {
	body := map[string]any{
		"amount":          amountMinor,
		"currency":        currency,
		"receipt":         receipt,
		"payment_capture": 1,
	}

	var out GatewayOrder
	if err := g.do(ctx, http.MethodPost, "/orders", body, &out); err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Info("razorpay order created",
		zap.String("gateway_order_id", out.ID),
		zap.Int64("amount", amountMinor),
	)

	return &out, nil
}

func (g *razorpayGateway) FetchPayment(ctx context.Context, paymentID string) (*GatewayPayment, error) {
	var out GatewayPayment
	if err := g.do(ctx, http.MethodGet, "/payments/"+paymentID, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (g *razorpayGateway) Capture(ctx context.Context, paymentID string, amountMinor int64, currency string) (*GatewayPayment, error) {
	body := map[string]any{
		"amount":   amountMinor,
		"currency": currency,
	}

	var out GatewayPayment
	if err := g.do(ctx, http.MethodPost, "/payments/"+paymentID+"/capture", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (g *razorpayGateway) Refund(ctx context.Context, paymentID string, amountMinor int64, notes string) (*GatewayRefund, error) {
	body := map[string]any{
		"amount": amountMinor,
		"notes": map[string]string{
			"reason": notes,
		},
	}

	var out GatewayRefund
	if err := g.do(ctx, http.MethodPost, "/payments/"+paymentID+"/refund", body, &out); err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Info("razorpay refund created",
		zap.String("refund_id", out.ID),
		zap.Int64("amount", amountMinor),
	)

	return &out, nil
}

// VerifySignature recomputes HMAC-SHA256(keySecret, "<orderID>|<paymentID>")
// and compares it in constant time against the client-supplied hex digest.
func (g *razorpayGateway) VerifySignature(gatewayOrderID, gatewayPaymentID, signature string) bool {
	if g.keySecret == "" {
		return false
	}

	mac := hmac.New(sha256.New, []byte(g.keySecret))
	mac.Write([]byte(gatewayOrderID + "|" + gatewayPaymentID))
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(signature))
}
