package payment

import (
	"context"
	"errors"

	"wild-oasis-api/internal/pkg/config"
	"wild-oasis-api/internal/pkg/errs"
	"wild-oasis-api/internal/usecase/commands"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// StripeGateway talks to Stripe through a dedicated client rather than the
// package-level singleton, so tests can point it at a stub server.
type StripeGateway struct {
	client *client.API
}

func NewStripeGateway(cfg config.StripeConfig) *StripeGateway {
	var backends *stripe.Backends
	if cfg.APIBase != "" {
		backend := stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
			URL: stripe.String(cfg.APIBase),
		})
		backends = &stripe.Backends{API: backend, Connect: backend, Uploads: backend}
	}

	sc := &client.API{}
	sc.Init(cfg.SecretKey, backends)
	return &StripeGateway{client: sc}
}

func (g *StripeGateway) CreateIntent(ctx context.Context, in commands.CreateIntentInput) (*commands.PaymentIntentResult, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(in.Amount),
		Currency: stripe.String(in.Currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	for k, v := range in.Metadata {
		params.AddMetadata(k, v)
	}

	pi, err := g.client.PaymentIntents.New(params)
	if err != nil {
		return nil, errs.Wrap(err, "create payment intent")
	}

	return &commands.PaymentIntentResult{
		PaymentIntentID: pi.ID,
		ClientSecret:    pi.ClientSecret,
	}, nil
}

func (g *StripeGateway) ConfirmIntent(ctx context.Context, paymentIntentID, paymentMethodID, receiptEmail string) (*commands.ConfirmationResult, error) {
	params := &stripe.PaymentIntentConfirmParams{
		PaymentMethod: stripe.String(paymentMethodID),
	}
	if receiptEmail != "" {
		params.ReceiptEmail = stripe.String(receiptEmail)
	}
	params.Context = ctx

	pi, err := g.client.PaymentIntents.Confirm(paymentIntentID, params)
	if err != nil {
		// Card declines come back as errors, not as a failed status on the
		// intent. Surface the processor's own message.
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) && stripeErr.Type == stripe.ErrorTypeCard {
			return &commands.ConfirmationResult{
				PaymentIntentID: paymentIntentID,
				Status:          string(stripe.PaymentIntentStatusRequiresPaymentMethod),
				DeclineMessage:  stripeErr.Msg,
			}, nil
		}
		return nil, errs.Wrap(err, "confirm payment intent")
	}

	return &commands.ConfirmationResult{
		PaymentIntentID: pi.ID,
		Status:          string(pi.Status),
	}, nil
}
