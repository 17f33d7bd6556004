package response

type CreatePaymentIntentResponse struct {
	ClientSecret    string `json:"clientSecret"`
	PaymentIntentID string `json:"paymentIntentId"`
}

type PaymentConfigResponse struct {
	PublishableKey string `json:"publishableKey"`
	Currency       string `json:"currency"`
}
