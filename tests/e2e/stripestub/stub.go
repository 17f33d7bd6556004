//go:build e2e

package stripestub

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
)

// DeclinedPaymentMethod triggers a card decline on confirmation.
const DeclinedPaymentMethod = "pm_card_chargeDeclined"

// DeclineMessage is the processor message returned for declined cards.
const DeclineMessage = "Your card was declined."

type intent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
	Status       string `json:"status"`
}

// Server imitates the payment processor's payment-intent endpoints well
// enough for the flow under test: create always succeeds, confirm succeeds
// unless the declined payment method is used.
type Server struct {
	httpServer *httptest.Server

	mu      sync.Mutex
	intents map[string]*intent
	seq     atomic.Int64
}

func New() *Server {
	s := &Server{intents: make(map[string]*intent)}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/payment_intents", s.createIntent)
	mux.HandleFunc("POST /v1/payment_intents/{id}/confirm", s.confirmIntent)

	s.httpServer = httptest.NewServer(mux)
	return s
}

func (s *Server) URL() string {
	return s.httpServer.URL
}

func (s *Server) Close() {
	s.httpServer.Close()
}

// CreatedIntents reports how many intents were created.
func (s *Server) CreatedIntents() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.intents)
}

func (s *Server) createIntent(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request_error", "malformed form body")
		return
	}

	n := s.seq.Add(1)
	in := &intent{
		ID:           fmt.Sprintf("pi_stub_%d", n),
		ClientSecret: fmt.Sprintf("pi_stub_%d_secret", n),
		Currency:     r.PostFormValue("currency"),
		Status:       "requires_payment_method",
	}
	fmt.Sscan(r.PostFormValue("amount"), &in.Amount)

	s.mu.Lock()
	s.intents[in.ID] = in
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, in)
}

func (s *Server) confirmIntent(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request_error", "malformed form body")
		return
	}

	id := r.PathValue("id")

	s.mu.Lock()
	in, ok := s.intents[id]
	s.mu.Unlock()
	if !ok {
		writeError(w, http.StatusNotFound, "invalid_request_error", "No such payment_intent: "+id)
		return
	}

	if strings.Contains(r.PostFormValue("payment_method"), DeclinedPaymentMethod) {
		writeError(w, http.StatusPaymentRequired, "card_error", DeclineMessage)
		return
	}

	in.Status = "succeeded"
	writeJSON(w, http.StatusOK, in)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, errType, message string) {
	body := map[string]any{
		"error": map[string]any{
			"type":    errType,
			"code":    "card_declined",
			"message": message,
		},
	}
	writeJSON(w, status, body)
}
