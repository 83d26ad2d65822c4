package mock

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// SentEmail is one email received by the Resend mock.
type SentEmail struct {
	From    string
	To      []string
	Subject string
	HTML    string
	Text    string
}

// Resend is an HTTP server that answers the Resend send-email endpoint.
type Resend struct {
	mu       sync.Mutex
	server   *httptest.Server
	sent     []SentEmail
	failures map[string]int
}

// NewResend starts a Resend mock.
func NewResend() *Resend {
	r := &Resend{failures: map[string]int{}}
	r.server = httptest.NewServer(http.HandlerFunc(r.handle))
	return r
}

// URL returns the base URL to configure the Resend client with.
func (r *Resend) URL() string {
	return r.server.URL + "/"
}

// FailFor makes sends to the address answer with status.
func (r *Resend) FailFor(address string, status int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failures[address] = status
}

// Sent returns every email accepted so far.
func (r *Resend) Sent() []SentEmail {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]SentEmail(nil), r.sent...)
}

// Reset forgets sent emails and configured failures.
func (r *Resend) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = nil
	r.failures = map[string]int{}
}

// failureFor matches a configured failure against a bare or named address.
func (r *Resend) failureFor(to string) (int, bool) {
	for address, status := range r.failures {
		if to == address || strings.HasSuffix(to, "<"+address+">") {
			return status, true
		}
	}
	return 0, false
}

// Close stops the server.
func (r *Resend) Close() {
	r.server.Close()
}

func (r *Resend) handle(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodPost || req.URL.Path != "/emails" {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	body, _ := io.ReadAll(req.Body)
	var payload struct {
		From    string   `json:"from"`
		To      []string `json:"to"`
		Subject string   `json:"subject"`
		HTML    string   `json:"html"`
		Text    string   `json:"text"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"statusCode":422,"name":"validation_error","message":"invalid body"}`))
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, to := range payload.To {
		if status, ok := r.failureFor(to); ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(status)
			_, _ = w.Write([]byte(`{"statusCode":422,"name":"validation_error","message":"mailbox unavailable"}`))
			return
		}
	}

	r.sent = append(r.sent, SentEmail{
		From:    payload.From,
		To:      payload.To,
		Subject: payload.Subject,
		HTML:    payload.HTML,
		Text:    payload.Text,
	})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"id":"` + uuid.NewString() + `"}`))
}
