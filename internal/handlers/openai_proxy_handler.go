package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"
)

const openAIBaseURL = "https://api.openai.com/v1"

// maxOpenAIResponse bounds how much of the upstream body gets buffered
// for the envelope.
const maxOpenAIResponse = 4 << 20

// allowedOpenAIEndpoints limits the pass-through to the chat API the
// frontend actually uses.
var allowedOpenAIEndpoints = map[string]bool{
	"chat/completions": true,
}

// OpenAIProxyHandler forwards `{endpoint, payload}` requests to the
// OpenAI API, keeping the API key server-side.
type OpenAIProxyHandler struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewOpenAIProxyHandler creates a new proxy handler. An empty key
// disables the endpoint.
func NewOpenAIProxyHandler(apiKey string) *OpenAIProxyHandler {
	return &OpenAIProxyHandler{
		apiKey:  apiKey,
		baseURL: openAIBaseURL,
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

// Proxy forwards the payload and streams the upstream response back.
func (h *OpenAIProxyHandler) Proxy(w http.ResponseWriter, r *http.Request) {
	if h.apiKey == "" {
		http.Error(w, "OpenAI proxy is not configured", http.StatusServiceUnavailable)
		return
	}

	var req struct {
		Endpoint string          `json:"endpoint"`
		Payload  json.RawMessage `json:"payload"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidRequestBody, "openai proxy decode failed", err)
		return
	}

	endpoint := strings.Trim(req.Endpoint, "/")
	if !allowedOpenAIEndpoints[endpoint] {
		http.Error(w, "Endpoint not allowed", http.StatusForbidden)
		return
	}

	upstream, err := http.NewRequestWithContext(r.Context(), http.MethodPost,
		h.baseURL+"/"+endpoint, bytes.NewReader(req.Payload))
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "openai proxy request build failed", err)
		return
	}
	upstream.Header.Set("Content-Type", "application/json")
	upstream.Header.Set("Authorization", "Bearer "+h.apiKey)

	resp, err := h.client.Do(upstream)
	if err != nil {
		respondWithError(w, http.StatusBadGateway, "OpenAI request failed", "openai proxy upstream failed", err)
		return
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxOpenAIResponse))
	if err != nil {
		respondWithError(w, http.StatusBadGateway, "OpenAI request failed", "openai proxy upstream read failed", err)
		return
	}

	// The frontend contract wraps the upstream JSON in a data envelope,
	// so clients read response.data.choices.
	payload := json.RawMessage(body)
	if !json.Valid(body) {
		payload, _ = json.Marshal(string(body))
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.StatusCode)
	json.NewEncoder(w).Encode(map[string]json.RawMessage{"data": payload})
}
