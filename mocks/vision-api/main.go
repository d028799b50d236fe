package main

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultPort      = "8091"
	defaultAPIKey    = "vision-api-secret-key"
	defaultLatencyMs = "50"
)

// Magic model names let e2e tests steer the mock.
const (
	modelFail      = "mock/fail"      // every call returns 502
	modelSlow      = "mock/slow"      // sleeps past any sane client timeout
	modelMalformed = "mock/malformed" // replies with prose instead of JSON
)

type contentPart struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type message struct {
	Role    string          `json:"role"`
	Content json.RawMessage `json:"content"`
}

type completionRequest struct {
	Model     string    `json:"model"`
	Messages  []message `json:"messages"`
	MaxTokens int       `json:"max_tokens"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

var (
	apiKey    = getEnv("API_KEY", defaultAPIKey)
	latencyMs = getEnvInt("LATENCY_MS", defaultLatencyMs)
)

func main() {
	port := getEnv("PORT", defaultPort)

	http.HandleFunc("/health", handleHealth)
	http.HandleFunc("/api/v1/chat/completions", handleCompletion)
	http.HandleFunc("/chat/completions", handleCompletion)

	log.Printf("Mock vision API starting on port %s", port)
	log.Printf("API Key: %s", apiKey)
	log.Printf("Simulated latency: %dms", latencyMs)

	if err := http.ListenAndServe(":"+port, nil); err != nil {
		log.Fatal(err)
	}
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"status":  "healthy",
		"service": "vision-api",
		"version": "1.0.0",
	})
}

func handleCompletion(w http.ResponseWriter, r *http.Request) {
	time.Sleep(time.Duration(latencyMs) * time.Millisecond)
	log.Printf("Incoming request: %s %s from %s", r.Method, r.URL.Path, r.RemoteAddr)

	if r.Method != http.MethodPost {
		sendError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok || token != apiKey {
		sendError(w, "Invalid API key", http.StatusUnauthorized)
		return
	}

	var req completionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if len(req.Messages) == 0 {
		sendError(w, "messages are required", http.StatusBadRequest)
		return
	}

	switch req.Model {
	case modelFail:
		sendError(w, "Upstream model unavailable", http.StatusBadGateway)
		return
	case modelSlow:
		time.Sleep(2 * time.Minute)
	case modelMalformed:
		sendReply(w, "I could not find any structured information, sorry.")
		return
	}

	prompt, hasImage := promptOf(req.Messages[0])
	switch {
	case hasImage && strings.Contains(prompt, "personal identification"):
		sendReply(w, "```json\n"+kycReply+"\n```")
	case hasImage:
		sendReply(w, transcriptReply)
	default:
		sendReply(w, leadsReply)
	}
}

// promptOf returns the text of a message and whether it carried an image.
func promptOf(m message) (string, bool) {
	var text string
	if err := json.Unmarshal(m.Content, &text); err == nil {
		return text, false
	}
	var parts []contentPart
	if err := json.Unmarshal(m.Content, &parts); err != nil {
		return "", false
	}
	hasImage := false
	var sb strings.Builder
	for _, p := range parts {
		if p.Type == "image_url" {
			hasImage = true
		}
		sb.WriteString(p.Text)
	}
	return sb.String(), hasImage
}

const transcriptReply = `John Smith
CEO, Acme Inc
john.smith@acme.com
(555) 123-4567
www.acme.com`

const leadsReply = `Here are the leads:
[{"name":"John Smith","company":"Acme Inc","title":"CEO","email":"john.smith@acme.com","phone":"(555) 123-4567","website":"www.acme.com","social_media":{}}]`

const kycReply = `{
  "name": ["Ravi", "Kumar"],
  "gender": "Male",
  "date_of_birth": "15/08/1990",
  "mobile_number": "9876543210",
  "aadhaar_number": "123456789012",
  "pan_number": null,
  "address": "12 MG Road, Bengaluru"
}`

func sendReply(w http.ResponseWriter, content string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]any{
		"choices": []map[string]any{
			{"message": map[string]string{"role": "assistant", "content": content}},
		},
	})
}

func sendError(w http.ResponseWriter, message string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(ErrorResponse{
		Error:   http.StatusText(code),
		Message: message,
		Code:    code,
	})
	log.Printf("Error response: %d - %s", code, message)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key, defaultValue string) int {
	value := getEnv(key, defaultValue)
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Invalid integer value for %s, using default: %s", key, defaultValue)
		intValue, _ = strconv.Atoi(defaultValue)
	}
	return intValue
}
