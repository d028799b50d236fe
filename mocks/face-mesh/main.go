package main

import (
	"crypto/sha256"
	"encoding/json"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"strconv"
	"time"
)

const (
	defaultPort      = "8092"
	defaultLatencyMs = "20"
	landmarkCount    = 468
)

type meshResponse struct {
	Faces []face `json:"faces"`
}

type face struct {
	Landmarks [][3]float64 `json:"landmarks"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

var latencyMs = getEnvInt("LATENCY_MS", defaultLatencyMs)

func main() {
	port := getEnv("PORT", defaultPort)

	http.HandleFunc("/health", handleHealth)
	http.HandleFunc("/landmarks", handleLandmarks)
	http.HandleFunc("/verify", handleVerify)

	log.Printf("Mock face-mesh service starting on port %s", port)
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
		"service": "face-mesh",
		"version": "1.0.0",
	})
}

// handleLandmarks derives a face from the frame bytes: identical frames give
// identical landmarks, different frames shift the whole face, which is enough
// to drive the liveness motion rule. An X-Mock-Face: none header reports no face.
func handleLandmarks(w http.ResponseWriter, r *http.Request) {
	time.Sleep(time.Duration(latencyMs) * time.Millisecond)
	if r.Method != http.MethodPost {
		sendError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	body, err := io.ReadAll(io.LimitReader(r.Body, 16<<20))
	if err != nil || len(body) == 0 {
		sendError(w, "frame body is required", http.StatusBadRequest)
		return
	}
	if r.Header.Get("X-Mock-Face") == "none" {
		writeJSON(w, meshResponse{Faces: []face{}})
		return
	}

	sum := sha256.Sum256(body)
	dx := float64(sum[0]) / 255 * 0.3
	dy := float64(sum[1]) / 255 * 0.3
	lm := make([][3]float64, landmarkCount)
	for i := range lm {
		lm[i] = [3]float64{
			0.3 + 0.4*float64(i%22)/22 + dx,
			0.2 + 0.6*float64(i/22)/22 + dy,
			0,
		}
	}
	writeJSON(w, meshResponse{Faces: []face{{Landmarks: lm}}})
	log.Printf("Landmarks served: shift=(%.3f, %.3f)", dx, dy)
}

// handleVerify compares two uploads. Byte-identical images are a match.
func handleVerify(w http.ResponseWriter, r *http.Request) {
	time.Sleep(time.Duration(latencyMs) * time.Millisecond)
	if r.Method != http.MethodPost {
		sendError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		sendError(w, "Invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	selfie, err := readPart(r.MultipartForm, "selfie")
	if err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}
	document, err := readPart(r.MultipartForm, "document")
	if err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	distance := 0.72
	if sha256.Sum256(selfie) == sha256.Sum256(document) {
		distance = 0.12
	}
	writeJSON(w, map[string]any{
		"distance":  distance,
		"threshold": 0.68,
		"model":     r.FormValue("model"),
	})
}

func readPart(form *multipart.Form, field string) ([]byte, error) {
	headers := form.File[field]
	if len(headers) == 0 {
		return nil, &missingFieldError{field}
	}
	f, err := headers[0].Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

type missingFieldError struct{ field string }

func (e *missingFieldError) Error() string { return "missing file field " + e.field }

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(v)
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
