// Package main mints bearer tokens for local development against the
// kycscan API. Tokens are signed with the dev key unless -key is given and
// are not meant for production.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	jwttoken "kycscan/internal/jwt_token"
)

const (
	// devSigningKey matches the JWT_SIGNING_KEY in .env.example.
	devSigningKey   = "dev-secret-key-change-in-production"
	defaultAudience = "kycscan-client"
	defaultTokenTTL = 15 * time.Minute
)

type tokenOutput struct {
	Token     string            `json:"token"`
	ExpiresIn string            `json:"expires_in"`
	Subject   string            `json:"subject"`
	Scope     []string          `json:"scope,omitempty"`
	Usage     map[string]string `json:"usage"`
}

func main() {
	subject := flag.String("subject", "", "Token subject. A UUID is generated if empty.")
	scopes := flag.String("scopes", "documents,liveness,verify", "Comma-separated scopes")
	ttl := flag.Duration("ttl", defaultTokenTTL, "Token time-to-live")
	key := flag.String("key", "", "Signing key (defaults to JWT_SIGNING_KEY, then the dev key)")
	audience := flag.String("audience", defaultAudience, "Token audience")
	jsonOutput := flag.Bool("json", false, "Output as JSON")
	flag.Parse()

	signingKey := firstNonEmpty(*key, os.Getenv("JWT_SIGNING_KEY"), devSigningKey)
	sub := *subject
	if sub == "" {
		sub = uuid.NewString()
	}
	scopeList := parseScopes(*scopes)

	token, err := jwttoken.NewService(signingKey, *audience).Issue(sub, scopeList, *ttl, time.Now())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating token: %v\n", err)
		os.Exit(1)
	}

	if *jsonOutput {
		printJSON(tokenOutput{
			Token:     token,
			ExpiresIn: ttl.String(),
			Subject:   sub,
			Scope:     scopeList,
			Usage:     map[string]string{"header": "Authorization: Bearer <token>"},
		})
		return
	}

	fmt.Println("Access Token (JWT)")
	fmt.Println("==================")
	fmt.Printf("Subject:     %s\n", sub)
	fmt.Printf("Audience:    %s\n", *audience)
	fmt.Printf("Expires In:  %s\n", *ttl)
	fmt.Printf("Scopes:      %v\n", scopeList)
	fmt.Println()
	fmt.Println("Token:")
	fmt.Println(token)
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  curl -H \"Authorization: Bearer <token>\" -F file=@card.png http://localhost:8000/extract-leads")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func parseScopes(scopes string) []string {
	parts := strings.Split(scopes, ",")
	result := make([]string, 0, len(parts))
	for _, s := range parts {
		if trimmed := strings.TrimSpace(s); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding JSON: %v\n", err)
		os.Exit(1)
	}
}
