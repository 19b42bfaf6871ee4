package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Tiny dev-only token minter. It signs an HS256 JWT carrying the email claim
// the API authenticates with, so local clients can exercise bearer auth
// without an identity provider.
func main() {
	email := flag.String("email", "", "email claim for the token (required)")
	secret := flag.String("secret", os.Getenv("JWT_SECRET"), "HMAC secret (defaults to JWT_SECRET)")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	if strings.TrimSpace(*email) == "" {
		log.Fatal("-email is required")
	}
	if *secret == "" {
		log.Fatal("no secret: pass -secret or set JWT_SECRET")
	}

	now := time.Now().UTC()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": strings.ToLower(strings.TrimSpace(*email)),
		"iat":   now.Unix(),
		"exp":   now.Add(*ttl).Unix(),
	})
	signed, err := tok.SignedString([]byte(*secret))
	if err != nil {
		log.Fatalf("sign token: %v", err)
	}
	fmt.Println(signed)
}
