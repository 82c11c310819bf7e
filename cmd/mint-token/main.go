package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/johnquangdev/meeting-minutes/pkg/config"
	pkgjwt "github.com/johnquangdev/meeting-minutes/pkg/jwt"
)

// mint-token prints a bearer token for calling the API when AUTH_ENABLED is set
func main() {
	subject := flag.String("sub", "automation", "token subject")
	email := flag.String("email", "", "email claim")
	role := flag.String("role", "service", "role claim")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.Auth.AccessSecret == "" {
		log.Fatalf("JWT_ACCESS_SECRET is not set")
	}

	jwtManager := pkgjwt.NewManager(cfg.Auth.AccessSecret, cfg.Auth.AccessExpiry)
	token, err := jwtManager.GenerateAccessToken(*subject, *email, *role)
	if err != nil {
		log.Fatalf("Failed to generate token: %v", err)
	}

	log.Printf("🔑 Token for %q valid for %s", *subject, cfg.Auth.AccessExpiry)
	fmt.Println(token)
}
