package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/pkmncore/seriedex/internal/config"
	"github.com/pkmncore/seriedex/pkg/auth"
)

func main() {
	var (
		subject = flag.String("subject", "", "Token subject (required)")
		ttl     = flag.String("ttl", "", "Token lifetime override (e.g. 24h)")
	)
	flag.Parse()

	if *subject == "" {
		log.Fatal("subject required")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("config load failed:", err)
	}

	if cfg.Auth.Secret == "" {
		log.Fatal("auth secret not configured")
	}
	if *ttl != "" {
		cfg.Auth.TokenTTL = *ttl
	}

	tokens := auth.New(&cfg.Auth)

	signed, err := tokens.Issue(*subject)
	if err != nil {
		log.Fatal("token issue failed:", err)
	}

	fmt.Println(signed)
}
