// devtoken выпускает токен локальной разработки, подписанный JWT_SECRET.
// В проде токены выпускает внешний провайдер входа.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"skillswap/internal/auth"
	"skillswap/internal/config"
)

func main() {
	var identity auth.Identity
	flag.StringVar(&identity.UserID, "sub", "", "user id (required)")
	flag.StringVar(&identity.Email, "email", "", "email")
	flag.StringVar(&identity.FirstName, "first-name", "", "first name")
	flag.StringVar(&identity.LastName, "last-name", "", "last name")
	flag.StringVar(&identity.ProfileImageURL, "avatar", "", "profile image url")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	if identity.UserID == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if cfg.IsProduction() {
		fmt.Fprintln(os.Stderr, "refusing to issue tokens in production")
		os.Exit(1)
	}

	token, err := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.Issuer).Issue(identity, *ttl)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Println(token)
}
