// Command admintoken mints an operator bearer token for the /v1/admin routes.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"lavacar_booking/internal/adapter/http/middleware"
	appconfig "lavacar_booking/internal/infrastructure/config"

	_ "github.com/joho/godotenv/autoload"
)

func main() {
	cfg, err := appconfig.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "invalid configuration:", err)
		os.Exit(1)
	}

	subject := flag.String("sub", "operador", "token subject")
	ttl := flag.Duration("ttl", cfg.Admin.TokenTTL, "token lifetime")
	flag.Parse()

	token, err := middleware.IssueAdminToken(cfg.Admin.JWTSecret, *subject, *ttl, time.Now())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Println(token)
}
