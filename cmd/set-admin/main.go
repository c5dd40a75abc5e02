// Command set-admin grants or revokes the administrator flag. No HTTP route
// changes it.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"strings"
	"time"

	"github.com/Rudio1/api-meals/internal/config"
	pgrepo "github.com/Rudio1/api-meals/internal/repo/postgres"
	authsvc "github.com/Rudio1/api-meals/internal/services/auth"
)

func main() {
	email := flag.String("email", "", "account email")
	revoke := flag.Bool("revoke", false, "remove the admin flag instead of granting it")
	flag.Parse()

	if strings.TrimSpace(*email) == "" {
		log.Fatal("use -email to pick the account")
	}

	dsn := os.Getenv("POSTGRES_DSN")
	if dsn == "" {
		dsn = config.Default().Postgres.DSN
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgrepo.NewPool(ctx, dsn)
	if err != nil {
		log.Fatalf("init postgres: %v", err)
	}
	defer pool.Close()

	accounts := pgrepo.NewAccountRepo(pool)
	if err := accounts.SetAdmin(ctx, authsvc.NormalizeEmail(*email), !*revoke); err != nil {
		log.Fatalf("set admin: %v", err)
	}
	log.Printf("admin=%v for %s", !*revoke, *email)
}
