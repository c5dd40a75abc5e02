package main

import (
	"flag"
	"fmt"
	"log"
	"strings"

	authsvc "github.com/Rudio1/api-meals/internal/services/auth"
)

func main() {
	password := flag.String("password", "", "plain password")
	flag.Parse()

	if strings.TrimSpace(*password) == "" {
		log.Fatal("use -password to pass plain password")
	}
	if len(*password) > authsvc.MaxPasswordLength {
		log.Fatalf("password longer than %d bytes", authsvc.MaxPasswordLength)
	}

	hash, err := authsvc.HashPassword(*password)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}
	fmt.Println(hash)
}
