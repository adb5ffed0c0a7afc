// Command tokengen mints a bearer token for an operator, for local
// development and API testing.
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"skyfleet/registry/internal/auth"
	"skyfleet/registry/internal/ident"
)

func main() {
	secret := flag.String("secret", "", "signing secret (must match the server's auth_secret)")
	operator := flag.String("operator", "", "operator id the token is issued for")
	name := flag.String("name", "", "operator display name")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	if *secret == "" || *operator == "" {
		log.Fatal("both -secret and -operator are required")
	}

	operatorID, err := ident.Parse(*operator)
	if err != nil {
		log.Fatalf("invalid operator id: %v", err)
	}

	token, err := auth.GenerateToken(*secret, operatorID, *name, *ttl)
	if err != nil {
		log.Fatalf("sign token: %v", err)
	}

	fmt.Println(token)
}
