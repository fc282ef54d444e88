// issue-service-token mints an HS256 bearer token for service-to-service
// calls; the API accepts it via the Authorization header.
//
// Usage (from backend directory):
//
//	API_SECRET=... TOKEN_HOUR_LIFESPAN=24 go run ./cmd/issue-service-token -id 1 -role Administrator
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/simailhq/simail_backend/models"
	"github.com/simailhq/simail_backend/utils"
)

func main() {
	userId := flag.Int("id", 0, "user id to embed in the token")
	role := flag.String("role", string(models.UserRoleAuditor), "role claim (Administrator, Supervisor, Auditor)")
	flag.Parse()

	if *userId <= 0 {
		fmt.Fprintln(os.Stderr, "-id is required and must be positive")
		os.Exit(1)
	}
	if !models.UserRole(*role).IsValid() {
		fmt.Fprintf(os.Stderr, "invalid role %q\n", *role)
		os.Exit(1)
	}

	token, err := utils.JwtGenerate(*userId, *role)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to generate token: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
