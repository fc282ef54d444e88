package utils_test

import (
	"testing"

	"github.com/simailhq/simail_backend/utils"
)

func TestJwtGenerateValidateRoundTrip(t *testing.T) {
	t.Setenv("TOKEN_HOUR_LIFESPAN", "1")

	token, err := utils.JwtGenerate(42, "Supervisor")
	if err != nil {
		t.Fatalf("JwtGenerate: %v", err)
	}

	parsed, err := utils.JwtValidate(token)
	if err != nil || !parsed.Valid {
		t.Fatalf("JwtValidate: %v (valid=%v)", err, parsed != nil && parsed.Valid)
	}

	claims, ok := parsed.Claims.(*utils.JwtCustomClaim)
	if !ok {
		t.Fatalf("claims have type %T", parsed.Claims)
	}
	if claims.ID != 42 || claims.Role != "Supervisor" {
		t.Fatalf("claims = (%d, %q), want (42, Supervisor)", claims.ID, claims.Role)
	}
}

func TestJwtValidateRejectsGarbage(t *testing.T) {
	if _, err := utils.JwtValidate("not-a-jwt"); err == nil {
		t.Fatal("JwtValidate should reject a malformed token")
	}
}
