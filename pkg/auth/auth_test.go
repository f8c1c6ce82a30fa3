package auth_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/pkmncore/seriedex/pkg/auth"
)

func testConfig() *auth.Config {
	return &auth.Config{
		Enabled:  true,
		Secret:   "test-secret",
		Issuer:   "seriedex",
		Audience: "seriedex-api",
		TokenTTL: "1h",
	}
}

func TestIssueAndVerify(t *testing.T) {
	tokens := auth.New(testConfig())

	signed, err := tokens.Issue("alice")
	if err != nil {
		t.Fatalf("Issue() = %v, want nil", err)
	}
	if strings.Count(signed, ".") != 2 {
		t.Fatalf("signed token is not a compact JWT: %q", signed)
	}

	claims, err := tokens.Verify(signed)
	if err != nil {
		t.Fatalf("Verify() = %v, want nil", err)
	}
	if claims.Subject != "alice" {
		t.Errorf("Subject = %q, want alice", claims.Subject)
	}
	if claims.Issuer != "seriedex" {
		t.Errorf("Issuer = %q, want seriedex", claims.Issuer)
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	signed, err := auth.New(testConfig()).Issue("alice")
	if err != nil {
		t.Fatalf("Issue() = %v, want nil", err)
	}

	other := testConfig()
	other.Secret = "different-secret"

	if _, err := auth.New(other).Verify(signed); !errors.Is(err, auth.ErrInvalidToken) {
		t.Errorf("Verify() = %v, want ErrInvalidToken", err)
	}
}

func TestVerifyRejectsWrongAudience(t *testing.T) {
	issuerCfg := testConfig()
	issuerCfg.Audience = "some-other-api"

	signed, err := auth.New(issuerCfg).Issue("alice")
	if err != nil {
		t.Fatalf("Issue() = %v, want nil", err)
	}

	if _, err := auth.New(testConfig()).Verify(signed); !errors.Is(err, auth.ErrInvalidToken) {
		t.Errorf("Verify() = %v, want ErrInvalidToken", err)
	}
}

func TestVerifyRejectsExpired(t *testing.T) {
	cfg := testConfig()
	cfg.TokenTTL = "-1h"

	signed, err := auth.New(cfg).Issue("alice")
	if err != nil {
		t.Fatalf("Issue() = %v, want nil", err)
	}

	if _, err := auth.New(testConfig()).Verify(signed); !errors.Is(err, auth.ErrInvalidToken) {
		t.Errorf("Verify() = %v, want ErrInvalidToken", err)
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	tokens := auth.New(testConfig())
	if _, err := tokens.Verify("not.a.token"); !errors.Is(err, auth.ErrInvalidToken) {
		t.Errorf("Verify() = %v, want ErrInvalidToken", err)
	}
}

func TestConfigValidation(t *testing.T) {
	t.Run("enabled without secret fails", func(t *testing.T) {
		cfg := auth.Config{Enabled: true}
		if err := cfg.Finalize(nil); err == nil {
			t.Error("Finalize() = nil, want error for missing secret")
		}
	})

	t.Run("disabled without secret passes", func(t *testing.T) {
		cfg := auth.Config{}
		if err := cfg.Finalize(nil); err != nil {
			t.Errorf("Finalize() = %v, want nil", err)
		}
		if cfg.Issuer != "seriedex" {
			t.Errorf("Issuer = %q, want default", cfg.Issuer)
		}
		if cfg.TokenTTL != "1h" {
			t.Errorf("TokenTTL = %q, want default", cfg.TokenTTL)
		}
	})

	t.Run("env overrides applied", func(t *testing.T) {
		t.Setenv("TEST_AUTH_SECRET", "env-secret")

		cfg := auth.Config{Enabled: true}
		env := &auth.Env{Secret: "TEST_AUTH_SECRET"}

		if err := cfg.Finalize(env); err != nil {
			t.Fatalf("Finalize() = %v, want nil", err)
		}
		if cfg.Secret != "env-secret" {
			t.Errorf("Secret = %q, want env-secret", cfg.Secret)
		}
	})
}
