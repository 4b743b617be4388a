// cliparse/cliparse_test.go
package cliparse

import (
	"os"
	"testing"
)

func TestParseFlags_EnvVars(t *testing.T) {
	os.Setenv("PORT", "9000")
	os.Setenv("DATABASE_URL", "postgres://test")
	defer os.Clearenv()

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Port)
	}
}

func TestParseFlags_CLIOverridesEnv(t *testing.T) {
	os.Setenv("PORT", "9000")
	defer os.Clearenv()

	cfg, err := ParseFlags([]string{"-p", "8080", "-d", "postgres://test"})
	if err != nil {
		t.Fatal(err)
	}

	// CLI should override env
	if cfg.Port != 8080 {
		t.Errorf("CLI should override env: expected 8080, got %d", cfg.Port)
	}
}

func TestParseFlags_Defaults(t *testing.T) {
	os.Setenv("DATABASE_URL", "postgres://test")
	defer os.Clearenv()

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Port)
	}
	if cfg.WeightCapMember != 22 {
		t.Errorf("expected member cap 22, got %d", cfg.WeightCapMember)
	}
	if cfg.WeightCapPublic != 10 {
		t.Errorf("expected public cap 10, got %d", cfg.WeightCapPublic)
	}
	if cfg.BallotSize != 5 {
		t.Errorf("expected ballot size 5, got %d", cfg.BallotSize)
	}
	if cfg.ElectionHours != 72 {
		t.Errorf("expected election hours 72, got %d", cfg.ElectionHours)
	}
	if cfg.MaxAppearances != 3 {
		t.Errorf("expected max appearances 3, got %d", cfg.MaxAppearances)
	}
	if cfg.Staging {
		t.Error("staging should default to off")
	}
}

func TestParseFlags_MissingDatabaseURL(t *testing.T) {
	os.Clearenv()

	_, err := ParseFlags([]string{})
	if err == nil {
		t.Fatal("expected error without DATABASE_URL")
	}
}

func TestCapFor(t *testing.T) {
	cfg := Config{WeightCapMember: 22, WeightCapPublic: 10}
	if got := cfg.CapFor(true); got != 22 {
		t.Errorf("member cap: expected 22, got %d", got)
	}
	if got := cfg.CapFor(false); got != 10 {
		t.Errorf("public cap: expected 10, got %d", got)
	}
}
