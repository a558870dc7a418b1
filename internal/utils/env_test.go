package utils

import (
	"testing"

	"github.com/masarhq/masar-backend/internal/logger"
)

func envLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	return log
}

func TestGetEnv(t *testing.T) {
	log := envLogger(t)

	if got := GetEnv("MASAR_TEST_MISSING", "fallback", log); got != "fallback" {
		t.Fatalf("missing var: want=%q got=%q", "fallback", got)
	}
	t.Setenv("MASAR_TEST_SET", "from-env")
	if got := GetEnv("MASAR_TEST_SET", "fallback", log); got != "from-env" {
		t.Fatalf("set var: want=%q got=%q", "from-env", got)
	}
	// Nil logger is allowed; the router resolves cors origins without one.
	if got := GetEnv("MASAR_TEST_MISSING", "fallback", nil); got != "fallback" {
		t.Fatalf("nil logger: want=%q got=%q", "fallback", got)
	}
}

func TestGetEnvAsInt(t *testing.T) {
	log := envLogger(t)

	if got := GetEnvAsInt("MASAR_TEST_MISSING", 42, log); got != 42 {
		t.Fatalf("missing var: want=42 got=%d", got)
	}
	t.Setenv("MASAR_TEST_INT", " 7 ")
	if got := GetEnvAsInt("MASAR_TEST_INT", 42, log); got != 7 {
		t.Fatalf("set var: want=7 got=%d", got)
	}
	t.Setenv("MASAR_TEST_INT", "not-a-number")
	if got := GetEnvAsInt("MASAR_TEST_INT", 42, log); got != 42 {
		t.Fatalf("garbage var: want=42 got=%d", got)
	}
}

func TestGetEnvAsBool(t *testing.T) {
	log := envLogger(t)

	if got := GetEnvAsBool("MASAR_TEST_MISSING", true, log); !got {
		t.Fatalf("missing var: want=true got=%v", got)
	}
	for _, v := range []string{"1", "t", "TRUE", "yes", "On"} {
		t.Setenv("MASAR_TEST_BOOL", v)
		if got := GetEnvAsBool("MASAR_TEST_BOOL", false, log); !got {
			t.Fatalf("truthy %q parsed as false", v)
		}
	}
	for _, v := range []string{"0", "f", "FALSE", "no", "Off"} {
		t.Setenv("MASAR_TEST_BOOL", v)
		if got := GetEnvAsBool("MASAR_TEST_BOOL", true, log); got {
			t.Fatalf("falsy %q parsed as true", v)
		}
	}
	t.Setenv("MASAR_TEST_BOOL", "maybe")
	if got := GetEnvAsBool("MASAR_TEST_BOOL", true, log); !got {
		t.Fatalf("garbage var: want default true, got %v", got)
	}
}
