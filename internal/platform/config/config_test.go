package config

import (
	"testing"
	"time"

	kit "textclf/internal/platform/testkit"
)

func TestPrefixAndKey(t *testing.T) {
	api := New().Prefix("CORE_")
	if got := api.key("PORT"); got != "CORE_PORT" {
		t.Fatalf("key() = %q, want %q", got, "CORE_PORT")
	}
	model := api.Prefix("MODEL_")
	if got := model.key("CLASSIFIER_PATH"); got != "CORE_MODEL_CLASSIFIER_PATH" {
		t.Fatalf("nested key() = %q", got)
	}
}

func TestMustString(t *testing.T) {
	c := New().Prefix("APP_")
	t.Setenv("APP_NAME", "  textclf ")
	if got := c.MustString("NAME"); got != "textclf" {
		t.Fatalf("MustString = %q, want %q", got, "textclf")
	}
	kit.MustPanic(t, func() { _ = c.MustString("MISSING") })
}

func TestMayString(t *testing.T) {
	c := New().Prefix("S_")
	if got := c.MayString("MISSING", "def"); got != "def" {
		t.Fatalf("MayString default = %q", got)
	}
	t.Setenv("S_PATH", " models/tfidf.json ")
	if got := c.MayString("PATH", "x"); got != "models/tfidf.json" {
		t.Fatalf("MayString value = %q", got)
	}
}

func TestMayInt(t *testing.T) {
	c := New().Prefix("I_")
	if got := c.MayInt("MISSING", 9); got != 9 {
		t.Fatalf("MayInt default = %d", got)
	}
	t.Setenv("I_OK", " 7 ")
	if got := c.MayInt("OK", 0); got != 7 {
		t.Fatalf("MayInt ok = %d", got)
	}
	t.Setenv("I_BAD", "x")
	if got := c.MayInt("BAD", 3); got != 3 {
		t.Fatalf("MayInt bad -> default = %d", got)
	}
}

func TestMayInt64(t *testing.T) {
	c := New().Prefix("I64_")
	t.Setenv("I64_BIG", "8589934592")
	if got := c.MayInt64("BIG", 1); got != 8589934592 {
		t.Fatalf("MayInt64 = %d", got)
	}
	t.Setenv("I64_BAD", "1.5")
	if got := c.MayInt64("BAD", 1<<20); got != 1<<20 {
		t.Fatalf("MayInt64 bad -> default = %d", got)
	}
}

func TestMayBool(t *testing.T) {
	c := New().Prefix("B_")
	if !c.MayBool("MISSING", true) {
		t.Fatalf("MayBool default true expected")
	}
	t.Setenv("B_T", "true")
	if !c.MayBool("T", false) {
		t.Fatalf("MayBool true expected")
	}
	t.Setenv("B_BAD", "nope")
	if c.MayBool("BAD", false) {
		t.Fatalf("MayBool bad -> default false expected")
	}
}

func TestMayDuration(t *testing.T) {
	c := New().Prefix("DUR_")
	if got := c.MayDuration("MISS", 5*time.Second); got != 5*time.Second {
		t.Fatalf("MayDuration default expected")
	}
	t.Setenv("DUR_OK", "150ms")
	if got := c.MayDuration("OK", time.Second); got != 150*time.Millisecond {
		t.Fatalf("MayDuration ok = %v", got)
	}
	t.Setenv("DUR_BAD", "nope")
	if got := c.MayDuration("BAD", time.Minute); got != time.Minute {
		t.Fatalf("MayDuration bad -> default expected")
	}
}

func TestMayCSV(t *testing.T) {
	c := New().Prefix("CSV_")
	def := []string{"a", "b"}
	if got := c.MayCSV("MISS", def); len(got) != 2 || got[0] != "a" {
		t.Fatalf("MayCSV default mismatch: %#v", got)
	}
	t.Setenv("CSV_VALS", " https://a.test, https://b.test , ,")
	got := c.MayCSV("VALS", nil)
	if len(got) != 2 || got[0] != "https://a.test" || got[1] != "https://b.test" {
		t.Fatalf("MayCSV = %#v", got)
	}
	t.Setenv("CSV_EMPTY", " , ,  ,")
	if got := c.MayCSV("EMPTY", []string{"fallback"}); len(got) != 1 || got[0] != "fallback" {
		t.Fatalf("MayCSV all-empty -> default mismatch: %#v", got)
	}
}

func TestMayPort(t *testing.T) {
	c := New().Prefix("P_")
	cases := []struct {
		env  string
		want string
	}{
		{"", ":8000"},
		{"9000", ":9000"},
		{":9001", ":9001"},
		{"127.0.0.1:9002", "127.0.0.1:9002"},
		{"abc", ":8000"},
		{"70000", ":8000"},
	}
	for _, tc := range cases {
		t.Setenv("P_PORT", tc.env)
		if got := c.MayPort("PORT", "8000"); got != tc.want {
			t.Fatalf("MayPort(%q) = %q, want %q", tc.env, got, tc.want)
		}
	}
	kit.MustPanic(t, func() { _ = c.MayPort("MISSING", "nope") })
}
