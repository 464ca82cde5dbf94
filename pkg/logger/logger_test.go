package logger

import "testing"

func TestNewConsoleLogger(t *testing.T) {
	l, err := New(&Config{Level: "info", Format: "console", Output: "stdout"})
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	if l == nil {
		t.Fatalf("expected logger instance")
	}
}

func TestNewRejectsInvalidLevel(t *testing.T) {
	if _, err := New(&Config{Level: "loud", Format: "console", Output: "stdout"}); err == nil {
		t.Fatalf("invalid level must error, not return a nil logger")
	}
}

func TestFieldKeyValues(t *testing.T) {
	k, v := Int("rows", 7).GetKeyValue()
	if k != "rows" || v.(int) != 7 {
		t.Fatalf("int field: %s=%v", k, v)
	}
	k, v = Strings("symbols", []string{"AAPL", "TSLA"}).GetKeyValue()
	if k != "symbols" || v.(string) != "AAPL, TSLA" {
		t.Fatalf("strings field: %s=%v", k, v)
	}
}
