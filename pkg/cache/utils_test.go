package cache

import "testing"

func TestGenerateKey(t *testing.T) {
	if got := GenerateKey("report", "AAPL"); got != "report:AAPL" {
		t.Fatalf("GenerateKey = %q", got)
	}
}

func TestGenerateKeyWithParams(t *testing.T) {
	if got := GenerateKeyWithParams("events", "AAPL", "30d"); got != "events:AAPL:30d" {
		t.Fatalf("GenerateKeyWithParams = %q", got)
	}
	if got := GenerateKeyWithParams("events"); got != "events" {
		t.Fatalf("GenerateKeyWithParams with no params = %q", got)
	}
}
