package tracex

import (
	"context"
	"testing"
)

func TestRunID_RoundTrip(t *testing.T) {
	ctx := context.Background()
	ctx = WithRunID(ctx, "r-1")
	if got, ok := RunIDFrom(ctx); !ok || got != "r-1" {
		t.Fatalf("期望 RunIDFrom round-trip 成功，got=%q ok=%v", got, ok)
	}
}

func TestOp_RoundTrip(t *testing.T) {
	ctx := WithOp(context.Background(), "assemble")
	if got, ok := OpFrom(ctx); !ok || got != "assemble" {
		t.Fatalf("期望 OpFrom round-trip 成功，got=%q ok=%v", got, ok)
	}
}
