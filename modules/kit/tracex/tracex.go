package tracex

import (
	"context"
	"crypto/rand"
	"encoding/hex"
)

type runIDKey struct{}
type opKey struct{}

// WithRunID 把本次运行的 run_id 挂到 ctx 上，整条流水线共享。
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, runIDKey{}, runID)
}

func RunIDFrom(ctx context.Context) (string, bool) {
	v := ctx.Value(runIDKey{})
	if v == nil {
		return "", false
	}
	s, ok := v.(string)
	return s, ok && s != ""
}

// WithOp 标记当前所处的流水线阶段（load/validate/assemble/encode...）。
func WithOp(ctx context.Context, op string) context.Context {
	return context.WithValue(ctx, opKey{}, op)
}

func OpFrom(ctx context.Context) (string, bool) {
	v := ctx.Value(opKey{})
	if v == nil {
		return "", false
	}
	s, ok := v.(string)
	return s, ok && s != ""
}

// NewRunID 生成 16 字节随机 run_id（hex）。
func NewRunID() string {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		return ""
	}
	return hex.EncodeToString(b[:])
}
