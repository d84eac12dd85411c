package errx

import (
	"errors"
	"testing"
)

func TestError_Is_只按code比较语义(t *testing.T) {
	e1 := NewBiz("GRID_PARITY_VIOLATION", "奇数行插入").WithData("count", 3).WithCause(errors.New("cause1"))
	e2 := NewBiz("GRID_PARITY_VIOLATION", "别的消息").WithData("count", 5)
	if !errors.Is(e1, e2) {
		t.Fatalf("期望 errors.Is(e1, e2)==true（只按 code 判断语义），e1=%v e2=%v", e1, e2)
	}
}

func TestError_业务错误不捕获栈_但保留cause链(t *testing.T) {
	cause := errors.New("bad input")
	err := NewBiz("SCENARIO_SITE_CONFLICT", "城址冲突").WithCause(cause)
	if got := err.Stack(); got != nil {
		t.Fatalf("期望业务错误不捕获栈，got=%v", got)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("期望 cause 链不丢，err=%v", err)
	}
}

func TestError_系统错误捕获一次栈_且不重复捕获(t *testing.T) {
	cause := errors.New("disk full")
	sys := NewSys(CodeIOFailure, "落盘失败").WithCause(cause)
	if got := sys.Stack(); len(got) == 0 {
		t.Fatalf("期望系统错误捕获栈（发生/转换处），got=%v", got)
	}

	// 再包一层系统错误：下层已有栈，上层不应重复捕获
	sys2 := NewSys(CodeInternal, "内部错误").WithCause(sys)
	if got := sys2.Stack(); got != nil {
		t.Fatalf("期望上层系统错误不重复捕获栈（cause 链里已有栈），got=%v", got)
	}
}

func TestError_Data_防止外部map污染(t *testing.T) {
	m := map[string]any{"tile": 42}
	err := NewBiz("SCENARIO_DANGLING_REF", "").WithDataMap(m)
	m["tile"] = 99
	if got := err.Data()["tile"]; got != 42 {
		t.Fatalf("期望构造时复制 data，避免外部后续修改影响错误上下文；got=%v", got)
	}
}
