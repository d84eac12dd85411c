// Package diag 收集一次生成运行里的诊断项。警告随成功结果一起
// 报告，致命项中止流程且不产出部分输出。
package diag

import (
	"sync"

	"GallicWars/modules/kit/errx"
)

type Severity uint8

const (
	SeverityWarning Severity = iota
	SeverityFatal
)

func (s Severity) String() string {
	if s == SeverityFatal {
		return "fatal"
	}
	return "warning"
}

// Diagnostic 一条带严重级别的诊断。
type Diagnostic struct {
	Severity Severity
	Err      *errx.Error
}

// List 并发安全的诊断集合。并行的 tile 检查直接往里写。
type List struct {
	mu    sync.Mutex
	items []Diagnostic
}

func (l *List) Warn(err *errx.Error) {
	l.add(Diagnostic{Severity: SeverityWarning, Err: err})
}

func (l *List) Fatal(err *errx.Error) {
	l.add(Diagnostic{Severity: SeverityFatal, Err: err})
}

func (l *List) add(d Diagnostic) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = append(l.items, d)
}

// Items 诊断快照。
func (l *List) Items() []Diagnostic {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Diagnostic, len(l.items))
	copy(out, l.items)
	return out
}

// HasFatal 是否包含致命项。
func (l *List) HasFatal() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, d := range l.items {
		if d.Severity == SeverityFatal {
			return true
		}
	}
	return false
}

// FirstFatal 第一条致命项，没有返回 nil。
func (l *List) FirstFatal() *errx.Error {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, d := range l.items {
		if d.Severity == SeverityFatal {
			return d.Err
		}
	}
	return nil
}

// Warnings 全部警告项。
func (l *List) Warnings() []*errx.Error {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []*errx.Error
	for _, d := range l.items {
		if d.Severity == SeverityWarning {
			out = append(out, d.Err)
		}
	}
	return out
}
