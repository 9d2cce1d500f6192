package errx

import (
	"errors"
	"fmt"
	"testing"
)

func TestError_Is_只按code比较语义(t *testing.T) {
	e1 := NewBiz("SCRIPT_X", "x").WithData("node", "a").WithCause(errors.New("cause1"))
	e2 := NewBiz("SCRIPT_X", "x2").WithData("node", "b").WithCause(errors.New("cause2"))
	if !errors.Is(e1, e2) {
		t.Fatalf("期望 errors.Is(e1, e2)==true，e1=%v e2=%v", e1, e2)
	}
}

func TestError_业务错误不捕获栈_但保留cause链(t *testing.T) {
	cause := errors.New("length 250000")
	err := NewBiz("SCRIPT_SIZE_EXCEEDED", "脚本超出长度上限").WithCause(cause)
	if got := err.Stack(); got != nil {
		t.Fatalf("期望业务错误不捕获栈，got=%v", got)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("期望 cause 链不丢，err=%v", err)
	}
	if !err.IsBiz() || !IsBiz(fmt.Errorf("wrap: %w", err)) {
		t.Fatalf("期望识别为业务错误")
	}
}

func TestError_系统错误捕获一次栈_且不重复捕获(t *testing.T) {
	sys := NewSys("SYS_CLASSDB", "类数据库不可用").WithCause(errors.New("eof"))
	if got := sys.Stack(); len(got) == 0 {
		t.Fatalf("期望系统错误捕获栈，got=%v", got)
	}
	sys2 := NewSys("SYS_SERVER", "服务异常").WithCause(sys)
	if got := sys2.Stack(); got != nil {
		t.Fatalf("期望上层不重复捕获栈，got=%v", got)
	}
}

func TestError_Data_防止外部map污染(t *testing.T) {
	m := map[string]any{"property": "Size"}
	err := NewBiz("SCRIPT_X", "").WithDataMap(m)
	m["property"] = "mutated"
	if got := err.Data()["property"]; got != "Size" {
		t.Fatalf("期望构造时复制 data；got=%v", got)
	}
}

func TestCodeOf_沿包装链取码(t *testing.T) {
	err := fmt.Errorf("run: %w", ErrInternal.WithData("stage", "names"))
	if got := CodeOf(err); got != CodeInternal {
		t.Fatalf("期望 %s, got=%s", CodeInternal, got)
	}
	if got := CodeOf(errors.New("plain")); got != "" {
		t.Fatalf("期望空码, got=%s", got)
	}
}
