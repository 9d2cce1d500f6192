package domain

import (
	"strings"
	"testing"
)

func TestContainer_Walk_路径与剪枝(t *testing.T) {
	root := &Container{Name: "House", Children: []*Container{
		{Name: "a", Children: []*Container{{Name: "b"}, {Name: "c"}}},
		{Name: "d"},
	}}
	var seen []string
	root.Walk(func(path []string, c *Container) bool {
		seen = append(seen, strings.Join(path, "/"))
		return c.Name != "a"
	})
	want := []string{"House", "House/a", "House/d"}
	if strings.Join(seen, ",") != strings.Join(want, ",") {
		t.Fatalf("期望 %v, got=%v", want, seen)
	}
	if n := root.Count(); n != 5 {
		t.Fatalf("期望 5 个单元, got=%d", n)
	}
}

func TestContainer_SourceLength(t *testing.T) {
	root := &Container{Name: "House", Source: "abc", Children: []*Container{
		{Name: "a", Source: "de", Children: []*Container{{Name: "b", Source: "f"}}},
	}}
	if n := root.SourceLength(); n != 6 {
		t.Fatalf("期望 6, got=%d", n)
	}
}
