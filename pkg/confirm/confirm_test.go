package confirm

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
)

func TestTerminal(t *testing.T) {
	cases := map[string]bool{"y\n": true, "YES\n": true, "n\n": false, "\n": false, "": false}
	for input, want := range cases {
		var out bytes.Buffer
		ok, err := NewTerminal(strings.NewReader(input), &out).Confirm(context.Background(), "删除商品", "确定删除 #3?")
		if err != nil {
			t.Fatalf("%q: %v", input, err)
		}
		if ok != want {
			t.Fatalf("%q: got %v", input, ok)
		}
		if !strings.Contains(out.String(), "删除商品") {
			t.Fatalf("prompt not written: %q", out.String())
		}
	}
}

func TestRequire(t *testing.T) {
	if err := Require(context.Background(), Static(false), "t", "b"); !errors.Is(err, ErrDeclined) {
		t.Fatalf("expected ErrDeclined, got %v", err)
	}
	if err := Require(context.Background(), Static(true), "t", "b"); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
}
