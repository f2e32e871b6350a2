package models

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestFlatten(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"nested extra", `{"text":"A","extra":[{"text":"B"},{"text":"C","extra":[{"text":"D"}]}]}`, "ABCD"},
		{"bare string", `"hello"`, "hello"},
		{"empty object", `{}`, ""},
		{"array", `["a",{"text":"b"},["c","d"]]`, "abcd"},
		{"text after extra key order", `{"extra":["2"],"text":"1"}`, "12"},
		{"ignored keys", `{"text":"x","color":"red","bold":true,"hoverEvent":{"text":"no"}}`, "x"},
		{"number", `42`, ""},
		{"bool and null in array", `[true,null,"ok",1.5]`, "ok"},
		{"null", `null`, ""},
		{"extra as object", `{"text":"a","extra":{"text":"b"}}`, "ab"},
		{"section signs kept", `"§aGreen"`, "§aGreen"},
		{"invalid json", `{"text":`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Flatten(json.RawMessage(tt.raw)); got != tt.want {
				t.Errorf("Flatten(%s) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestFlattenEmpty(t *testing.T) {
	if got := Flatten(nil); got != "" {
		t.Errorf("Flatten(nil) = %q", got)
	}
}

func TestFlattenDeepNesting(t *testing.T) {
	const depth = 2000
	raw := strings.Repeat(`{"text":"x","extra":[`, depth) + `"end"` + strings.Repeat(`]}`, depth)
	got := Flatten(json.RawMessage(raw))
	if want := strings.Repeat("x", depth) + "end"; got != want {
		t.Errorf("deep Flatten returned %d bytes, want %d", len(got), len(want))
	}
}
