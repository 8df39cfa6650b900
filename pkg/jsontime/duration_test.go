package jsontime

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDuration_MarshalJSON(t *testing.T) {
	d := Duration(90 * time.Minute)
	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("MarshalJSON error: %v", err)
	}
	if string(data) != `"1h30m0s"` {
		t.Errorf("MarshalJSON = %s, want %q", data, "1h30m0s")
	}
}

func TestDuration_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{`"150ms"`, 150 * time.Millisecond},
		{`"2h"`, 2 * time.Hour},
		{`5000000000`, 5 * time.Second},
		{`null`, 0},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var d Duration
			if err := json.Unmarshal([]byte(tt.in), &d); err != nil {
				t.Fatalf("UnmarshalJSON error: %v", err)
			}
			if time.Duration(d) != tt.want {
				t.Errorf("UnmarshalJSON = %v, want %v", time.Duration(d), tt.want)
			}
		})
	}
}

func TestDuration_UnmarshalJSON_Invalid(t *testing.T) {
	var d Duration
	if err := json.Unmarshal([]byte(`"soon"`), &d); err == nil {
		t.Error("expected error for invalid duration")
	}
}

func TestDuration_Text(t *testing.T) {
	var d Duration
	if err := d.UnmarshalText([]byte("100ms")); err != nil {
		t.Fatal(err)
	}
	if time.Duration(d) != 100*time.Millisecond {
		t.Errorf("UnmarshalText = %v", time.Duration(d))
	}
	text, err := d.MarshalText()
	if err != nil {
		t.Fatal(err)
	}
	if string(text) != "100ms" {
		t.Errorf("MarshalText = %s", text)
	}
	if err := d.UnmarshalText([]byte("")); err != nil || d != 0 {
		t.Errorf("empty text = %v, %v", d, err)
	}
	if err := d.UnmarshalText([]byte("42")); err != nil || time.Duration(d) != 42 {
		t.Errorf("integer text = %v, %v", d, err)
	}
}

func TestDuration_Methods(t *testing.T) {
	d := FromDuration(1500 * time.Millisecond)
	if d.Duration() != 1500*time.Millisecond {
		t.Errorf("Duration() = %v", d.Duration())
	}
	if d.Milliseconds() != 1500 {
		t.Errorf("Milliseconds() = %d", d.Milliseconds())
	}
	if d.String() != "1.5s" {
		t.Errorf("String() = %s", d.String())
	}
	var nilD *Duration
	if nilD.Duration() != 0 {
		t.Error("nil Duration() should be 0")
	}
}
