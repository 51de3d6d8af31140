package domain

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		in      string
		want    Role
		wantErr bool
	}{
		{in: "input", want: RoleInput},
		{in: "Output", want: RoleOutput},
		{in: " in ", want: RoleInput},
		{in: "out", want: RoleOutput},
		{in: "hidden", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseRole(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrUnknownRole) {
				t.Errorf("ParseRole(%q) error = %v, want ErrUnknownRole", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseRole(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
		}
	}
}

func TestRole_JSON(t *testing.T) {
	data, err := json.Marshal(map[string]Role{"role": RoleOutput})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `{"role":"output"}` {
		t.Errorf("unexpected JSON: %s", data)
	}

	var r Role
	if err := json.Unmarshal([]byte(`"input"`), &r); err != nil || r != RoleInput {
		t.Errorf("unmarshal = %v, %v", r, err)
	}
	if err := json.Unmarshal([]byte(`"sideways"`), &r); err == nil {
		t.Error("expected error for unknown role")
	}

	var zero Role
	if zero.Valid() {
		t.Error("zero Role must not be valid")
	}
	if _, err := zero.MarshalText(); !errors.Is(err, ErrUnknownRole) {
		t.Errorf("expected ErrUnknownRole marshaling zero Role, got %v", err)
	}
}
