package domain

import (
	"encoding/json"
	"testing"
)

func TestMode_Accessors(t *testing.T) {
	if _, ok := Idle().ArmedRole(); ok {
		t.Error("idle mode has no armed role")
	}
	if r, ok := Armed(RoleOutput).ArmedRole(); !ok || r != RoleOutput {
		t.Errorf("ArmedRole() = %v, %v", r, ok)
	}
	if c, ok := Selected(C(3, 2)).PendingEndpoint(); !ok || c != C(3, 2) {
		t.Errorf("PendingEndpoint() = %v, %v", c, ok)
	}
	if _, ok := Armed(RoleInput).PendingEndpoint(); ok {
		t.Error("armed mode has no pending endpoint")
	}
	if Selected(C(1, 1)) != Selected(C(1, 1)) {
		t.Error("modes built by constructors must compare equal")
	}
	if (Mode{}) == Idle() {
		t.Error("zero Mode has an empty kind and differs from Idle()")
	}
}

func TestMode_JSONRoundTrip(t *testing.T) {
	tests := []struct {
		mode Mode
		want string
	}{
		{Idle(), `{"kind":"idle"}`},
		{Armed(RoleInput), `{"kind":"placement_armed","role":"input"}`},
		{Selected(C(-1, 4)), `{"kind":"endpoint_selected","endpoint":{"x":-1,"y":4}}`},
	}

	for _, tt := range tests {
		data, err := json.Marshal(tt.mode)
		if err != nil {
			t.Fatalf("marshal %v: %v", tt.mode, err)
		}
		if string(data) != tt.want {
			t.Errorf("marshal %v = %s, want %s", tt.mode, data, tt.want)
		}

		var back Mode
		if err := json.Unmarshal(data, &back); err != nil {
			t.Fatalf("unmarshal %s: %v", data, err)
		}
		if back != tt.mode {
			t.Errorf("round trip = %v, want %v", back, tt.mode)
		}
	}
}

func TestMode_UnmarshalRejectsIncomplete(t *testing.T) {
	var m Mode
	for _, in := range []string{
		`{"kind":"placement_armed"}`,
		`{"kind":"endpoint_selected"}`,
		`{"kind":"dancing"}`,
	} {
		if err := json.Unmarshal([]byte(in), &m); err == nil {
			t.Errorf("expected error for %s", in)
		}
	}
}
