package domain

import "testing"

func TestConnection_Matches(t *testing.T) {
	a, b, c := C(0, 0), C(3, 2), C(-1, 5)
	conn := Connect(a, b)

	if !conn.Matches(a, b) || !conn.Matches(b, a) {
		t.Error("connection must match its endpoints in both orders")
	}
	if conn.Matches(a, c) {
		t.Error("connection must not match a different pair")
	}
	if !conn.Equal(Connect(b, a)) {
		t.Error("reversed connection must be equal")
	}
	if !conn.Touches(b) || conn.Touches(c) {
		t.Error("Touches reports endpoints only")
	}
	if conn.SelfLoop() || !Connect(a, a).SelfLoop() {
		t.Error("SelfLoop mismatch")
	}
	if got := conn.String(); got != "(0, 0) to (3, 2)" {
		t.Errorf("String() = %q", got)
	}
}
