package format

import "testing"

func TestDerefString(t *testing.T) {
	s := "value"
	if got := DerefString(&s, "fallback"); got != "value" {
		t.Errorf("DerefString = %q", got)
	}
	if got := DerefString(nil, "fallback"); got != "fallback" {
		t.Errorf("DerefString nil = %q", got)
	}
}

func TestDerefInt(t *testing.T) {
	n := 24
	if got := DerefInt(&n, 0); got != 24 {
		t.Errorf("DerefInt = %d", got)
	}
	if got := DerefInt(nil, 0); got != 0 {
		t.Errorf("DerefInt nil = %d", got)
	}
}
