package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestStatusMapping(t *testing.T) {
	cases := map[Kind]int{
		KindValidation: 400,
		KindAuth:       401,
		KindAuthz:      403,
		KindNotFound:   404,
		KindConflict:   409,
		KindStorage:    500,
	}
	for kind, want := range cases {
		if got := Status(kind); got != want {
			t.Errorf("Status(%s) = %d, want %d", kind, got, want)
		}
	}
}

func TestKindOfUnwraps(t *testing.T) {
	err := fmt.Errorf("handler context: %w", Conflict("name taken"))
	if got := KindOf(err); got != KindConflict {
		t.Fatalf("KindOf() = %v, want conflict", got)
	}
	if got := KindOf(errors.New("plain")); got != KindStorage {
		t.Fatalf("KindOf(plain) = %v, want storage", got)
	}
}

func TestStorageMessageNeverLeaksCause(t *testing.T) {
	cause := errors.New("pq: connection reset")
	err := Storage("failed to create user", cause)
	if Message(err) != "Internal server error" {
		t.Fatalf("Message() = %q, leaked storage detail", Message(err))
	}
	if !errors.Is(err, cause) {
		t.Fatal("Storage() lost the wrapped cause")
	}
	if Message(NotFound("donation not found")) != "donation not found" {
		t.Fatalf("client-kind message rewritten")
	}
}
