package passwords

import (
	"testing"
)

func TestCompare(t *testing.T) {
	hashed, err := Hash([]byte("hunter2"))
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}

	t.Run("nil for the right password", func(t *testing.T) {
		if err := Compare(hashed, []byte("hunter2")); err != nil {
			t.Errorf("Compare() = %v, expected nil", err)
		}
	})
	t.Run("ErrMismatch for the wrong password", func(t *testing.T) {
		actual := Compare(hashed, []byte("hunter3"))
		if actual != ErrMismatch {
			t.Errorf("Compare() = %v, expected %v", actual, ErrMismatch)
		}
	})
}
