package keyring

import (
	"testing"

	gokeyring "github.com/zalando/go-keyring"
)

func TestSetAndGet(t *testing.T) {
	gokeyring.MockInit()

	tests := []struct {
		secret Secret
		value  string
	}{
		{ConnectionString, "postgres://testuser:pw@localhost:5432/testdb?sslmode=disable"},
		{RedisPassword, "hunter2"},
	}

	for _, tt := range tests {
		t.Run(string(tt.secret), func(t *testing.T) {
			if err := Set(tt.secret, tt.value); err != nil {
				t.Fatalf("Set() failed: %v", err)
			}
			got, err := Get(tt.secret)
			if err != nil {
				t.Fatalf("Get() failed: %v", err)
			}
			if got != tt.value {
				t.Errorf("Get() = %q, want %q", got, tt.value)
			}
		})
	}
}

func TestSetEmpty(t *testing.T) {
	gokeyring.MockInit()

	if err := Set(RedisPassword, ""); err == nil {
		t.Error("Set with an empty value should return an error")
	}
}

func TestGetNotFound(t *testing.T) {
	gokeyring.MockInit()
	_ = Delete(ConnectionString)

	if _, err := Get(ConnectionString); err != ErrNotFound {
		t.Errorf("Get() error = %v, want %v", err, ErrNotFound)
	}
}

func TestDelete(t *testing.T) {
	gokeyring.MockInit()

	if err := Set(ConnectionString, "postgres://testuser@localhost:5432/testdb"); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}
	if err := Delete(ConnectionString); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if err := Delete(ConnectionString); err != ErrNotFound {
		t.Errorf("second Delete() error = %v, want %v", err, ErrNotFound)
	}
}

func TestIsAvailableWithMock(t *testing.T) {
	gokeyring.MockInit()

	if !IsAvailable() {
		t.Error("mock keyring should report available")
	}
}
