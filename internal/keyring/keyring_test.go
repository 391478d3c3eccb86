package keyring

import (
	"errors"
	"testing"

	gokeyring "github.com/zalando/go-keyring"
)

func TestSetAndGetConnectionString(t *testing.T) {
	gokeyring.MockInit()

	connStr := "postgres://streaklit@localhost:5432/habits?sslmode=disable"
	if err := SetConnectionString(connStr); err != nil {
		t.Fatalf("SetConnectionString() failed: %v", err)
	}

	got, err := GetConnectionString()
	if err != nil {
		t.Fatalf("GetConnectionString() failed: %v", err)
	}
	if got != connStr {
		t.Errorf("GetConnectionString() = %q, want %q", got, connStr)
	}
}

func TestSetConnectionStringEmpty(t *testing.T) {
	gokeyring.MockInit()

	if err := SetConnectionString(""); err == nil {
		t.Error("SetConnectionString(\"\") should return an error")
	}
}

func TestDeleteConnectionString(t *testing.T) {
	gokeyring.MockInit()

	if err := SetConnectionString("postgres://streaklit@localhost/habits"); err != nil {
		t.Fatalf("SetConnectionString() failed: %v", err)
	}
	if err := DeleteConnectionString(); err != nil {
		t.Fatalf("DeleteConnectionString() failed: %v", err)
	}
	if _, err := GetConnectionString(); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetConnectionString() error = %v, want %v", err, ErrNotFound)
	}
	if err := DeleteConnectionString(); !errors.Is(err, ErrNotFound) {
		t.Errorf("second DeleteConnectionString() error = %v, want %v", err, ErrNotFound)
	}
}

func TestGetStatus(t *testing.T) {
	gokeyring.MockInit()
	_ = DeleteConnectionString()

	if got := GetStatus(); got != (Status{Available: true}) {
		t.Errorf("empty keyring status = %+v", got)
	}

	if err := SetConnectionString("postgres://streaklit@localhost/habits"); err != nil {
		t.Fatal(err)
	}
	if got := GetStatus(); got != (Status{Available: true, Stored: true}) {
		t.Errorf("stored keyring status = %+v", got)
	}

	gokeyring.MockInitWithError(errors.New("no dbus"))
	if got := GetStatus(); got != (Status{}) {
		t.Errorf("broken keyring status = %+v", got)
	}
}
