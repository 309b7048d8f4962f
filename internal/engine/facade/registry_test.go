package facade

import (
	"context"
	"testing"
)

func TestNewReturnsClearErrorForUnregisteredFacade(t *testing.T) {
	if _, err := New("nonexistent-language", "/proj"); err == nil {
		t.Fatal("expected an error for an unregistered facade name")
	}
}

func TestRegisterMakesAFacadeAvailableToNew(t *testing.T) {
	Register("test-fixture", func(projectRoot string) (CompilerFacade, error) {
		return NewFixture(), nil
	})
	fc, err := New("test-fixture", "/proj")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := fc.ListSourceFiles(context.Background()); err != nil {
		t.Fatal(err)
	}
}
