package order

import (
	"strings"
	"testing"
	"time"
)

func TestNewIDFormat(t *testing.T) {
	now := time.UnixMilli(1700000000123)
	id, err := NewID(now)
	if err != nil {
		t.Fatalf("NewID: %v", err)
	}
	if !IDPattern.MatchString(id) {
		t.Fatalf("id %q does not match %s", id, IDPattern)
	}
	if !strings.HasPrefix(id, "ORDER-1700000000123-") {
		t.Fatalf("id %q does not embed the timestamp", id)
	}
}
