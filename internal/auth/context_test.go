package auth

import (
	"context"
	"testing"
)

func TestContextUserRoundTrip(t *testing.T) {
	ctx := context.Background()

	if _, ok := UserIDFromContext(ctx); ok {
		t.Fatal("expected no user id on empty context")
	}

	ctx = ContextWithUser(ctx, 9, UserTypeVendor)
	id, ok := UserIDFromContext(ctx)
	if !ok || id != 9 {
		t.Fatalf("user id = %d, %v", id, ok)
	}
	ut, ok := UserTypeFromContext(ctx)
	if !ok || ut != UserTypeVendor {
		t.Fatalf("user type = %q, %v", ut, ok)
	}
}

func TestHasRole(t *testing.T) {
	ctx := ContextWithUser(context.Background(), 1, "Vendor")
	if !HasRole(ctx, UserTypeVendor) {
		t.Fatal("expected vendor role match to be case-insensitive")
	}
	if HasRole(ctx, UserTypeCustomer) {
		t.Fatal("unexpected customer role match")
	}
	if HasRole(context.Background(), UserTypeVendor) {
		t.Fatal("expected no role on empty context")
	}
}
