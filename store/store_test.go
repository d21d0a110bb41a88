package store

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

type recordingBinder struct {
	token   string
	cleared int
}

func (b *recordingBinder) SetAuthToken(token string) { b.token = token }
func (b *recordingBinder) ClearAuthToken()           { b.token = ""; b.cleared++ }

func newStoreTest(t *testing.T) (*Store, *recordingBinder, *miniredis.Miniredis, func()) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis start: %v", err)
	}
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	binder := &recordingBinder{}
	store := New(rdb, "ng", binder, zerolog.Nop())
	return store, binder, mr, func() {
		rdb.Close()
		mr.Close()
	}
}

func TestStoreAndReadTriple(t *testing.T) {
	store, binder, _, done := newStoreTest(t)
	defer done()
	ctx := context.Background()

	profile := Profile{"id": "u-1", "name": "Alice"}
	if err := store.StoreAuthData(ctx, "tok-1", profile, "customer"); err != nil {
		t.Fatalf("store: %v", err)
	}

	triple, err := store.Triple(ctx)
	if err != nil {
		t.Fatalf("read triple: %v", err)
	}
	if !triple.Complete() {
		t.Fatal("triple should be complete after store")
	}
	if triple.Token != "tok-1" || triple.UserType != "customer" {
		t.Fatalf("triple = %+v", triple)
	}
	if triple.Profile.ID() != "u-1" {
		t.Fatalf("profile id = %q, want u-1", triple.Profile.ID())
	}
	if binder.token != "tok-1" {
		t.Fatalf("binder token = %q, want tok-1", binder.token)
	}
}

func TestStoreRejectsIncompleteTriple(t *testing.T) {
	store, binder, _, done := newStoreTest(t)
	defer done()
	ctx := context.Background()

	cases := []struct {
		token    string
		profile  Profile
		userType string
	}{
		{"", Profile{"id": "u-1"}, "customer"},
		{"tok-1", nil, "customer"},
		{"tok-1", Profile{}, "customer"},
		{"tok-1", Profile{"id": "u-1"}, ""},
	}
	for _, tc := range cases {
		err := store.StoreAuthData(ctx, tc.token, tc.profile, tc.userType)
		if !errors.Is(err, ErrIncompleteTriple) {
			t.Fatalf("StoreAuthData(%q, %v, %q) = %v, want ErrIncompleteTriple", tc.token, tc.profile, tc.userType, err)
		}
	}

	// Nothing may have been written, and the binder stays untouched.
	triple, err := store.Triple(ctx)
	if err != nil {
		t.Fatalf("read triple: %v", err)
	}
	if triple.Partial() || triple.Complete() {
		t.Fatalf("store should be empty, got %+v", triple)
	}
	if binder.token != "" {
		t.Fatalf("binder token = %q, want empty", binder.token)
	}
}

func TestClearIsIdempotent(t *testing.T) {
	store, binder, _, done := newStoreTest(t)
	defer done()
	ctx := context.Background()

	if err := store.StoreAuthData(ctx, "tok-1", Profile{"id": "u-1"}, "chef"); err != nil {
		t.Fatalf("store: %v", err)
	}
	if err := store.ClearAuthData(ctx); err != nil {
		t.Fatalf("first clear: %v", err)
	}
	if err := store.ClearAuthData(ctx); err != nil {
		t.Fatalf("second clear: %v", err)
	}

	triple, err := store.Triple(ctx)
	if err != nil {
		t.Fatalf("read triple: %v", err)
	}
	if triple.Partial() || triple.Complete() {
		t.Fatalf("store should be empty after clear, got %+v", triple)
	}
	if binder.token != "" || binder.cleared != 2 {
		t.Fatalf("binder = %+v, want cleared twice", binder)
	}
}

func TestSingleFieldReaders(t *testing.T) {
	store, _, _, done := newStoreTest(t)
	defer done()
	ctx := context.Background()

	// Absent keys read as zero values, not errors.
	if tok, err := store.Token(ctx); err != nil || tok != "" {
		t.Fatalf("Token() = %q, %v", tok, err)
	}
	if ut, err := store.UserType(ctx); err != nil || ut != "" {
		t.Fatalf("UserType() = %q, %v", ut, err)
	}
	if p, err := store.Profile(ctx); err != nil || p != nil {
		t.Fatalf("Profile() = %v, %v", p, err)
	}

	if err := store.StoreAuthData(ctx, "tok-9", Profile{"id": float64(7)}, "manager"); err != nil {
		t.Fatalf("store: %v", err)
	}

	tok, err := store.Token(ctx)
	if err != nil || tok != "tok-9" {
		t.Fatalf("Token() = %q, %v", tok, err)
	}
	ut, err := store.UserType(ctx)
	if err != nil || ut != "manager" {
		t.Fatalf("UserType() = %q, %v", ut, err)
	}
	p, err := store.Profile(ctx)
	if err != nil {
		t.Fatalf("Profile(): %v", err)
	}
	if p.ID() != "7" {
		t.Fatalf("profile id = %q, want 7", p.ID())
	}
}

func TestCorruptProfileSurfacesError(t *testing.T) {
	store, _, mr, done := newStoreTest(t)
	defer done()
	ctx := context.Background()

	mr.Set("ng:auth_token", "tok-1")
	mr.Set("ng:user_profile", "{not json")
	mr.Set("ng:user_type", "customer")

	if _, err := store.Profile(ctx); !errors.Is(err, ErrProfileCorrupt) {
		t.Fatalf("Profile() = %v, want ErrProfileCorrupt", err)
	}
	if _, err := store.Triple(ctx); !errors.Is(err, ErrProfileCorrupt) {
		t.Fatalf("Triple() = %v, want ErrProfileCorrupt", err)
	}
}

func TestTripleStates(t *testing.T) {
	empty := Triple{}
	if empty.Complete() || empty.Partial() {
		t.Fatal("empty triple is neither complete nor partial")
	}

	partial := Triple{Token: "tok-1"}
	if partial.Complete() || !partial.Partial() {
		t.Fatal("token-only triple should be partial")
	}

	full := Triple{Token: "tok-1", Profile: Profile{"id": "u-1"}, UserType: "chef"}
	if !full.Complete() || full.Partial() {
		t.Fatal("full triple should be complete")
	}
}

func TestProfileID(t *testing.T) {
	cases := []struct {
		profile Profile
		want    string
	}{
		{nil, ""},
		{Profile{}, ""},
		{Profile{"id": "abc"}, "abc"},
		{Profile{"id": float64(42)}, "42"},
		{Profile{"id": 9}, "9"},
		{Profile{"id": true}, ""},
	}
	for _, tc := range cases {
		if got := tc.profile.ID(); got != tc.want {
			t.Fatalf("Profile(%v).ID() = %q, want %q", tc.profile, got, tc.want)
		}
	}
}
