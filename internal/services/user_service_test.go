package services

import (
	"strings"
	"testing"

	"pocketledger/internal/testutil"
)

func TestRegister(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		s := newStack(t)

		user, err := s.users.Register(ctx, "alice", "password123")
		testutil.AssertNoError(t, err)

		if user.ID == "" {
			t.Fatal("expected a user ID")
		}
		if user.Password == "password123" {
			t.Error("password must be stored hashed")
		}
	})

	t.Run("duplicate_username", func(t *testing.T) {
		s := newStack(t)

		_, err := s.users.Register(ctx, "alice", "password123")
		testutil.AssertNoError(t, err)

		_, err = s.users.Register(ctx, "alice", "password456")
		testutil.AssertAppError(t, err, "DUPLICATE_USERNAME")
	})

	t.Run("usernames_are_case_sensitive", func(t *testing.T) {
		s := newStack(t)

		_, err := s.users.Register(ctx, "alice", "password123")
		testutil.AssertNoError(t, err)
		_, err = s.users.Register(ctx, "ALICE", "password123")
		testutil.AssertNoError(t, err)
	})

	t.Run("short_password", func(t *testing.T) {
		s := newStack(t)

		_, err := s.users.Register(ctx, "bob", "short")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("long_username", func(t *testing.T) {
		s := newStack(t)

		_, err := s.users.Register(ctx, strings.Repeat("x", 65), "password123")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestAuthenticate(t *testing.T) {
	s := newStack(t)
	registered, err := s.users.Register(ctx, "carol", "password123")
	testutil.AssertNoError(t, err)

	t.Run("valid", func(t *testing.T) {
		user, err := s.users.Authenticate(ctx, "carol", "password123")
		testutil.AssertNoError(t, err)
		if user.ID != registered.ID {
			t.Errorf("expected %s, got %s", registered.ID, user.ID)
		}
	})

	t.Run("wrong_password", func(t *testing.T) {
		_, err := s.users.Authenticate(ctx, "carol", "wrong-password")
		testutil.AssertAppError(t, err, "INVALID_CREDENTIALS")
	})

	t.Run("unknown_user", func(t *testing.T) {
		_, err := s.users.Authenticate(ctx, "dave", "password123")
		testutil.AssertAppError(t, err, "INVALID_CREDENTIALS")
	})

	t.Run("get_by_id", func(t *testing.T) {
		user, err := s.users.GetUserByID(ctx, registered.ID)
		testutil.AssertNoError(t, err)
		if user.Username != "carol" {
			t.Errorf("expected carol, got %s", user.Username)
		}

		_, err = s.users.GetUserByID(ctx, "")
		testutil.AssertAppError(t, err, "UNAUTHORIZED")
	})
}
