package repository

import (
	"context"
	"errors"
	"testing"
)

const usersYAML = `
users:
  - username: Sara
    name: Sara M.
    password_hash: $2a$04$abcdefghijklmnopqrstuu5dPZ1YVdG2OSzJ7bLMW8dbxqTe6ACuy
    role: front_desk
  - username: ali
    password_hash: $2a$04$abcdefghijklmnopqrstuu5dPZ1YVdG2OSzJ7bLMW8dbxqTe6ACuy
    role: hk_team
    disabled: true
`

func TestStaticUsers(t *testing.T) {
	s, err := ParseStaticUsers([]byte(usersYAML))
	if err != nil {
		t.Fatal(err)
	}
	u, err := s.GetByUsername(context.Background(), " SARA ")
	if err != nil {
		t.Fatal(err)
	}
	if u.ID != 1 || u.Role != "front_desk" || !u.IsActive || u.Name != "Sara M." {
		t.Fatalf("user = %+v", u)
	}
	if u, _ := s.GetByID(context.Background(), 2); u.IsActive {
		t.Fatal("disabled user is active")
	}
	if _, err := s.GetByUsername(context.Background(), "nobody"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("missing user: %v", err)
	}
}

func TestStaticUsersRejectsBadFiles(t *testing.T) {
	bad := map[string]string{
		"empty":        "users: []\n",
		"unknown role": "users:\n  - {username: a, password_hash: $2a$04$x, role: chef}\n",
		"plain text":   "users:\n  - {username: a, password_hash: hunter2, role: admin}\n",
		"duplicate":    "users:\n  - {username: a, password_hash: $2a$04$x, role: admin}\n  - {username: A, password_hash: $2a$04$x, role: admin}\n",
	}
	for name, doc := range bad {
		if _, err := ParseStaticUsers([]byte(doc)); err == nil {
			t.Errorf("%s: accepted", name)
		}
	}
}
