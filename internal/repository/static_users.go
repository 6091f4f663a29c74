package repository

import (
	"context"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/iliyamo/frontdesk/internal/model"
)

// seedUser is one entry of the users file.
type seedUser struct {
	Username     string `yaml:"username" validate:"required"`
	Name         string `yaml:"name"`
	PasswordHash string `yaml:"password_hash" validate:"required,startswith=$2"`
	Role         string `yaml:"role" validate:"required,oneof=admin front_desk accounting hk_manager hk_team"`
	Disabled     bool   `yaml:"disabled"`
}

type usersFile struct {
	Users []seedUser `yaml:"users" validate:"required,min=1,dive"`
}

// StaticUsers is a read-only user store loaded from YAML.  It serves small
// properties that run without MySQL.
type StaticUsers struct {
	byName map[string]model.User
	byID   map[uint64]model.User
}

// LoadStaticUsers reads and validates a users file.
func LoadStaticUsers(path string) (*StaticUsers, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read users file: %w", err)
	}
	return ParseStaticUsers(data)
}

// ParseStaticUsers builds a store from YAML bytes.  IDs follow file order
// starting at 1.
func ParseStaticUsers(data []byte) (*StaticUsers, error) {
	var f usersFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse users file: %w", err)
	}
	if err := validator.New().Struct(f); err != nil {
		return nil, fmt.Errorf("invalid users file: %w", err)
	}
	s := &StaticUsers{byName: map[string]model.User{}, byID: map[uint64]model.User{}}
	for i, su := range f.Users {
		u := model.User{
			ID:           uint64(i + 1),
			Username:     normalizeUsername(su.Username),
			Name:         su.Name,
			PasswordHash: su.PasswordHash,
			Role:         su.Role,
			IsActive:     !su.Disabled,
		}
		if _, dup := s.byName[u.Username]; dup {
			return nil, fmt.Errorf("invalid users file: duplicate username %q", u.Username)
		}
		s.byName[u.Username] = u
		s.byID[u.ID] = u
	}
	return s, nil
}

func (s *StaticUsers) GetByUsername(_ context.Context, username string) (model.User, error) {
	u, ok := s.byName[normalizeUsername(username)]
	if !ok {
		return model.User{}, ErrUserNotFound
	}
	return u, nil
}

func (s *StaticUsers) GetByID(_ context.Context, id uint64) (model.User, error) {
	u, ok := s.byID[id]
	if !ok {
		return model.User{}, ErrUserNotFound
	}
	return u, nil
}

// Len is the number of accounts in the file.
func (s *StaticUsers) Len() int { return len(s.byName) }
