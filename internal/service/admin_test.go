package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradejournal/internal/domain"
)

// fakeUserRepo is an in-memory UserRepository for admin service tests.
type fakeUserRepo struct {
	users   map[uuid.UUID]*domain.User
	deleted []uuid.UUID
}

func newFakeUserRepo(users ...*domain.User) *fakeUserRepo {
	m := make(map[uuid.UUID]*domain.User)
	for _, u := range users {
		m[u.ID] = u
	}
	return &fakeUserRepo{users: m}
}

func (f *fakeUserRepo) Register(_ context.Context, user *domain.User) error {
	user.Role = domain.RoleUser
	if len(f.users) == 0 {
		user.Role = domain.RoleAdmin
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUserRepo) List(_ context.Context) ([]*domain.User, error) {
	var out []*domain.User
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeUserRepo) UpdateRole(_ context.Context, id uuid.UUID, role string) error {
	u, ok := f.users[id]
	if !ok {
		return domain.ErrNotFound
	}
	u.Role = role
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.users[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.users, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func TestToggleRoleFlipsStrictly(t *testing.T) {
	user := &domain.User{ID: uuid.New(), Username: "trader1", Role: domain.RoleUser}
	repo := newFakeUserRepo(user)
	svc := NewAdminService(repo, nil, nil)

	toggled, err := svc.ToggleRole(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, toggled.Role)

	toggled, err = svc.ToggleRole(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, toggled.Role)
}

func TestToggleRoleMissingUser(t *testing.T) {
	svc := NewAdminService(newFakeUserRepo(), nil, nil)

	_, err := svc.ToggleRole(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteUserRefusesSelf(t *testing.T) {
	admin := &domain.User{ID: uuid.New(), Username: "root", Role: domain.RoleAdmin}
	repo := newFakeUserRepo(admin)
	svc := NewAdminService(repo, nil, nil)

	err := svc.DeleteUser(context.Background(), domain.Actor{ID: admin.ID, Role: domain.RoleAdmin}, admin.ID)
	require.ErrorIs(t, err, domain.ErrSelfDelete)
	assert.Empty(t, repo.deleted)
}

func TestDeleteUserOther(t *testing.T) {
	admin := &domain.User{ID: uuid.New(), Username: "root", Role: domain.RoleAdmin}
	victim := &domain.User{ID: uuid.New(), Username: "gone", Role: domain.RoleUser}
	repo := newFakeUserRepo(admin, victim)
	svc := NewAdminService(repo, nil, nil)

	err := svc.DeleteUser(context.Background(), domain.Actor{ID: admin.ID, Role: domain.RoleAdmin}, victim.ID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{victim.ID}, repo.deleted)
}
