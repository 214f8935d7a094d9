package command

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mams-platform/mams/internal/directory/domain"
	"github.com/mams-platform/mams/pkg/auth"
)

// fakeUserRepo keeps users in a map keyed by username
type fakeUserRepo struct {
	users  map[string]*domain.User
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*domain.User)}
}

func (r *fakeUserRepo) Create(user *domain.User) error {
	if _, exists := r.users[user.Username]; exists {
		return domain.ErrUsernameTaken
	}
	r.nextID++
	user.ID = r.nextID
	r.users[user.Username] = user
	return nil
}

func (r *fakeUserRepo) FindByID(id uint) (*domain.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *fakeUserRepo) FindByUsername(username string) (*domain.User, error) {
	u, exists := r.users[username]
	if !exists {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) FindAll(_, _ int) ([]domain.User, error) {
	var out []domain.User
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *fakeUserRepo) Update(user *domain.User) error {
	for name, u := range r.users {
		if u.ID == user.ID {
			r.users[name] = user
			return nil
		}
	}
	return domain.ErrUserNotFound
}

// fakeBaseRepo holds a fixed set of base IDs
type fakeBaseRepo struct {
	bases map[uint]*domain.Base
}

func newFakeBaseRepo(ids ...uint) *fakeBaseRepo {
	r := &fakeBaseRepo{bases: make(map[uint]*domain.Base)}
	for _, id := range ids {
		r.bases[id] = &domain.Base{ID: id, Name: fmt.Sprintf("Base %d", id)}
	}
	return r
}

func (r *fakeBaseRepo) Create(base *domain.Base) error {
	base.ID = uint(len(r.bases) + 1)
	r.bases[base.ID] = base
	return nil
}

func (r *fakeBaseRepo) FindByID(id uint) (*domain.Base, error) {
	b, exists := r.bases[id]
	if !exists {
		return nil, domain.ErrBaseNotFound
	}
	return b, nil
}

func (r *fakeBaseRepo) FindAll() ([]domain.Base, error) {
	var out []domain.Base
	for _, b := range r.bases {
		out = append(out, *b)
	}
	return out, nil
}

func uintPtr(v uint) *uint { return &v }

func TestRegisterUser(t *testing.T) {
	users := newFakeUserRepo()
	handler := NewRegisterUserHandler(users, newFakeBaseRepo(1))

	user, err := handler.Handle(RegisterUserCommand{
		Username: "cmdr_west",
		Password: "hunter2hunter2",
		FullName: "Cmdr West",
		Role:     domain.RoleBaseCommander,
		BaseID:   uintPtr(1),
	})
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.NotEqual(t, "hunter2hunter2", user.Password)
	assert.True(t, auth.CheckPassword(user.Password, "hunter2hunter2"))
}

func TestRegisterUserValidation(t *testing.T) {
	handler := NewRegisterUserHandler(newFakeUserRepo(), newFakeBaseRepo(1))

	_, err := handler.Handle(RegisterUserCommand{Password: "hunter2hunter2"})
	assert.Error(t, err)

	_, err = handler.Handle(RegisterUserCommand{Username: "short", Password: "short"})
	assert.Error(t, err)

	_, err = handler.Handle(RegisterUserCommand{
		Username: "spy",
		Password: "hunter2hunter2",
		Role:     "FIELD_MARSHAL",
	})
	assert.Error(t, err)

	// Unknown base rejected
	_, err = handler.Handle(RegisterUserCommand{
		Username: "ghost",
		Password: "hunter2hunter2",
		BaseID:   uintPtr(99),
	})
	assert.Error(t, err)
}

func TestRegisterUserDefaultsRole(t *testing.T) {
	handler := NewRegisterUserHandler(newFakeUserRepo(), newFakeBaseRepo())

	user, err := handler.Handle(RegisterUserCommand{
		Username: "clerk",
		Password: "hunter2hunter2",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleLogisticsOfficer, user.Role)
}

func TestRegisterUserDuplicateUsername(t *testing.T) {
	handler := NewRegisterUserHandler(newFakeUserRepo(), newFakeBaseRepo())

	_, err := handler.Handle(RegisterUserCommand{Username: "dup", Password: "hunter2hunter2"})
	require.NoError(t, err)
	_, err = handler.Handle(RegisterUserCommand{Username: "dup", Password: "hunter2hunter2"})
	assert.Error(t, err)
}

func TestLoginUser(t *testing.T) {
	users := newFakeUserRepo()
	register := NewRegisterUserHandler(users, newFakeBaseRepo(1))
	login := NewLoginUserHandler(users)

	_, err := register.Handle(RegisterUserCommand{
		Username: "cmdr_west",
		Password: "hunter2hunter2",
		Role:     domain.RoleBaseCommander,
		BaseID:   uintPtr(1),
	})
	require.NoError(t, err)

	resp, err := login.Handle(LoginUserCommand{Username: "cmdr_west", Password: "hunter2hunter2"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)

	// The token carries the commander's base for scope resolution
	claims, err := auth.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleBaseCommander, claims.Role)
	require.NotNil(t, claims.BaseID)
	assert.Equal(t, uint(1), *claims.BaseID)
}

func TestLoginUserInvalidCredentials(t *testing.T) {
	users := newFakeUserRepo()
	register := NewRegisterUserHandler(users, newFakeBaseRepo())
	login := NewLoginUserHandler(users)

	_, err := register.Handle(RegisterUserCommand{Username: "cmdr_west", Password: "hunter2hunter2"})
	require.NoError(t, err)

	_, err = login.Handle(LoginUserCommand{Username: "cmdr_west", Password: "wrong"})
	assert.Error(t, err)

	_, err = login.Handle(LoginUserCommand{Username: "nobody", Password: "hunter2hunter2"})
	assert.Error(t, err)
}

func TestAssignBase(t *testing.T) {
	users := newFakeUserRepo()
	bases := newFakeBaseRepo(1, 2)
	register := NewRegisterUserHandler(users, bases)
	assign := NewAssignBaseHandler(users, bases)

	user, err := register.Handle(RegisterUserCommand{Username: "cmdr_west", Password: "hunter2hunter2"})
	require.NoError(t, err)

	updated, err := assign.Handle(AssignBaseCommand{UserID: user.ID, BaseID: uintPtr(2)})
	require.NoError(t, err)
	require.NotNil(t, updated.BaseID)
	assert.Equal(t, uint(2), *updated.BaseID)

	// Clearing the assignment is allowed
	updated, err = assign.Handle(AssignBaseCommand{UserID: user.ID})
	require.NoError(t, err)
	assert.Nil(t, updated.BaseID)

	_, err = assign.Handle(AssignBaseCommand{UserID: user.ID, BaseID: uintPtr(99)})
	assert.Error(t, err)
}

func TestChangeRole(t *testing.T) {
	users := newFakeUserRepo()
	register := NewRegisterUserHandler(users, newFakeBaseRepo())
	change := NewChangeRoleHandler(users)

	user, err := register.Handle(RegisterUserCommand{Username: "clerk", Password: "hunter2hunter2"})
	require.NoError(t, err)

	updated, err := change.Handle(ChangeRoleCommand{UserID: user.ID, Role: domain.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, updated.Role)

	_, err = change.Handle(ChangeRoleCommand{UserID: user.ID, Role: "WARLORD"})
	assert.Error(t, err)
}
