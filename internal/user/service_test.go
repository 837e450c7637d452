package user_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/kritchanat/dormdesk/internal/user"
)

type fakeUserRepo struct {
	byEmail map[string]*user.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: make(map[string]*user.User)}
}

func (f *fakeUserRepo) CreateUser(ctx context.Context, u *user.User) error {
	if _, ok := f.byEmail[u.Email]; ok {
		return user.ErrDuplicateEmail
	}

	u.ID = uuid.New()
	f.byEmail[u.Email] = u

	return nil
}

func (f *fakeUserRepo) GetUser(ctx context.Context, id uuid.UUID) (*user.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}

	return nil, user.ErrNotFound
}

func (f *fakeUserRepo) GetUserByEmail(ctx context.Context, email string) (*user.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, user.ErrNotFound
	}

	return u, nil
}

func (f *fakeUserRepo) ListUsers(ctx context.Context) ([]*user.User, error) {
	var users []*user.User
	for _, u := range f.byEmail {
		users = append(users, u)
	}

	return users, nil
}

func (f *fakeUserRepo) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	for _, u := range f.byEmail {
		if u.ID == id {
			u.PasswordHash = passwordHash
			return nil
		}
	}

	return user.ErrNotFound
}

func (f *fakeUserRepo) UnlinkTenant(ctx context.Context, tenantID uuid.UUID) error {
	for _, u := range f.byEmail {
		if u.TenantID != nil && *u.TenantID == tenantID {
			u.TenantID = nil
		}
	}

	return nil
}

func (f *fakeUserRepo) DeleteUser(ctx context.Context, id uuid.UUID) error {
	for email, u := range f.byEmail {
		if u.ID == id {
			delete(f.byEmail, email)
			return nil
		}
	}

	return user.ErrNotFound
}

func TestCreateHashesPasswordAndKeepsLinks(t *testing.T) {
	repo := newFakeUserRepo()
	svc := user.NewService(repo)

	staffID := uuid.New()
	u, err := svc.Create(context.Background(), user.CreateParams{
		Email:    "warden@dorm.example",
		FullName: "Somsri Warden",
		Password: "s3cret",
		Role:     user.RoleStaff,
		StaffID:  &staffID,
	})
	require.NoError(t, err)

	assert.Equal(t, "warden@dorm.example", u.Email)
	assert.Equal(t, "Somsri Warden", u.FullName)
	require.NotNil(t, u.StaffID)
	assert.Equal(t, staffID, *u.StaffID)
	assert.Nil(t, u.TenantID)

	// Stored as a bcrypt hash, never plain.
	assert.NotEqual(t, "s3cret", u.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("s3cret")))
}

func TestCreateDuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc := user.NewService(repo)

	params := user.CreateParams{Email: "a@dorm.example", Password: "pw", Role: user.RoleAdmin}

	_, err := svc.Create(context.Background(), params)
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), params)
	assert.ErrorIs(t, err, user.ErrDuplicateEmail)
}

func TestCreateInvalidRole(t *testing.T) {
	svc := user.NewService(newFakeUserRepo())

	_, err := svc.Create(context.Background(), user.CreateParams{
		Email:    "a@dorm.example",
		Password: "pw",
		Role:     user.Role("manager"),
	})
	assert.Error(t, err)
}

func TestAuthenticate(t *testing.T) {
	repo := newFakeUserRepo()
	svc := user.NewService(repo)

	_, err := svc.Create(context.Background(), user.CreateParams{
		Email:    "somchai@dorm.example",
		Password: "correct-horse",
		Role:     user.RoleTenant,
	})
	require.NoError(t, err)

	u, err := svc.Authenticate(context.Background(), "somchai@dorm.example", "correct-horse")
	require.NoError(t, err)
	assert.Equal(t, "somchai@dorm.example", u.Email)

	_, err = svc.Authenticate(context.Background(), "somchai@dorm.example", "wrong")
	assert.ErrorIs(t, err, user.ErrInvalidCredentials)

	// Unknown email answers the same error as a wrong password.
	_, err = svc.Authenticate(context.Background(), "nobody@dorm.example", "correct-horse")
	assert.ErrorIs(t, err, user.ErrInvalidCredentials)
}
