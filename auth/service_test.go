package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/user/auratask-go/apperror"
)

// fakeUserRepo is an in-memory credential store keyed by email.
type fakeUserRepo struct {
	users map[string]*User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*User{}}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *User) (*User, error) {
	if _, exists := f.users[user.Email]; exists {
		return nil, apperror.NewConflictError("email already taken", nil)
	}
	user.CreatedAt = time.Now()
	f.users[user.Email] = user
	return user, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*User, error) {
	user, ok := f.users[email]
	if !ok {
		return nil, apperror.NewNotFoundError("user not found", nil)
	}
	return user, nil
}

func newTestService(repo UserRepository) *Service {
	return NewService(repo, newTokenService("test-secret", time.Hour))
}

func TestRegister_Success(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo)

	phone := "+15551234567"
	user, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "User@Example.com",
		Password: "strongpassword",
		Phone:    &phone,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "user@example.com", user.Email, "email must be lowercased")
	require.NotNil(t, user.Phone)
	assert.Equal(t, phone, *user.Phone)

	// Plaintext must never be stored; the hash must verify against it.
	assert.NotEqual(t, "strongpassword", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("strongpassword")))
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo)

	first, err := svc.Register(context.Background(), RegisterRequest{Email: "a@b.com", Password: "secret1"})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), RegisterRequest{Email: "a@b.com", Password: "another1"})
	require.Error(t, err)
	assert.True(t, apperror.IsConflictError(err))

	// First user's record is unaffected.
	kept, err := repo.GetByEmail(context.Background(), "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, first.ID, kept.ID)
	assert.Equal(t, first.PasswordHash, kept.PasswordHash)
}

func TestRegister_Validation(t *testing.T) {
	svc := newTestService(newFakeUserRepo())

	cases := []struct {
		name string
		req  RegisterRequest
	}{
		{"empty email", RegisterRequest{Email: "", Password: "secret1"}},
		{"email without at sign", RegisterRequest{Email: "nobody", Password: "secret1"}},
		{"short password", RegisterRequest{Email: "a@b.com", Password: "short"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tc.req)
			require.Error(t, err)
			assert.True(t, apperror.IsValidationError(err))
		})
	}
}

func TestLogin_Success(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo)

	user, err := svc.Register(context.Background(), RegisterRequest{Email: "a@b.com", Password: "secret1"})
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), LoginRequest{Email: "a@b.com", Password: "secret1"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)

	// The issued token must verify back to the registered user.
	gotID, err := newTokenService("test-secret", time.Hour).Verify(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, gotID)
}

func TestLogin_UniformFailure(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo)

	_, err := svc.Register(context.Background(), RegisterRequest{Email: "a@b.com", Password: "secret1"})
	require.NoError(t, err)

	// Wrong password and unknown email must be indistinguishable.
	_, wrongPass := svc.Login(context.Background(), LoginRequest{Email: "a@b.com", Password: "nope123"})
	_, unknown := svc.Login(context.Background(), LoginRequest{Email: "ghost@b.com", Password: "secret1"})

	require.Error(t, wrongPass)
	require.Error(t, unknown)

	wrongErr, ok := apperror.FromError(wrongPass)
	require.True(t, ok)
	unknownErr, ok := apperror.FromError(unknown)
	require.True(t, ok)

	assert.Equal(t, wrongErr.Message, unknownErr.Message)
	assert.Equal(t, wrongErr.StatusCode(), unknownErr.StatusCode())
}
