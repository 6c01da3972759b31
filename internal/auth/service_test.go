package auth

import (
	"context"
	"testing"

	"github.com/angelmondragon/storefront/pkg/catalogapi"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
	"github.com/angelmondragon/storefront/pkg/persistence"
	"github.com/angelmondragon/storefront/pkg/types"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRemote struct {
	token      string
	user       *catalogapi.RegisteredUser
	err        error
	loginCalls int
}

func (s *stubRemote) Login(context.Context, string, string) (string, error) {
	s.loginCalls++
	return s.token, s.err
}

func (s *stubRemote) Register(_ context.Context, req types.RegisterRequest) (*catalogapi.RegisteredUser, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.user != nil {
		return s.user, nil
	}
	return &catalogapi.RegisteredUser{ID: 11, Username: req.Username, Email: req.Email}, nil
}

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("remote-secret"))
	require.NoError(t, err)
	return token
}

func newTestService(t *testing.T, remote Remote, kv persistence.KV) Service {
	t.Helper()
	svc, err := NewService(context.Background(), remote, persistence.NewAdapter(kv, nil, nil), nil)
	require.NoError(t, err)
	return svc
}

func TestNewServiceRequiresDeps(t *testing.T) {
	_, err := NewService(context.Background(), nil, persistence.NewAdapter(persistence.NewMemoryKV(), nil, nil), nil)
	assert.Error(t, err)
	_, err = NewService(context.Background(), &stubRemote{}, nil, nil)
	assert.Error(t, err)
}

func TestLoginBuildsAndPersistsSession(t *testing.T) {
	kv := persistence.NewMemoryKV()
	remote := &stubRemote{token: signedToken(t, jwt.MapClaims{"sub": 2, "user": "johnd", "iat": 1700000000})}
	svc := newTestService(t, remote, kv)
	assert.False(t, svc.IsAuthenticated())

	session, err := svc.Login(context.Background(), types.LoginRequest{Username: "johnd", Password: "m38rmF$"})
	require.NoError(t, err)
	assert.Equal(t, "johnd", session.Username)
	assert.Equal(t, remote.token, session.Token)
	require.NotNil(t, session.Name)
	assert.Equal(t, "johnd", session.Name.Firstname)
	require.NotNil(t, session.ID)
	assert.Equal(t, 2, *session.ID)
	assert.True(t, svc.IsAuthenticated())

	restored := newTestService(t, remote, kv)
	assert.Equal(t, session, restored.Current())
}

func TestLoginWithOpaqueToken(t *testing.T) {
	svc := newTestService(t, &stubRemote{token: "opaque-token"}, persistence.NewMemoryKV())

	session, err := svc.Login(context.Background(), types.LoginRequest{Username: "kate", Password: "pw"})
	require.NoError(t, err)
	assert.Nil(t, session.ID)
	assert.Equal(t, "opaque-token", session.Token)
}

func TestLoginValidationSkipsRemote(t *testing.T) {
	remote := &stubRemote{token: "x"}
	svc := newTestService(t, remote, persistence.NewMemoryKV())

	_, err := svc.Login(context.Background(), types.LoginRequest{Username: "", Password: ""})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
	details := typed.Details().(map[string]string)
	assert.Equal(t, "is required", details["username"])
	assert.Equal(t, "is required", details["password"])
	assert.Zero(t, remote.loginCalls)
}

func TestLoginRejectedKeepsSignedOut(t *testing.T) {
	remote := &stubRemote{err: pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid username or password")}
	svc := newTestService(t, remote, persistence.NewMemoryKV())

	_, err := svc.Login(context.Background(), types.LoginRequest{Username: "a", Password: "b"})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeUnauthorized))
	assert.False(t, svc.IsAuthenticated())
	assert.Nil(t, svc.Current())
}

func TestRegisterBuildsSessionFromResponse(t *testing.T) {
	svc := newTestService(t, &stubRemote{}, persistence.NewMemoryKV())

	session, err := svc.Register(context.Background(), types.RegisterRequest{
		Username: "jane",
		Email:    "jane@example.com",
		Password: "secret1",
	})
	require.NoError(t, err)
	require.NotNil(t, session.ID)
	assert.Equal(t, 11, *session.ID)
	assert.Equal(t, "jane@example.com", session.Email)
	assert.Equal(t, "jane", session.Name.Firstname)
	assert.Empty(t, session.Token)
	assert.Equal(t, "jane", svc.Current().DisplayName())
}

func TestRegisterPrefersRemoteName(t *testing.T) {
	remote := &stubRemote{user: &catalogapi.RegisteredUser{
		ID:       4,
		Username: "jd",
		Email:    "jd@example.com",
		Name:     &types.Name{Firstname: "John", Lastname: "Doe"},
	}}
	svc := newTestService(t, remote, persistence.NewMemoryKV())

	session, err := svc.Register(context.Background(), types.RegisterRequest{Username: "jd", Email: "jd@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "John Doe", session.DisplayName())
}

func TestRegisterValidation(t *testing.T) {
	svc := newTestService(t, &stubRemote{}, persistence.NewMemoryKV())

	_, err := svc.Register(context.Background(), types.RegisterRequest{Username: "jo", Email: "nope", Password: "123"})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	details := typed.Details().(map[string]string)
	assert.Equal(t, "must be at least 3 characters", details["username"])
	assert.Equal(t, "must be a valid email", details["email"])
	assert.Equal(t, "must be at least 6 characters", details["password"])
}

func TestLogoutClearsPersistedSession(t *testing.T) {
	ctx := context.Background()
	kv := persistence.NewMemoryKV()
	svc := newTestService(t, &stubRemote{token: "t"}, kv)
	_, err := svc.Login(ctx, types.LoginRequest{Username: "a", Password: "b"})
	require.NoError(t, err)

	svc.Logout(ctx)
	assert.False(t, svc.IsAuthenticated())
	_, found, err := kv.Get(ctx, persistence.KeyAuth)
	require.NoError(t, err)
	assert.False(t, found)

	restored := newTestService(t, &stubRemote{}, kv)
	assert.False(t, restored.IsAuthenticated())
}

func TestCurrentReturnsCopy(t *testing.T) {
	svc := newTestService(t, &stubRemote{token: "t"}, persistence.NewMemoryKV())
	_, err := svc.Login(context.Background(), types.LoginRequest{Username: "a", Password: "b"})
	require.NoError(t, err)

	current := svc.Current()
	current.Name.Firstname = "changed"
	assert.Equal(t, "a", svc.Current().Name.Firstname)
}

func TestRehydrateIgnoresCorruptSession(t *testing.T) {
	ctx := context.Background()
	kv := persistence.NewMemoryKV()
	require.NoError(t, kv.Set(ctx, persistence.KeyAuth, []byte(`{"username":`)))

	svc := newTestService(t, &stubRemote{}, kv)
	assert.False(t, svc.IsAuthenticated())
}
