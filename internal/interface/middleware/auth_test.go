package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/property-marketplace/internal/domain/entity"
	"github.com/oksasatya/property-marketplace/internal/domain/errs"
	"github.com/oksasatya/property-marketplace/pkg/helpers"
)

type fakeUserDirectory struct {
	byEmail map[string]*entity.User
}

func (f *fakeUserDirectory) Create(_ context.Context, u *entity.User) error {
	f.byEmail[u.Email] = u
	return nil
}

func (f *fakeUserDirectory) GetByID(_ context.Context, _ uuid.UUID) (*entity.User, error) {
	return nil, errs.NotFound("user not found")
}

func (f *fakeUserDirectory) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, errs.NotFound("user not found")
	}
	cp := *u
	return &cp, nil
}

func testSetup(t *testing.T) (*IdentityResolver, *fakeUserDirectory, *helpers.JWTManager, entity.User) {
	t.Helper()
	jwt := helpers.NewJWTManager("access", "refresh", time.Hour, time.Hour)
	u := entity.User{
		ID:       uuid.New(),
		Email:    "ana@example.com",
		LastName: "Gomez",
		Role:     entity.RoleUser,
	}
	dir := &fakeUserDirectory{byEmail: map[string]*entity.User{u.Email: &u}}
	return NewIdentityResolver(dir, jwt), dir, jwt, u
}

func bearerFor(t *testing.T, jwt *helpers.JWTManager, u entity.User) string {
	t.Helper()
	token, _, err := jwt.GenerateAccessToken(u.Claims())
	require.NoError(t, err)
	return "Bearer " + token
}

func TestResolveNoHeader(t *testing.T) {
	resolver, _, _, _ := testSetup(t)

	p, err := resolver.Resolve(context.Background(), "")
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestResolveNonBearerScheme(t *testing.T) {
	resolver, _, _, _ := testSetup(t)

	p, err := resolver.Resolve(context.Background(), "Basic dXNlcjpwYXNz")
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestResolveInvalidToken(t *testing.T) {
	resolver, _, _, _ := testSetup(t)

	p, err := resolver.Resolve(context.Background(), "Bearer garbage")
	require.Error(t, err)
	assert.True(t, errs.IsKind(err, errs.KindTokenInvalid))
	assert.Nil(t, p)
}

func TestResolveValidToken(t *testing.T) {
	resolver, _, jwt, u := testSetup(t)

	p, err := resolver.Resolve(context.Background(), bearerFor(t, jwt, u))
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, u.ID, p.ID)
	assert.Equal(t, u.Email, p.Email)
	assert.Equal(t, entity.RoleUser, p.Role)
}

func TestResolveDirectoryMissIsSilent(t *testing.T) {
	resolver, dir, jwt, u := testSetup(t)
	header := bearerFor(t, jwt, u)
	delete(dir.byEmail, u.Email)

	p, err := resolver.Resolve(context.Background(), header)
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestResolveDirectoryRoleWins(t *testing.T) {
	resolver, dir, jwt, u := testSetup(t)
	header := bearerFor(t, jwt, u)

	// role changed in the directory after the token was minted
	dir.byEmail[u.Email].Role = entity.RoleAdmin

	p, err := resolver.Resolve(context.Background(), header)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, entity.RoleAdmin, p.Role)
}

func newAuthRouter(resolver *IdentityResolver) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Auth(resolver))
	r.GET("/open", func(c *gin.Context) {
		if p, ok := Principal(c); ok {
			c.String(http.StatusOK, p.Email)
			return
		}
		c.String(http.StatusOK, "anonymous")
	})
	r.GET("/private", RequireAuth(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	r.GET("/admin", RequireRole(entity.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	resolver, dir, jwt, u := testSetup(t)
	r := newAuthRouter(resolver)

	get := func(path, header string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	t.Run("anonymous passes open routes", func(t *testing.T) {
		w := get("/open", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "anonymous", w.Body.String())
	})

	t.Run("invalid token aborts with 401", func(t *testing.T) {
		w := get("/open", "Bearer garbage")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("valid token installs principal", func(t *testing.T) {
		w := get("/open", bearerFor(t, jwt, u))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, u.Email, w.Body.String())
	})

	t.Run("anonymous rejected on private routes", func(t *testing.T) {
		w := get("/private", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("authenticated allowed on private routes", func(t *testing.T) {
		w := get("/private", bearerFor(t, jwt, u))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("user role rejected on admin routes", func(t *testing.T) {
		w := get("/admin", bearerFor(t, jwt, u))
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("admin role allowed on admin routes", func(t *testing.T) {
		dir.byEmail[u.Email].Role = entity.RoleAdmin
		defer func() { dir.byEmail[u.Email].Role = entity.RoleUser }()
		w := get("/admin", bearerFor(t, jwt, u))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("directory miss stays unauthenticated", func(t *testing.T) {
		header := bearerFor(t, jwt, u)
		saved := dir.byEmail[u.Email]
		delete(dir.byEmail, u.Email)
		defer func() { dir.byEmail[u.Email] = saved }()

		w := get("/open", header)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "anonymous", w.Body.String())
	})
}
