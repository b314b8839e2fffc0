package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/servitec-peru/go-admin-backend/internal/users/domain"
)

type stubService struct {
	users     map[string]*domain.User
	createErr error
	updateErr error
	deleteErr error
	creates   int
}

func (s *stubService) Get(_ context.Context, userID string) (*domain.User, error) {
	return s.users[userID], nil
}

func (s *stubService) List(_ context.Context) ([]*domain.User, error) {
	users := make([]*domain.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, u)
	}
	return users, nil
}

func (s *stubService) Create(_ context.Context, _ *domain.User) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.creates++
	return nil
}

func (s *stubService) Update(_ context.Context, _ *domain.User) error { return s.updateErr }

func (s *stubService) Delete(_ context.Context, _ string) error { return s.deleteErr }

func setupRouter(service Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	Register(r.Group("/users"), NewHandler(service, zap.NewNop()))
	return r
}

func userBody() string {
	return `{
		"firstName": "Luis",
		"email": "luis@example.com",
		"document": {"type": "dni", "number": "22222222"},
		"phone": {"prefix": "51", "number": "922222222"}
	}`
}

func TestPostUser(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		service := &stubService{}
		router := setupRouter(service)

		rr := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/users", strings.NewReader(userBody()))
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, 1, service.creates)
	})

	t.Run("duplicate email answers 412 with the reason string", func(t *testing.T) {
		service := &stubService{createErr: domain.ErrEmailExists}
		router := setupRouter(service)

		rr := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/users", strings.NewReader(userBody()))
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusPreconditionFailed, rr.Code)
		assert.Equal(t, "user/email_already_exists", rr.Body.String())
		assert.Zero(t, service.creates)
	})

	t.Run("duplicate document number", func(t *testing.T) {
		router := setupRouter(&stubService{createErr: domain.ErrDNIExists})

		rr := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/users", strings.NewReader(userBody()))
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusPreconditionFailed, rr.Code)
		assert.Equal(t, "user/dni_already_exists", rr.Body.String())
	})

	t.Run("duplicate phone number", func(t *testing.T) {
		router := setupRouter(&stubService{createErr: domain.ErrPhoneNumberExists})

		rr := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/users", strings.NewReader(userBody()))
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusPreconditionFailed, rr.Code)
		assert.Equal(t, "user/phone_number_already_exists", rr.Body.String())
	})

	t.Run("malformed body", func(t *testing.T) {
		router := setupRouter(&stubService{})

		rr := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/users", strings.NewReader("{not json"))
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "user/invalid_body", rr.Body.String())
	})
}

func TestGetUser(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		router := setupRouter(&stubService{users: map[string]*domain.User{
			"user-1": {ID: "user-1", FirstName: "Ana"},
		}})

		rr := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/users/user-1", nil)
		router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)

		var user domain.User
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &user))
		assert.Equal(t, "Ana", user.FirstName)
	})

	t.Run("absent document answers an empty 200", func(t *testing.T) {
		router := setupRouter(&stubService{})

		rr := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/users/missing", nil)
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "null", rr.Body.String())
	})
}

func TestPutUser(t *testing.T) {
	t.Run("unknown user answers 404", func(t *testing.T) {
		router := setupRouter(&stubService{updateErr: domain.ErrUserNotFound})

		rr := httptest.NewRecorder()
		req := httptest.NewRequest("PUT", "/users/missing", strings.NewReader(userBody()))
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Equal(t, "user/not_found", rr.Body.String())
	})

	t.Run("conflicting email answers 412", func(t *testing.T) {
		router := setupRouter(&stubService{updateErr: domain.ErrEmailExists})

		rr := httptest.NewRecorder()
		req := httptest.NewRequest("PUT", "/users/user-1", strings.NewReader(userBody()))
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusPreconditionFailed, rr.Code)
		assert.Equal(t, "user/email_already_exists", rr.Body.String())
	})
}

func TestDeleteUser(t *testing.T) {
	router := setupRouter(&stubService{deleteErr: domain.ErrUserNotFound})

	rr := httptest.NewRecorder()
	req := httptest.NewRequest("DELETE", "/users/missing", nil)
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}
