package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"inkwell/services/blog/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRegister_Success(t *testing.T) {
	mockUseCase := new(MockUserUseCase)
	handler := NewUserHandler(mockUseCase, testLogger())

	router := setupTestRouter()
	router.POST("/users/register", handler.Register)

	user := &entity.User{UID: "u1", Name: "Ada", Email: "ada@example.com", PasswordHash: "secret-hash"}
	mockUseCase.On("Register", mock.Anything, "Ada", "ada@example.com", "pw").Return(user, "token-123", nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/users/register", bytes.NewBufferString(`{"name":"Ada","email":"ada@example.com","password":"pw"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "token-123", response["token"])
	assert.NotContains(t, w.Body.String(), "secret-hash")
}

func TestRegister_InvalidJSON(t *testing.T) {
	handler := NewUserHandler(new(MockUserUseCase), testLogger())

	router := setupTestRouter()
	router.POST("/users/register", handler.Register)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/users/register", bytes.NewBufferString(`{bad`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"message":"Missing required fields"}`, w.Body.String())
}

func TestLogin_InvalidCredentials(t *testing.T) {
	mockUseCase := new(MockUserUseCase)
	handler := NewUserHandler(mockUseCase, testLogger())

	router := setupTestRouter()
	router.POST("/users/login", handler.Login)

	mockUseCase.On("Login", mock.Anything, "ada@example.com", "wrong").
		Return(nil, "", entity.NewValidationError("Invalid credentials"))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/users/login", bytes.NewBufferString(`{"email":"ada@example.com","password":"wrong"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"message":"Invalid credentials"}`, w.Body.String())
}

func TestUpdateUser_Forbidden(t *testing.T) {
	mockUseCase := new(MockUserUseCase)
	handler := NewUserHandler(mockUseCase, testLogger())

	router := setupTestRouter()
	router.PUT("/users/:uid", asUser("u2", false), handler.UpdateUser)

	mockUseCase.On("UpdateUser", mock.Anything, entity.Actor{UserUID: "u2"}, "u1", mock.Anything).
		Return(nil, entity.NewForbiddenError("Not authorized to update this user"))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PUT", "/users/u1", bytes.NewBufferString(`{"bio":"hi"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequestPasswordReset_Success(t *testing.T) {
	mockUseCase := new(MockUserUseCase)
	handler := NewUserHandler(mockUseCase, testLogger())

	router := setupTestRouter()
	router.POST("/password_resets", handler.RequestPasswordReset)

	mockUseCase.On("RequestPasswordReset", mock.Anything, "ada@example.com").
		Return(&entity.PasswordReset{UserEmail: "ada@example.com", Token: "tok", CreatedAt: 10, ExpireAt: 3610}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/password_resets", bytes.NewBufferString(`{"user_email":"ada@example.com"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"token":"tok","expire_at":3610}`, w.Body.String())
}

func TestRequestPasswordReset_Throttled(t *testing.T) {
	mockUseCase := new(MockUserUseCase)
	handler := NewUserHandler(mockUseCase, testLogger())

	router := setupTestRouter()
	router.POST("/password_resets", handler.RequestPasswordReset)

	mockUseCase.On("RequestPasswordReset", mock.Anything, "ada@example.com").
		Return(nil, entity.NewTooManyRequestsError("Password reset already requested, try again later"))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/password_resets", bytes.NewBufferString(`{"user_email":"ada@example.com"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}
