package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/product-catalog/api/app/models"
	"github.com/product-catalog/api/app/routes"
	"github.com/product-catalog/api/config"
	"github.com/product-catalog/api/pkg/auth"
	"github.com/product-catalog/api/pkg/router"
)

// setupAPI boots the full HTTP stack against an in-memory sqlite database
// seeded with one category, plus a fresh in-memory token blacklist. The
// database handle is returned so tests can arrange rows directly.
func setupAPI(t *testing.T) (*httptest.Server, *gorm.DB) {
	t.Helper()

	auth.UseBlacklist(auth.NewMemoryBlacklist())
	t.Cleanup(func() { auth.UseBlacklist(auth.RedisBlacklist{}) })

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Category{}, &models.Product{}))
	require.NoError(t, db.Create(&models.Category{Name: "Eletrônicos"}).Error)

	r := router.New()
	routes.RegisterAPI(r, db)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, db
}

// doJSON performs a request and decodes the JSON body into a generic map.
func doJSON(t *testing.T, method, url, token string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&out))
	return res.StatusCode, out
}

func registerBody(email string) map[string]interface{} {
	return map[string]interface{}{
		"name":                  "Maria Silva",
		"email":                 email,
		"password":              "secret123",
		"password_confirmation": "secret123",
	}
}

// registerUser creates an account and returns its access token.
func registerUser(t *testing.T, srv *httptest.Server, email string) string {
	t.Helper()

	status, body := doJSON(t, http.MethodPost, srv.URL+"/api/auth/register", "", registerBody(email))
	require.Equal(t, http.StatusCreated, status)

	token, _ := body["access_token"].(string)
	require.NotEmpty(t, token)
	return token
}

func fieldErrors(t *testing.T, body map[string]interface{}, field string) []interface{} {
	t.Helper()
	data, ok := body["data"].(map[string]interface{})
	require.True(t, ok, "expected a validation errors bag, got %v", body)
	msgs, _ := data[field].([]interface{})
	return msgs
}

func TestRegisterIssuesToken(t *testing.T) {
	srv, _ := setupAPI(t)

	status, body := doJSON(t, http.MethodPost, srv.URL+"/api/auth/register", "", registerBody("maria@example.com"))

	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Usuário registrado com sucesso!", body["message"])
	assert.Equal(t, "bearer", body["token_type"])
	assert.NotEmpty(t, body["access_token"])
	assert.NotZero(t, body["expires_in"])

	user, ok := body["user"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "maria@example.com", user["email"])
	assert.NotContains(t, user, "password", "password hash must never be serialized")
}

func TestRegisterValidationErrors(t *testing.T) {
	srv, _ := setupAPI(t)

	status, body := doJSON(t, http.MethodPost, srv.URL+"/api/auth/register", "", map[string]interface{}{})

	require.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Validation errors", body["message"])
	assert.NotEmpty(t, fieldErrors(t, body, "name"))
	assert.NotEmpty(t, fieldErrors(t, body, "email"))
	assert.NotEmpty(t, fieldErrors(t, body, "password"))
}

func TestRegisterPasswordConfirmationMismatch(t *testing.T) {
	srv, _ := setupAPI(t)

	payload := registerBody("maria@example.com")
	payload["password_confirmation"] = "different"

	status, body := doJSON(t, http.MethodPost, srv.URL+"/api/auth/register", "", payload)

	require.Equal(t, http.StatusBadRequest, status)
	msgs := fieldErrors(t, body, "password")
	require.NotEmpty(t, msgs)
	assert.Equal(t, "The password confirmation does not match.", msgs[0])
}

func TestRegisterDuplicateEmail(t *testing.T) {
	srv, _ := setupAPI(t)
	registerUser(t, srv, "maria@example.com")

	status, body := doJSON(t, http.MethodPost, srv.URL+"/api/auth/register", "", registerBody("maria@example.com"))

	require.Equal(t, http.StatusBadRequest, status)
	msgs := fieldErrors(t, body, "email")
	require.NotEmpty(t, msgs)
	assert.Equal(t, "The email has already been taken.", msgs[0])
}

func TestLoginFlow(t *testing.T) {
	srv, _ := setupAPI(t)
	registerUser(t, srv, "maria@example.com")

	status, body := doJSON(t, http.MethodPost, srv.URL+"/api/auth/login", "", map[string]interface{}{
		"email": "maria@example.com", "password": "wrong-password",
	})
	require.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Credenciais inválidas.", body["message"])

	status, body = doJSON(t, http.MethodPost, srv.URL+"/api/auth/login", "", map[string]interface{}{
		"email": "maria@example.com", "password": "secret123",
	})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "bearer", body["token_type"])
	assert.NotEmpty(t, body["access_token"])
}

func TestLoginValidationIsUnprocessable(t *testing.T) {
	srv, _ := setupAPI(t)

	status, body := doJSON(t, http.MethodPost, srv.URL+"/api/auth/login", "", map[string]interface{}{})

	require.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "Validation errors", body["message"])
}

func TestMeReturnsProfile(t *testing.T) {
	srv, _ := setupAPI(t)
	token := registerUser(t, srv, "maria@example.com")

	status, body := doJSON(t, http.MethodGet, srv.URL+"/api/auth/me", token, nil)

	require.Equal(t, http.StatusOK, status)
	data, ok := body["data"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "maria@example.com", data["email"])
}

func TestProductsRequireAuth(t *testing.T) {
	srv, _ := setupAPI(t)

	status, body := doJSON(t, http.MethodGet, srv.URL+"/api/products", "", nil)

	require.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Usuário não autenticado ou token inválido.", body["message"])
}

func TestProductLifecycle(t *testing.T) {
	srv, _ := setupAPI(t)
	token := registerUser(t, srv, "maria@example.com")

	status, body := doJSON(t, http.MethodPost, srv.URL+"/api/products", token, map[string]interface{}{
		"name":        "Notebook",
		"description": "Ultrabook 14 polegadas",
		"price":       2499.90,
		"category_id": 1,
	})
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "Produto criado com sucesso.", body["message"])

	created, ok := body["data"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Notebook", created["name"])
	category, ok := created["category"].(map[string]interface{})
	require.True(t, ok, "product responses embed the category")
	assert.Equal(t, "Eletrônicos", category["name"])

	id := created["id"].(float64)

	status, body = doJSON(t, http.MethodGet, srv.URL+"/api/products", token, nil)
	require.Equal(t, http.StatusOK, status)
	list, ok := body["data"].([]interface{})
	require.True(t, ok)
	assert.Len(t, list, 1)

	status, body = doJSON(t, http.MethodGet, fmt.Sprintf("%s/api/products/%.0f", srv.URL, id), token, nil)
	require.Equal(t, http.StatusOK, status)
	shown := body["data"].(map[string]interface{})
	assert.Equal(t, "Notebook", shown["name"])

	// case-insensitive name lookup
	status, body = doJSON(t, http.MethodGet, srv.URL+"/api/products/search?name=notebook", token, nil)
	require.Equal(t, http.StatusOK, status)
	found := body["data"].(map[string]interface{})
	assert.Equal(t, created["id"], found["id"])

	status, body = doJSON(t, http.MethodPatch, fmt.Sprintf("%s/api/products/%.0f", srv.URL, id), token, map[string]interface{}{
		"price": 1999.00,
	})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Produto atualizado com sucesso.", body["message"])
	updated := body["data"].(map[string]interface{})
	assert.Equal(t, 1999.00, updated["price"])
	assert.Equal(t, "Notebook", updated["name"], "absent fields keep their values")

	status, body = doJSON(t, http.MethodDelete, fmt.Sprintf("%s/api/products/%.0f", srv.URL, id), token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Produto excluído com sucesso.", body["message"])

	status, body = doJSON(t, http.MethodGet, fmt.Sprintf("%s/api/products/%.0f", srv.URL, id), token, nil)
	require.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Produto não encontrado.", body["message"])
}

func TestProductValidation(t *testing.T) {
	srv, _ := setupAPI(t)
	token := registerUser(t, srv, "maria@example.com")

	// zero price reads as "not supplied" on create
	status, body := doJSON(t, http.MethodPost, srv.URL+"/api/products", token, map[string]interface{}{
		"name": "Notebook", "price": 0, "category_id": 1,
	})
	require.Equal(t, http.StatusUnprocessableEntity, status)
	msgs := fieldErrors(t, body, "price")
	require.NotEmpty(t, msgs)
	assert.Equal(t, "O preço do produto é obrigatório.", msgs[0])

	status, body = doJSON(t, http.MethodPost, srv.URL+"/api/products", token, map[string]interface{}{
		"name": "Notebook", "price": -5.00, "category_id": 1,
	})
	require.Equal(t, http.StatusUnprocessableEntity, status)
	msgs = fieldErrors(t, body, "price")
	require.NotEmpty(t, msgs)
	assert.Equal(t, "O preço deve ser maior que zero.", msgs[0])

	status, body = doJSON(t, http.MethodPost, srv.URL+"/api/products", token, map[string]interface{}{
		"name": "Notebook", "price": 10.00, "category_id": 999,
	})
	require.Equal(t, http.StatusUnprocessableEntity, status)
	msgs = fieldErrors(t, body, "category_id")
	require.NotEmpty(t, msgs)
	assert.Equal(t, "A categoria selecionada não existe.", msgs[0])
}

func TestProductSearchRequiresName(t *testing.T) {
	srv, _ := setupAPI(t)
	token := registerUser(t, srv, "maria@example.com")

	status, body := doJSON(t, http.MethodGet, srv.URL+"/api/products/search", token, nil)
	require.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Parâmetro 'name' é obrigatório.", body["message"])

	status, body = doJSON(t, http.MethodGet, srv.URL+"/api/products/search?name=inexistente", token, nil)
	require.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Produto não encontrado.", body["message"])
}

func TestProductSearchTieBreakReturnsLowestID(t *testing.T) {
	srv, _ := setupAPI(t)
	token := registerUser(t, srv, "maria@example.com")

	status, body := doJSON(t, http.MethodPost, srv.URL+"/api/products", token, map[string]interface{}{
		"name": "Notebook", "price": 100.00, "category_id": 1,
	})
	require.Equal(t, http.StatusCreated, status)
	firstID := body["data"].(map[string]interface{})["id"]

	status, _ = doJSON(t, http.MethodPost, srv.URL+"/api/products", token, map[string]interface{}{
		"name": "NOTEBOOK", "price": 200.00, "category_id": 1,
	})
	require.Equal(t, http.StatusCreated, status)

	// both rows match case-insensitively; the lowest id wins
	status, body = doJSON(t, http.MethodGet, srv.URL+"/api/products/search?name=notebook", token, nil)
	require.Equal(t, http.StatusOK, status)
	found := body["data"].(map[string]interface{})
	assert.Equal(t, firstID, found["id"])
	assert.Equal(t, 100.00, found["price"])
}

func TestProductUpdateEdgeCases(t *testing.T) {
	srv, _ := setupAPI(t)
	token := registerUser(t, srv, "maria@example.com")

	status, body := doJSON(t, http.MethodPost, srv.URL+"/api/products", token, map[string]interface{}{
		"name": "Notebook", "price": 100.00, "category_id": 1,
	})
	require.Equal(t, http.StatusCreated, status)
	id := body["data"].(map[string]interface{})["id"].(float64)

	status, body = doJSON(t, http.MethodPatch, fmt.Sprintf("%s/api/products/%.0f", srv.URL, id), token, map[string]interface{}{})
	require.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Nenhum dado fornecido para atualização.", body["message"])

	// an explicit zero price is rejected by the value rules, not required
	status, body = doJSON(t, http.MethodPatch, fmt.Sprintf("%s/api/products/%.0f", srv.URL, id), token, map[string]interface{}{
		"price": 0,
	})
	require.Equal(t, http.StatusUnprocessableEntity, status)
	msgs := fieldErrors(t, body, "price")
	require.NotEmpty(t, msgs)
	assert.Equal(t, "O preço deve ser maior que zero.", msgs[0])

	status, body = doJSON(t, http.MethodPut, srv.URL+"/api/products/999", token, map[string]interface{}{
		"name": "Outro",
	})
	require.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Produto não encontrado para atualização.", body["message"])

	status, body = doJSON(t, http.MethodDelete, srv.URL+"/api/products/999", token, nil)
	require.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Produto não encontrado ou não pôde ser excluído.", body["message"])
}

func TestLogoutRevokesToken(t *testing.T) {
	srv, _ := setupAPI(t)
	token := registerUser(t, srv, "maria@example.com")

	status, body := doJSON(t, http.MethodPost, srv.URL+"/api/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Logout realizado com sucesso.", body["message"])

	status, body = doJSON(t, http.MethodGet, srv.URL+"/api/auth/me", token, nil)
	require.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Usuário não autenticado ou token inválido.", body["message"])
}

func TestExpiredTokenRejected(t *testing.T) {
	srv, _ := setupAPI(t)

	claims := auth.Claims{
		UserID: 1,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   "1",
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(config.JWTSecret()))
	require.NoError(t, err)

	status, body := doJSON(t, http.MethodGet, srv.URL+"/api/auth/me", expired, nil)
	require.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Usuário não autenticado ou token inválido.", body["message"])

	status, body = doJSON(t, http.MethodPost, srv.URL+"/api/auth/refresh", expired, nil)
	require.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Usuário não autenticado ou token inválido.", body["message"])
}

func TestMeUnauthorizedWhenAccountGone(t *testing.T) {
	srv, db := setupAPI(t)
	token := registerUser(t, srv, "maria@example.com")

	require.NoError(t, db.Where("email = ?", "maria@example.com").Delete(&models.User{}).Error)

	status, body := doJSON(t, http.MethodGet, srv.URL+"/api/auth/me", token, nil)
	require.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Usuário não autenticado ou token inválido.", body["message"])
}

func TestRefreshRotatesToken(t *testing.T) {
	srv, _ := setupAPI(t)
	old := registerUser(t, srv, "maria@example.com")

	status, body := doJSON(t, http.MethodPost, srv.URL+"/api/auth/refresh", old, nil)
	require.Equal(t, http.StatusOK, status)

	fresh, _ := body["access_token"].(string)
	require.NotEmpty(t, fresh)
	assert.NotEqual(t, old, fresh)

	status, body = doJSON(t, http.MethodGet, srv.URL+"/api/auth/me", old, nil)
	require.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Usuário não autenticado ou token inválido.", body["message"])

	status, body = doJSON(t, http.MethodGet, srv.URL+"/api/auth/me", fresh, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "maria@example.com", body["data"].(map[string]interface{})["email"])
}
