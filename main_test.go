package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"

	"glowshop/internal/models"
	"glowshop/internal/repositories"
)

func TestLoadConfigDefaults(t *testing.T) {
	viper.Reset()
	loadConfig()

	assert.Equal(t, "5000", viper.GetString("PORT"))
	assert.NotEmpty(t, viper.GetString("JWT_SECRET"))
	assert.Equal(t, "./uploads", viper.GetString("UPLOAD_DIR"))
	assert.Empty(t, viper.GetString("DATABASE_DSN"))
	assert.Empty(t, viper.GetString("RABBITMQ_URL"))
}

func TestSeedProducts(t *testing.T) {
	repo := repositories.NewMemoryProductRepository()
	seedProducts(repo)

	products, err := repo.GetAll()
	assert.NoError(t, err)
	assert.Len(t, products, 15)
	assert.Equal(t, "1", products[0].ID)
	assert.Equal(t, "Algae Peel-Off Mask", products[0].Name)

	// Seeding is idempotent: a non-empty repository is left alone.
	seedProducts(repo)
	products, err = repo.GetAll()
	assert.NoError(t, err)
	assert.Len(t, products, 15)
}

func TestNewApp(t *testing.T) {
	viper.Reset()
	loadConfig()
	viper.Set("UPLOAD_DIR", t.TempDir())

	app, cleanup, err := newApp()
	assert.NoError(t, err)
	defer cleanup()

	// Health endpoint
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// The seeded catalog is served.
	req = httptest.NewRequest(http.MethodGet, "/api/products", nil)
	resp, err = app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var products []models.Product
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&products))
	resp.Body.Close()
	assert.Len(t, products, 15)

	// The seeded credential can log in.
	body, _ := json.Marshal(map[string]string{"email": "leyla@gmail.com", "password": "123456"})
	loginReq := httptest.NewRequest(http.MethodPost, "/api/login", bytes.NewReader(body))
	loginReq.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(loginReq, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var loginResp map[string]string
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&loginResp))
	resp.Body.Close()
	assert.NotEmpty(t, loginResp["token"])
}
