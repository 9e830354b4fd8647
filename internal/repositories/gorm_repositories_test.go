package repositories_test

import (
	"fmt"
	"testing"

	"glowshop/internal/models"
	"glowshop/internal/repositories"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var dbCounter int

// openTestDB opens a fresh in-memory SQLite database per test.
func openTestDB(t *testing.T) *gorm.DB {
	dbCounter++
	dsn := fmt.Sprintf("file:gormtest%d?mode=memory&cache=shared", dbCounter)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	assert.NoError(t, err)
	assert.NoError(t, db.AutoMigrate(&models.Product{}, &models.User{}))
	return db
}

func TestGORMProductRepository_CRUD(t *testing.T) {
	repo := repositories.NewGORMProductRepository(openTestDB(t))

	product := models.Product{
		Name:      "Active Toning Essence",
		Category:  "face-care",
		Price:     59.0,
		MlOptions: []string{"12 ml", "24 ml", "36 ml"},
		Stock:     5,
	}
	assert.NoError(t, repo.Create(&product))
	assert.NotEmpty(t, product.ID)

	got, err := repo.GetByID(product.ID)
	assert.NoError(t, err)
	assert.Equal(t, product.Name, got.Name)
	assert.Equal(t, []string{"12 ml", "24 ml", "36 ml"}, got.MlOptions)

	_, err = repo.GetByID("does-not-exist")
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	// Full replace including zero values.
	got.Stock = 0
	got.Category = "body-care"
	assert.NoError(t, repo.Update(got))
	updated, err := repo.GetByID(product.ID)
	assert.NoError(t, err)
	assert.Equal(t, 0, updated.Stock)
	assert.Equal(t, "body-care", updated.Category)

	err = repo.Update(&models.Product{ID: "missing", Name: "X"})
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	// The failed update must not upsert a phantom record.
	_, err = repo.GetByID("missing")
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	assert.NoError(t, repo.Delete(product.ID))
	assert.ErrorIs(t, repo.Delete(product.ID), repositories.ErrNotFound)
}

func TestGORMProductRepository_GetByCategoryIsCaseInsensitive(t *testing.T) {
	repo := repositories.NewGORMProductRepository(openTestDB(t))

	for _, p := range []models.Product{
		{Name: "Mask", Category: "face-care"},
		{Name: "Serum", Category: "FACE-CARE"},
		{Name: "Oil", Category: "body-care"},
	} {
		product := p
		assert.NoError(t, repo.Create(&product))
	}

	faceCare, err := repo.GetByCategory("Face-Care")
	assert.NoError(t, err)
	assert.Len(t, faceCare, 2)

	none, err := repo.GetByCategory("pet-care")
	assert.NoError(t, err)
	assert.Empty(t, none)
}

func TestGORMUserRepository(t *testing.T) {
	repo := repositories.NewGORMUserRepository(openTestDB(t))

	user := models.User{Email: "leyla@gmail.com", Password: "hashed-password"}
	assert.NoError(t, repo.Create(&user))
	assert.NotEmpty(t, user.ID)

	byEmail, err := repo.GetByEmail("leyla@gmail.com")
	assert.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	byID, err := repo.GetByID(user.ID)
	assert.NoError(t, err)
	assert.Equal(t, user.Email, byID.Email)

	_, err = repo.GetByEmail("nobody@gmail.com")
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	// Email carries a unique index.
	dup := models.User{Email: "leyla@gmail.com", Password: "other"}
	assert.Error(t, repo.Create(&dup))
}
