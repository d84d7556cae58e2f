package repositories

import (
	"context"
	"testing"
	"time"

	pgx "github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"catalogstore/internal/models"
)

type ProductRepoTestSuite struct {
	suite.Suite
	mock    pgxmock.PgxPoolIface
	repo    ProductRepository
	context context.Context
}

func (suite *ProductRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.repo = NewProductRepository(mock)
	suite.context = context.Background()
}

func (suite *ProductRepoTestSuite) TearDownTest() {
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
	suite.mock.Close()
}

func TestProductRepoTestSuite(t *testing.T) {
	suite.Run(t, new(ProductRepoTestSuite))
}

func stringPtr(s string) *string {
	return &s
}

func (suite *ProductRepoTestSuite) TestCreate_AssignsID() {
	product := &models.Product{
		Name:          "Tee",
		Brand:         "Acme",
		Category:      "Shirts",
		Price:         19.99,
		Description:   stringPtr("a plain tee"),
		ImageFileName: "1700000000000_tee.jpg",
		CreatedAt:     time.Now(),
	}

	suite.mock.ExpectQuery(`
		INSERT INTO products \(name, brand, category, price, description, image_file_name, created_at\)
		VALUES \(\$1, \$2, \$3, \$4, \$5, \$6, \$7\)
		RETURNING id
	`).WithArgs(product.Name, product.Brand, product.Category, product.Price, product.Description, product.ImageFileName, product.CreatedAt).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(1)))

	err := suite.repo.Create(suite.context, product)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(1), product.ID)
}

func (suite *ProductRepoTestSuite) TestGetByID_Success() {
	createdAt := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	rows := pgxmock.NewRows([]string{"id", "name", "brand", "category", "price", "description", "image_file_name", "created_at"}).
		AddRow(int64(1), "Tee", "Acme", "Shirts", 19.99, stringPtr("a plain tee"), "1700000000000_tee.jpg", createdAt)

	suite.mock.ExpectQuery(`
		SELECT id, name, brand, category, price, description, image_file_name, created_at
		FROM products
		WHERE id = \$1
	`).WithArgs(int64(1)).WillReturnRows(rows)

	product, err := suite.repo.GetByID(suite.context, 1)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(1), product.ID)
	assert.Equal(suite.T(), "Tee", product.Name)
	assert.Equal(suite.T(), "1700000000000_tee.jpg", product.ImageFileName)
	assert.Equal(suite.T(), createdAt, product.CreatedAt)
}

func (suite *ProductRepoTestSuite) TestGetByID_NoRows() {
	suite.mock.ExpectQuery(`
		SELECT id, name, brand, category, price, description, image_file_name, created_at
		FROM products
		WHERE id = \$1
	`).WithArgs(int64(404)).WillReturnError(pgx.ErrNoRows)

	product, err := suite.repo.GetByID(suite.context, 404)
	assert.Nil(suite.T(), product)
	assert.ErrorIs(suite.T(), err, pgx.ErrNoRows)
}

func (suite *ProductRepoTestSuite) TestUpdate_OverwritesMutableColumns() {
	product := &models.Product{
		ID:            1,
		Name:          "Tee v2",
		Brand:         "Acme",
		Category:      "Shirts",
		Price:         24.99,
		Description:   nil,
		ImageFileName: "1700000005000_tee2.jpg",
	}

	suite.mock.ExpectExec(`
		UPDATE products
		SET name = \$1, brand = \$2, category = \$3, price = \$4, description = \$5, image_file_name = \$6
		WHERE id = \$7
	`).WithArgs(product.Name, product.Brand, product.Category, product.Price, product.Description, product.ImageFileName, product.ID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := suite.repo.Update(suite.context, product)
	assert.NoError(suite.T(), err)
}

func (suite *ProductRepoTestSuite) TestDelete() {
	suite.mock.ExpectExec(`DELETE FROM products WHERE id = \$1`).
		WithArgs(int64(1)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	err := suite.repo.Delete(suite.context, 1)
	assert.NoError(suite.T(), err)
}

func (suite *ProductRepoTestSuite) TestList_OrderedByIDDescending() {
	rows := pgxmock.NewRows([]string{"id", "name", "brand", "category", "price", "description", "image_file_name", "created_at"}).
		AddRow(int64(3), "C", "Acme", "Shirts", 9.99, (*string)(nil), "3_c.jpg", time.Now()).
		AddRow(int64(2), "B", "Acme", "Shirts", 9.99, (*string)(nil), "2_b.jpg", time.Now()).
		AddRow(int64(1), "A", "Acme", "Shirts", 9.99, (*string)(nil), "1_a.jpg", time.Now())

	suite.mock.ExpectQuery(`
		SELECT id, name, brand, category, price, description, image_file_name, created_at
		FROM products
		ORDER BY id DESC
	`).WillReturnRows(rows)

	products, err := suite.repo.List(suite.context)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), products, 3)
	for i := 1; i < len(products); i++ {
		assert.Greater(suite.T(), products[i-1].ID, products[i].ID)
	}
}

func (suite *ProductRepoTestSuite) TestList_Empty() {
	rows := pgxmock.NewRows([]string{"id", "name", "brand", "category", "price", "description", "image_file_name", "created_at"})

	suite.mock.ExpectQuery(`
		SELECT id, name, brand, category, price, description, image_file_name, created_at
		FROM products
		ORDER BY id DESC
	`).WillReturnRows(rows)

	products, err := suite.repo.List(suite.context)
	assert.NoError(suite.T(), err)
	assert.Empty(suite.T(), products)
}
