package usecase

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type CatalogProductRepoMock struct{ mock.Mock }

func (m *CatalogProductRepoMock) ListPublic(ctx context.Context, q repo.ProductListQuery) ([]model.Product, int64, error) {
	args := m.Called(ctx, q)
	items, _ := args.Get(0).([]model.Product)
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *CatalogProductRepoMock) FindByID(ctx context.Context, id string) (model.Product, error) {
	panic("not used in CatalogUsecase tests")
}

func (m *CatalogProductRepoMock) FindBySlug(ctx context.Context, slug string) (model.Product, error) {
	args := m.Called(ctx, slug)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *CatalogProductRepoMock) Categories(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	cats, _ := args.Get(0).([]string)
	return cats, args.Error(1)
}

func (m *CatalogProductRepoMock) Count(ctx context.Context) (int64, error) {
	panic("not used in CatalogUsecase tests")
}

func (m *CatalogProductRepoMock) Create(ctx context.Context, p model.Product) (model.Product, error) {
	panic("not used in CatalogUsecase tests")
}

func (m *CatalogProductRepoMock) Update(ctx context.Context, p model.Product) error {
	panic("not used in CatalogUsecase tests")
}

func (m *CatalogProductRepoMock) SetInStock(ctx context.Context, id string, inStock bool) error {
	panic("not used in CatalogUsecase tests")
}

func (m *CatalogProductRepoMock) SoftDelete(ctx context.Context, id string) error {
	panic("not used in CatalogUsecase tests")
}

func TestFetchAll_DefaultsPageAndLimit(t *testing.T) {
	products := &CatalogProductRepoMock{}
	uc := NewCatalogUsecase(products)

	products.On("ListPublic", mock.Anything, repo.ProductListQuery{
		Page:  1,
		Limit: 20,
	}).Return([]model.Product{}, int64(0), nil)

	out, err := uc.FetchAll(context.Background(), ProductListInput{Page: 0, Limit: 0})
	require.NoError(t, err)
	assert.Equal(t, 1, out.Page)
	assert.Equal(t, 20, out.Limit)
	products.AssertExpectations(t)
}

func TestFetchAll_ClampsLimit(t *testing.T) {
	products := &CatalogProductRepoMock{}
	uc := NewCatalogUsecase(products)

	products.On("ListPublic", mock.Anything, mock.MatchedBy(func(q repo.ProductListQuery) bool {
		return q.Limit == 100
	})).Return([]model.Product{}, int64(0), nil)

	out, err := uc.FetchAll(context.Background(), ProductListInput{Page: 1, Limit: 500})
	require.NoError(t, err)
	assert.Equal(t, 100, out.Limit)
}

func TestFetchAll_PassesSearchAndCategory(t *testing.T) {
	products := &CatalogProductRepoMock{}
	uc := NewCatalogUsecase(products)

	products.On("ListPublic", mock.Anything, repo.ProductListQuery{
		Page:     1,
		Limit:    20,
		Q:        "head",
		Category: "Electronics",
		Sort:     "price_asc",
	}).Return([]model.Product{{ID: "p1"}}, int64(1), nil)

	out, err := uc.FetchAll(context.Background(), ProductListInput{
		Page:     1,
		Limit:    20,
		Q:        "head",
		Category: "Electronics",
		Sort:     "price_asc",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), out.Total)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "p1", out.Items[0].ID)
}

func TestFetchAll_InvalidSortIs400(t *testing.T) {
	products := &CatalogProductRepoMock{}
	uc := NewCatalogUsecase(products)

	_, err := uc.FetchAll(context.Background(), ProductListInput{Sort: "cheapest"})
	assertStatus(t, err, http.StatusBadRequest)
}

func TestFetchAll_RepoErrorIs500(t *testing.T) {
	products := &CatalogProductRepoMock{}
	uc := NewCatalogUsecase(products)

	products.On("ListPublic", mock.Anything, mock.Anything).
		Return([]model.Product(nil), int64(0), errors.New("connection refused"))

	_, err := uc.FetchAll(context.Background(), ProductListInput{})
	assertStatus(t, err, http.StatusInternalServerError)
}

func TestFetchBySlug_ReturnsProduct(t *testing.T) {
	products := &CatalogProductRepoMock{}
	uc := NewCatalogUsecase(products)

	products.On("FindBySlug", mock.Anything, "wireless-headphones").
		Return(model.Product{ID: "p1", Slug: "wireless-headphones"}, nil)

	p, err := uc.FetchBySlug(context.Background(), "wireless-headphones")
	require.NoError(t, err)
	assert.Equal(t, "p1", p.ID)
}

func TestFetchBySlug_UnknownSlugIs404(t *testing.T) {
	products := &CatalogProductRepoMock{}
	uc := NewCatalogUsecase(products)

	products.On("FindBySlug", mock.Anything, "ghost").
		Return(model.Product{}, repo.ErrNotFound)

	_, err := uc.FetchBySlug(context.Background(), "ghost")
	assertStatus(t, err, http.StatusNotFound)
}

func TestFetchBySlug_BlankSlugIs400(t *testing.T) {
	products := &CatalogProductRepoMock{}
	uc := NewCatalogUsecase(products)

	_, err := uc.FetchBySlug(context.Background(), "  ")
	assertStatus(t, err, http.StatusBadRequest)
}

func TestCategories_ReturnsList(t *testing.T) {
	products := &CatalogProductRepoMock{}
	uc := NewCatalogUsecase(products)

	products.On("Categories", mock.Anything).
		Return([]string{"Accessories", "Electronics"}, nil)

	cats, err := uc.Categories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Accessories", "Electronics"}, cats)
}
