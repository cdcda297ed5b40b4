package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"app/internal/cart"
	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/platform/logger"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type HandlerProductRepoMock struct{ mock.Mock }

func (m *HandlerProductRepoMock) ListPublic(ctx context.Context, q repo.ProductListQuery) ([]model.Product, int64, error) {
	panic("not used in CartHandler tests")
}

func (m *HandlerProductRepoMock) FindByID(ctx context.Context, id string) (model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *HandlerProductRepoMock) FindBySlug(ctx context.Context, slug string) (model.Product, error) {
	panic("not used in CartHandler tests")
}

func (m *HandlerProductRepoMock) Categories(ctx context.Context) ([]string, error) {
	panic("not used in CartHandler tests")
}

func (m *HandlerProductRepoMock) Count(ctx context.Context) (int64, error) {
	panic("not used in CartHandler tests")
}

func (m *HandlerProductRepoMock) Create(ctx context.Context, p model.Product) (model.Product, error) {
	panic("not used in CartHandler tests")
}

func (m *HandlerProductRepoMock) Update(ctx context.Context, p model.Product) error {
	panic("not used in CartHandler tests")
}

func (m *HandlerProductRepoMock) SetInStock(ctx context.Context, id string, inStock bool) error {
	panic("not used in CartHandler tests")
}

func (m *HandlerProductRepoMock) SoftDelete(ctx context.Context, id string) error {
	panic("not used in CartHandler tests")
}

type handlerSnapshotRepo struct {
	data map[string][]model.CartLine
}

func (f *handlerSnapshotRepo) Load(ctx context.Context, slot string) ([]model.CartLine, error) {
	lines, ok := f.data[slot]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return lines, nil
}

func (f *handlerSnapshotRepo) Save(ctx context.Context, slot string, lines []model.CartLine) error {
	f.data[slot] = lines
	return nil
}

func testCfg() config.Config {
	return config.Config{
		Port:              "8080",
		JWTSecret:         "test_secret",
		AdminPasswordHash: "unused",
		GoEnv:             "dev",
		FEURL:             "http://localhost:3000",
	}
}

func setupCartEcho(t *testing.T, products *HandlerProductRepoMock) *echo.Echo {
	t.Helper()

	carts := cart.NewManager(&handlerSnapshotRepo{data: map[string][]model.CartLine{}}, logger.NewNop())
	uc := usecase.NewCartUsecase(carts, products)

	e := echo.New()
	NewCartHandler(uc).RegisterRoutes(e, testCfg())
	return e
}

func decodeCart(t *testing.T, rec *httptest.ResponseRecorder) usecase.CartResponse {
	t.Helper()
	var out usecase.CartResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestCartRoutes_GetEmptyCart(t *testing.T) {
	e := setupCartEcho(t, &HandlerProductRepoMock{})

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	out := decodeCart(t, rec)
	assert.Empty(t, out.Items)
	assert.Equal(t, int64(0), out.ItemCount)
}

// Cookieを引き回すとカートが積み上がる
func TestCartRoutes_AddThenGetWithSameCookie(t *testing.T) {
	products := &HandlerProductRepoMock{}
	products.On("FindByID", mock.Anything, "p1").Return(model.Product{
		ID:    "p1",
		Slug:  "p1",
		Name:  "product p1",
		Price: decimal.RequireFromString("19.99"),
	}, nil)

	e := setupCartEcho(t, products)

	req := httptest.NewRequest(http.MethodPost, "/cart/items", strings.NewReader(`{"product_id":"p1"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	out := decodeCart(t, rec)
	require.Len(t, out.Items, 1)
	assert.Equal(t, int64(1), out.Items[0].Quantity)

	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)

	// 同じCookieで2回目の追加 → 数量2
	req2 := httptest.NewRequest(http.MethodPost, "/cart/items", strings.NewReader(`{"product_id":"p1"}`))
	req2.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for _, c := range cookies {
		req2.AddCookie(c)
	}
	rec2 := httptest.NewRecorder()
	e.ServeHTTP(rec2, req2)
	require.Equal(t, http.StatusOK, rec2.Code)

	out2 := decodeCart(t, rec2)
	require.Len(t, out2.Items, 1)
	assert.Equal(t, int64(2), out2.Items[0].Quantity)
	assert.Equal(t, int64(2), out2.ItemCount)
}

func TestCartRoutes_AddUnknownProductIs404(t *testing.T) {
	products := &HandlerProductRepoMock{}
	products.On("FindByID", mock.Anything, "ghost").Return(model.Product{}, repo.ErrNotFound)

	e := setupCartEcho(t, products)

	req := httptest.NewRequest(http.MethodPost, "/cart/items", strings.NewReader(`{"product_id":"ghost"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCartRoutes_PatchSetsQuantity(t *testing.T) {
	products := &HandlerProductRepoMock{}
	products.On("FindByID", mock.Anything, "p1").Return(model.Product{
		ID:    "p1",
		Name:  "product p1",
		Price: decimal.RequireFromString("10.00"),
	}, nil)

	e := setupCartEcho(t, products)

	req := httptest.NewRequest(http.MethodPost, "/cart/items", strings.NewReader(`{"product_id":"p1"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	cookies := rec.Result().Cookies()

	req2 := httptest.NewRequest(http.MethodPatch, "/cart/items/p1", strings.NewReader(`{"quantity":5}`))
	req2.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for _, c := range cookies {
		req2.AddCookie(c)
	}
	rec2 := httptest.NewRecorder()
	e.ServeHTTP(rec2, req2)
	require.Equal(t, http.StatusOK, rec2.Code)

	out := decodeCart(t, rec2)
	require.Len(t, out.Items, 1)
	assert.Equal(t, int64(5), out.Items[0].Quantity)
	assert.True(t, out.Subtotal.Equal(decimal.RequireFromString("50.00")))
}

func TestCartRoutes_DeleteItemAndClear(t *testing.T) {
	products := &HandlerProductRepoMock{}
	products.On("FindByID", mock.Anything, "p1").Return(model.Product{
		ID:    "p1",
		Name:  "product p1",
		Price: decimal.RequireFromString("10.00"),
	}, nil)

	e := setupCartEcho(t, products)

	req := httptest.NewRequest(http.MethodPost, "/cart/items", strings.NewReader(`{"product_id":"p1"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	cookies := rec.Result().Cookies()

	req2 := httptest.NewRequest(http.MethodDelete, "/cart/items/p1", nil)
	for _, c := range cookies {
		req2.AddCookie(c)
	}
	rec2 := httptest.NewRecorder()
	e.ServeHTTP(rec2, req2)
	require.Equal(t, http.StatusOK, rec2.Code)
	assert.Empty(t, decodeCart(t, rec2).Items)

	// 空カートへのDELETE /cartもエラーにならない
	req3 := httptest.NewRequest(http.MethodDelete, "/cart", nil)
	for _, c := range cookies {
		req3.AddCookie(c)
	}
	rec3 := httptest.NewRecorder()
	e.ServeHTTP(rec3, req3)
	assert.Equal(t, http.StatusOK, rec3.Code)
}
