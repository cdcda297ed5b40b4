package usecase

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
)

// AdminUsecase は管理用API（ログイン＋商品管理）。
// 会員機能は無いので、管理者は共有パスワード1つ（bcryptハッシュを環境変数で持つ）。
type AdminUsecase struct {
	productRepo  repo.ProductRepository
	passwordHash string
	jwtSecret    []byte
	accessTTL    time.Duration
}

// DI
func NewAdminUsecase(productRepo repo.ProductRepository, passwordHash string, jwtSecret string) *AdminUsecase {
	return &AdminUsecase{
		productRepo:  productRepo,
		passwordHash: passwordHash,
		jwtSecret:    []byte(jwtSecret),
		accessTTL:    15 * time.Minute,
	}
}

type AdminLoginOutput struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// Login はパスワード照合に成功したら管理者トークンを返す。
func (u *AdminUsecase) Login(ctx context.Context, password string) (AdminLoginOutput, error) {
	if password == "" {
		return AdminLoginOutput{}, NewHTTPError(http.StatusBadRequest, "password required")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.passwordHash), []byte(password)); err != nil {
		return AdminLoginOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	now := time.Now()
	expiresAt := now.Add(u.accessTTL)

	claims := jwt.MapClaims{
		"role": "admin",
		"iat":  now.Unix(),
		"exp":  expiresAt.Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(u.jwtSecret)
	if err != nil {
		return AdminLoginOutput{}, NewHTTPError(http.StatusInternalServerError, "token error")
	}

	return AdminLoginOutput{AccessToken: signed, ExpiresAt: expiresAt}, nil
}

type ProductInput struct {
	Slug        string   `json:"slug"`
	Name        string   `json:"name"`
	Price       string   `json:"price"`
	Image       string   `json:"image"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	InStock     bool     `json:"in_stock"`
	Features    []string `json:"features"`
}

// CreateProduct は商品登録。slug重複は409。
func (u *AdminUsecase) CreateProduct(ctx context.Context, in ProductInput) (model.Product, error) {
	p, err := productFromInput(in)
	if err != nil {
		return model.Product{}, err
	}
	p.ID = uuid.NewString()

	created, err := u.productRepo.Create(ctx, p)
	if err == repo.ErrConflict {
		return model.Product{}, NewHTTPError(http.StatusConflict, "slug already exists")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return created, nil
}

// UpdateProduct は商品更新。
func (u *AdminUsecase) UpdateProduct(ctx context.Context, id string, in ProductInput) (model.Product, error) {
	if strings.TrimSpace(id) == "" {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	p, err := productFromInput(in)
	if err != nil {
		return model.Product{}, err
	}
	p.ID = id

	err = u.productRepo.Update(ctx, p)
	if err == repo.ErrNotFound {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err == repo.ErrConflict {
		return model.Product{}, NewHTTPError(http.StatusConflict, "slug already exists")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	updated, err := u.productRepo.FindByID(ctx, id)
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return updated, nil
}

// SetInStock は在庫フラグ更新。
func (u *AdminUsecase) SetInStock(ctx context.Context, id string, inStock bool) error {
	if strings.TrimSpace(id) == "" {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	err := u.productRepo.SetInStock(ctx, id, inStock)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// DeleteProduct は商品削除（ソフトデリート）。
func (u *AdminUsecase) DeleteProduct(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	err := u.productRepo.SoftDelete(ctx, id)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func productFromInput(in ProductInput) (model.Product, error) {
	slug := strings.TrimSpace(in.Slug)
	name := strings.TrimSpace(in.Name)
	if slug == "" || name == "" {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "slug and name required")
	}

	price, err := decimal.NewFromString(strings.TrimSpace(in.Price))
	if err != nil || price.IsNegative() {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid price")
	}

	features := datatypes.JSON([]byte("[]"))
	if len(in.Features) > 0 {
		raw, err := json.Marshal(in.Features)
		if err != nil {
			return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid features")
		}
		features = datatypes.JSON(raw)
	}

	return model.Product{
		Slug:        slug,
		Name:        name,
		Price:       price,
		Image:       strings.TrimSpace(in.Image),
		Description: in.Description,
		Category:    strings.TrimSpace(in.Category),
		InStock:     in.InStock,
		Features:    features,
	}, nil
}
