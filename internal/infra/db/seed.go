package db

import (
	"context"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type seedProduct struct {
	slug        string
	name        string
	price       string
	image       string
	description string
	category    string
	inStock     bool
	features    string
}

// 初期カタログ。テーブルが空の時だけ投入する。
var seedProducts = []seedProduct{
	{
		slug:        "wireless-headphones",
		name:        "Wireless Headphones",
		price:       "199.99",
		image:       "/images/wireless-headphones.jpg",
		description: "Over-ear wireless headphones with active noise cancellation and 30-hour battery life.",
		category:    "Electronics",
		inStock:     true,
		features:    `["Active noise cancellation","30-hour battery","Bluetooth 5.3"]`,
	},
	{
		slug:        "smart-watch",
		name:        "Smart Watch",
		price:       "249.99",
		image:       "/images/smart-watch.jpg",
		description: "Fitness tracking smart watch with heart-rate monitor and GPS.",
		category:    "Electronics",
		inStock:     true,
		features:    `["Heart-rate monitor","Built-in GPS","5 ATM water resistance"]`,
	},
	{
		slug:        "usb-c-cable",
		name:        "USB-C Cable",
		price:       "9.99",
		image:       "/images/usb-c-cable.jpg",
		description: "Braided 2m USB-C to USB-C cable, 100W charging.",
		category:    "Accessories",
		inStock:     true,
		features:    `["100W PD charging","Braided nylon","2m length"]`,
	},
	{
		slug:        "laptop-backpack",
		name:        "Laptop Backpack",
		price:       "59.99",
		image:       "/images/laptop-backpack.jpg",
		description: "Water-resistant backpack with padded 15-inch laptop compartment.",
		category:    "Bags",
		inStock:     true,
		features:    `["Fits 15-inch laptops","Water-resistant","USB charging port"]`,
	},
	{
		slug:        "mechanical-keyboard",
		name:        "Mechanical Keyboard",
		price:       "129.99",
		image:       "/images/mechanical-keyboard.jpg",
		description: "Tenkeyless mechanical keyboard with hot-swappable switches.",
		category:    "Electronics",
		inStock:     false,
		features:    `["Hot-swappable switches","RGB backlight","Detachable cable"]`,
	},
	{
		slug:        "ceramic-mug",
		name:        "Ceramic Mug",
		price:       "14.99",
		image:       "/images/ceramic-mug.jpg",
		description: "Hand-glazed 350ml ceramic mug, dishwasher safe.",
		category:    "Home",
		inStock:     true,
		features:    `["350ml capacity","Dishwasher safe","Hand-glazed"]`,
	},
	{
		slug:        "desk-lamp",
		name:        "Desk Lamp",
		price:       "39.99",
		image:       "/images/desk-lamp.jpg",
		description: "LED desk lamp with adjustable color temperature and brightness.",
		category:    "Home",
		inStock:     true,
		features:    `["Adjustable color temperature","Touch dimmer","Foldable arm"]`,
	},
	{
		slug:        "running-shoes",
		name:        "Running Shoes",
		price:       "89.99",
		image:       "/images/running-shoes.jpg",
		description: "Lightweight road running shoes with responsive cushioning.",
		category:    "Sports",
		inStock:     true,
		features:    `["Responsive cushioning","Breathable mesh","Reflective details"]`,
	},
}

// SeedProducts はカタログが空なら初期商品を投入する。
func SeedProducts(ctx context.Context, products repo.ProductRepository) error {
	count, err := products.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for _, sp := range seedProducts {
		price, err := decimal.NewFromString(sp.price)
		if err != nil {
			return err
		}

		p := model.Product{
			ID:          uuid.NewString(),
			Slug:        sp.slug,
			Name:        sp.name,
			Price:       price,
			Image:       sp.image,
			Description: sp.description,
			Category:    sp.category,
			InStock:     sp.inStock,
			Features:    datatypes.JSON([]byte(sp.features)),
		}
		if _, err := products.Create(ctx, p); err != nil {
			return err
		}
	}

	return nil
}
