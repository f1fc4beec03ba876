package repository

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/ridloal/clothing-storefront/internal/catalog/domain"
)

// catalogFile is the on-disk layout of CATALOG_FILE.
type catalogFile struct {
	Products []domain.Product `yaml:"products"`
}

// DefaultProducts is the catalog the storefront ships with.
func DefaultProducts() []domain.Product {
	return []domain.Product{
		{ID: 1, Name: "Camiseta Básica", Price: decimal.RequireFromString("19.99"), Image: "./imagenes_productos/camiseta.jpg", Type: "remeras", Gender: "hombres"},
		{ID: 2, Name: "Jeans Slim", Price: decimal.RequireFromString("49.99"), Image: "./imagenes_productos/jeans.jpg", Type: "pantalones", Gender: "hombres"},
		{ID: 3, Name: "Chaqueta de Cuero", Price: decimal.RequireFromString("99.99"), Image: "./imagenes_productos/chaqueta.jpg", Type: "chaquetas", Gender: "hombres"},
		{ID: 4, Name: "Vestido Floral", Price: decimal.RequireFromString("39.99"), Image: "./imagenes_productos/vestido.jpg", Type: "vestidos", Gender: "mujeres"},
		{ID: 5, Name: "Zapatillas Deportivas", Price: decimal.RequireFromString("59.99"), Image: "./imagenes_productos/zapatillas.jpg", Type: "calzado", Gender: "hombres"},
		{ID: 6, Name: "Remera Estampada", Price: decimal.RequireFromString("24.99"), Image: "./imagenes_productos/remera.jpg", Type: "remeras", Gender: "mujeres"},
		{ID: 7, Name: "Remera Oversize", Price: decimal.RequireFromString("29.99"), Image: "./imagenes_productos/remera_oversize.jpg", Type: "remeras", Gender: "hombres"},
		{ID: 8, Name: "Vestido Heavy Oversize", Price: decimal.RequireFromString("39.99"), Image: "./imagenes_productos/vestido_oversize.jpg", Type: "vestidos", Gender: "mujeres"},
		{ID: 9, Name: "Zapatillas Boxy Fit", Price: decimal.RequireFromString("59.99"), Image: "./imagenes_productos/zapatillas_boxy.jpg", Type: "calzado", Gender: "hombres"},
		{ID: 10, Name: "Remera Estampada Rosa", Price: decimal.RequireFromString("24.99"), Image: "./imagenes_productos/remera_rosa.jpg", Type: "remeras", Gender: "mujeres"},
	}
}

// ParseCatalog decodes a YAML catalog document.
func ParseCatalog(data []byte) ([]domain.Product, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if len(f.Products) == 0 {
		return nil, fmt.Errorf("catalog has no products")
	}
	return f.Products, nil
}

// LoadProducts returns the built-in catalog when path is empty.
func LoadProducts(path string) ([]domain.Product, error) {
	if path == "" {
		return DefaultProducts(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file %s: %w", path, err)
	}
	return ParseCatalog(data)
}
