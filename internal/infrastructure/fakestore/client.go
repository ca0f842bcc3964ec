// Package fakestore implementa el puerto ExternalCatalog contra la API
// pública de FakeStore (https://fakestoreapi.com). Sirve como feed de
// demostración para poblar el catálogo local.
package fakestore

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/jhoicas/warehouse-api/internal/application/catalog"
	"github.com/jhoicas/warehouse-api/internal/domain/external"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Verificar en tiempo de compilación que Client implementa ExternalCatalog.
var _ catalog.ExternalCatalog = (*Client)(nil)

// skuPrefix marca los SKU importados desde este feed (ej. "FS-12").
const skuPrefix = "FS-"

// Client adaptador HTTP del feed FakeStore. Usa net/http de la librería
// estándar; la API es pública y no requiere autenticación.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient construye el adaptador. baseURL vacío usa la API pública.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = "https://fakestoreapi.com"
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// fakeStoreProduct estructura del producto tal como lo devuelve el feed.
type fakeStoreProduct struct {
	ID       int64   `json:"id"`
	Title    string  `json:"title"`
	Price    float64 `json:"price"`
	Category string  `json:"category"`
	Image    string  `json:"image"`
}

// Categories lista las categorías del feed, ya normalizadas.
func (c *Client) Categories(ctx context.Context) ([]string, error) {
	var raw []string
	if err := c.get(ctx, "/products/categories", &raw); err != nil {
		return nil, err
	}
	out := make([]string, 0, len(raw))
	for _, name := range raw {
		out = append(out, normalizeCategory(name))
	}
	return out, nil
}

// ProductsByCategory lista los productos del feed para una categoría.
// Acepta el nombre normalizado o el crudo del feed.
func (c *Client) ProductsByCategory(ctx context.Context, category string) ([]external.CatalogItem, error) {
	feedName, err := c.feedCategory(ctx, category)
	if err != nil {
		return nil, err
	}
	var raw []fakeStoreProduct
	path := "/products/category/" + strings.ReplaceAll(feedName, " ", "%20")
	if err := c.get(ctx, path, &raw); err != nil {
		return nil, err
	}
	items := make([]external.CatalogItem, 0, len(raw))
	for _, p := range raw {
		items = append(items, toCatalogItem(p))
	}
	return items, nil
}

// ByExternalID devuelve el item con SKU "FS-<id>", o nil si no existe.
func (c *Client) ByExternalID(ctx context.Context, externalID string) (*external.CatalogItem, error) {
	idStr := strings.TrimPrefix(externalID, skuPrefix)
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("fakestore: id externo inválido %q", externalID)
	}
	var raw fakeStoreProduct
	if err := c.get(ctx, fmt.Sprintf("/products/%d", id), &raw); err != nil {
		return nil, err
	}
	// El feed responde 200 con cuerpo vacío/null para ids inexistentes.
	if raw.ID == 0 {
		return nil, nil
	}
	item := toCatalogItem(raw)
	return &item, nil
}

// feedCategory traduce un nombre normalizado al nombre crudo que espera el
// feed ("Mens Clothing" → "men's clothing"). Un nombre desconocido se pasa
// tal cual en minúsculas.
func (c *Client) feedCategory(ctx context.Context, category string) (string, error) {
	var raw []string
	if err := c.get(ctx, "/products/categories", &raw); err != nil {
		return "", err
	}
	for _, name := range raw {
		if strings.EqualFold(name, category) || strings.EqualFold(normalizeCategory(name), category) {
			return name, nil
		}
	}
	return strings.ToLower(category), nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("fakestore: crear HTTP request: %w", err)
	}
	req.Header.Set("accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("fakestore: timeout o cancelación: %w", ctx.Err())
		}
		return fmt.Errorf("fakestore: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("fakestore: leer respuesta: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fakestore: HTTP %d: %s", resp.StatusCode, string(body))
	}
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" || trimmed == "null" {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("fakestore: deserializar respuesta: %w", err)
	}
	return nil
}

func toCatalogItem(p fakeStoreProduct) external.CatalogItem {
	return external.CatalogItem{
		ExternalID:   fmt.Sprintf("%s%d", skuPrefix, p.ID),
		Name:         p.Title,
		CategoryName: normalizeCategory(p.Category),
		UnitPrice:    decimal.NewFromFloat(p.Price),
		ImageURL:     p.Image,
	}
}

// titleCaser capitaliza nombres de categoría en inglés (el idioma del feed).
var titleCaser = cases.Title(language.English)

// normalizeCategory convierte el nombre crudo del feed en un nombre de
// categoría local ("men's clothing" → "Mens Clothing").
func normalizeCategory(raw string) string {
	clean := strings.ReplaceAll(raw, "'", "")
	return titleCaser.String(clean)
}
