package services

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"backend/models"
)

// FoodLookupService queries Open Food Facts for ingredient reference data.
// Results come back on the per-100g label basis, ready to save as an
// IngredientReference. Lookup failures stay at this boundary; callers turn
// them into notifications.
type FoodLookupService struct {
	baseURL string
	client  *http.Client
}

func NewFoodLookupService() *FoodLookupService {
	base := os.Getenv("OFF_BASE_URL")
	if base == "" {
		base = "https://world.openfoodfacts.org"
	}
	return &FoodLookupService{
		baseURL: base,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// IngredientCandidate is a lookup hit the user can save into their
// collection.
type IngredientCandidate struct {
	Name           string                 `json:"name"`
	Brand          string                 `json:"brand,omitempty"`
	Barcode        string                 `json:"barcode,omitempty"`
	ReferenceGrams float64                `json:"reference_grams"`
	Profile        models.NutrientProfile `json:"profile"`
}

type offNutriments struct {
	EnergyKcal100g float64 `json:"energy-kcal_100g"`
	Proteins100g   float64 `json:"proteins_100g"`
	Carbs100g      float64 `json:"carbohydrates_100g"`
	Fat100g        float64 `json:"fat_100g"`
}

type offProduct struct {
	Code        string        `json:"code"`
	ProductName string        `json:"product_name"`
	Brands      string        `json:"brands"`
	Nutriments  offNutriments `json:"nutriments"`
}

type offBarcodeResponse struct {
	Status  int        `json:"status"`
	Product offProduct `json:"product"`
}

type offSearchResponse struct {
	Products []offProduct `json:"products"`
}

// LookupBarcode fetches one product by barcode.
func (s *FoodLookupService) LookupBarcode(barcode string) (*IngredientCandidate, error) {
	u := fmt.Sprintf("%s/api/v2/product/%s.json", s.baseURL, url.PathEscape(barcode))

	resp, err := s.client.Get(u)
	if err != nil {
		return nil, fmt.Errorf("failed to call Open Food Facts: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read lookup response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("food lookup API error %d: %s", resp.StatusCode, string(body))
	}

	var br offBarcodeResponse
	if err := json.Unmarshal(body, &br); err != nil {
		return nil, fmt.Errorf("failed to parse lookup JSON: %w", err)
	}
	if br.Status != 1 || br.Product.ProductName == "" {
		return nil, fmt.Errorf("no product found for barcode %q", barcode)
	}

	c := candidateFromProduct(br.Product)
	return &c, nil
}

// SearchByName returns up to limit candidates matching the query.
func (s *FoodLookupService) SearchByName(query string, limit int) ([]IngredientCandidate, error) {
	if limit <= 0 {
		limit = 5
	}
	u := fmt.Sprintf(
		"%s/cgi/search.pl?search_terms=%s&search_simple=1&action=process&json=1&page_size=%d",
		s.baseURL, url.QueryEscape(query), limit,
	)

	resp, err := s.client.Get(u)
	if err != nil {
		return nil, fmt.Errorf("failed to call Open Food Facts: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read search response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("food search API error %d: %s", resp.StatusCode, string(body))
	}

	var sr offSearchResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		return nil, fmt.Errorf("failed to parse search JSON: %w", err)
	}

	out := make([]IngredientCandidate, 0, len(sr.Products))
	for _, p := range sr.Products {
		if p.ProductName == "" {
			continue
		}
		out = append(out, candidateFromProduct(p))
	}
	return out, nil
}

func candidateFromProduct(p offProduct) IngredientCandidate {
	return IngredientCandidate{
		Name:           p.ProductName,
		Brand:          p.Brands,
		Barcode:        p.Code,
		ReferenceGrams: 100,
		Profile: models.VisibleProfile(
			p.Nutriments.EnergyKcal100g,
			p.Nutriments.Proteins100g,
			p.Nutriments.Carbs100g,
			p.Nutriments.Fat100g,
		),
	}
}
