package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestProductByCode(t *testing.T) {
	t.Run("maps a found product", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/api/v2/product/3017620422003.json" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			if r.URL.Query().Get("fields") == "" {
				t.Error("expected a field projection in the query")
			}
			w.Write([]byte(`{
				"status": 1,
				"product": {
					"code": "3017620422003",
					"product_name": "Hazelnut spread",
					"brands": "ChocoBrand",
					"categories_tags": ["en:breakfasts", "en:hazelnut-spreads"],
					"countries_tags": ["en:france"],
					"ingredients_text": "sugar, palm oil, hazelnuts",
					"nutrition_grades": "e",
					"nova_group": "4",
					"ecoscore_grade": "d",
					"nutriments": {"sugars_100g": 56.3, "salt_100g": 0.107},
					"additives_n": 2,
					"ingredients_from_palm_oil_n": 1
				}
			}`))
		}))
		defer server.Close()

		client := NewClient(server.URL)
		product, err := client.ProductByCode(context.Background(), "3017620422003")
		if err != nil {
			t.Fatalf("ProductByCode failed: %v", err)
		}
		if product == nil {
			t.Fatal("expected a product, got nil")
		}

		if product.Name != "Hazelnut spread" {
			t.Errorf("name = %q", product.Name)
		}
		if product.NutritionGrade != "e" {
			t.Errorf("nutrition grade = %q, want e", product.NutritionGrade)
		}
		// nova_group arrives as a quoted string here and must still decode
		if product.NovaGroup == nil || *product.NovaGroup != 4 {
			t.Errorf("nova group = %v, want 4", product.NovaGroup)
		}
		if product.Nutriments.Sugars100g == nil || *product.Nutriments.Sugars100g != 56.3 {
			t.Errorf("sugars = %v, want 56.3", product.Nutriments.Sugars100g)
		}
		if product.PalmOilCount == nil || *product.PalmOilCount != 1 {
			t.Errorf("palm oil count = %v, want 1", product.PalmOilCount)
		}
	})

	t.Run("unknown code returns nil without error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"status": 0}`))
		}))
		defer server.Close()

		client := NewClient(server.URL)
		product, err := client.ProductByCode(context.Background(), "000")
		if err != nil {
			t.Fatalf("ProductByCode failed: %v", err)
		}
		if product != nil {
			t.Errorf("product = %+v, want nil", product)
		}
	})

	t.Run("server error surfaces", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		client := NewClient(server.URL)
		if _, err := client.ProductByCode(context.Background(), "000"); err == nil {
			t.Error("expected an error for a 500 response")
		}
	})
}

func TestSearchCategory(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		if query.Get("tag_0") != "dark-chocolates" {
			t.Errorf("tag_0 = %q, want dark-chocolates", query.Get("tag_0"))
		}
		if query.Get("tagtype_1") != "countries" || query.Get("tag_1") != "france" {
			t.Errorf("country scope missing: %v", query)
		}
		if query.Get("page_size") != "50" {
			t.Errorf("page_size = %q, want 50", query.Get("page_size"))
		}
		w.Write([]byte(`{
			"products": [
				{
					"code": "401",
					"product_name": "Noir 85%",
					"brands": "CocoaWorks",
					"categories_tags": ["en:dark-chocolates"],
					"labels_tags": ["en:organic"],
					"allergens_tags": ["en:soybeans"],
					"ingredients_analysis_tags": ["en:vegan"],
					"ingredients_text": "cocoa mass, sugar",
					"nutrition_grades": "c",
					"nova_group": 3
				},
				{"code": "402", "product_name": "Bare hit"}
			]
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	candidates, err := client.SearchCategory(context.Background(), "dark-chocolates", "france")
	if err != nil {
		t.Fatalf("SearchCategory failed: %v", err)
	}

	if len(candidates) != 2 {
		t.Fatalf("candidates = %d, want 2", len(candidates))
	}
	first := candidates[0]
	if first.Code != "401" || first.Name != "Noir 85%" {
		t.Errorf("first candidate = %+v", first)
	}
	if first.NovaGroup == nil || *first.NovaGroup != 3 {
		t.Errorf("nova group = %v, want 3", first.NovaGroup)
	}
	if len(first.AnalysisTags) != 1 || first.AnalysisTags[0] != "en:vegan" {
		t.Errorf("analysis tags = %v", first.AnalysisTags)
	}
	if candidates[1].NovaGroup != nil {
		t.Errorf("missing nova group should stay nil, got %v", candidates[1].NovaGroup)
	}
}

func TestSearchCategoryWithoutCountry(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Has("tagtype_1") {
			t.Error("country scope should be omitted when no country is given")
		}
		w.Write([]byte(`{"products": []}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	candidates, err := client.SearchCategory(context.Background(), "dark-chocolates", "")
	if err != nil {
		t.Fatalf("SearchCategory failed: %v", err)
	}
	if len(candidates) != 0 {
		t.Errorf("candidates = %v, want empty", candidates)
	}
}
