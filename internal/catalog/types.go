package catalog

import (
	"encoding/json"
	"strconv"

	"github.com/Maitreya04/greendotv3/internal/models"
)

// Wire-format structs for the Open Food Facts API. Numeric fields arrive
// inconsistently typed (number or string) depending on the product, so the
// flexible types below normalize them during decoding.

type productResponse struct {
	Status  int        `json:"status"`
	Product rawProduct `json:"product"`
}

type searchResponse struct {
	Products []rawProduct `json:"products"`
}

type rawProduct struct {
	Code            string        `json:"code"`
	ProductName     string        `json:"product_name"`
	Brands          string        `json:"brands"`
	ImageURL        string        `json:"image_url"`
	CategoriesTags  []string      `json:"categories_tags"`
	CountriesTags   []string      `json:"countries_tags"`
	LabelsTags      []string      `json:"labels_tags"`
	AllergensTags   []string      `json:"allergens_tags"`
	AnalysisTags    []string      `json:"ingredients_analysis_tags"`
	IngredientsText string        `json:"ingredients_text"`
	NutritionGrades string        `json:"nutrition_grades"`
	NovaGroup       *flexInt      `json:"nova_group"`
	EcoScoreGrade   string        `json:"ecoscore_grade"`
	EcoScore        *float64      `json:"ecoscore_score"`
	Nutriments      rawNutriments `json:"nutriments"`
	AdditivesN      *flexInt      `json:"additives_n"`
	PalmOilN        *flexInt      `json:"ingredients_from_palm_oil_n"`
}

type rawNutriments struct {
	Sugars100g *float64 `json:"sugars_100g"`
	Salt100g   *float64 `json:"salt_100g"`
}

// flexInt decodes an integer that the API may serialize as a number or a
// quoted string.
type flexInt int

func (f *flexInt) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*f = flexInt(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	*f = flexInt(n)
	return nil
}

func (f *flexInt) intPtr() *int {
	if f == nil {
		return nil
	}
	n := int(*f)
	return &n
}

func (r rawProduct) signals() models.QualitySignals {
	return models.QualitySignals{
		NutritionGrade: r.NutritionGrades,
		NovaGroup:      r.NovaGroup.intPtr(),
		EcoScoreGrade:  r.EcoScoreGrade,
		EcoScore:       r.EcoScore,
		Nutriments: models.Nutriments{
			Sugars100g: r.Nutriments.Sugars100g,
			Salt100g:   r.Nutriments.Salt100g,
		},
		AdditivesCount: r.AdditivesN.intPtr(),
		PalmOilCount:   r.PalmOilN.intPtr(),
	}
}

func (r rawProduct) toProduct() models.Product {
	return models.Product{
		Code:            r.Code,
		Name:            r.ProductName,
		Brands:          r.Brands,
		ImageURL:        r.ImageURL,
		CategoriesTags:  r.CategoriesTags,
		CountriesTags:   r.CountriesTags,
		IngredientsText: r.IngredientsText,
		QualitySignals:  r.signals(),
	}
}

func (r rawProduct) toCandidate() models.Candidate {
	return models.Candidate{
		Code:            r.Code,
		Name:            r.ProductName,
		Brands:          r.Brands,
		ImageURL:        r.ImageURL,
		CategoriesTags:  r.CategoriesTags,
		LabelsTags:      r.LabelsTags,
		AllergensTags:   r.AllergensTags,
		AnalysisTags:    r.AnalysisTags,
		IngredientsText: r.IngredientsText,
		QualitySignals:  r.signals(),
	}
}
