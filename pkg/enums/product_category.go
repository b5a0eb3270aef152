package enums

import "fmt"

// ProductCategory buckets inventory items for the storefront.
type ProductCategory string

const (
	ProductCategoryHead    ProductCategory = "head"
	ProductCategoryShaft   ProductCategory = "shaft"
	ProductCategoryMesh    ProductCategory = "mesh"
	ProductCategoryStrings ProductCategory = "strings"
	ProductCategoryService ProductCategory = "service"
	ProductCategoryUpsell  ProductCategory = "upsell"
)

var validProductCategories = []ProductCategory{
	ProductCategoryHead,
	ProductCategoryShaft,
	ProductCategoryMesh,
	ProductCategoryStrings,
	ProductCategoryService,
	ProductCategoryUpsell,
}

// String implements fmt.Stringer.
func (p ProductCategory) String() string {
	return string(p)
}

// IsValid reports whether the value is a known ProductCategory.
func (p ProductCategory) IsValid() bool {
	for _, candidate := range validProductCategories {
		if candidate == p {
			return true
		}
	}
	return false
}

// ProductCategories returns every known category.
func ProductCategories() []ProductCategory {
	categories := make([]ProductCategory, len(validProductCategories))
	copy(categories, validProductCategories)
	return categories
}

// ParseProductCategory converts raw input into a ProductCategory.
func ParseProductCategory(value string) (ProductCategory, error) {
	for _, candidate := range validProductCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product category %q", value)
}

// ProductCategoryOrDefault maps catalog metadata onto the closed category set.
// Unknown or missing values land in the service bucket.
func ProductCategoryOrDefault(value string) ProductCategory {
	if parsed, err := ParseProductCategory(value); err == nil {
		return parsed
	}
	return ProductCategoryService
}
