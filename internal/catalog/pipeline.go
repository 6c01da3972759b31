package catalog

import (
	"sort"
	"strings"

	"github.com/angelmondragon/storefront/pkg/enums"
	"github.com/angelmondragon/storefront/pkg/pagination"
	"github.com/angelmondragon/storefront/pkg/types"
)

// AllCategories is the category label that disables filtering.
const AllCategories = "all"

// View is the user-controlled part of the catalog screen.
type View struct {
	Category string        `json:"category,omitempty"`
	Sort     enums.SortKey `json:"sort"`
	Page     int           `json:"page"`
}

// DefaultView shows every product in source order on the first page.
func DefaultView() View {
	return View{Sort: enums.SortKeyNone, Page: pagination.FirstPage}
}

// Page is one window of the filtered and sorted catalog.
type Page struct {
	Items       []types.Product `json:"items"`
	CurrentPage int             `json:"current_page"`
	TotalPages  int             `json:"total_pages"`
	TotalItems  int             `json:"total_items"`
	PageSize    int             `json:"page_size"`
}

// Visible applies filter, sort and pagination to products. The input is not modified.
func Visible(products []types.Product, view View) Page {
	return paginate(filterAndSort(products, view.Category, view.Sort), view.Page)
}

func hasCategoryFilter(category string) bool {
	return category != "" && category != AllCategories
}

func filterAndSort(products []types.Product, category string, key enums.SortKey) []types.Product {
	out := make([]types.Product, 0, len(products))
	for _, p := range products {
		if hasCategoryFilter(category) && p.Category != category {
			continue
		}
		out = append(out, p)
	}

	switch key {
	case enums.SortKeyPriceAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price.LessThan(out[j].Price) })
	case enums.SortKeyPriceDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price.GreaterThan(out[j].Price) })
	case enums.SortKeyCategory:
		sort.SliceStable(out, func(i, j int) bool { return strings.Compare(out[i].Category, out[j].Category) < 0 })
	}
	return out
}

func paginate(sorted []types.Product, page int) Page {
	params := pagination.Params{Page: pagination.NormalizePage(page), PageSize: pagination.DefaultPageSize}
	start, end := pagination.Bounds(len(sorted), params)
	items := make([]types.Product, end-start)
	copy(items, sorted[start:end])
	return Page{
		Items:       items,
		CurrentPage: params.Page,
		TotalPages:  pagination.TotalPages(len(sorted), params.PageSize),
		TotalItems:  len(sorted),
		PageSize:    params.PageSize,
	}
}
