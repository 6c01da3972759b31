package cli

import (
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/angelmondragon/storefront/internal/catalog"
	"github.com/angelmondragon/storefront/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
	"github.com/angelmondragon/storefront/pkg/types"
)

func productsCmd(rt *runtime) *cobra.Command {
	var category, sortFlag string
	var page int

	cmd := &cobra.Command{
		Use:   "products",
		Short: "List a page of products",
		Example: `  storefront products
  storefront products --category electronics --sort price-asc --page 2`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := enums.ParseSortKey(sortFlag)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid --sort, use none, price-asc, price-desc or category")
			}
			if err := rt.app.Catalog.EnsureLoaded(cmd.Context()); err != nil {
				return err
			}
			view := catalog.View{Category: category, Sort: key, Page: page}
			return rt.render.page(rt.app.Catalog.Store().VisiblePageFor(view), view)
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "Only show this category")
	cmd.Flags().StringVar(&sortFlag, "sort", string(enums.SortKeyNone), "Sort order: none, price-asc, price-desc, category")
	cmd.Flags().IntVar(&page, "page", 1, "Page number (10 products per page)")
	return cmd
}

func productCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "product <id>",
		Short: "Show one product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			p, err := rt.app.Catalog.Product(cmd.Context(), id)
			if err != nil {
				return err
			}
			return rt.render.product(p)
		},
	}
}

func categoriesCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List product categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := rt.app.Catalog.RefreshCategories(cmd.Context()); err != nil {
				return err
			}
			return rt.render.categories(rt.app.Catalog.Store().Categories())
		},
	}
}

func createCmd(rt *runtime) *cobra.Command {
	var draft types.ProductDraft
	var price string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "List a new product (requires sign-in)",
		Example: `  storefront create --title "Desk lamp" --description "Warm light for reading" \
    --price 19.99 --category home --image https://example.com/lamp.png`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := rt.requireSession(); err != nil {
				return err
			}
			if price != "" {
				parsed, err := decimal.NewFromString(price)
				if err != nil {
					return pkgerrors.New(pkgerrors.CodeValidation, "validation failed").
						WithDetails(map[string]string{"price": "must be a positive number"})
				}
				draft.Price = parsed
			}
			created, err := rt.app.Catalog.Create(cmd.Context(), draft)
			if err != nil {
				return err
			}
			return rt.render.product(created)
		},
	}
	cmd.Flags().StringVar(&draft.Title, "title", "", "Product title (at least 3 characters)")
	cmd.Flags().StringVar(&draft.Description, "description", "", "Description (at least 10 characters)")
	cmd.Flags().StringVar(&price, "price", "", "Price, greater than 0")
	cmd.Flags().StringVar(&draft.Category, "category", "", "Category label")
	cmd.Flags().StringVar(&draft.Image, "image", "", "Image URL")
	return cmd
}
