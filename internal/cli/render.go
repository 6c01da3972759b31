package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"

	"github.com/angelmondragon/storefront/internal/catalog"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
	"github.com/angelmondragon/storefront/pkg/types"
)

// renderer prints command results either as colored text or as the JSON envelope the
// HTTP facade would return.
type renderer struct {
	out  io.Writer
	json bool
}

func (r *renderer) emit(data any, pretty func(w io.Writer)) error {
	if r.json {
		enc := json.NewEncoder(r.out)
		enc.SetIndent("", "  ")
		return enc.Encode(types.SuccessEnvelope{Data: data})
	}
	pretty(r.out)
	return nil
}

func (r *renderer) page(page catalog.Page, view catalog.View) error {
	return r.emit(page, func(w io.Writer) {
		filter := view.Category
		if filter == "" {
			filter = catalog.AllCategories
		}
		fmt.Fprintf(w, "%s  category=%s sort=%s\n",
			color.CyanString("Products"), filter, view.Sort)
		fmt.Fprintln(w, strings.Repeat("─", 60))
		if len(page.Items) == 0 {
			fmt.Fprintln(w, color.HiBlackString("No products on this page"))
		}
		for _, p := range page.Items {
			fmt.Fprintf(w, "%s %s %s %s\n",
				color.HiBlackString("#%-4d", p.ID),
				truncate(p.Title, 40),
				color.GreenString("$%s", p.Price.StringFixed(2)),
				color.HiBlackString("[%s]", p.Category))
		}
		fmt.Fprintf(w, "page %d/%d · %d items\n", page.CurrentPage, page.TotalPages, page.TotalItems)
	})
}

func (r *renderer) product(p *types.Product) error {
	return r.emit(p, func(w io.Writer) {
		fmt.Fprintf(w, "%s %s\n", color.CyanString("#%d", p.ID), p.Title)
		fmt.Fprintf(w, "price:    %s\n", color.GreenString("$%s", p.Price.StringFixed(2)))
		fmt.Fprintf(w, "category: %s\n", p.Category)
		if p.Rating != nil {
			fmt.Fprintf(w, "rating:   %.1f (%d reviews)\n", p.Rating.Rate, p.Rating.Count)
		}
		if p.Image != "" {
			fmt.Fprintf(w, "image:    %s\n", p.Image)
		}
		if p.Description != "" {
			fmt.Fprintf(w, "\n%s\n", p.Description)
		}
	})
}

func (r *renderer) categories(categories []string) error {
	return r.emit(categories, func(w io.Writer) {
		for _, c := range categories {
			fmt.Fprintf(w, "• %s\n", c)
		}
	})
}

func (r *renderer) cart(c types.Cart) error {
	return r.emit(c, func(w io.Writer) {
		fmt.Fprintln(w, color.CyanString("Cart"))
		fmt.Fprintln(w, strings.Repeat("─", 60))
		if len(c.Items) == 0 {
			fmt.Fprintln(w, color.HiBlackString("Your cart is empty"))
			return
		}
		for _, item := range c.Items {
			fmt.Fprintf(w, "%s %s x%d %s\n",
				color.HiBlackString("#%-4d", item.Product.ID),
				truncate(item.Product.Title, 40),
				item.Quantity,
				color.GreenString("$%s", item.Subtotal().StringFixed(2)))
		}
		fmt.Fprintln(w, strings.Repeat("─", 60))
		fmt.Fprintf(w, "%d items · total %s\n", c.Count, color.GreenString("$%s", c.Total.StringFixed(2)))
	})
}

func (r *renderer) session(s *types.Session) error {
	return r.emit(s, func(w io.Writer) {
		if s == nil {
			fmt.Fprintln(w, color.HiBlackString("Not signed in"))
			return
		}
		fmt.Fprintf(w, "%s %s\n", color.GreenString("✓"), s.DisplayName())
		fmt.Fprintf(w, "username: %s\n", s.Username)
		if s.Email != "" {
			fmt.Fprintf(w, "email:    %s\n", s.Email)
		}
		if s.ID != nil {
			fmt.Fprintf(w, "user id:  %d\n", *s.ID)
		}
	})
}

func (r *renderer) message(msg string) error {
	return r.emit(map[string]string{"status": msg}, func(w io.Writer) {
		fmt.Fprintf(w, "%s %s\n", color.GreenString("✓"), msg)
	})
}

// renderError writes err for a terminal user, including field-level validation details.
func renderError(w io.Writer, err error) {
	typed := pkgerrors.As(err)
	if typed == nil {
		fmt.Fprintf(w, "%s %v\n", color.RedString("✗"), err)
		return
	}
	fmt.Fprintf(w, "%s %s: %s\n", color.RedString("✗"), typed.Code(), typed.Message())
	if details, ok := typed.Details().(map[string]string); ok {
		fields := make([]string, 0, len(details))
		for field := range details {
			fields = append(fields, field)
		}
		sort.Strings(fields)
		for _, field := range fields {
			fmt.Fprintf(w, "  %s %s\n", color.YellowString(field), details[field])
		}
	}
	if typed.Retryable() {
		fmt.Fprintln(w, color.HiBlackString("  try again in a moment"))
	}
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
