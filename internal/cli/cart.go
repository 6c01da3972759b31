package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
)

func cartCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Show the cart (requires sign-in)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := rt.requireSession(); err != nil {
				return err
			}
			return rt.render.cart(rt.app.Cart.Snapshot())
		},
	}
	cmd.AddCommand(
		cartAddCmd(rt),
		cartSetCmd(rt),
		cartRemoveCmd(rt),
		cartClearCmd(rt),
	)
	return cmd
}

func cartAddCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "add <product-id>",
		Short: "Add one unit of a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := rt.requireSession(); err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			p, err := rt.app.Catalog.Product(cmd.Context(), id)
			if err != nil {
				return err
			}
			rt.app.Cart.Add(cmd.Context(), *p)
			return rt.render.cart(rt.app.Cart.Snapshot())
		},
	}
}

func cartSetCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <product-id> <quantity>",
		Short: "Set the quantity of a cart item; 0 or less removes it",
		Example: `  storefront cart set 3 2
  storefront cart set --json 3 -1`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := rt.requireSession(); err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			qty, err := strconv.Atoi(args[1])
			if err != nil {
				return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be an integer")
			}
			rt.app.Cart.SetQuantity(cmd.Context(), id, qty)
			return rt.render.cart(rt.app.Cart.Snapshot())
		},
	}
	// Flags go before the arguments so a negative quantity is not read as a shorthand flag.
	cmd.Flags().SetInterspersed(false)
	return cmd
}

func cartRemoveCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <product-id>",
		Short: "Remove a product from the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := rt.requireSession(); err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			rt.app.Cart.Remove(cmd.Context(), id)
			return rt.render.cart(rt.app.Cart.Snapshot())
		},
	}
}

func cartClearCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Empty the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := rt.requireSession(); err != nil {
				return err
			}
			rt.app.Cart.Clear(cmd.Context())
			return rt.render.cart(rt.app.Cart.Snapshot())
		},
	}
}
