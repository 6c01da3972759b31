package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/angelmondragon/storefront/internal/app"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
)

// Factory builds the application for one CLI invocation.
type Factory func(ctx context.Context) (*app.App, error)

type runtime struct {
	factory Factory
	app     *app.App
	render  *renderer
}

// Run executes one CLI invocation and returns the process exit code. Cart and session
// state are rehydrated from storage through factory on every run.
func Run(ctx context.Context, factory Factory, args []string, stdout, stderr io.Writer) int {
	rt := &runtime{factory: factory, render: &renderer{out: stdout}}
	root := newRootCommand(rt)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if rt.app != nil {
		err = multierr.Append(err, rt.app.Close())
	}
	if err != nil {
		renderError(stderr, err)
		return 1
	}
	return 0
}

func newRootCommand(rt *runtime) *cobra.Command {
	root := &cobra.Command{
		Use:           "storefront",
		Short:         "Browse the catalog, manage your cart and list products",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			rt.render.out = cmd.OutOrStdout()
			rt.render.json, _ = cmd.Flags().GetBool("json")
			a, err := rt.factory(cmd.Context())
			if err != nil {
				return err
			}
			rt.app = a
			return nil
		},
	}
	root.PersistentFlags().Bool("json", false, "Output as JSON")

	root.AddGroup(
		&cobra.Group{ID: "catalog", Title: "Catalog:"},
		&cobra.Group{ID: "account", Title: "Account:"},
	)

	for _, cmd := range []*cobra.Command{
		productsCmd(rt),
		productCmd(rt),
		categoriesCmd(rt),
		createCmd(rt),
		cartCmd(rt),
	} {
		cmd.GroupID = "catalog"
		root.AddCommand(cmd)
	}
	for _, cmd := range []*cobra.Command{
		loginCmd(rt),
		registerCmd(rt),
		logoutCmd(rt),
		whoamiCmd(rt),
	} {
		cmd.GroupID = "account"
		root.AddCommand(cmd)
	}
	return root
}

func (rt *runtime) requireSession() error {
	if !rt.app.Auth.IsAuthenticated() {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "sign in required, run `storefront login` first")
	}
	return nil
}

func parseID(raw string) (int, error) {
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("product id %q must be a positive integer", raw))
	}
	return id, nil
}
