package cli

import (
	"github.com/spf13/cobra"

	"github.com/angelmondragon/storefront/pkg/types"
)

func loginCmd(rt *runtime) *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:   "login <username>",
		Short: "Sign in with the catalog API",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := rt.app.Auth.Login(cmd.Context(), types.LoginRequest{Username: args[0], Password: password})
			if err != nil {
				return err
			}
			return rt.render.session(session)
		},
	}
	cmd.Flags().StringVarP(&password, "password", "p", "", "Account password")
	return cmd
}

func registerCmd(rt *runtime) *cobra.Command {
	var req types.RegisterRequest
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and sign in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := rt.app.Auth.Register(cmd.Context(), req)
			if err != nil {
				return err
			}
			return rt.render.session(session)
		},
	}
	cmd.Flags().StringVar(&req.Username, "username", "", "Username (at least 3 characters)")
	cmd.Flags().StringVar(&req.Email, "email", "", "Email address")
	cmd.Flags().StringVarP(&req.Password, "password", "p", "", "Password (at least 6 characters)")
	return cmd
}

func logoutCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt.app.Auth.Logout(cmd.Context())
			return rt.render.message("signed out")
		},
	}
}

func whoamiCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rt.render.session(rt.app.Auth.Current())
		},
	}
}
