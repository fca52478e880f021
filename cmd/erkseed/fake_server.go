package main

import (
	"github.com/spf13/cobra"

	"github.com/eureka-residences/erkseed/internal/fakeapi"
)

func newFakeServerCmd() *cobra.Command {
	var (
		addr     string
		email    string
		password string
		pageSize int
	)

	cmd := &cobra.Command{
		Use:   "fake-server",
		Short: "Serve an in-memory copy of the API for dry runs",
		Long: "Serve an in-memory copy of the API for dry runs. Data is lost on exit.\n" +
			"Point --base-url at it and log in with the admin account below.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			srv := fakeapi.New(fakeapi.Options{
				AdminEmail:    email,
				AdminPassword: password,
				PageSize:      pageSize,
			})
			return srv.ListenAndServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:8000", "listen address")
	cmd.Flags().StringVar(&email, "admin-email", fakeapi.DefaultAdminEmail, "admin account email")
	cmd.Flags().StringVar(&password, "admin-password", fakeapi.DefaultAdminPassword, "admin account password")
	cmd.Flags().IntVar(&pageSize, "page-size", fakeapi.DefaultPageSize, "list page size")
	return cmd
}
