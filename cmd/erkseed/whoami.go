package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func newWhoamiCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Authenticate and show the connected account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.login(cmd.Context())
			if err != nil {
				return err
			}
			defer c.Close()

			me, err := c.Me(cmd.Context())
			if err != nil {
				return err
			}

			t := newTable(cmd.OutOrStdout())
			t.AppendHeader(table.Row{"ID", "Email", "Name", "Staff", "Tenant", "Token expires"})
			expiry := ""
			if exp := c.TokenExpiry(); !exp.IsZero() {
				expiry = exp.Local().Format("2006-01-02 15:04:05")
			}
			t.AppendRow(table.Row{me.ID, me.Email, me.FullName(), yesNo(me.IsStaff), yesNo(me.IsTenant), expiry})
			t.Render()
			return nil
		},
	}
}
