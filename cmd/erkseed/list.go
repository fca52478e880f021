package main

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/eureka-residences/erkseed/client"
)

// lister fetches one page of a resource and renders it.
type lister func(ctx context.Context, c *client.Client, params map[string]string, domain string, w io.Writer) error

var listers = map[string]lister{
	"buildings": func(ctx context.Context, c *client.Client, params map[string]string, _ string, w io.Writer) error {
		items, err := c.ListBuildings(ctx, params)
		if err != nil {
			return err
		}
		t := newTable(w)
		t.AppendHeader(table.Row{"ID", "Name", "Code", "Address", "Floors", "Active"})
		for _, b := range items {
			t.AppendRow(table.Row{b.ID, b.Name, b.Code, b.Address, b.FloorsCount, yesNo(b.IsActive)})
		}
		t.Render()
		return nil
	},
	"floors": func(ctx context.Context, c *client.Client, params map[string]string, _ string, w io.Writer) error {
		items, err := c.ListFloors(ctx, params)
		if err != nil {
			return err
		}
		t := newTable(w)
		t.AppendHeader(table.Row{"ID", "Building", "Number", "Code", "Name"})
		for _, f := range items {
			t.AppendRow(table.Row{f.ID, f.Building, f.Number, f.ChemicalCode, f.Name})
		}
		t.Render()
		return nil
	},
	"unit-types": func(ctx context.Context, c *client.Client, params map[string]string, _ string, w io.Writer) error {
		items, err := c.ListUnitTypes(ctx, params)
		if err != nil {
			return err
		}
		t := newTable(w)
		t.AppendHeader(table.Row{"ID", "Code", "Name", "Rentable", "Color"})
		for _, ut := range items {
			t.AppendRow(table.Row{ut.ID, ut.Code, ut.Name, yesNo(ut.IsRentable), ut.ColorDisplay})
		}
		t.Render()
		return nil
	},
	"operation-categories": func(ctx context.Context, c *client.Client, params map[string]string, _ string, w io.Writer) error {
		items, err := c.ListOperationCategories(ctx, params)
		if err != nil {
			return err
		}
		t := newTable(w)
		t.AppendHeader(table.Row{"ID", "Code", "Name", "Color", "Icon"})
		for _, oc := range items {
			t.AppendRow(table.Row{oc.ID, oc.Code, oc.Name, oc.ColorCode, oc.IconName})
		}
		t.Render()
		return nil
	},
	"users": func(ctx context.Context, c *client.Client, params map[string]string, _ string, w io.Writer) error {
		items, err := c.ListUsers(ctx, params)
		if err != nil {
			return err
		}
		renderUsers(w, items)
		return nil
	},
	"tenant-users": func(ctx context.Context, c *client.Client, params map[string]string, domain string, w io.Writer) error {
		items, err := c.ListTenantUsers(ctx, params, domain)
		if err != nil {
			return err
		}
		renderUsers(w, items)
		return nil
	},
}

func renderUsers(w io.Writer, users []client.User) {
	t := newTable(w)
	t.AppendHeader(table.Row{"ID", "Email", "Name", "Staff", "Tenant"})
	for _, u := range users {
		t.AppendRow(table.Row{u.ID, u.Email, u.FullName(), yesNo(u.IsStaff), yesNo(u.IsTenant)})
	}
	t.Render()
}

func listResources() []string {
	names := make([]string, 0, len(listers))
	for n := range listers {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func newListCmd(opts *rootOptions) *cobra.Command {
	var (
		search string
		params map[string]string
	)

	cmd := &cobra.Command{
		Use:       "list <resource>",
		Short:     "Print one page of a resource",
		Long:      "Print one page of a resource: " + strings.Join(listResources(), ", ") + ".",
		Args:      cobra.ExactArgs(1),
		ValidArgs: listResources(),
		RunE: func(cmd *cobra.Command, args []string) error {
			run, ok := listers[args[0]]
			if !ok {
				return fmt.Errorf("unknown resource %q (known: %s)", args[0], strings.Join(listResources(), ", "))
			}
			q := make(map[string]string, len(params)+1)
			for k, v := range params {
				q[k] = v
			}
			if search != "" {
				q["search"] = search
			}

			c, err := opts.login(cmd.Context())
			if err != nil {
				return err
			}
			defer c.Close()
			return run(cmd.Context(), c, q, opts.cfg.AccountDomain, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "server-side search term")
	cmd.Flags().StringToStringVar(&params, "param", nil, "extra query parameter, key=value (repeatable)")
	return cmd
}
