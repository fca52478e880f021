package main

import (
	"errors"
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/eureka-residences/erkseed/internal/seed"
)

func newSeedCmd(opts *rootOptions) *cobra.Command {
	var (
		all        bool
		accounts   string
		building   string
		failFast   bool
		showIDs    bool
		userParams map[string]string
	)

	cmd := &cobra.Command{
		Use:   "seed [steps...]",
		Short: "Run seed steps in order",
		Long: "Run the named seed steps in the order given, or every default step with --all.\n" +
			"A failed step is reported and the run goes on unless --fail-fast is set.\n" +
			"Use `erkseed steps` to list step names.",
		ValidArgs: seed.StepNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			steps := args
			switch {
			case all && len(args) > 0:
				return errors.New("name steps or use --all, not both")
			case all:
				steps = seed.DefaultOrder()
			case len(args) == 0:
				return errors.New("name at least one step, or use --all")
			}
			for _, name := range steps {
				if _, ok := seed.Lookup(name); !ok {
					return fmt.Errorf("unknown step %q; see `erkseed steps`", name)
				}
			}

			if accounts != "" {
				opts.cfg.AccountsFile = accounts
			}
			if building != "" {
				opts.cfg.BuildingSearch = building
			}

			c, err := opts.login(cmd.Context())
			if err != nil {
				return err
			}
			defer c.Close()

			s := seed.New(c, seed.Options{
				AccountDomain:  opts.cfg.AccountDomain,
				AccountsFile:   opts.cfg.AccountsFile,
				BuildingSearch: opts.cfg.BuildingSearch,
				UserParams:     userParams,
				FailFast:       failFast,
			})
			report, runErr := s.Run(cmd.Context(), steps)
			if report != nil {
				report.Render(cmd.OutOrStdout())
			}
			if showIDs {
				t := newTable(cmd.OutOrStdout())
				t.AppendHeader(table.Row{"Key", "ID"})
				reg := c.Registry()
				for _, k := range reg.Keys() {
					id, _ := reg.Get(k)
					t.AppendRow(table.Row{k, id})
				}
				t.Render()
			}

			if path := opts.cfg.MetricsFile; path != "" {
				if err := prometheus.WriteToTextfile(path, prometheus.DefaultGatherer); err != nil {
					log.Error().Err(err).Str("path", path).Msg("write metrics")
				} else {
					log.Info().Str("path", path).Msg("metrics written")
				}
			}
			return runErr
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "run every default step")
	cmd.Flags().StringVar(&accounts, "accounts", "", "tenant accounts spreadsheet, .xlsx or .csv (env ERKSEED_ACCOUNTS_FILE)")
	cmd.Flags().StringVar(&building, "building", "", "search term locating the building (env ERKSEED_BUILDING_SEARCH)")
	cmd.Flags().BoolVar(&failFast, "fail-fast", false, "stop at the first failed step")
	cmd.Flags().BoolVar(&showIDs, "show-ids", false, "print the ids the server assigned during the run")
	cmd.Flags().StringToStringVar(&userParams, "user-param", nil, "query parameter for the tenant user listing, key=value (repeatable, e.g. page_size=500)")
	return cmd
}

func newStepsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "steps",
		Short: "List seed steps in default order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t := newTable(cmd.OutOrStdout())
			t.AppendHeader(table.Row{"Step", "In --all", "Creates"})
			for _, st := range seed.Steps() {
				t.AppendRow(table.Row{st.Name, yesNo(st.Default), st.Description})
			}
			t.Render()
			return nil
		},
	}
}
