package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/at-ishikawa/keepsake/internal/profile"
)

func newProfileCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage local profiles",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List profiles, marking the current one",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				registry, err := newRegistry()
				if err != nil {
					return err
				}
				state, _, err := registry.Load()
				if err != nil {
					return fmt.Errorf("registry.Load() > %w", err)
				}
				current := color.New(color.FgGreen, color.Bold)
				for _, p := range state.Profiles {
					if p.Name == state.Current {
						current.Fprintf(cmd.OutOrStdout(), "* %s\n", p.Name)
						continue
					}
					fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", p.Name)
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "add NAME",
			Short: "Create a profile",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				registry, err := newRegistry()
				if err != nil {
					return err
				}
				if err := registry.Add(args[0]); err != nil {
					return fmt.Errorf("registry.Add() > %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Created profile %s\n", args[0])
				return nil
			},
		},
		&cobra.Command{
			Use:   "use NAME",
			Short: "Switch the current profile",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				registry, err := newRegistry()
				if err != nil {
					return err
				}
				if err := registry.Use(args[0]); err != nil {
					return fmt.Errorf("registry.Use() > %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Switched to profile %s\n", args[0])
				return nil
			},
		},
	)
	return cmd
}

func newRegistry() (*profile.Registry, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return profile.NewRegistry(cfg.Profiles.File), nil
}
