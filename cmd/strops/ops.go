package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/strops/pkg/core"
	"github.com/aretw0/strops/pkg/report"
)

func newOpCmd(a *app, op core.Operation, use, short string, aliases ...string) *cobra.Command {
	cmd := &cobra.Command{
		Use:     use + " [text...]",
		Aliases: aliases,
		Short:   short,
		Long:    short + ".\nArguments are joined with single spaces; with no arguments the text is read from stdin.",
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := a.format(cmd)
			if err != nil {
				return err
			}
			text, err := readText(cmd, args)
			if err != nil {
				return err
			}

			res, err := a.svc.Run(cmd.Context(), op, text)
			if err != nil {
				return err
			}
			return report.WriteResults(cmd.OutOrStdout(), format, []core.Result{res})
		},
	}
	addFormatFlag(cmd)
	return cmd
}

func newAllCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "all [text...]",
		Short: "Run every operation on the text",
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := a.format(cmd)
			if err != nil {
				return err
			}
			text, err := readText(cmd, args)
			if err != nil {
				return err
			}

			results, err := a.svc.RunAll(cmd.Context(), text)
			if err != nil {
				return err
			}
			return report.WriteResults(cmd.OutOrStdout(), format, results)
		},
	}
	addFormatFlag(cmd)
	return cmd
}
