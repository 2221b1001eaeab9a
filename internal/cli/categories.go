package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func categoriesCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "categories",
		Aliases: []string{"cat", "c"},
		Short:   "List and manage subscription categories",
	}

	cmd.AddCommand(&cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Show categories with subscription counts",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			p := opts.newPage(ctx)
			if err := p.sidebar.Load(ctx); err != nil {
				return err
			}
			renderSidebar(cmd.OutOrStdout(), p.sidebar.Items())
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "add <name>",
		Short: "Create a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p := opts.newPage(ctx)
			if err := p.sidebar.Load(ctx); err != nil {
				return err
			}
			return p.finish(cmd, p.sidebar.CreateCategory(ctx, args[0]))
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "rename <id> <name>",
		Short: "Rename a category",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p := opts.newPage(ctx)
			if err := p.sidebar.Load(ctx); err != nil {
				return err
			}
			return p.finish(cmd, p.sidebar.RenameCategory(ctx, args[0], args[1]))
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a category; its subscriptions stay without a category",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p := opts.newPage(ctx)
			if err := p.sidebar.Load(ctx); err != nil {
				return err
			}
			return p.finish(cmd, p.sidebar.DeleteCategory(ctx, args[0]))
		},
	})

	return cmd
}

// finish печатает уведомления и, если действие прошло, обновленный сайдбар.
// Сайдбар к этому моменту уже перечитан по инвалидации тегов.
func (p *page) finish(cmd *cobra.Command, err error) error {
	printNotifications(cmd.OutOrStdout(), p.notify)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout())
	renderSidebar(cmd.OutOrStdout(), p.sidebar.Items())
	return nil
}
