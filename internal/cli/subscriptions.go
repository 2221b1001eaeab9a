package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"subtrack/internal/dto"
	"subtrack/internal/models"
	"subtrack/internal/ui"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const dateLayout = "2006-01-02"

func subscriptionsCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "subscriptions",
		Aliases: []string{"subs", "s"},
		Short:   "List and manage subscriptions through the API",
	}

	cmd.AddCommand(subscriptionsListCmd(opts))
	cmd.AddCommand(subscriptionsAddCmd(opts))
	cmd.AddCommand(subscriptionsEditCmd(opts))
	cmd.AddCommand(subscriptionsDeleteCmd(opts))
	return cmd
}

func subscriptionsListCmd(opts *rootOptions) *cobra.Command {
	var categoryID string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Show the sidebar and the subscription table",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			p := opts.newPage(ctx)
			if err := p.load(ctx, categoryID); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			renderSidebar(out, p.sidebar.Items())
			fmt.Fprintln(out)
			renderTable(out, p.table.Rows())
			return nil
		},
	}

	cmd.Flags().StringVar(&categoryID, "category", models.AllCategoriesID, "category id or \"all\"")
	return cmd
}

func subscriptionsAddCmd(opts *rootOptions) *cobra.Command {
	fields := &formFlags{}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a subscription",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			p := opts.newPage(ctx)
			if err := p.load(ctx, fields.category); err != nil {
				return err
			}
			return p.submit(ctx, cmd, p.table.New(), fields)
		},
	}

	fields.register(cmd.Flags())
	_ = cmd.MarkFlagRequired("company")
	return cmd
}

func subscriptionsEditCmd(opts *rootOptions) *cobra.Command {
	fields := &formFlags{}

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Replace a subscription; only the given flags change",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p := opts.newPage(ctx)
			if err := p.load(ctx, models.AllCategoriesID); err != nil {
				return err
			}
			form, err := p.table.Edit(ctx, args[0])
			if err != nil {
				printNotifications(cmd.ErrOrStderr(), p.notify)
				return err
			}
			return p.submit(ctx, cmd, form, fields)
		},
	}

	fields.register(cmd.Flags())
	return cmd
}

func subscriptionsDeleteCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a subscription",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p := opts.newPage(ctx)
			if err := p.load(ctx, models.AllCategoriesID); err != nil {
				return err
			}

			p.table.ConfirmDelete(args[0])
			err := p.table.Delete(ctx)
			printNotifications(cmd.OutOrStdout(), p.notify)
			if err != nil {
				return err
			}
			renderSidebar(cmd.OutOrStdout(), p.sidebar.Items())
			return nil
		},
	}
}

// load - первичная загрузка страницы: сайдбар, затем таблица выбранной категории
func (p *page) load(ctx context.Context, categoryID string) error {
	if err := p.sidebar.Load(ctx); err != nil {
		return fmt.Errorf("load categories: %w", err)
	}
	if categoryID == "" {
		categoryID = models.AllCategoriesID
	}
	p.sidebar.Select(categoryID)
	if err := p.table.Err(); err != nil {
		return fmt.Errorf("load subscriptions: %w", err)
	}
	return nil
}

func (p *page) submit(ctx context.Context, cmd *cobra.Command, form *ui.Form, fields *formFlags) error {
	if err := fields.apply(form, cmd.Flags()); err != nil {
		return err
	}

	saved, err := form.Submit(ctx)
	printNotifications(cmd.OutOrStdout(), p.notify)
	if err != nil {
		if errs := form.Errors(); len(errs) > 0 {
			printFieldErrors(cmd.ErrOrStderr(), errs)
		}
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", titleStyle.Render(saved.Company), subtleStyle.Render(saved.ID))
	renderTable(cmd.OutOrStdout(), p.table.Rows())
	return nil
}

// formFlags - поля формы подписки в виде флагов
type formFlags struct {
	company        string
	description    string
	frequency      int
	value          float64
	currency       string
	cycle          string
	kind           string
	recurring      bool
	nextPayment    string
	contractExpiry string
	urlLink        string
	paymentMethod  string
	category       string
	notes          string
	notesIncluded  bool
	tags           []string
}

func (f *formFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.company, "company", "", "company name")
	fs.StringVar(&f.description, "description", "", "description")
	fs.IntVar(&f.frequency, "frequency", 1, "billing frequency")
	fs.Float64Var(&f.value, "value", 0, "amount per cycle")
	fs.StringVar(&f.currency, "currency", "USD", "currency code")
	fs.StringVar(&f.cycle, "cycle", string(models.CycleMonthly), "Daily, Weekly, Monthly or Yearly")
	fs.StringVar(&f.kind, "type", string(models.TypeSubscription), "Subscription, Trial, Lifetime or Revenue")
	fs.BoolVar(&f.recurring, "recurring", true, "recurring payment")
	fs.StringVar(&f.nextPayment, "next-payment", "", "next payment date (YYYY-MM-DD)")
	fs.StringVar(&f.contractExpiry, "contract-expiry", "", "contract expiry date (YYYY-MM-DD)")
	fs.StringVar(&f.urlLink, "url", "", "link to the service")
	fs.StringVar(&f.paymentMethod, "payment-method", "", "PayPal, Credit Card, Free or any text")
	fs.StringVar(&f.category, "category", "", "category id; empty string removes the category")
	fs.StringVar(&f.notes, "notes", "", "notes")
	fs.BoolVar(&f.notesIncluded, "notes-included", false, "show notes with the subscription")
	fs.StringSliceVar(&f.tags, "tag", nil, "tag id (repeatable)")
}

// apply переносит в форму только явно заданные флаги
func (f *formFlags) apply(form *ui.Form, fs *pflag.FlagSet) error {
	nextPayment, err := parseDate(f.nextPayment)
	if err != nil {
		return fmt.Errorf("--next-payment: %w", err)
	}
	contractExpiry, err := parseDate(f.contractExpiry)
	if err != nil {
		return fmt.Errorf("--contract-expiry: %w", err)
	}

	form.Update(func(v *dto.CreateSubscriptionRequest) {
		if fs.Changed("company") {
			v.Company = f.company
		}
		if fs.Changed("description") {
			v.Description = &f.description
		}
		if fs.Changed("frequency") {
			v.Frequency = f.frequency
		}
		if fs.Changed("value") {
			v.Value = &f.value
		}
		if fs.Changed("currency") {
			v.Currency = f.currency
		}
		if fs.Changed("cycle") {
			v.Cycle = models.BillingCycle(f.cycle)
		}
		if fs.Changed("type") {
			v.Type = models.SubscriptionType(f.kind)
		}
		if fs.Changed("recurring") {
			v.Recurring = &f.recurring
		}
		if fs.Changed("next-payment") {
			v.NextPaymentDate = nextPayment
		}
		if fs.Changed("contract-expiry") {
			v.ContractExpiry = contractExpiry
		}
		if fs.Changed("url") {
			v.URLLink = &f.urlLink
		}
		if fs.Changed("payment-method") {
			v.PaymentMethod = &f.paymentMethod
		}
		if fs.Changed("category") {
			v.CategoryID = &f.category
		}
		if fs.Changed("notes") {
			v.Notes = &f.notes
		}
		if fs.Changed("notes-included") {
			v.NotesIncluded = &f.notesIncluded
		}
		if fs.Changed("tag") {
			v.Tags = f.tags
		}
	})
	return nil
}

var errBadDate = errors.New("expected YYYY-MM-DD")

func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, errBadDate
	}
	return &t, nil
}
