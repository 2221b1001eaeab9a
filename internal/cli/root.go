// Package cli - команды subtrack: сервер API и консольный интерфейс поверх него.
package cli

import (
	"context"
	"time"

	"subtrack/internal/client"
	"subtrack/internal/config"
	"subtrack/internal/invalidate"
	"subtrack/internal/logger"
	"subtrack/internal/ui"
	"subtrack/internal/validator"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
)

type rootOptions struct {
	configPath     string
	apiURL         string
	token          string
	organizationID string
	locale         string

	cfg *config.Config
}

// NewRootCmd собирает дерево команд
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "subtrack",
		Short:         "Subscription tracking: API server and console client",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			opts.cfg = cfg
			logger.Init(cfg.Server.Env)
			return nil
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default: $CONFIG_PATH or config/config.yaml)")
	flags.StringVar(&opts.apiURL, "api-url", "", "API base URL (default: client.base_url from config)")
	flags.StringVar(&opts.token, "token", "", "bearer token (default: client.token from config)")
	flags.StringVar(&opts.organizationID, "org", "", "organization id; empty means personal records")
	flags.StringVar(&opts.locale, "locale", "en", "locale for amounts")

	cmd.AddCommand(serveCmd(opts))
	cmd.AddCommand(migrateCmd(opts))
	cmd.AddCommand(seedCmd(opts))
	cmd.AddCommand(tokenCmd(opts))
	cmd.AddCommand(subscriptionsCmd(opts))
	cmd.AddCommand(categoriesCmd(opts))

	return cmd
}

// Execute запускает корневую команду
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

// page - view-модели одной страницы подписок, связанные общей шиной и кэшем
type page struct {
	client  *client.Client
	cache   *ui.Cache
	notify  *ui.Recorder
	sidebar *ui.Sidebar
	table   *ui.Table
}

func (o *rootOptions) newPage(ctx context.Context) *page {
	baseURL := o.apiURL
	if baseURL == "" {
		baseURL = o.cfg.Client.BaseURL
	}
	token := o.token
	if token == "" {
		token = o.cfg.Client.Token
	}

	lang, err := language.Parse(o.locale)
	if err != nil {
		lang = language.English
	}

	bus := invalidate.NewBus()
	api := client.New(baseURL, token, client.WithBus(bus), client.WithBreaker(3, 10*time.Second))
	cache := ui.NewCache(bus)
	notify := &ui.Recorder{}

	p := &page{client: api, cache: cache, notify: notify}
	p.table = ui.NewTable(api, cache, validator.New(), notify, o.organizationID, lang)
	p.sidebar = ui.NewSidebar(api, cache, notify, o.organizationID, func(categoryID *string) {
		if err := p.table.SetCategory(ctx, categoryID); err != nil {
			logger.CtxWarn(ctx, "table load after category select failed", "error", err.Error())
		}
	})
	return p
}
