package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pathmark/pathmark/pkg/gpml"
	"github.com/pathmark/pathmark/pkg/model"
	"github.com/pathmark/pathmark/pkg/xref"
)

func newInfoCmd(cfg Config) *cobra.Command {
	var resolve bool

	cmd := &cobra.Command{
		Use:   "info <file>",
		Short: "Summarize a pathway document",
		Long: `Info decodes a document and prints its metadata and element counts.
With --resolve, data source references are resolved against the built-in
registry and printed with their record URLs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			p, ver, err := gpml.ReadFile(ctx, args[0])
			if err != nil {
				return err
			}

			fmt.Println(StyleTitle.Render(p.Title))
			printField("Generation", string(ver))
			if p.Organism != "" {
				printField("Organism", p.Organism)
			}
			if p.Source != "" {
				printField("Source", p.Source)
			}
			if p.License != "" {
				printField("License", p.License)
			}
			printField("Board", fmt.Sprintf("%.0f x %.0f", p.BoardWidth, p.BoardHeight))
			for _, a := range p.Authors {
				printField("Author", a.Name)
			}

			printField("DataNodes", fmt.Sprintf("%d", len(p.DataNodes())))
			printField("States", fmt.Sprintf("%d", len(p.States())))
			printField("Interactions", fmt.Sprintf("%d", len(p.Interactions())))
			printField("Lines", fmt.Sprintf("%d", len(p.GraphicalLines())))
			printField("Labels", fmt.Sprintf("%d", len(p.Labels())))
			printField("Shapes", fmt.Sprintf("%d", len(p.Shapes())))
			printField("Groups", fmt.Sprintf("%d", len(p.Groups())))
			printField("Citations", fmt.Sprintf("%d", len(p.Citations())))

			if !resolve {
				return nil
			}

			resolver, closeCache, err := newResolver(ctx, cfg)
			if err != nil {
				return err
			}
			defer closeCache()

			fmt.Println()
			fmt.Println(StyleTitle.Render("References"))
			for _, dn := range p.DataNodes() {
				if dn.Xref.IsZero() {
					continue
				}
				entry, err := resolver.Resolve(ctx, dn.Xref)
				if err != nil {
					return err
				}
				if entry == nil {
					printWarn(fmt.Sprintf("%s: unknown data source %q", dn.TextLabel, dn.Xref.DataSource))
					logger.Debug("unresolved xref", "node", model.ID(dn), "source", dn.Xref.DataSource)
					continue
				}
				printField(dn.TextLabel, entry.URL)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&resolve, "resolve", "r", false, "resolve data source references")
	return cmd
}

// newResolver builds the xref resolver with the configured cache backend.
func newResolver(ctx context.Context, cfg Config) (xref.Resolver, func(), error) {
	var cache xref.Cache
	switch cfg.Xref.Cache {
	case "redis":
		rc, err := xref.NewRedisCache(ctx, xref.RedisConfig{Addr: cfg.Xref.RedisAddr})
		if err != nil {
			return nil, nil, err
		}
		cache = rc
	case "file":
		fc, err := xref.NewFileCache(cfg.Xref.CacheDir)
		if err != nil {
			return nil, nil, err
		}
		cache = fc
	default:
		cache = xref.NewMemoryCache()
	}

	var inner xref.Resolver = xref.NewStaticResolver()
	if cfg.Xref.Registry != "" {
		inner = xref.NewRemoteResolver(cfg.Xref.Registry)
	}
	resolver := xref.NewCachedResolver(inner, cache)
	return resolver, func() { _ = cache.Close() }, nil
}
