package cli

import (
	"github.com/spf13/cobra"

	"github.com/pathmark/pathmark/pkg/errors"
	"github.com/pathmark/pathmark/pkg/server"
	"github.com/pathmark/pathmark/pkg/store"
)

func newServeCmd(cfg Config) *cobra.Command {
	var (
		addr     string
		backend  string
		storeDir string
		mongoURI string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP service",
		Long: `Serve exposes conversion, validation, and the pathway archive over
HTTP. The archive backend is in-memory unless --store selects the file or
mongo backend.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			var (
				st  store.Store
				err error
			)
			switch backend {
			case "memory":
				st = store.NewMemoryStore()
			case "file":
				st, err = store.NewFileStore(storeDir)
				if err != nil {
					return err
				}
			case "mongo":
				st, err = store.NewMongoStore(ctx, store.MongoConfig{URI: mongoURI})
				if err != nil {
					return err
				}
			default:
				return errors.New(errors.ErrCodeInvalidInput, "unknown store backend %q", backend)
			}
			defer func() { _ = st.Close(ctx) }()

			logger.Info("starting service", "addr", addr, "store", backend)
			return server.New(server.Config{Addr: addr}, st, logger).ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", cfg.Serve.Addr, "listen address")
	cmd.Flags().StringVar(&backend, "store", cfg.Serve.Store, "archive backend (memory, file, or mongo)")
	cmd.Flags().StringVar(&storeDir, "store-dir", cfg.Serve.StoreDir, "archive directory for --store file")
	cmd.Flags().StringVar(&mongoURI, "mongo-uri", cfg.Serve.MongoURI, "mongodb connection URI")
	return cmd
}
