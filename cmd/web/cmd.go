package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/creotizant/HCM-Landing/internal/catalog"
	"github.com/creotizant/HCM-Landing/internal/config"
	"github.com/creotizant/HCM-Landing/internal/observability"
)

var envFile string

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "web",
		Short:         "Creotizant marketing site",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "optional .env file with local overrides")

	root.AddCommand(newServeCmd())
	root.AddCommand(newCatalogCmd())
	return root
}

func newServeCmd() *cobra.Command {
	var (
		port      int
		templates string
		public    string
		content   string
		catFile   string
		dev       bool
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			overrides := map[string]string{}
			flags := cmd.Flags()
			if flags.Changed("port") {
				overrides["WEB_PORT"] = strconv.Itoa(port)
			}
			if flags.Changed("templates") {
				overrides["WEB_TEMPLATES_DIR"] = templates
			}
			if flags.Changed("public") {
				overrides["WEB_PUBLIC_DIR"] = public
			}
			if flags.Changed("content") {
				overrides["WEB_CONTENT_DIR"] = content
			}
			if flags.Changed("catalog") {
				overrides["WEB_CATALOG_FILE"] = catFile
			}
			if flags.Changed("dev") {
				overrides["WEB_DEV"] = strconv.FormatBool(dev)
			}

			cfg, err := config.Load(config.WithEnvFile(envFile), config.WithEnvMap(overrides))
			if err != nil {
				var verr *config.ValidationError
				if errors.As(err, &verr) {
					return fmt.Errorf("invalid configuration: %s", strings.Join(verr.Fields(), ", "))
				}
				return err
			}

			logger, err := observability.NewLogger(cfg.Log.Level)
			if err != nil {
				return fmt.Errorf("initialise logger: %w", err)
			}
			defer func() { _ = logger.Sync() }()
			logger = logger.Named("web")

			ctx := observability.WithLogger(cmd.Context(), logger)
			a, err := newApp(ctx, cfg, logger)
			if err != nil {
				logger.Error("failed to initialise site", zap.Error(err))
				return err
			}
			return a.serve(ctx)
		},
	}
	cmd.Flags().IntVar(&port, "port", 8080, "listen port (overrides WEB_PORT)")
	cmd.Flags().StringVar(&templates, "templates", "templates", "templates directory")
	cmd.Flags().StringVar(&public, "public", "public", "public assets directory")
	cmd.Flags().StringVar(&content, "content", "content", "markdown content directory")
	cmd.Flags().StringVar(&catFile, "catalog", "", "product catalog YAML replacing the embedded one")
	cmd.Flags().BoolVar(&dev, "dev", false, "reload templates when they change")
	return cmd
}

func newCatalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect the product catalog",
	}

	var listFile string
	list := &cobra.Command{
		Use:   "list",
		Short: "List catalog products",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat, err := openCatalog(listFile)
			if err != nil {
				return err
			}
			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"ID", "Name", "Category", "Variant", "Steps"})
			for _, p := range cat.Products() {
				t.AppendRow(table.Row{p.ID, p.Name, p.Category, p.VisualVariant, len(p.Workflow)})
			}
			t.AppendFooter(table.Row{"", "", "", "Total", cat.Len()})
			t.Render()
			return nil
		},
	}
	list.Flags().StringVar(&listFile, "file", "", "catalog YAML (default: embedded catalog)")

	var validateFile string
	validate := &cobra.Command{
		Use:   "validate",
		Short: "Parse and validate a catalog YAML file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat, err := catalog.LoadFile(validateFile)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d products, %d menu groups OK\n", validateFile, cat.Len(), len(cat.Menu()))
			return nil
		},
	}
	validate.Flags().StringVar(&validateFile, "file", "", "catalog YAML to validate")
	_ = validate.MarkFlagRequired("file")

	cmd.AddCommand(list, validate)
	return cmd
}

func openCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default(), nil
	}
	return catalog.LoadFile(path)
}
