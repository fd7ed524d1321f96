// Package commands implements the ecomart command line client. It runs the
// catalog services in-process against the configured (or embedded) data.
package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/ecomart/backend/config"
	"github.com/ecomart/backend/internal/app"
	"github.com/ecomart/backend/internal/logger"
)

// state is shared by every subcommand of one invocation
type state struct {
	format        string
	productsFile  string
	materialsFile string
	verbose       bool

	app *app.App
}

// NewRootCmd builds the ecomart command tree
func NewRootCmd() *cobra.Command {
	st := &state{}

	root := &cobra.Command{
		Use:   "ecomart",
		Short: "EcoMart - sustainable catalog tools",
		Long: `EcoMart - browse the sustainable product catalog from the terminal.

Available commands:
  products      - List catalog products
  search        - Search products and show sustainable picks
  suggest       - Type-ahead suggestions for a prefix
  alternatives  - Greener substitutes for a product
  materials     - Material breakdown of a product

Examples:
  ecomart search water bottle
  ecomart alternatives 5 --format json
  ecomart materials 9`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return st.open(cmd.Context())
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return st.close()
		},
	}

	root.PersistentFlags().StringVar(&st.format, "format", "text", "Output format: text, json, yaml")
	root.PersistentFlags().StringVar(&st.productsFile, "products", "", "Products YAML file (default: embedded catalog)")
	root.PersistentFlags().StringVar(&st.materialsFile, "materials", "", "Materials YAML file (default: embedded knowledge base)")
	root.PersistentFlags().BoolVarP(&st.verbose, "verbose", "v", false, "Log service activity to stderr")

	root.AddCommand(
		newProductsCmd(st),
		newSearchCmd(st),
		newSuggestCmd(st),
		newAlternativesCmd(st),
		newMaterialsCmd(st),
	)
	return root
}

func (st *state) open(ctx context.Context) error {
	switch st.format {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("unsupported format: %s (supported: text, json, yaml)", st.format)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if st.productsFile != "" {
		cfg.Catalog.ProductsFile = st.productsFile
	}
	if st.materialsFile != "" {
		cfg.Catalog.MaterialsFile = st.materialsFile
	}
	// One-shot runs never need shared state
	cfg.Store.Type = "memory"

	var zl *zap.Logger
	if st.verbose {
		if zl, err = logger.New("debug", "console"); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
	}

	if ctx == nil {
		ctx = context.Background()
	}
	st.app, err = app.Build(ctx, cfg, zl)
	return err
}

func (st *state) close() error {
	if st.app == nil {
		return nil
	}
	return st.app.Close()
}

// render writes v in the selected format; text output is delegated to text
func (st *state) render(w io.Writer, v any, text func(io.Writer)) error {
	switch st.format {
	case "json":
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal to JSON: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case "yaml":
		data, err := yaml.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to marshal to YAML: %w", err)
		}
		_, err = w.Write(data)
		return err
	default:
		text(w)
		return nil
	}
}
