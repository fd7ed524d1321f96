package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ecomart/backend/internal/domain"
)

func newProductsCmd(st *state) *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "products",
		Short: "List catalog products",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			products := st.app.Products.All()
			if category != "" {
				filtered := products[:0]
				for _, p := range products {
					if strings.EqualFold(string(p.Category), category) {
						filtered = append(filtered, p)
					}
				}
				products = filtered
			}
			return st.render(cmd.OutOrStdout(), products, func(w io.Writer) {
				for _, p := range products {
					writeProductLine(w, p)
				}
			})
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "Only list products in this category")
	return cmd
}

func newSearchCmd(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search products and show sustainable picks",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := st.app.Services.Search.Search(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			return st.render(cmd.OutOrStdout(), result, func(w io.Writer) {
				fmt.Fprintf(w, "Matches for %q (%d):\n", result.Query, len(result.Matches))
				for _, p := range result.Matches {
					writeProductLine(w, p)
				}
				fmt.Fprintln(w, "Sustainable picks:")
				for _, p := range result.Recommendations {
					writeProductLine(w, p)
				}
			})
		},
	}
}

func newSuggestCmd(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "suggest <prefix>",
		Short: "Type-ahead suggestions for a prefix",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			suggestions := st.app.Services.Search.Suggest(strings.Join(args, " "))
			return st.render(cmd.OutOrStdout(), suggestions, func(w io.Writer) {
				for _, s := range suggestions {
					fmt.Fprintln(w, s)
				}
			})
		},
	}
}

func newAlternativesCmd(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "alternatives <product-id>",
		Short: "Greener substitutes for a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := st.app.Services.Recommend.AlternativesFor(args[0])
			if err != nil {
				return err
			}
			return st.render(cmd.OutOrStdout(), result, func(w io.Writer) {
				if len(result.Alternatives) == 0 {
					fmt.Fprintln(w, "No greener alternatives found.")
					return
				}
				for _, a := range result.Alternatives {
					fmt.Fprintf(w, "%-4s %-40s score %.2f  %s\n", a.Product.ID, a.Product.Name, a.OverallScore, a.SustainabilityReason)
				}
				fmt.Fprintf(w, "Sustainability impact: %+d points\n", result.MaxImpact)
			})
		},
	}
}

func newMaterialsCmd(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "materials <product-id>",
		Short: "Material breakdown of a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			analysis, err := st.app.Services.Materials.AnalyzeByID(args[0])
			if err != nil {
				return err
			}
			return st.render(cmd.OutOrStdout(), analysis, func(w io.Writer) {
				fmt.Fprintf(w, "Product %s: score %d (%s)\n", analysis.ProductID, analysis.ProductScore, analysis.ProductScoreBand)
				for _, m := range analysis.Materials {
					if !m.Available {
						fmt.Fprintf(w, "  %s: %s\n", m.Name, m.Message)
						continue
					}
					fmt.Fprintf(w, "  %s: %d/10 %s (%s)", m.Name, m.Info.SustainabilityScore, m.Info.Category, m.ScoreBand)
					if len(m.Alternatives) > 0 {
						fmt.Fprintf(w, " alternatives: %s", strings.Join(m.Alternatives, ", "))
					}
					fmt.Fprintln(w)
				}
			})
		},
	}
}

func writeProductLine(w io.Writer, p domain.Product) {
	fmt.Fprintf(w, "%-4s %-40s %-14s %3d  $%.2f\n", p.ID, p.Name, p.Category, p.SustainabilityScore, p.Price)
}
