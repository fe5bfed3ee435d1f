package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"DashPull/internal/di"
	"DashPull/internal/domain/models"
	"DashPull/internal/repository"
	"DashPull/internal/services/chart"
	"DashPull/internal/usecase"
	xhttp "DashPull/pkg/http"
)

func newChurnCommand(o *options) *cobra.Command {
	var (
		f       models.ChurnFilter
		segment string
		lang    string
		top     int
		asJSON  bool
	)
	cmd := &cobra.Command{
		Use:   "churn",
		Short: "Filter the synthetic churn population and print KPIs and top rows",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f.Segment = models.Segment(segment)
			if verr := xhttp.ValidateStruct(&f); verr != nil {
				return validationError(verr)
			}
			cfg, err := o.config()
			if err != nil {
				return err
			}
			sc, err := di.ProvideSynthConfig(cfg)
			if err != nil {
				return err
			}
			l := o.logger(cmd)
			uc := usecase.NewChurnUseCase(repository.NewPopulationSource(sc, models.DefaultSegmentRules(), nil, l), nil, nil, l)

			res, err := uc.Query(cmd.Context(), f)
			if err != nil {
				return fmt.Errorf("churn population: %w", err)
			}
			rows := res.Records
			if top > 0 && len(rows) > top {
				rows = rows[:top]
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(map[string]interface{}{
					"state":     res.State,
					"count":     res.Count,
					"total_roi": res.TotalROI,
					"records":   rows,
				})
			}

			style := chart.NewStyle("", lang)
			if err := printKPIs(out, chart.ChurnKPIs(res.Count, res.TotalROI, style)); err != nil {
				return err
			}
			if len(rows) == 0 {
				fmt.Fprintln(out, chart.Text(style.Lang, "churn.no_match"))
				return nil
			}
			fmt.Fprintln(out)
			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
			fmt.Fprintln(tw, "ID\tSegment\tCLV\tScore\tROI\t")
			for _, c := range rows {
				fmt.Fprintf(tw, "%d\t%s\t%.2f\t%.3f\t%.2f\t\n", c.ID, c.Segment, c.CLV, c.Score, c.ExpectedROI)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().Float64Var(&f.MinScore, "min-score", 0, "minimum churn score (0-1)")
	cmd.Flags().Float64Var(&f.Budget, "budget", 0, "minimum expected ROI per client")
	cmd.Flags().StringVar(&segment, "segment", string(models.SegmentAll), "All, High, Mid or Low")
	cmd.Flags().StringVar(&f.SortBy, "sort-by", "roi", "roi, clv, score or id")
	cmd.Flags().StringVar(&f.Order, "order", "desc", "asc or desc")
	cmd.Flags().StringVar(&lang, "lang", models.LangFR, "fr or en")
	cmd.Flags().IntVar(&top, "top", 10, "rows to print, 0 for all")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}
