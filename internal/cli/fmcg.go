package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"DashPull/internal/domain/models"
	"DashPull/internal/repository"
	"DashPull/internal/usecase"
	xhttp "DashPull/pkg/http"
)

func newFMCGCommand(o *options) *cobra.Command {
	var (
		source string
		req    models.FMCGRequest
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "fmcg",
		Short: "Load the FMCG document and print KPIs and the insight",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if verr := xhttp.ValidateStruct(&req); verr != nil {
				return validationError(verr)
			}
			cfg, err := o.config()
			if err != nil {
				return err
			}
			if source == "" {
				source = cfg.Sources.FMCGURL
			}
			l := o.logger(cmd)
			src := repository.NewFMCGSource(source,
				repository.WithHTTPClient(xhttp.NewClient(xhttp.WithTimeout(cfg.Sources.Timeout))),
				repository.WithLogger(l),
			)
			v := usecase.NewFMCGUseCase(src, nil, nil, l).View(cmd.Context(), req)

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(map[string]interface{}{
					"status":  v.Status,
					"notice":  v.Notice,
					"kpis":    v.KPIs,
					"insight": v.Insight,
				})
			}
			if v.Degraded() {
				return fmt.Errorf("%s (%s)", v.Notice, source)
			}
			if err := printKPIs(out, v.KPIs); err != nil {
				return err
			}
			if v.Insight != nil {
				fmt.Fprintf(out, "\n%s\n%s\n", v.Insight.Title, v.Insight.Text)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&source, "source", "", "document URL or file path (defaults to sources.fmcg_url)")
	cmd.Flags().StringVar(&req.Commodity, "commodity", models.AllCommodities, "all, Cocoa, Coffee, Sugar or Wheat")
	cmd.Flags().StringVar(&req.Lang, "lang", models.LangFR, "fr or en")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}
