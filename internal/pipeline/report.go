package pipeline

import (
	"fmt"
	"strconv"

	"github.com/guptarohit/asciigraph"
	"github.com/olekukonko/tablewriter"
)

// render writes the full console report: descriptive statistics, correlation
// and ANOVA tables, the forest baseline, the training curve, and the two
// prediction lines.
func (p *Pipeline) render(res *Result) {
	fmt.Fprintf(p.out, "Deadlift analysis: %d of %d rows after filtering\n\n", res.FilteredRows, res.LoadedRows)

	fmt.Fprintln(p.out, "Descriptive statistics")
	summary := tablewriter.NewWriter(p.out)
	summary.SetHeader([]string{"Column", "N", "Min", "Max", "Mean", "Std"})
	for _, s := range res.Summary {
		summary.Append([]string{
			s.Name,
			strconv.Itoa(s.N),
			formatFloat(s.Min),
			formatFloat(s.Max),
			formatFloat(s.Mean),
			formatFloat(s.Std),
		})
	}
	summary.Render()
	fmt.Fprintln(p.out)

	fmt.Fprintln(p.out, "Pearson correlation matrix")
	corr := tablewriter.NewWriter(p.out)
	corr.SetHeader(append([]string{""}, res.Corr.Columns...))
	for i, name := range res.Corr.Columns {
		row := []string{name}
		for j := range res.Corr.Columns {
			row = append(row, fmt.Sprintf("%.3f", res.Corr.At(i, j)))
		}
		corr.Append(row)
	}
	corr.Render()
	fmt.Fprintln(p.out)

	fmt.Fprintln(p.out, "One-way ANOVA against Best3DeadliftKg")
	anova := tablewriter.NewWriter(p.out)
	anova.SetHeader([]string{"Feature", "Levels", "F", "p", "df"})
	for _, a := range res.ANOVA {
		anova.Append([]string{
			a.Feature,
			strconv.Itoa(len(a.GroupMeans)),
			fmt.Sprintf("%.2f", a.F),
			fmt.Sprintf("%.4g", a.P),
			fmt.Sprintf("(%d, %d)", a.DFBetween, a.DFWithin),
		})
	}
	anova.Render()
	fmt.Fprintln(p.out)

	fmt.Fprintf(p.out, "Random forest baseline (OOB MSE: %.2f kg^2)\n", res.ForestOOBMSE)
	imp := tablewriter.NewWriter(p.out)
	imp.SetHeader([]string{"Feature", "Importance"})
	for i, name := range res.ForestFeatures {
		imp.Append([]string{name, fmt.Sprintf("%.3f", res.ForestImportances[i])})
	}
	imp.Render()
	fmt.Fprintln(p.out)

	fmt.Fprintf(p.out, "Network training: %d epochs, best epoch %d, early stop: %v\n",
		res.History.Epochs(), res.History.BestEpoch+1, res.History.StoppedEarly)
	if len(res.History.ValLoss) > 1 {
		fmt.Fprintln(p.out, asciigraph.Plot(res.History.ValLoss,
			asciigraph.Height(10),
			asciigraph.Caption("validation loss by epoch"),
		))
	}
	fmt.Fprintf(p.out, "Test MSE (scaled): %.5f, test RMSE: %.2f kg\n\n", res.TestMSE, res.TestRMSEKg)

	fmt.Fprintf(p.out, "%.1f kg\n", res.PredictedKg)
	fmt.Fprintf(p.out, "%.1f lbs\n", res.PredictedLb)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
