// Package report turns a classified match set into what the user actually
// sees: optional filters, dashboard counts, and delimited exports.
package report

import "github.com/genomatch/genomatch/internal/models"

// FilterOptions are the presentation-layer switches. None of them affect the
// underlying match set.
type FilterOptions struct {
	// ConfirmedOnly hides positional matches whose allele did not match.
	ConfirmedOnly bool
	// Strict hides records whose significance has conflicting interpretations.
	Strict bool
	// HideAmbiguous hides strand-ambiguous (palindrome) matches, which are
	// likely false positives on some genotyping chips.
	HideAmbiguous bool
}

// View is a filtered slice of results plus what the filters removed.
type View struct {
	Results         []models.MatchResult
	HiddenAmbiguous int
}

// Apply filters results for display. The input order is preserved.
func Apply(results []models.MatchResult, opts FilterOptions) View {
	view := View{Results: make([]models.MatchResult, 0, len(results))}
	for _, r := range results {
		if opts.ConfirmedOnly && r.Status != models.StatusConfirmedRisk {
			continue
		}
		if opts.Strict && r.Ref.HasConflictingSignificance() {
			continue
		}
		if opts.HideAmbiguous && r.IsAmbiguous {
			view.HiddenAmbiguous++
			continue
		}
		view.Results = append(view.Results, r)
	}
	return view
}

// Summary holds the dashboard counters for a view.
type Summary struct {
	Total           int
	Homozygous      int
	Heterozygous    int
	HiddenAmbiguous int
}

// Summarize counts the view's results by zygosity.
func (v View) Summarize() Summary {
	s := Summary{Total: len(v.Results), HiddenAmbiguous: v.HiddenAmbiguous}
	for _, r := range v.Results {
		switch r.Zygosity {
		case models.ZygosityHomozygous:
			s.Homozygous++
		case models.ZygosityHeterozygous:
			s.Heterozygous++
		}
	}
	return s
}
