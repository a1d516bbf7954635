package study

import (
	"fmt"
	"strings"
)

// Report renders a run for human reading. This is presentation only;
// nothing parses it back.
func (r *Result) Report() string {
	var b strings.Builder
	fmt.Fprintf(&b, "dataset: %s (%d rows)\n", r.Config.Dataset, r.Table.Len())
	fmt.Fprintf(&b, "partition: train=%d test=%d (split=%.2f, seed=%d)\n",
		len(r.Partition.TrainIdx), len(r.Partition.TestIdx), r.Config.Split, r.Config.Seed)
	fmt.Fprintf(&b, "plan: %d folds x %d repeats\n\n", r.Compared.Plan.Folds, r.Compared.Plan.Repeats)

	fmt.Fprintf(&b, "%-20s %-36s %s\n", "spec", "features", "mean accuracy")
	for _, s := range r.Compared.Specs {
		marker := " "
		if s.Spec.Name == r.Selected.Name {
			marker = "*"
		}
		fmt.Fprintf(&b, "%s %-18s %-36s %.4f\n",
			marker, s.Spec.Name, strings.Join(s.Spec.Features(), "+"), s.Mean)
	}

	fmt.Fprintf(&b, "\nholdout confusion (positive=%s):\n%s", r.Positive, r.Confusion.String())
	fmt.Fprintf(&b, "accuracy=%.4f sensitivity=%.4f specificity=%.4f\n",
		r.Confusion.Accuracy(), r.Confusion.Sensitivity(), r.Confusion.Specificity())
	return b.String()
}
