package model

import "StockPulse/internal/domain/models"

// ClassMetrics is the precision/recall/F1 breakdown for one class.
type ClassMetrics struct {
	Class     int     `json:"class"`
	Label     string  `json:"label"`
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1        float64 `json:"f1"`
	Support   int     `json:"support"`
}

// Report is a per-class evaluation over the union of classes observed in
// the true labels and the predictions. Classes from the fixed {-1,0,1} set
// that never occur are left out rather than reported as zero rows.
type Report struct {
	Classes []ClassMetrics `json:"classes"`
}

// Accuracy is the fraction of positions where pred equals truth.
func Accuracy(pred, truth []int) float64 {
	if len(truth) == 0 {
		return 0
	}
	hits := 0
	for i := range truth {
		if pred[i] == truth[i] {
			hits++
		}
	}
	return float64(hits) / float64(len(truth))
}

// Classify builds the per-class report for one evaluation set.
func Classify(yTrue, yPred []int) Report {
	union := observedClasses(append(append([]int(nil), yTrue...), yPred...))

	var report Report
	for _, c := range union {
		var tp, fp, fn int
		for i := range yTrue {
			switch {
			case yPred[i] == c && yTrue[i] == c:
				tp++
			case yPred[i] == c:
				fp++
			case yTrue[i] == c:
				fn++
			}
		}
		m := ClassMetrics{Class: c, Label: models.DirectionLabel(c), Support: tp + fn}
		if tp+fp > 0 {
			m.Precision = float64(tp) / float64(tp+fp)
		}
		if tp+fn > 0 {
			m.Recall = float64(tp) / float64(tp+fn)
		}
		if m.Precision+m.Recall > 0 {
			m.F1 = 2 * m.Precision * m.Recall / (m.Precision + m.Recall)
		}
		report.Classes = append(report.Classes, m)
	}
	return report
}
