package diet

import "github.com/Maitreya04/greendotv3/internal/models"

// reduceVerdict folds the reason list into the three-way verdict: any
// blocking reason forces "no", otherwise any warning downgrades to "unsure".
func reduceVerdict(reasons []models.Reason) models.Verdict {
	verdict := models.VerdictYes
	for _, reason := range reasons {
		switch reason.Severity {
		case models.SeverityBlocking:
			return models.VerdictNo
		case models.SeverityWarning:
			verdict = models.VerdictUnsure
		}
	}
	return verdict
}

// confidence models how much ingredient information was available to
// analyze, not classification certainty. The reasons and verdict arguments
// are accepted for signature stability but do not participate in the score.
func confidence(text string, _ []models.Reason, _ models.Verdict) int {
	switch length := len(text); {
	case length > 20:
		return 100
	case length > 0:
		return 75
	default:
		return 50
	}
}
