package resolve

import (
	"github.com/bobmcallan/statement-report/internal/document"
	"github.com/bobmcallan/statement-report/internal/models"
)

// NonBankAssessment resolves the risk level and summary of a non-bank
// financing block. The risk level may sit at the top level or inside the
// assessment object, and the nested one wins. A free-text assessment is the
// summary itself.
func NonBankAssessment(nb document.Node) (models.Level, string) {
	risk := models.Level(nb.Str("risk_level", string(models.LevelLow)))

	switch a := nb["assessment"].(type) {
	case string:
		return risk, a
	default:
		n, ok := document.AsNode(a)
		if !ok {
			return risk, ""
		}
		risk = models.Level(n.Str("risk_level", string(risk)))
		return risk, n.Str("summary", "")
	}
}
