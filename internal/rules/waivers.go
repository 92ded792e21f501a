package rules

import (
	"strings"

	"github.com/codewithboateng/stylint/internal/storage"
	"github.com/codewithboateng/stylint/internal/sym"
)

// ApplyWaivers filters out violations matched by any active waiver.
// Returns (kept, waivedCount).
func ApplyWaivers(in []sym.Violation, waivers []storage.Waiver) ([]sym.Violation, int) {
	if len(waivers) == 0 || len(in) == 0 {
		return in, 0
	}
	var out []sym.Violation
	waived := 0
nextViolation:
	for _, v := range in {
		for _, w := range waivers {
			if !eqCI(v.RuleID, w.RuleID) {
				continue
			}
			if w.File != "" && !eqCI(v.File, w.File) {
				continue
			}
			if w.Symbol != "" && !eqCI(v.Symbol, w.Symbol) {
				continue
			}
			if w.PatternSub != "" {
				ps := strings.ToUpper(w.PatternSub)
				if !strings.Contains(strings.ToUpper(v.Evidence), ps) &&
					!strings.Contains(strings.ToUpper(v.Message), ps) {
					continue
				}
			}
			waived++
			continue nextViolation
		}
		out = append(out, v)
	}
	return out, waived
}

func eqCI(a, b string) bool { return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b)) }
