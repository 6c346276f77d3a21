package academic

import "github.com/shopspring/decimal"

var gradePoints = map[string]decimal.Decimal{
	"A":  decimal.RequireFromString("4.0"),
	"A-": decimal.RequireFromString("3.7"),
	"B+": decimal.RequireFromString("3.3"),
	"B":  decimal.RequireFromString("3.0"),
	"B-": decimal.RequireFromString("2.7"),
	"C+": decimal.RequireFromString("2.3"),
	"C":  decimal.RequireFromString("2.0"),
	"D":  decimal.RequireFromString("1.0"),
	"F":  decimal.Zero,
}

// GPA is a credit-weighted 4-point average.
type GPA struct {
	GPA          decimal.Decimal `json:"gpa"`
	TotalCredits decimal.Decimal `json:"totalCredits"`
}

// CalculateGPA weights every course holding a point-bearing letter (P, W and N/A are skipped)
// and positive credits.
func CalculateGPA(courses []Course) GPA {
	points, credits := decimal.Zero, decimal.Zero
	for _, c := range courses {
		p, ok := gradePoints[c.Grade]
		if !ok || !c.Credits.IsPositive() {
			continue
		}
		points = points.Add(p.Mul(c.Credits))
		credits = credits.Add(c.Credits)
	}
	if credits.IsZero() {
		return GPA{GPA: decimal.Zero, TotalCredits: decimal.Zero}
	}
	return GPA{GPA: points.DivRound(credits, 2), TotalCredits: credits}
}
