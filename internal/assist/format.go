package assist

import (
	"fmt"
	"strings"

	"github.com/Dainampally-Akshay18/KMRL-Vault/internal/api"
)

// FormatRisks renders a risk analysis as terminal text, risks already
// ranked by the backend (High first).
func FormatRisks(a *api.RiskAnalysis) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Risk score: %.1f/10 (%d risks)\n", a.RiskScore, len(a.Risks))
	for i, r := range a.Risks {
		fmt.Fprintf(&b, "\n%d. [%s] %s\n", i+1, strings.ToUpper(r.Severity), r.Title)
		fmt.Fprintf(&b, "   %s\n", r.Description)
	}
	if a.GraphData != nil && len(a.GraphData.RiskCounts) > 0 {
		fmt.Fprintf(&b, "\nBy severity: high=%d medium=%d low=%d\n",
			a.GraphData.RiskCounts["High"],
			a.GraphData.RiskCounts["Medium"],
			a.GraphData.RiskCounts["Low"])
	}
	return b.String()
}

// FormatSummary renders a document summary.
func FormatSummary(a *api.DocumentSummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Contract type: %s\n\n", a.ContractType)
	for _, p := range a.KeyPoints {
		fmt.Fprintf(&b, "  - %s\n", p)
	}
	fmt.Fprintf(&b, "\n%s\n", a.Summary)
	return b.String()
}

// FormatNegotiation renders the two generated email templates.
func FormatNegotiation(a *api.Negotiation) string {
	var b strings.Builder
	b.WriteString("--- Acceptance email ---\n\n")
	b.WriteString(a.Emails.Acceptance)
	b.WriteString("\n\n--- Modification request email ---\n\n")
	b.WriteString(a.Emails.Rejection)
	b.WriteString("\n")
	return b.String()
}
