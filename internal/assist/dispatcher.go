package assist

import (
	"context"
	"strings"

	"github.com/Dainampally-Akshay18/KMRL-Vault/internal/api"
)

// Route names the backend capability a question is dispatched to.
type Route int

const (
	RouteChat Route = iota
	RouteRisk
	RouteSummary
	RouteNegotiation
)

// Classify picks a route by keyword-matching the question. Questions
// about risk, summary, or negotiation are answered by the dedicated
// analysis endpoints; everything else goes to the chatbot.
func Classify(message string) Route {
	m := strings.ToLower(message)
	switch {
	case strings.Contains(m, "risk"):
		return RouteRisk
	case strings.Contains(m, "summary"):
		return RouteSummary
	case strings.Contains(m, "negotiat"):
		return RouteNegotiation
	default:
		return RouteChat
	}
}

// Dispatcher routes chat questions about one document, carrying the
// conversation history across turns for the chatbot route.
type Dispatcher struct {
	client       *api.Client
	documentID   string
	jurisdiction string
	history      []api.ChatMessage
}

func NewDispatcher(client *api.Client, documentID, jurisdiction string) *Dispatcher {
	return &Dispatcher{
		client:       client,
		documentID:   documentID,
		jurisdiction: jurisdiction,
	}
}

// History returns the accumulated conversation turns.
func (d *Dispatcher) History() []api.ChatMessage {
	return d.history
}

// Ask answers one question, dispatching it per Classify.
func (d *Dispatcher) Ask(ctx context.Context, message string) (string, error) {
	var answer string

	switch Classify(message) {
	case RouteRisk:
		resp, err := d.client.RiskAnalysis(ctx, d.documentID, d.jurisdiction)
		if err != nil {
			return "", err
		}
		answer = FormatRisks(&resp.Analysis)

	case RouteSummary:
		resp, err := d.client.DocumentSummary(ctx, d.documentID, d.jurisdiction)
		if err != nil {
			return "", err
		}
		answer = FormatSummary(&resp.Analysis)

	case RouteNegotiation:
		resp, err := d.client.NegotiationAssistant(ctx, d.documentID, d.jurisdiction)
		if err != nil {
			return "", err
		}
		answer = FormatNegotiation(&resp.Analysis)

	default:
		resp, err := d.client.Chat(ctx, &api.ChatRequest{
			Message:             message,
			DocumentID:          d.documentID,
			ConversationHistory: d.history,
		})
		if err != nil {
			return "", err
		}
		answer = resp.Response
	}

	d.history = append(d.history,
		api.ChatMessage{Role: "user", Content: message},
		api.ChatMessage{Role: "assistant", Content: answer},
	)
	return answer, nil
}
