package advisor

import (
	"strings"

	"github.com/jonathan/job-assessor/internal/llm"
	"github.com/jonathan/job-assessor/internal/types"
)

// Advisor performs the generative-service operations on behalf of the
// session and server layers. It holds a shared client so callers do not pay
// connection setup per operation.
type Advisor struct {
	client llm.Client
}

// New creates an Advisor over the given client.
func New(client llm.Client) *Advisor {
	return &Advisor{client: client}
}

// orDefault substitutes a placeholder for prompt fields with no value; the
// templates expect every slot filled.
func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

// stripBold removes markdown bold markers. The plain-text contracts forbid
// them but models emit them anyway.
func stripBold(text string) string {
	return strings.ReplaceAll(text, "**", "")
}

// renderThread renders a conversation as "Client:"/"Me:" lines, the format
// the follow-up contract expects.
func renderThread(messages []types.Message) string {
	lines := make([]string, 0, len(messages))
	for _, m := range messages {
		speaker := "Me"
		if m.Role == types.RoleClient {
			speaker = "Client"
		}
		lines = append(lines, speaker+": "+m.Text)
	}
	return strings.Join(lines, "\n")
}
