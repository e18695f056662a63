package prompt

import (
	"fmt"
	"strings"
)

// SystemPrompt is sent as the Anthropic system field on every request.
const SystemPrompt = `You are a professional workplace writing assistant. You polish text for clarity, tone, and conciseness while keeping the original meaning strictly unchanged. You never invent new facts or add content not present in the original text.`

const subjectInstruction = `- This is an email: begin your answer with a line "Subject: <short subject line>" suited to the message.`

const notesFormat = `Output format:
1) Polished text
2) 2-3 short bullet points describing key edits`

const plainFormat = `Output format: Polished text only.`

// Compose builds the user prompt for one polish request. Pure function,
// always succeeds; empty text is rejected by the caller before this runs.
func Compose(text string, tone Tone, ctx Context, wantNotes bool) string {
	var b strings.Builder

	b.WriteString("Polish the following text.\n\n")
	fmt.Fprintf(&b, "- Target tone: %s\n", tone.Label())
	fmt.Fprintf(&b, "- Context: %s\n", ctx.Label())
	b.WriteString("- Do not invent new facts or add content not present in the original text.\n")
	if ctx.WantsSubject() {
		b.WriteString(subjectInstruction)
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "\nOriginal:\n\"\"\"\n%s\n\"\"\"\n\n", text)

	if wantNotes {
		b.WriteString(notesFormat)
	} else {
		b.WriteString(plainFormat)
	}
	b.WriteString("\n")

	return b.String()
}
