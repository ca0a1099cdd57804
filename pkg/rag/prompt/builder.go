package prompt

import (
	"fmt"
	"strings"

	"coachsite-be/pkg/rag/retriever"
)

// GroundedBuilder composes the system prompt for one chat turn. It is a pure
// function of its inputs: retrieved context, the persona name from site
// settings, and the user's literal query.
type GroundedBuilder struct {
	query     string
	items     []retriever.ContextItem
	coachName string
}

func NewGroundedBuilder(query string, items []retriever.ContextItem, coachName string) *GroundedBuilder {
	if coachName == "" {
		coachName = "the coach"
	}
	return &GroundedBuilder{
		query:     query,
		items:     items,
		coachName: coachName,
	}
}

func (b *GroundedBuilder) Build() string {
	var prompt strings.Builder

	b.writeRole(&prompt)
	b.writeContext(&prompt)
	b.writeInstructions(&prompt)
	b.writeUserQuery(&prompt)

	return prompt.String()
}

func (b *GroundedBuilder) writeRole(prompt *strings.Builder) {
	fmt.Fprintf(prompt,
		"You are %s's AI assistant. Your role is to answer questions about %s's coaching techniques and philosophy using ONLY the provided context.\n\n",
		b.coachName, b.coachName,
	)
}

func (b *GroundedBuilder) writeContext(prompt *strings.Builder) {
	fmt.Fprintf(prompt, "Context from %s's knowledge base:\n", b.coachName)

	blocks := make([]string, len(b.items))
	for i, item := range b.items {
		blocks[i] = fmt.Sprintf("[Context %d from \"%s\"]:\n%s", i+1, item.DocumentTitle, item.Text)
	}
	prompt.WriteString(strings.Join(blocks, "\n\n"))
	prompt.WriteString("\n\n")
}

func (b *GroundedBuilder) writeInstructions(prompt *strings.Builder) {
	prompt.WriteString("Instructions:\n")
	prompt.WriteString("- Answer the question using ONLY information from the provided context\n")
	fmt.Fprintf(prompt,
		"- Be conversational and helpful, as if you were %s speaking directly\n",
		b.coachName,
	)
	fmt.Fprintf(prompt,
		"- If the context doesn't contain enough information to answer the question, politely respond: \"I don't have information about that in my current knowledge base. I recommend booking a 1-on-1 session with %s to discuss this further.\"\n",
		b.coachName,
	)
	prompt.WriteString("- Don't make up information or use knowledge outside the provided context\n")
	prompt.WriteString("- Keep responses concise but informative\n\n")
}

func (b *GroundedBuilder) writeUserQuery(prompt *strings.Builder) {
	fmt.Fprintf(prompt, "User Question: %s", b.query)
}
