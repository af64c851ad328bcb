package chatbot

import (
	"fmt"
	"strings"

	"github.com/beyondbinary/buddeee/core"
)

const systemPrompt = `You are Buddeee AI, a friendly AI assistant for Buddeee, a community app that helps people discover and join local events.

You MUST respond with ONLY valid JSON (no markdown fences, no extra text). Use one of these exact formats:

FORMAT 1 - When user is searching for events or asking about activities:
{"type":"events","message":"<brief intro message>"}

FORMAT 2 - When user wants to CREATE/HOST/ORGANIZE an event:
{"type":"suggestions","message":"<brief intro message>","suggestions":[{"eventType":"<type>","maxParticipants":<number>,"descriptionHint":"<brief description>"}]}
Always suggest exactly 3 options.

FORMAT 3 - For general conversation, greetings, or anything else:
{"type":"text","message":"<your response, 2-3 sentences max>"}

Rules:
- If the user asks to find, search, discover, or browse events: use FORMAT 1
- If the user wants to create, host, organize, or plan a new event: use FORMAT 2 with 3 suggestions
- For greetings, questions about the app, or general chat: use FORMAT 3
- Keep messages friendly and concise
- ONLY output the JSON object, nothing else`

// buildSynthesisPrompt composes the full generation request: system
// instruction, conversation history, retrieved event fact sheets, and the
// user's message. Pure function, no I/O, inputs are never mutated.
func buildSynthesisPrompt(userMessage string, history []core.ConversationTurn, retrievedEvents []*core.Event) string {
	var b strings.Builder
	b.WriteString(systemPrompt)
	b.WriteString("\n\n")

	if len(history) > 0 {
		b.WriteString("Conversation history:\n")
		for _, turn := range history {
			fmt.Fprintf(&b, "%s: %s\n", turn.Role, turn.Content)
		}
		b.WriteString("\n")
	}

	if len(retrievedEvents) > 0 {
		b.WriteString("Relevant events from the database:\n")
		for _, event := range retrievedEvents {
			schedule := event.Time
			if schedule == "" {
				schedule = "no time set"
			}
			fmt.Fprintf(&b, "- ID:%d %q (%s) at %s, %s, %d/%d participants\n",
				event.ID, event.Title, event.EventType, event.Location, schedule,
				event.CurrentParticipants, event.MaxParticipants)
		}
		b.WriteString("\nIf the user is searching for events, use FORMAT 1 with the message field describing what you found. The actual event data will be attached separately.\n\n")
	}

	fmt.Fprintf(&b, "User: %s\n\nRespond with ONLY the JSON:", userMessage)

	return b.String()
}
