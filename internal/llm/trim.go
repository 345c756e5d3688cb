package llm

// TrimHistory bounds a transcript by message count.
//
// When the transcript holds at least maxMessages messages, only the trailing
// retain messages are kept; older messages are dropped wholesale. Two
// adjustments keep the window usable:
//
//   - the most recent user prompt is always kept, even if that makes the
//     window longer than retain;
//   - a window that would open on tool results is advanced past them, since
//     their tool call has been dropped and providers reject orphaned results.
//
// Applying it twice gives the same result as applying it once.
func TrimHistory(messages []Message, maxMessages, retain int) []Message {
	if maxMessages <= 0 || retain <= 0 || len(messages) < maxMessages {
		return messages
	}

	start := len(messages) - retain
	if start < 0 {
		start = 0
	}
	if p := LastPromptIndex(messages); p >= 0 && p < start {
		start = p
	}
	for start < len(messages) && messages[start].ToolCallID != "" {
		start++
	}
	return messages[start:]
}
