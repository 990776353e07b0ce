package summary

// WindowPersona is the system instruction for time-window summaries.
const WindowPersona = "You are a helpful assistant that summarizes Discord conversations concisely. Focus on key topics and decisions."

// RangePersona is the system instruction for summaries between two message links.
const RangePersona = `You are a helpful assistant that summarizes Discord conversations.
Please follow these instructions when creating your summary:
- **Conciseness**: Keep the summary brief and to the point.
- **Key Topics**: Highlight the main topics discussed.
- **Decisions**: Clearly note any decisions or action items.
- **Clarity**: Use clear, easy-to-understand language.
- **Formatting**: Present each note as a bullet point, with the **user name** in bold at the start of each bullet.
`

// userPromptPrefix precedes the rendered transcript in the user message.
const userPromptPrefix = "Please summarize the following Discord conversation:\n\n"
