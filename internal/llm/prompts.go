package llm

// FactExtractionPrompt asks for at most one short statement about the user.
// The model answers with NoFactMarker when the message reveals nothing.
const FactExtractionPrompt = `You extract durable facts about the USER from a single chat message.
Return exactly one important fact about the user, phrased like "User likes X" or "User is Y".
If the message reveals nothing about the user, return the single word null.
Be concise. No explanation, no quotes, no formatting.`

// NoFactMarker is the literal reply meaning "nothing worth remembering".
const NoFactMarker = "null"
