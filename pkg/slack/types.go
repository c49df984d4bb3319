package slack

// TextObject is a Block Kit text object.
type TextObject struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Block is a Block Kit section block.
type Block struct {
	Type   string       `json:"type"`
	Text   *TextObject  `json:"text,omitempty"`
	Fields []TextObject `json:"fields,omitempty"`
}

// Message is the payload for chat.postMessage.
type Message struct {
	Channel string  `json:"channel"`
	Text    string  `json:"text"`
	Blocks  []Block `json:"blocks,omitempty"`
}

// Markdown builds an mrkdwn text object.
func Markdown(text string) TextObject {
	return TextObject{Type: "mrkdwn", Text: text}
}
