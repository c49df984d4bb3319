package model

// BlockType is the kind of content block in a notification.
type BlockType string

const (
	BlockSection BlockType = "section"
	BlockFields  BlockType = "fields"
)

// Block is either a text section or a row of labelled fields.
type Block struct {
	Type   BlockType
	Text   string
	Fields []string
}

// Notification is a chat message ready to be delivered.
type Notification struct {
	Channel string
	Text    string // summary shown in push notifications
	Blocks  []Block
}

// Section builds a text section block.
func Section(text string) Block {
	return Block{Type: BlockSection, Text: text}
}

// Fields builds a field row block.
func Fields(fields ...string) Block {
	return Block{Type: BlockFields, Fields: fields}
}
