package assistant

// TimestampLayout is the fixed wall-clock format recorded on every
// conversation entry.
const TimestampLayout = "2006-01-02 15:04:05"

// ConversationEntry is one completed exchange. Entries are immutable once
// appended; history only ever grows or is cleared in full.
type ConversationEntry struct {
	Timestamp string `json:"timestamp"`
	User      string `json:"user"`
	Assistant string `json:"assistant"`
	Category  string `json:"category"`
}
