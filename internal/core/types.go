package core

const (
	PrunerName    = "ChatPruner"
	PrunerVersion = "0.1.0"

	// DefaultMessageLimit caps the snapshot window when nothing is configured.
	DefaultMessageLimit = 200
	// MinMessageLimit is the smallest window an operator may configure.
	MinMessageLimit = 10

	UnknownAuthor  = "Unknown"
	UnknownSpeaker = "—"
)

type MessageKind string

const (
	KindIC    MessageKind = "ic"
	KindOOC   MessageKind = "ooc"
	KindEmote MessageKind = "emote"
	KindOther MessageKind = "other"
)

// MessageRecord is a read-only projection of a stored chat message.
type MessageRecord struct {
	ID        string      `json:"id"`
	Timestamp int64       `json:"timestamp"` // unix milliseconds
	Author    string      `json:"author,omitempty"`
	Speaker   string      `json:"speaker,omitempty"`
	Content   string      `json:"content,omitempty"`
	Flavor    string      `json:"flavor,omitempty"`
	Text      string      `json:"-"`
	OwnerID   string      `json:"owner_id,omitempty"`
	Whisper   bool        `json:"whisper,omitempty"`
	Roll      bool        `json:"roll,omitempty"`
	Kind      MessageKind `json:"kind,omitempty"`
	CanDelete bool        `json:"-"`
}

func (m MessageRecord) AuthorOrDefault() string {
	if m.Author == "" {
		return UnknownAuthor
	}
	return m.Author
}

func (m MessageRecord) SpeakerOrDefault() string {
	if m.Speaker == "" {
		return UnknownSpeaker
	}
	return m.Speaker
}

// IsSystem reports messages that were not spoken by anybody in character.
func (m MessageRecord) IsSystem() bool {
	return m.Kind == KindOther || (m.Kind == KindOOC && m.Speaker == "")
}

// Direction is the side of the anchor a range selection covers.
type Direction string

const (
	DirectionOlder Direction = "older"
	DirectionNewer Direction = "newer"
)

func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case DirectionOlder, DirectionNewer:
		return Direction(s), nil
	}
	return "", ErrInvalidDirection
}

type Role string

const (
	RolePlayer     Role = "player"
	RoleTrusted    Role = "trusted"
	RoleAssistant  Role = "assistant"
	RoleGamemaster Role = "gamemaster"
)

// User is the acting operator. Identity is taken from configuration as-is.
type User struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role Role   `json:"role"`
}

func (u User) IsGM() bool {
	return u.Role == RoleAssistant || u.Role == RoleGamemaster
}
