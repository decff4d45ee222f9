// Package protocol encodes LED strip controller commands into the fixed
// byte frames written to the controller's write characteristic, and
// classifies advertised device names into controller families.
package protocol

import "encoding/hex"

// Tag names the intent a Command was built from.
type Tag string

const (
	TagColor       Tag = "color"
	TagWhite       Tag = "white"
	TagPowerOn     Tag = "power-on"
	TagPowerOff    Tag = "power-off"
	TagMode        Tag = "mode"
	TagSpeed       Tag = "speed"
	TagMusic       Tag = "music"
	TagQueryStatus Tag = "query-status"
	TagQueryTime   Tag = "query-time"
	TagReadColors  Tag = "read-colors"
	TagReadInfo    Tag = "read-info"
	TagDateTime    Tag = "date-time"
	TagTimer       Tag = "timer"
)

// Command is one encoded frame. It is immutable: Bytes returns a copy.
type Command struct {
	tag   Tag
	frame []byte
}

func newCommand(tag Tag, frame ...byte) Command {
	return Command{tag: tag, frame: frame}
}

// Tag returns the intent this command encodes.
func (c Command) Tag() Tag { return c.tag }

// Bytes returns a copy of the frame.
func (c Command) Bytes() []byte {
	out := make([]byte, len(c.frame))
	copy(out, c.frame)
	return out
}

// Len returns the frame length in bytes.
func (c Command) Len() int { return len(c.frame) }

// IsZero reports whether c was never encoded.
func (c Command) IsZero() bool { return len(c.frame) == 0 }

// String returns the tag and the frame as lower-case hex.
func (c Command) String() string {
	return string(c.tag) + " " + hex.EncodeToString(c.frame)
}
