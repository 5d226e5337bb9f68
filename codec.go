// Copyright (c) 2025 @AmarnathCJD

package sessionconv

// Format identifies a session string layout by the client library that produces it.
type Format string

const (
	FormatPyrogram Format = "pyrogram"
	FormatTelethon Format = "telethon"
	FormatGogram   Format = "gogram"
)

// Fields is the set of optional Descriptor fields a layout stores.
type Fields uint8

const (
	FieldAddress Fields = 1 << iota
	FieldEnvironment
	FieldUser
	FieldAppID
)

func (f Fields) Has(x Fields) bool {
	return f&x == x
}

// Codec reads and writes one library's session string layout. Implementations must be
// stateless: Decode(Encode(d)) returns d for every descriptor the layout can represent.
type Codec interface {
	Format() Format
	// Carries lists the optional fields the layout stores. A codec carrying FieldAddress
	// fails Encode with ErrIncompleteSession when the descriptor has no address.
	Carries() Fields
	Decode(raw string) (*Descriptor, error)
	Encode(d *Descriptor) (string, error)
}

// Codecs returns the built-in codecs.
func Codecs() []Codec {
	return []Codec{PyrogramCodec{}, TelethonCodec{}, GogramCodec{}}
}
