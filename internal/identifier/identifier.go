// Package identifier classifies the two public id forms every resource
// accepts — the 24-hex storage key and the numeric sequence id — and
// generates new storage keys.
package identifier

import (
	"encoding/binary"
	"encoding/hex"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
)

// Module provides the storage-key generator.
var Module = fx.Provide(NewGenerator)

// Kind tags the parsed identifier variant.
type Kind int

const (
	KindInvalid Kind = iota
	KindStorageKey
	KindSequence
)

// ID is the tagged union produced by Parse. Exactly one of Key or Seq is
// meaningful, selected by Kind.
type ID struct {
	Kind Kind
	Key  string
	Seq  int64
}

var storageKeyPattern = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)

// Parse classifies a raw path identifier. A 24-character hex string is
// always a storage key (hex letters disambiguate; a 24-digit string still
// matches and is treated as a key). Anything else must parse as a base-10
// sequence id or the result is KindInvalid.
func Parse(raw string) ID {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ID{Kind: KindInvalid}
	}
	if storageKeyPattern.MatchString(trimmed) {
		return ID{Kind: KindStorageKey, Key: strings.ToLower(trimmed)}
	}
	seq, err := strconv.ParseInt(trimmed, 10, 64)
	if err != nil || seq <= 0 {
		return ID{Kind: KindInvalid}
	}
	return ID{Kind: KindSequence, Seq: seq}
}

// Generator mints 24-hex storage keys: 4 bytes of unix seconds followed by
// an 8-byte snowflake id, hex encoded. Uniqueness comes from the snowflake
// node; the timestamp prefix keeps keys roughly insertion-ordered.
type Generator struct {
	node *snowflake.Node
}

func NewGenerator(node *snowflake.Node) *Generator {
	return &Generator{node: node}
}

// NewKey returns a fresh storage key.
func (g *Generator) NewKey() string {
	var buf [12]byte
	binary.BigEndian.PutUint32(buf[0:4], uint32(time.Now().Unix()))
	binary.BigEndian.PutUint64(buf[4:12], uint64(g.node.Generate().Int64()))
	return hex.EncodeToString(buf[:])
}
