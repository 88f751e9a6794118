// Package matchid generates sortable identifiers for self-play matches.
// An id is a UUIDv7 rendered as 26 characters of Crockford base32, so ids
// sort by creation time.
package matchid

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Crockford base32, lower case
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// Length of an encoded id
const Length = 26

// RandSource supplies the random bits of an id. *math/rand/v2.Rand
// satisfies it.
type RandSource interface {
	IntN(n int) int
}

// Generator creates match ids
type Generator struct {
	src RandSource
}

// NewGenerator returns a generator drawing random bits from src. A nil src
// uses crypto/rand.
func NewGenerator(src RandSource) *Generator {
	return &Generator{src: src}
}

// Generate returns a new id using crypto/rand
func Generate() string {
	return NewGenerator(nil).Generate()
}

// Generate returns a new id
func (g *Generator) Generate() string {
	var (
		u   uuid.UUID
		err error
	)
	if g.src != nil {
		u, err = uuid.NewV7FromReader(sourceReader{g.src})
	} else {
		u, err = uuid.NewV7()
	}
	if err != nil {
		panic("failed to generate random bytes: " + err.Error())
	}
	return Encode(u)
}

type sourceReader struct {
	src RandSource
}

func (r sourceReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = byte(r.src.IntN(256))
	}
	return len(p), nil
}

// Encode renders u as 26 base32 characters. The 128 bits are treated as a
// 130-bit number with two leading zero bits, so the first character is
// always 0-7.
func Encode(u uuid.UUID) string {
	var b strings.Builder
	b.Grow(Length)
	for i := 0; i < Length; i++ {
		v := 0
		for j := 0; j < 5; j++ {
			v = v<<1 | bit(u, i*5+j-2)
		}
		b.WriteByte(alphabet[v])
	}
	return b.String()
}

func bit(u uuid.UUID, k int) int {
	if k < 0 {
		return 0
	}
	return int(u[k/8]>>(7-k%8)) & 1
}

// Decode parses an encoded id back to its UUID
func Decode(id string) (uuid.UUID, error) {
	var u uuid.UUID
	if err := Validate(id); err != nil {
		return u, err
	}
	for i := 0; i < Length; i++ {
		v := strings.IndexByte(alphabet, id[i])
		for j := 0; j < 5; j++ {
			k := i*5 + j - 2
			if k < 0 || (v>>(4-j))&1 == 0 {
				continue
			}
			u[k/8] |= 1 << (7 - k%8)
		}
	}
	return u, nil
}

// Validate checks that id is 26 base32 characters starting with 0-7
func Validate(id string) error {
	if len(id) != Length {
		return fmt.Errorf("match ID must be exactly %d characters, got %d", Length, len(id))
	}
	if id[0] > '7' {
		return fmt.Errorf("match ID first character must be 0-7, got %c", id[0])
	}
	for i := 0; i < len(id); i++ {
		if strings.IndexByte(alphabet, id[i]) < 0 {
			return fmt.Errorf("invalid character %c at position %d", id[i], i)
		}
	}
	return nil
}
