// Package access holds the access flag catalog: the association between
// access tokens, their bit values and the element kinds they may decorate.
package access

import (
	"fmt"
	"math/bits"
	"strings"

	m "remap.dev/pkg/remap/internal/model"
)

// JVM access flag bits.
const (
	Public       uint32 = 0x0001
	Private      uint32 = 0x0002
	Protected    uint32 = 0x0004
	Static       uint32 = 0x0008
	Final        uint32 = 0x0010
	Super        uint32 = 0x0020
	Synchronized uint32 = 0x0020
	Open         uint32 = 0x0020
	Transitive   uint32 = 0x0020
	Volatile     uint32 = 0x0040
	Bridge       uint32 = 0x0040
	StaticPhase  uint32 = 0x0040
	Varargs      uint32 = 0x0080
	Transient    uint32 = 0x0080
	Native       uint32 = 0x0100
	Interface    uint32 = 0x0200
	Abstract     uint32 = 0x0400
	Strict       uint32 = 0x0800
	Synthetic    uint32 = 0x1000
	Annotation   uint32 = 0x2000
	Enum         uint32 = 0x4000
	Mandated     uint32 = 0x8000
	Module       uint32 = 0x8000
	Record       uint32 = 0x10000
	Deprecated   uint32 = 0x20000

	// VisibilityMask covers the bits that change member visibility.
	VisibilityMask = Public | Private | Protected
)

// zeroToken stands for "no flags".
const zeroToken = "0"

type flag struct {
	token    string
	bits     uint32
	category m.AccessCategory
}

// flags is ordered by bit value; tokens sharing a bit are told apart by category.
var flags = []flag{
	{"ACC_PUBLIC", Public, m.CategoryAny},
	{"ACC_PRIVATE", Private, m.CategoryAny},
	{"ACC_PROTECTED", Protected, m.CategoryAny},
	{"ACC_STATIC", Static, m.CategoryAny},
	{"ACC_FINAL", Final, m.CategoryAny},
	{"ACC_SUPER", Super, m.CategoryClass},
	{"ACC_SYNCHRONIZED", Synchronized, m.CategoryMethod},
	{"ACC_OPEN", Open, m.CategoryModule},
	{"ACC_TRANSITIVE", Transitive, m.CategoryModule},
	{"ACC_VOLATILE", Volatile, m.CategoryField},
	{"ACC_BRIDGE", Bridge, m.CategoryMethod},
	{"ACC_STATIC_PHASE", StaticPhase, m.CategoryModule},
	{"ACC_VARARGS", Varargs, m.CategoryMethod},
	{"ACC_TRANSIENT", Transient, m.CategoryField},
	{"ACC_NATIVE", Native, m.CategoryMethod},
	{"ACC_INTERFACE", Interface, m.CategoryClass},
	{"ACC_ABSTRACT", Abstract, m.CategoryAny},
	{"ACC_STRICT", Strict, m.CategoryMethod},
	{"ACC_SYNTHETIC", Synthetic, m.CategoryAny},
	{"ACC_ANNOTATION", Annotation, m.CategoryClass},
	{"ACC_ENUM", Enum, m.CategoryClass},
	{"ACC_MANDATED", Mandated, m.CategoryModule},
	{"ACC_MODULE", Module, m.CategoryClass},
	{"ACC_RECORD", Record, m.CategoryClass},
	{"ACC_DEPRECATED", Deprecated, m.CategoryAny},
}

var byToken = func() map[string]flag {
	index := make(map[string]flag, len(flags))
	for _, f := range flags {
		index[f.token] = f
	}

	return index
}()

// Parse converts an access token into its bits and category.
//
// Accepted forms are "0", any ACC_* flag name and "|"-joined combinations.
// A combination takes the single non-any category of its parts.
func Parse(token string) (m.AccessToken, error) {
	token = strings.TrimSpace(token)
	if token == zeroToken {
		return m.AccessToken{Bits: 0, Category: m.CategoryAny}, nil
	}

	if token == "" {
		return m.AccessToken{}, fmt.Errorf("%w: empty token", m.ErrUnknownToken)
	}

	result := m.AccessToken{Category: m.CategoryAny}

	for _, part := range strings.Split(token, "|") {
		f, ok := byToken[strings.TrimSpace(part)]
		if !ok {
			return m.AccessToken{}, fmt.Errorf("%w: %q", m.ErrUnknownToken, part)
		}

		if !Compatible(result.Category, f.category) {
			return m.AccessToken{}, fmt.Errorf("%w: %q mixes %s and %s flags", m.ErrUnknownToken, token, result.Category, f.category)
		}

		result.Bits |= f.bits
		if f.category != m.CategoryAny {
			result.Category = f.category
		}
	}

	return result, nil
}

// Category returns the category of a token.
func Category(token string) (m.AccessCategory, error) {
	parsed, err := Parse(token)
	if err != nil {
		return m.CategoryAny, err
	}

	return parsed.Category, nil
}

// Stringify renders bits as tokens of the given category.
//
// The category must be explicit because the same bit names different flags
// depending on the element kind (0x20 is ACC_SUPER on a class and
// ACC_SYNCHRONIZED on a method). Bits with no flag in that category are
// rendered in hex.
func Stringify(value uint32, category m.AccessCategory) string {
	if value == 0 {
		return zeroToken
	}

	parts := make([]string, 0, bits.OnesCount32(value))

	for remaining := value; remaining != 0; remaining &= remaining - 1 {
		bit := remaining & -remaining
		parts = append(parts, tokenFor(bit, category))
	}

	return strings.Join(parts, "|")
}

func tokenFor(bit uint32, category m.AccessCategory) string {
	for _, f := range flags {
		if f.bits != bit {
			continue
		}

		if f.category == m.CategoryAny || f.category == category {
			return f.token
		}
	}

	return fmt.Sprintf("0x%04x", bit)
}

// Compatible reports whether two categories may be combined.
func Compatible(a, b m.AccessCategory) bool {
	return a == b || a == m.CategoryAny || b == m.CategoryAny
}

// TouchesVisibility reports whether bits include public, private or protected.
func TouchesVisibility(value uint32) bool {
	return value&VisibilityMask != 0
}
