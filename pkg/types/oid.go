package types

import (
	"errors"
	"strconv"
	"strings"
)

// OID is an object identifier: an ordered sequence of non-negative integer arcs.
type OID []uint32

// ErrInvalidOID is returned when parsing a malformed dotted OID string.
var ErrInvalidOID = errors.New("invalid OID")

// ParseOID parses a dotted-decimal OID string. A single leading dot is
// accepted ("absolute" display form) and ignored.
func ParseOID(s string) (OID, error) {
	s = strings.TrimPrefix(s, ".")
	if s == "" {
		return nil, ErrInvalidOID
	}

	parts := strings.Split(s, ".")
	oid := make(OID, 0, len(parts))
	for _, part := range parts {
		arc, err := strconv.ParseUint(part, 10, 32)
		if err != nil {
			return nil, ErrInvalidOID
		}
		oid = append(oid, uint32(arc))
	}
	return oid, nil
}

// String returns the canonical dot-joined decimal form.
func (o OID) String() string {
	if len(o) == 0 {
		return ""
	}

	var b strings.Builder
	for i, arc := range o {
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(strconv.FormatUint(uint64(arc), 10))
	}
	return b.String()
}

// Equal reports whether two OIDs have identical arc sequences.
func (o OID) Equal(other OID) bool {
	if len(o) != len(other) {
		return false
	}
	for i, arc := range o {
		if arc != other[i] {
			return false
		}
	}
	return true
}

// Compare orders OIDs component-wise numerically. It returns a negative value
// if o sorts before other, zero if they are equal, and a positive value
// otherwise. A proper prefix sorts before its extensions.
func (o OID) Compare(other OID) int {
	n := len(o)
	if len(other) < n {
		n = len(other)
	}
	for i := 0; i < n; i++ {
		if o[i] != other[i] {
			if o[i] < other[i] {
				return -1
			}
			return 1
		}
	}
	return len(o) - len(other)
}

// IsPrefixOf reports whether o is a (non-strict) prefix of other.
func (o OID) IsPrefixOf(other OID) bool {
	if len(o) > len(other) {
		return false
	}
	for i, arc := range o {
		if arc != other[i] {
			return false
		}
	}
	return true
}

// Append returns a new OID with the given arcs appended. The receiver is
// never modified; resolved paths are shared across the symbol table.
func (o OID) Append(arcs ...uint32) OID {
	out := make(OID, 0, len(o)+len(arcs))
	out = append(out, o...)
	out = append(out, arcs...)
	return out
}

// Clone returns an independent copy of the OID.
func (o OID) Clone() OID {
	if o == nil {
		return nil
	}
	return append(OID(nil), o...)
}
