// internal/core/domain/stock.go
package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Domain errors
var (
	ErrInvalidItem       = errors.New("invalid item name")
	ErrInvalidQuantity   = errors.New("invalid quantity")
	ErrItemNotInStock    = errors.New("item not in stock")
	ErrSnapshotNotFound  = errors.New("snapshot not found")
	ErrMalformedSnapshot = errors.New("malformed snapshot")
)

// DefaultLowStockThreshold is the cutoff used when no threshold is given
const DefaultLowStockThreshold Quantity = 5

// ItemName identifies a stock-keeping unit. The zero value is invalid.
type ItemName string

// ParseItemName validates a raw item identifier
func ParseItemName(raw string) (ItemName, error) {
	if raw == "" || !utf8.ValidString(raw) {
		return "", fmt.Errorf("%w: item name %q is not a valid string", ErrInvalidItem, raw)
	}
	return ItemName(raw), nil
}

// Validate reports whether the name may be stored
func (n ItemName) Validate() error {
	_, err := ParseItemName(string(n))
	return err
}

func (n ItemName) String() string {
	return string(n)
}

// Quantity is a non-negative count of units
type Quantity uint64

// ParseQuantity converts signed input, rejecting negatives
func ParseQuantity(raw int64) (Quantity, error) {
	if raw < 0 {
		return 0, fmt.Errorf("%w: quantity '%d' is not a valid non-negative integer", ErrInvalidQuantity, raw)
	}
	return Quantity(raw), nil
}

// ParseQuantityString parses a base-10 quantity from text. The full
// uint64 range is accepted; a leading '-' is always rejected.
func ParseQuantityString(raw string) (Quantity, error) {
	trimmed := strings.TrimSpace(raw)
	if strings.HasPrefix(trimmed, "-") {
		return 0, fmt.Errorf("%w: quantity '%s' is not a valid non-negative integer", ErrInvalidQuantity, raw)
	}
	v, err := strconv.ParseUint(trimmed, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: quantity '%s' is not a valid non-negative integer", ErrInvalidQuantity, raw)
	}
	return Quantity(v), nil
}

// StockEntry is one item and its quantity
type StockEntry struct {
	Item     ItemName `json:"item"`
	Quantity Quantity `json:"quantity"`
}

// Stock is an item to quantity mapping that remembers insertion order.
// It is not safe for concurrent use.
type Stock struct {
	quantities map[ItemName]Quantity
	order      []ItemName
}

// NewStock returns an empty mapping
func NewStock() *Stock {
	return &Stock{quantities: make(map[ItemName]Quantity)}
}

// Len returns the number of entries
func (s *Stock) Len() int {
	return len(s.order)
}

// Get returns the stored quantity and whether the item is present
func (s *Stock) Get(item ItemName) (Quantity, bool) {
	q, ok := s.quantities[item]
	return q, ok
}

// Set stores qty for item, appending the item if it is new
func (s *Stock) Set(item ItemName, qty Quantity) {
	if s.quantities == nil {
		s.quantities = make(map[ItemName]Quantity)
	}
	if _, ok := s.quantities[item]; !ok {
		s.order = append(s.order, item)
	}
	s.quantities[item] = qty
}

// Delete removes item if present
func (s *Stock) Delete(item ItemName) {
	if _, ok := s.quantities[item]; !ok {
		return
	}
	delete(s.quantities, item)
	for i, name := range s.order {
		if name == item {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Entries returns a copy of the entries in insertion order
func (s *Stock) Entries() []StockEntry {
	entries := make([]StockEntry, 0, len(s.order))
	for _, name := range s.order {
		entries = append(entries, StockEntry{Item: name, Quantity: s.quantities[name]})
	}
	return entries
}

// Clone returns an independent copy
func (s *Stock) Clone() *Stock {
	c := NewStock()
	for _, e := range s.Entries() {
		c.Set(e.Item, e.Quantity)
	}
	return c
}

// Equal reports whether both mappings hold the same entries in the same order
func (s *Stock) Equal(other *Stock) bool {
	a, b := s.Entries(), other.Entries()
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// MarshalJSON encodes the mapping as a JSON object in insertion order
func (s *Stock) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range s.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(string(name))
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.WriteString(strconv.FormatUint(uint64(s.quantities[name]), 10))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object, keeping the document's key order.
// Values must be non-negative integers and keys non-empty.
func (s *Stock) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedSnapshot, err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("%w: expected a JSON object", ErrMalformedSnapshot)
	}

	decoded := NewStock()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("%w: %v", ErrMalformedSnapshot, err)
		}
		key, _ := tok.(string)
		item, err := ParseItemName(key)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrMalformedSnapshot, err)
		}

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("%w: value for '%s': %v", ErrMalformedSnapshot, key, err)
		}
		text := string(bytes.TrimSpace(value))
		if strings.HasPrefix(text, "-") {
			return fmt.Errorf("%w: value for '%s' is negative", ErrMalformedSnapshot, key)
		}
		raw, err := strconv.ParseUint(text, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: value for '%s' is not an integer", ErrMalformedSnapshot, key)
		}
		qty := Quantity(raw)
		decoded.Set(item, qty)
	}

	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedSnapshot, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return fmt.Errorf("%w: trailing content", ErrMalformedSnapshot)
	}

	*s = *decoded
	return nil
}

// EncodeIndented renders the mapping the way snapshots are written on disk:
// 4-space indentation and a trailing newline.
func (s *Stock) EncodeIndented() ([]byte, error) {
	raw, err := s.MarshalJSON()
	if err != nil {
		return nil, err
	}
	var out bytes.Buffer
	if err := json.Indent(&out, raw, "", "    "); err != nil {
		return nil, err
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}

// DecodeStock parses a snapshot document
func DecodeStock(data []byte) (*Stock, error) {
	s := NewStock()
	if err := s.UnmarshalJSON(data); err != nil {
		return nil, err
	}
	return s, nil
}
