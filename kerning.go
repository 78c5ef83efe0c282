package fontc

import (
	"slices"

	"github.com/emirpasic/gods/maps/treemap"
	"github.com/emirpasic/gods/utils"
)

// PairKey packs an ordered character pair into a kerning table key: the
// first rune in the high 32 bits, the second in the low 32 bits.
func PairKey(a, b rune) uint64 {
	return uint64(uint32(a))<<32 | uint64(uint32(b))
}

// SplitPairKey is the inverse of PairKey.
func SplitPairKey(key uint64) (a, b rune) {
	return rune(uint32(key >> 32)), rune(uint32(key))
}

// KerningPair is one kerning table entry.
type KerningPair struct {
	Key    uint64
	First  rune
	Second rune
	Value  int
}

// KerningTable maps character pairs to nonzero kerning offsets, ordered by
// PairKey.
type KerningTable struct {
	m *treemap.Map
}

// NewKerningTable returns an empty table.
func NewKerningTable() *KerningTable {
	return &KerningTable{m: treemap.NewWith(utils.UInt64Comparator)}
}

// Set records the offset for the pair (a, b). A zero offset removes the pair.
func (t *KerningTable) Set(a, b rune, v int) {
	k := PairKey(a, b)
	if v == 0 {
		t.m.Remove(k)
		return
	}
	t.m.Put(k, v)
}

// Lookup returns the offset for (a, b), or 0 when the pair is not kerned.
func (t *KerningTable) Lookup(a, b rune) int {
	if t == nil {
		return 0
	}
	if v, ok := t.m.Get(PairKey(a, b)); ok {
		return v.(int)
	}
	return 0
}

// Len returns the number of kerned pairs.
func (t *KerningTable) Len() int {
	if t == nil {
		return 0
	}
	return t.m.Size()
}

// Pairs returns all entries in ascending key order.
func (t *KerningTable) Pairs() []KerningPair {
	if t == nil {
		return nil
	}
	pairs := make([]KerningPair, 0, t.m.Size())
	it := t.m.Iterator()
	for it.Next() {
		k := it.Key().(uint64)
		a, b := SplitPairKey(k)
		pairs = append(pairs, KerningPair{Key: k, First: a, Second: b, Value: it.Value().(int)})
	}
	return pairs
}

// BuildKerning asks k for every ordered pair of the glyphs' characters,
// including a character with itself, and keeps the nonzero offsets.
func BuildKerning(k Kerner, glyphs []*Glyph) *KerningTable {
	runes := make([]rune, 0, len(glyphs))
	for _, g := range glyphs {
		runes = append(runes, g.Rune)
	}
	slices.Sort(runes)
	runes = slices.Compact(runes)

	t := NewKerningTable()
	for _, a := range runes {
		for _, b := range runes {
			if v := k.Kerning(a, b); v != 0 {
				t.Set(a, b, v)
			}
		}
	}
	Logger().Debug("fontc: kerning pairs", "characters", len(runes), "pairs", t.Len())
	return t
}
