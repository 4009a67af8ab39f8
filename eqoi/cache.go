package eqoi

// CacheSize is the number of slots in the recent-color cache
const CacheSize = 32

// ColorCache is the direct-mapped table of recently seen pixels.
// Slot h holds the last emitted pixel whose hash is h.
type ColorCache [CacheSize]Pixel

// Reset zeroes every slot
func (c *ColorCache) Reset() {
	*c = ColorCache{}
}

// Lookup returns the slot index for px and whether the slot already holds px
func (c *ColorCache) Lookup(px Pixel) (uint8, bool) {
	h := px.hash()
	return h, c[h] == px
}

// Insert stores px in its slot, evicting the previous occupant
func (c *ColorCache) Insert(px Pixel) {
	c[px.hash()] = px
}

// At returns the pixel held in slot i (only the low five bits are used)
func (c *ColorCache) At(i uint8) Pixel {
	return c[i%CacheSize]
}
