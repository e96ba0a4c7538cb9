package heap

import (
	"fmt"

	"storemy/pkg/dberrors"
	"storemy/pkg/primitives"
	"storemy/pkg/storage"
	"storemy/pkg/tuple"
)

// Page is a slotted heap page: a header bitmap of N slots followed by N
// fixed-size tuple slots, serialized byte-for-byte to storage.PageSize
// bytes. N = floor((PageSize*8) / (tupleSize*8 + 1)) so that the header
// bitmap itself fits in the remaining space.
type Page struct {
	id       PageID
	desc     *tuple.TupleDescription
	numSlots int
	header   []byte // ceil(numSlots/8) bytes, bit i (LSB-first within byte i/8) = slot i used
	slots    []*tuple.Tuple

	dirty     bool
	dirtiedBy primitives.TransactionID

	beforeImage *Page
}

// NumSlots computes N for a page of size pageSize holding tuples of the
// given byte width, per the bit-exact formula in the storage format.
func NumSlots(pageSize, tupleSize int) int {
	return (pageSize * 8) / (tupleSize*8 + 1)
}

func headerBytes(numSlots int) int {
	return (numSlots + 7) / 8
}

// NewPage constructs a Page from exactly storage.PageSize raw bytes,
// deserializing used slots according to desc. A buffer of all zero bytes
// decodes to an empty page.
func NewPage(id PageID, data []byte, desc *tuple.TupleDescription) (*Page, error) {
	if len(data) != storage.PageSize {
		return nil, dberrors.NewIO("HeapPage", "New", fmt.Sprintf("expected %d bytes, got %d", storage.PageSize, len(data)), nil)
	}
	tupleSize := desc.TupleSize()
	numSlots := NumSlots(storage.PageSize, tupleSize)
	hdrLen := headerBytes(numSlots)

	p := &Page{
		id:       id,
		desc:     desc,
		numSlots: numSlots,
		header:   make([]byte, hdrLen),
		slots:    make([]*tuple.Tuple, numSlots),
	}
	copy(p.header, data[:hdrLen])

	offset := hdrLen
	for i := 0; i < numSlots; i++ {
		slotBytes := data[offset : offset+tupleSize]
		offset += tupleSize
		if !p.slotUsed(i) {
			continue
		}
		t, err := tuple.Deserialize(slotBytes, desc)
		if err != nil {
			return nil, dberrors.NewIO("HeapPage", "New", "deserialize slot", err)
		}
		rid := primitives.RecordID{PID: id, Slot: primitives.SlotID(i)}
		t.RecordID = &rid
		p.slots[i] = t
	}
	return p, nil
}

func (p *Page) slotUsed(i int) bool {
	return p.header[i/8]&(1<<(uint(i)%8)) != 0
}

func (p *Page) setSlotUsed(i int, used bool) {
	mask := byte(1 << (uint(i) % 8))
	if used {
		p.header[i/8] |= mask
	} else {
		p.header[i/8] &^= mask
	}
}

func (p *Page) GetID() primitives.PageID { return p.id }

// NumEmptySlots returns N minus the popcount of the used-slot bitmap.
func (p *Page) NumEmptySlots() int {
	used := 0
	for i := 0; i < p.numSlots; i++ {
		if p.slotUsed(i) {
			used++
		}
	}
	return p.numSlots - used
}

// Tuples returns used tuples in ascending slot order.
func (p *Page) Tuples() []*tuple.Tuple {
	out := make([]*tuple.Tuple, 0, p.numSlots)
	for i := 0; i < p.numSlots; i++ {
		if p.slotUsed(i) {
			out = append(out, p.slots[i])
		}
	}
	return out
}

// InsertTuple places t into the lowest-index free slot, stamps its
// RecordID, and marks the page dirty. Fails with Db if no slot is free or t
// doesn't match this page's schema.
func (p *Page) InsertTuple(t *tuple.Tuple) error {
	if !t.Desc.Equals(p.desc) {
		return dberrors.NewDb("HeapPage", "InsertTuple", "tuple schema does not match page schema")
	}
	for i := 0; i < p.numSlots; i++ {
		if p.slotUsed(i) {
			continue
		}
		p.setSlotUsed(i, true)
		rid := primitives.RecordID{PID: p.id, Slot: primitives.SlotID(i)}
		t.RecordID = &rid
		p.slots[i] = t
		return nil
	}
	return dberrors.NewDb("HeapPage", "InsertTuple", "no free slot on page")
}

// DeleteTuple clears t's slot. Fails with Db if t's RecordID doesn't name a
// used slot on this page.
func (p *Page) DeleteTuple(t *tuple.Tuple) error {
	if t.RecordID == nil {
		return dberrors.NewDb("HeapPage", "DeleteTuple", "tuple has no RecordID")
	}
	pid, ok := t.RecordID.PID.(PageID)
	if !ok || !pid.Equals(p.id) {
		return dberrors.NewDb("HeapPage", "DeleteTuple", "RecordID does not belong to this page")
	}
	slot := int(t.RecordID.Slot)
	if slot < 0 || slot >= p.numSlots || !p.slotUsed(slot) {
		return dberrors.NewDb("HeapPage", "DeleteTuple", "slot is not occupied")
	}
	p.setSlotUsed(slot, false)
	p.slots[slot] = nil
	t.RecordID = nil
	return nil
}

// GetPageData serializes the page back to exactly storage.PageSize bytes,
// byte-for-byte stable for used slots (unused slot bytes are unspecified).
func (p *Page) GetPageData() []byte {
	buf := make([]byte, storage.PageSize)
	copy(buf, p.header)

	tupleSize := p.desc.TupleSize()
	offset := len(p.header)
	for i := 0; i < p.numSlots; i++ {
		if p.slotUsed(i) && p.slots[i] != nil {
			w := sliceWriter{buf: buf[offset : offset+tupleSize]}
			_ = p.slots[i].Serialize(&w)
		}
		offset += tupleSize
	}
	return buf
}

// sliceWriter implements io.Writer over a fixed-capacity slice, used so
// tuple serialization writes directly into the page buffer without an
// intermediate allocation.
type sliceWriter struct {
	buf []byte
	pos int
}

func (w *sliceWriter) Write(p []byte) (int, error) {
	n := copy(w.buf[w.pos:], p)
	w.pos += n
	return n, nil
}

func (p *Page) IsDirty() bool                                 { return p.dirty }
func (p *Page) DirtiedBy() primitives.TransactionID            { return p.dirtiedBy }
func (p *Page) MarkDirty(dirty bool, tid primitives.TransactionID) {
	p.dirty = dirty
	if dirty {
		p.dirtiedBy = tid
	}
}

// GetBeforeImage returns a snapshot of the page taken at the last
// SetBeforeImage call, or the page itself if none was ever taken.
func (p *Page) GetBeforeImage() storage.Page {
	if p.beforeImage == nil {
		return p
	}
	return p.beforeImage
}

// SetBeforeImage snapshots the page's current serialized bytes.
func (p *Page) SetBeforeImage() {
	snap, err := NewPage(p.id, p.GetPageData(), p.desc)
	if err != nil {
		return
	}
	p.beforeImage = snap
}
