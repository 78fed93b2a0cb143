package mmap

// Region is a bounded window into a Mapping. It does not own the pages.
type Region struct {
	m      *Mapping
	offset int
	size   int
}

// Region returns the window [offset, offset+size). Unlike Slice, the window
// is not clamped and must lie inside the mapping.
func (m *Mapping) Region(offset, size int) (*Region, error) {
	if size < 0 {
		return nil, ErrOutOfBounds
	}
	if _, err := m.view(offset, offset+size); err != nil {
		return nil, err
	}
	return &Region{m: m, offset: offset, size: size}, nil
}

// Offset returns the absolute file offset of the region.
func (r *Region) Offset() int {
	return r.offset
}

// Bytes returns the region's bytes, or nil once the mapping is closed.
func (r *Region) Bytes() []byte {
	b, _ := r.m.view(r.offset, r.offset+r.size)
	return b
}

// Advise passes an access hint for the region to the kernel.
func (r *Region) Advise(p AccessPattern) error {
	b, err := r.m.view(r.offset, r.offset+r.size)
	if err != nil {
		return err
	}
	return osAdvise(b, p)
}
