package hal

import (
	"encoding/binary"
	"fmt"
	"math"
)

// cpuBuffers keeps buffer objects and vertex array state in host memory.
// It backs the backends that do not talk to a GL driver.
type cpuBuffers struct {
	next    uint32
	buffers map[Buffer][]byte
	arrays  map[VertexArray]*vertexArray

	arrayBuffer Buffer
	array       VertexArray
}

type vertexArray struct {
	elements Buffer
	attribs  map[uint32]*attrib
}

type attrib struct {
	buf     Buffer
	size    int
	stride  int
	offset  int
	enabled bool
}

func newCPUBuffers() *cpuBuffers {
	return &cpuBuffers{
		buffers: make(map[Buffer][]byte),
		// Array 0 is the default vertex array, always present.
		arrays: map[VertexArray]*vertexArray{0: newVertexArray()},
	}
}

func newVertexArray() *vertexArray {
	return &vertexArray{attribs: make(map[uint32]*attrib)}
}

func (s *cpuBuffers) handle() uint32 {
	s.next++
	return s.next
}

func (s *cpuBuffers) CreateVertexArray() VertexArray {
	va := VertexArray(s.handle())
	s.arrays[va] = newVertexArray()
	return va
}

func (s *cpuBuffers) BindVertexArray(va VertexArray) {
	if _, ok := s.arrays[va]; !ok {
		return
	}
	s.array = va
}

func (s *cpuBuffers) DeleteVertexArray(va VertexArray) {
	if va == 0 {
		return
	}
	delete(s.arrays, va)
	if s.array == va {
		s.array = 0
	}
}

func (s *cpuBuffers) CreateBuffer() Buffer {
	b := Buffer(s.handle())
	s.buffers[b] = nil
	return b
}

func (s *cpuBuffers) BindBuffer(target Target, b Buffer) {
	if _, ok := s.buffers[b]; !ok && b != 0 {
		return
	}
	switch target {
	case ArrayBuffer:
		s.arrayBuffer = b
	case ElementArrayBuffer:
		s.arrays[s.array].elements = b
	}
}

func (s *cpuBuffers) BufferData(target Target, data []byte) {
	var b Buffer
	switch target {
	case ArrayBuffer:
		b = s.arrayBuffer
	case ElementArrayBuffer:
		b = s.arrays[s.array].elements
	}
	if b == 0 {
		return
	}
	s.buffers[b] = append([]byte(nil), data...)
}

func (s *cpuBuffers) DeleteBuffer(b Buffer) {
	if b == 0 {
		return
	}
	delete(s.buffers, b)
	if s.arrayBuffer == b {
		s.arrayBuffer = 0
	}
	for _, va := range s.arrays {
		if va.elements == b {
			va.elements = 0
		}
		for _, a := range va.attribs {
			if a.buf == b {
				a.buf = 0
			}
		}
	}
}

func (s *cpuBuffers) VertexAttribPointer(index uint32, size, stride, offset int) {
	va := s.arrays[s.array]
	a, ok := va.attribs[index]
	if !ok {
		a = &attrib{}
		va.attribs[index] = a
	}
	a.buf = s.arrayBuffer
	a.size = size
	a.stride = stride
	a.offset = offset
}

func (s *cpuBuffers) EnableVertexAttribArray(index uint32) {
	va := s.arrays[s.array]
	a, ok := va.attribs[index]
	if !ok {
		a = &attrib{}
		va.attribs[index] = a
	}
	a.enabled = true
}

// fetch resolves the bound vertex array into positions and the first count
// indices. Only attribute 0 is read, as a float32 xyz position.
func (s *cpuBuffers) fetch(count int, typ IndexType) ([][3]float32, []uint32, error) {
	if typ != UnsignedInt {
		return nil, nil, fmt.Errorf("draw: index type %d: %w", typ, ErrNotImplemented)
	}
	va := s.arrays[s.array]
	a, ok := va.attribs[0]
	if !ok || !a.enabled {
		return nil, nil, fmt.Errorf("draw: attribute 0 not enabled on vertex array %d", s.array)
	}
	if a.size < 2 || a.size > 4 {
		return nil, nil, fmt.Errorf("draw: attribute 0 has %d components", a.size)
	}
	stride := a.stride
	if stride == 0 {
		stride = a.size * 4
	}

	vdata := s.buffers[a.buf]
	var pos [][3]float32
	for off := a.offset; off+a.size*4 <= len(vdata); off += stride {
		var p [3]float32
		for c := 0; c < a.size && c < 3; c++ {
			p[c] = math.Float32frombits(binary.LittleEndian.Uint32(vdata[off+c*4:]))
		}
		pos = append(pos, p)
	}

	idata := s.buffers[va.elements]
	if len(idata) < count*4 {
		return nil, nil, fmt.Errorf("draw: %d indices requested, element buffer holds %d", count, len(idata)/4)
	}
	idx := make([]uint32, count)
	for i := range idx {
		idx[i] = binary.LittleEndian.Uint32(idata[i*4:])
		if int(idx[i]) >= len(pos) {
			return nil, nil, fmt.Errorf("draw: index %d out of range (%d vertices)", idx[i], len(pos))
		}
	}
	return pos, idx, nil
}
