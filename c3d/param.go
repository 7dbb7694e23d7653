package c3d

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strings"
)

var errParamType = errors.New("unexpected parameter data type")

// Param is one entry of a parameter group.
type Param struct {
	Name   string
	Desc   string
	Locked bool
	// Type is the element size in bytes, negative for characters.
	Type int8
	Dims []int
	Data []byte

	order     binary.ByteOrder
	processor Processor
}

// Group is a named set of parameters.
type Group struct {
	ID     int
	Name   string
	Desc   string
	Locked bool
	Params map[string]*Param
}

// Param returns the parameter with the given (case-insensitive) name.
func (g *Group) Param(name string) (*Param, bool) {
	p, ok := g.Params[strings.ToUpper(name)]
	return p, ok
}

func (p *Param) elemSize() int {
	if p.Type < 0 {
		return -int(p.Type)
	}
	return int(p.Type)
}

// Len returns the number of elements stored in the parameter.
func (p *Param) Len() int {
	if s := p.elemSize(); s > 0 {
		return len(p.Data) / s
	}
	return 0
}

func (p *Param) Int() (int, error) {
	v, err := p.Ints()
	if err != nil {
		return 0, err
	}
	if len(v) == 0 {
		return 0, fmt.Errorf("%s: empty parameter", p.Name)
	}
	return v[0], nil
}

// Ints decodes integer parameters; 16 bit values are read as unsigned
// when they would otherwise be negative counts.
func (p *Param) Ints() ([]int, error) {
	switch p.Type {
	case 1:
		out := make([]int, len(p.Data))
		for i, b := range p.Data {
			out[i] = int(int8(b))
		}
		return out, nil
	case 2:
		out := make([]int, len(p.Data)/2)
		for i := range out {
			out[i] = int(int16(p.order.Uint16(p.Data[2*i:])))
		}
		return out, nil
	case 4:
		f, err := p.Float32s()
		if err != nil {
			return nil, err
		}
		out := make([]int, len(f))
		for i, v := range f {
			out[i] = int(v)
		}
		return out, nil
	}
	return nil, fmt.Errorf("%s: %w (%d)", p.Name, errParamType, p.Type)
}

func (p *Param) Float32() (float32, error) {
	v, err := p.Float32s()
	if err != nil {
		return 0, err
	}
	if len(v) == 0 {
		return 0, fmt.Errorf("%s: empty parameter", p.Name)
	}
	return v[0], nil
}

func (p *Param) Float32s() ([]float32, error) {
	switch p.Type {
	case 4:
		out := make([]float32, len(p.Data)/4)
		for i := range out {
			out[i] = decodeFloat(p.processor, p.Data[4*i:])
		}
		return out, nil
	case 1, 2:
		v, err := p.Ints()
		if err != nil {
			return nil, err
		}
		out := make([]float32, len(v))
		for i, n := range v {
			out[i] = float32(n)
		}
		return out, nil
	}
	return nil, fmt.Errorf("%s: %w (%d)", p.Name, errParamType, p.Type)
}

// Strings decodes a character parameter. The first dimension is the
// string length; trailing blanks are trimmed.
func (p *Param) Strings() ([]string, error) {
	if p.Type != -1 {
		return nil, fmt.Errorf("%s: %w (%d)", p.Name, errParamType, p.Type)
	}
	if len(p.Dims) == 0 {
		return []string{strings.TrimRight(string(p.Data), " \x00")}, nil
	}
	w := p.Dims[0]
	if w == 0 {
		return nil, nil
	}
	var out []string
	for i := 0; i+w <= len(p.Data); i += w {
		out = append(out, strings.TrimRight(string(p.Data[i:i+w]), " \x00"))
	}
	return out, nil
}

func abs8(v int8) int {
	if v < 0 {
		return -int(v)
	}
	return int(v)
}

// parseParams decodes the group/parameter records of a parameter section.
// buf starts right after the 4 byte section header.
func parseParams(buf []byte, proc Processor, order binary.ByteOrder) (map[string]*Group, error) {
	byID := make(map[int]*Group)
	var params []struct {
		gid int
		p   *Param
	}

	o := 0
	for o+2 <= len(buf) {
		nameLen := int8(buf[o])
		id := int8(buf[o+1])
		if nameLen == 0 || id == 0 {
			break
		}
		n := abs8(nameLen)
		if o+2+n+2 > len(buf) {
			return nil, errors.New("truncated parameter section")
		}
		name := strings.ToUpper(string(buf[o+2 : o+2+n]))
		offPos := o + 2 + n
		next := int(int16(order.Uint16(buf[offPos:])))
		body := offPos + 2

		if id < 0 {
			g := &Group{
				ID:     -int(id),
				Name:   name,
				Locked: nameLen < 0,
				Params: make(map[string]*Param),
			}
			if body < len(buf) {
				dl := int(buf[body])
				if body+1+dl <= len(buf) {
					g.Desc = string(buf[body+1 : body+1+dl])
				}
			}
			byID[g.ID] = g
		} else {
			if body+2 > len(buf) {
				return nil, errors.New("truncated parameter record")
			}
			p := &Param{
				Name:      name,
				Locked:    nameLen < 0,
				Type:      int8(buf[body]),
				order:     order,
				processor: proc,
			}
			nd := int(buf[body+1])
			pos := body + 2
			if pos+nd > len(buf) {
				return nil, errors.New("truncated parameter dimensions")
			}
			size := p.elemSize()
			for i := 0; i < nd; i++ {
				d := int(buf[pos+i])
				p.Dims = append(p.Dims, d)
				size *= d
			}
			pos += nd
			if pos+size > len(buf) {
				return nil, fmt.Errorf("%s: truncated parameter data", name)
			}
			p.Data = buf[pos : pos+size]
			pos += size
			if pos < len(buf) {
				dl := int(buf[pos])
				if pos+1+dl <= len(buf) {
					p.Desc = string(buf[pos+1 : pos+1+dl])
				}
			}
			params = append(params, struct {
				gid int
				p   *Param
			}{int(id), p})
		}

		if next == 0 {
			break
		}
		o = offPos + next
	}

	groups := make(map[string]*Group)
	for _, g := range byID {
		groups[g.Name] = g
	}
	for _, e := range params {
		g, ok := byID[e.gid]
		if !ok {
			g = &Group{ID: e.gid, Params: make(map[string]*Param)}
			byID[e.gid] = g
		}
		g.Params[e.p.Name] = e.p
	}
	return groups, nil
}
