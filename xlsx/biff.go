package xlsx

import (
	"encoding/binary"
	"fmt"
	"math"
)

// BIFF record identifiers
const (
	biffEOF        = 0x000a
	biffFormula    = 0x0006
	biffBoundSheet = 0x0085
	biffMulRK      = 0x00bd
	biffLabelSST   = 0x00fd
	biffNumber     = 0x0203
	biffLabel      = 0x0204
	biffBoolErr    = 0x0205
	biffRK         = 0x027e
)

var biffErrors = map[byte]string{
	0x00: "#NULL!",
	0x07: "#DIV/0!",
	0x0f: "#VALUE!",
	0x17: "#REF!",
	0x1d: "#NAME?",
	0x24: "#NUM!",
	0x2a: "#N/A",
}

// cell is a single stored value from a worksheet substream. Text cells are
// flagged rather than decoded because their contents live in the shared
// string table.
type cell struct {
	row   int
	col   int
	value any
	text  bool
}

type biff struct {
	stream []byte
	pos    int
}

func (b *biff) next() (uint16, []byte, bool) {
	if b.pos+4 > len(b.stream) {
		return 0, nil, false
	}

	id := binary.LittleEndian.Uint16(b.stream[b.pos:])
	size := int(binary.LittleEndian.Uint16(b.stream[b.pos+2:]))
	start := b.pos + 4

	if start+size > len(b.stream) {
		return 0, nil, false
	}

	b.pos = start + size

	return id, b.stream[start:b.pos], true
}

// locate returns the index and stream offset of the first worksheet. Chart
// and macro sheets are skipped.
func locate(stream []byte) (int, int, error) {
	r := biff{stream: stream}
	index := 0

	for {
		id, data, ok := r.next()
		if !ok || id == biffEOF {
			break
		}

		if id == biffBoundSheet && len(data) >= 6 {
			if data[5] == 0x00 {
				return index, int(binary.LittleEndian.Uint32(data)), nil
			}

			index++
		}
	}

	return 0, 0, fmt.Errorf("workbook has no worksheets")
}

// cells returns the stored values of the worksheet substream that starts at
// offset. Blank cells are omitted.
func cells(stream []byte, offset int) ([]cell, error) {
	if offset < 0 || offset >= len(stream) {
		return nil, fmt.Errorf("invalid worksheet offset (%v)", offset)
	}

	r := biff{stream: stream, pos: offset}
	list := []cell{}

	for {
		id, data, ok := r.next()
		if !ok {
			return nil, fmt.Errorf("truncated worksheet")
		}

		switch id {
		case biffNumber:
			if len(data) >= 14 {
				f := math.Float64frombits(binary.LittleEndian.Uint64(data[6:]))
				list = append(list, cell{row: row(data), col: col(data), value: number(f)})
			}

		case biffRK:
			if len(data) >= 10 {
				list = append(list, cell{row: row(data), col: col(data), value: rk(binary.LittleEndian.Uint32(data[6:]))})
			}

		case biffMulRK:
			if len(data) >= 6 {
				first := col(data)
				for i := 0; 4+6*i+6 <= len(data)-2; i++ {
					v := binary.LittleEndian.Uint32(data[4+6*i+2:])
					list = append(list, cell{row: row(data), col: first + i, value: rk(v)})
				}
			}

		case biffBoolErr:
			if len(data) >= 8 {
				list = append(list, cell{row: row(data), col: col(data), value: boolerr(data[6], data[7] != 0)})
			}

		case biffFormula:
			if len(data) >= 14 {
				c := cell{row: row(data), col: col(data)}
				result := data[6:14]

				if result[6] == 0xff && result[7] == 0xff {
					switch result[0] {
					case 0x00:
						c.text = true
					case 0x01:
						c.value = result[2] != 0
					case 0x02:
						c.value = boolerr(result[2], true)
					default:
						c.value = ""
					}
				} else {
					c.value = number(math.Float64frombits(binary.LittleEndian.Uint64(result)))
				}

				list = append(list, c)
			}

		case biffLabelSST, biffLabel:
			if len(data) >= 6 {
				list = append(list, cell{row: row(data), col: col(data), text: true})
			}

		case biffEOF:
			return list, nil
		}
	}
}

func row(data []byte) int {
	return int(binary.LittleEndian.Uint16(data[0:]))
}

func col(data []byte) int {
	return int(binary.LittleEndian.Uint16(data[2:]))
}

// rk decodes the compressed RK number format.
func rk(v uint32) any {
	var f float64

	if v&0x02 != 0 {
		f = float64(int32(v) >> 2)
	} else {
		f = math.Float64frombits(uint64(v&0xfffffffc) << 32)
	}

	if v&0x01 != 0 {
		f /= 100
	}

	return number(f)
}

func boolerr(v byte, isError bool) any {
	if !isError {
		return v != 0
	}

	if s, ok := biffErrors[v]; ok {
		return s
	}

	return "#ERROR!"
}

// number returns integral values as int64, matching the values parsed from
// OOXML workbooks.
func number(f float64) any {
	if f == math.Trunc(f) && math.Abs(f) < 1<<53 {
		return int64(f)
	}

	return f
}
