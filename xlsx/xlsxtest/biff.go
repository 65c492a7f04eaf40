// Package xlsxtest builds minimal Excel 97-2003 (BIFF8) workbooks for tests.
package xlsxtest

import (
	"bytes"
	"encoding/binary"
	"math"
	"os"
	"unicode/utf16"
)

const (
	sectorSize = 512
	cutoff     = 4096
	freeSect   = 0xffffffff
	endOfChain = 0xfffffffe
	fatSect    = 0xfffffffd
	noStream   = 0xffffffff
)

// Workbook is a BIFF8 workbook under construction. Text cells added with
// Shared are stored in the shared string table.
type Workbook struct {
	sheets []sheet
	sst    []string
}

type sheet struct {
	name    string
	records [][]byte
}

// Sheet appends a worksheet containing the cell records.
func (w *Workbook) Sheet(name string, records ...[]byte) {
	w.sheets = append(w.sheets, sheet{name, records})
}

// Shared returns a LABELSST record for a shared string.
func (w *Workbook) Shared(row, col int, s string) []byte {
	index := len(w.sst)
	w.sst = append(w.sst, s)

	return record(0x00fd, cellref(row, col), u16(0), u32(uint32(index)))
}

// Label returns a LABEL record with an inline string.
func Label(row, col int, s string) []byte {
	return record(0x0204, cellref(row, col), u16(0), u16(uint16(len(s))), []byte{0x00}, []byte(s))
}

func Number(row, col int, f float64) []byte {
	return record(0x0203, cellref(row, col), u16(0), f64(f))
}

func RK(row, col int, v uint32) []byte {
	return record(0x027e, cellref(row, col), u16(0), u32(v))
}

func MulRK(row, col int, values ...uint32) []byte {
	data := [][]byte{cellref(row, col)}
	for _, v := range values {
		data = append(data, u16(0), u32(v))
	}

	data = append(data, u16(uint16(col+len(values)-1)))

	return record(0x00bd, data...)
}

func Bool(row, col int, b bool) []byte {
	v := byte(0)
	if b {
		v = 1
	}

	return record(0x0205, cellref(row, col), u16(0), []byte{v, 0x00})
}

// Error returns a BOOLERR record holding an error code, e.g. 0x07 for #DIV/0!.
func Error(row, col int, code byte) []byte {
	return record(0x0205, cellref(row, col), u16(0), []byte{code, 0x01})
}

func Blank(row, col int) []byte {
	return record(0x0201, cellref(row, col), u16(0))
}

// Formula returns a FORMULA record with a cached result. A string result is
// followed by the STRING record holding the text.
func Formula(row, col int, result any) []byte {
	var cached []byte
	var text []byte

	switch v := result.(type) {
	case string:
		cached = []byte{0x00, 0, 0, 0, 0, 0, 0xff, 0xff}
		text = record(0x0207, u16(uint16(len(v))), []byte{0x00}, []byte(v))

	case bool:
		cached = []byte{0x01, 0, 0, 0, 0, 0, 0xff, 0xff}
		if v {
			cached[2] = 1
		}

	case float64:
		cached = f64(v)
	}

	f := record(0x0006, cellref(row, col), u16(0), cached, u16(0), u32(0), u16(0))

	return append(f, text...)
}

// IntRK encodes an integer as an RK value.
func IntRK(v int32) uint32 {
	return uint32(v)<<2 | 0x02
}

// CentsRK encodes v/100 as an RK value.
func CentsRK(v int32) uint32 {
	return uint32(v)<<2 | 0x03
}

// FloatRK encodes the upper 30 bits of a float64 as an RK value. Only values
// with an all-zero lower mantissa survive the encoding, e.g. 0.5 or 2.25.
func FloatRK(f float64) uint32 {
	return uint32(math.Float64bits(f)>>32) &^ 0x03
}

// Save writes the workbook as an OLE2 compound document.
func (w *Workbook) Save(path string) error {
	return os.WriteFile(path, compound(w.stream()), 0660)
}

func (w *Workbook) stream() []byte {
	sst := [][]byte{u32(uint32(len(w.sst))), u32(uint32(len(w.sst)))}
	for _, s := range w.sst {
		sst = append(sst, u16(uint16(len(s))), []byte{0x00}, []byte(s))
	}

	prefix := bytes.Join([][]byte{
		bof(0x0005),
		record(0x003d, u16(0), u16(0), u16(0x4000), u16(0x2000), u16(0x38), u16(0), u16(0), u16(1), u16(0x258)),
		record(0x00fc, sst...),
	}, nil)

	length := len(prefix) + 4
	for _, s := range w.sheets {
		length += 4 + 8 + len(s.name)
	}

	globals := bytes.NewBuffer(prefix)
	substreams := bytes.Buffer{}

	for _, s := range w.sheets {
		offset := uint32(length + substreams.Len())

		globals.Write(record(0x0085, u32(offset), []byte{0x00, 0x00, byte(len(s.name)), 0x00}, []byte(s.name)))

		substreams.Write(bof(0x0010))
		for _, r := range s.records {
			substreams.Write(r)
		}
		substreams.Write(record(0x000a))
	}

	globals.Write(record(0x000a))
	globals.Write(substreams.Bytes())

	return globals.Bytes()
}

// compound wraps a workbook stream in a version 3 compound file laid out as
// header, FAT sector, directory sector and workbook stream.
func compound(stream []byte) []byte {
	if len(stream) < cutoff {
		stream = append(stream, make([]byte, cutoff-len(stream))...)
	}

	if n := len(stream) % sectorSize; n != 0 {
		stream = append(stream, make([]byte, sectorSize-n)...)
	}

	sectors := len(stream) / sectorSize

	header := make([]byte, sectorSize)
	copy(header, []byte{0xd0, 0xcf, 0x11, 0xe0, 0xa1, 0xb1, 0x1a, 0xe1})
	binary.LittleEndian.PutUint16(header[24:], 0x003e)
	binary.LittleEndian.PutUint16(header[26:], 0x0003)
	binary.LittleEndian.PutUint16(header[28:], 0xfffe)
	binary.LittleEndian.PutUint16(header[30:], 0x0009)
	binary.LittleEndian.PutUint16(header[32:], 0x0006)
	binary.LittleEndian.PutUint32(header[44:], 1)
	binary.LittleEndian.PutUint32(header[48:], 1)
	binary.LittleEndian.PutUint32(header[56:], cutoff)
	binary.LittleEndian.PutUint32(header[60:], endOfChain)
	binary.LittleEndian.PutUint32(header[68:], endOfChain)
	for i := 0; i < 109; i++ {
		binary.LittleEndian.PutUint32(header[76+4*i:], freeSect)
	}
	binary.LittleEndian.PutUint32(header[76:], 0)

	fat := make([]byte, sectorSize)
	for i := 0; i < sectorSize/4; i++ {
		binary.LittleEndian.PutUint32(fat[4*i:], freeSect)
	}
	binary.LittleEndian.PutUint32(fat[0:], fatSect)
	binary.LittleEndian.PutUint32(fat[4:], endOfChain)
	for i := 0; i < sectors; i++ {
		next := uint32(3 + i)
		if i == sectors-1 {
			next = endOfChain
		}
		binary.LittleEndian.PutUint32(fat[4*(2+i):], next)
	}

	dir := make([]byte, sectorSize)
	entry(dir[0:128], "Root Entry", 0x05, 1, endOfChain, 0)
	entry(dir[128:256], "Workbook", 0x02, noStream, 2, uint32(len(stream)))

	return bytes.Join([][]byte{header, fat, dir, stream}, nil)
}

func entry(b []byte, name string, kind byte, child uint32, start uint32, size uint32) {
	runes := utf16.Encode([]rune(name))
	for i, r := range runes {
		binary.LittleEndian.PutUint16(b[2*i:], r)
	}

	binary.LittleEndian.PutUint16(b[64:], uint16(2*(len(runes)+1)))
	b[66] = kind
	b[67] = 0x01
	binary.LittleEndian.PutUint32(b[68:], noStream)
	binary.LittleEndian.PutUint32(b[72:], noStream)
	binary.LittleEndian.PutUint32(b[76:], child)
	binary.LittleEndian.PutUint32(b[116:], start)
	binary.LittleEndian.PutUint32(b[120:], size)
}

func bof(kind uint16) []byte {
	return record(0x0809, u16(0x0600), u16(kind), u16(0x0dbb), u16(0x07cc), u32(0), u32(0x0006))
}

func record(id uint16, data ...[]byte) []byte {
	body := bytes.Join(data, nil)

	return bytes.Join([][]byte{u16(id), u16(uint16(len(body))), body}, nil)
}

func cellref(row, col int) []byte {
	return append(u16(uint16(row)), u16(uint16(col))...)
}

func u16(v uint16) []byte {
	return binary.LittleEndian.AppendUint16(nil, v)
}

func u32(v uint32) []byte {
	return binary.LittleEndian.AppendUint32(nil, v)
}

func f64(f float64) []byte {
	return binary.LittleEndian.AppendUint64(nil, math.Float64bits(f))
}
