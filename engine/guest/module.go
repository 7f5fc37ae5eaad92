package guest

const (
	magic   uint32 = 0x6D736100
	version uint32 = 0x01
)

const (
	secType     byte = 1
	secFunction byte = 3
	secMemory   byte = 5
	secGlobal   byte = 6
	secExport   byte = 7
	secCode     byte = 10
)

const (
	kindFunc   byte = 0
	kindMemory byte = 2
)

type valType byte

const (
	valI32 valType = 0x7F
	valF32 valType = 0x7D
)

const (
	opUnreachable byte = 0x00
	opIf          byte = 0x04
	opElse        byte = 0x05
	opEnd         byte = 0x0B
	opReturn      byte = 0x0F
	opCall        byte = 0x10
	opLocalGet    byte = 0x20
	opLocalSet    byte = 0x21
	opGlobalGet   byte = 0x23
	opGlobalSet   byte = 0x24
	opI32Load     byte = 0x28
	opF32Load     byte = 0x2A
	opI32Store    byte = 0x36
	opF32Store    byte = 0x38
	opI32Const    byte = 0x41
	opF32Const    byte = 0x43
	opI32Eqz      byte = 0x45
	opI32GtU      byte = 0x4B
	opI32Add      byte = 0x6A
	opI32Sub      byte = 0x6B

	blockVoid byte = 0x40
	blockI32  byte = 0x7F

	alignWord uint32 = 2
)

type funcType struct {
	params  []valType
	results []valType
}

func (t funcType) key() string {
	b := make([]byte, 0, len(t.params)+len(t.results)+1)
	for _, p := range t.params {
		b = append(b, byte(p))
	}
	b = append(b, '|')
	for _, r := range t.results {
		b = append(b, byte(r))
	}
	return string(b)
}

// function is one defined function. Functions with an empty export name
// stay internal.
type function struct {
	export string
	typ    funcType
	locals []valType
	body   *code
}

// module is the minimal subset of a core module the reference guest needs:
// no imports, one memory, mutable i32 globals.
type module struct {
	funcs   []*function
	globals []int32
	pages   uint32
}

func (m *module) add(f *function) uint32 {
	m.funcs = append(m.funcs, f)
	return uint32(len(m.funcs) - 1)
}

func (m *module) encode() []byte {
	var w writer
	w.u32le(magic)
	w.u32le(version)

	var types []funcType
	typeIdx := make(map[string]uint32)
	funcTypes := make([]uint32, len(m.funcs))
	for i, f := range m.funcs {
		k := f.typ.key()
		idx, ok := typeIdx[k]
		if !ok {
			idx = uint32(len(types))
			typeIdx[k] = idx
			types = append(types, f.typ)
		}
		funcTypes[i] = idx
	}

	var sec writer
	sec.u32(uint32(len(types)))
	for _, t := range types {
		sec.byte(0x60)
		writeValTypes(&sec, t.params)
		writeValTypes(&sec, t.results)
	}
	w.section(secType, &sec)

	sec = writer{}
	sec.u32(uint32(len(funcTypes)))
	for _, idx := range funcTypes {
		sec.u32(idx)
	}
	w.section(secFunction, &sec)

	sec = writer{}
	sec.u32(1)
	sec.byte(0x01) // has max
	sec.u32(m.pages)
	sec.u32(m.pages)
	w.section(secMemory, &sec)

	sec = writer{}
	sec.u32(uint32(len(m.globals)))
	for _, g := range m.globals {
		sec.byte(byte(valI32), 0x01)
		sec.byte(opI32Const)
		sec.s32(g)
		sec.byte(opEnd)
	}
	w.section(secGlobal, &sec)

	var exports int
	for _, f := range m.funcs {
		if f.export != "" {
			exports++
		}
	}
	sec = writer{}
	sec.u32(uint32(exports + 1))
	sec.name("memory")
	sec.byte(kindMemory)
	sec.u32(0)
	for i, f := range m.funcs {
		if f.export == "" {
			continue
		}
		sec.name(f.export)
		sec.byte(kindFunc)
		sec.u32(uint32(i))
	}
	w.section(secExport, &sec)

	sec = writer{}
	sec.u32(uint32(len(m.funcs)))
	for _, f := range m.funcs {
		var body writer
		if len(f.locals) == 0 {
			body.u32(0)
		} else {
			body.u32(uint32(len(f.locals)))
			for _, l := range f.locals {
				body.u32(1)
				body.byte(byte(l))
			}
		}
		body.byte(f.body.bytes()...)
		body.byte(opEnd)

		sec.u32(uint32(body.buf.Len()))
		sec.byte(body.bytes()...)
	}
	w.section(secCode, &sec)

	return w.bytes()
}

func writeValTypes(w *writer, ts []valType) {
	w.u32(uint32(len(ts)))
	for _, t := range ts {
		w.byte(byte(t))
	}
}

// code emits an instruction sequence.
type code struct {
	w writer
}

func (c *code) bytes() []byte { return c.w.bytes() }

func (c *code) op(b ...byte) *code {
	c.w.byte(b...)
	return c
}

func (c *code) localGet(i uint32) *code {
	c.w.byte(opLocalGet)
	c.w.u32(i)
	return c
}

func (c *code) localSet(i uint32) *code {
	c.w.byte(opLocalSet)
	c.w.u32(i)
	return c
}

func (c *code) globalGet(i uint32) *code {
	c.w.byte(opGlobalGet)
	c.w.u32(i)
	return c
}

func (c *code) globalSet(i uint32) *code {
	c.w.byte(opGlobalSet)
	c.w.u32(i)
	return c
}

func (c *code) i32Const(v int32) *code {
	c.w.byte(opI32Const)
	c.w.s32(v)
	return c
}

func (c *code) f32Const(v float32) *code {
	c.w.byte(opF32Const)
	c.w.f32(v)
	return c
}

func (c *code) call(fn uint32) *code {
	c.w.byte(opCall)
	c.w.u32(fn)
	return c
}

// mem emits a load or store with word alignment.
func (c *code) mem(op byte, offset uint32) *code {
	c.w.byte(op)
	c.w.u32(alignWord)
	c.w.u32(offset)
	return c
}
