package classfile

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("jclass.classfile")

type decoder struct {
	log          commonlog.Logger
	resolve      bool
	checkVersion bool
	minMajor     uint16
	maxMajor     uint16
}

type Option func(*decoder)

// WithResolve resolves every constant pool reference before Parse returns.
// A dangling reference then fails the whole decode.
func WithResolve() Option {
	return func(d *decoder) { d.resolve = true }
}

// WithVersionRange rejects class files whose major version lies outside
// [min, max]. Without it any version is accepted.
func WithVersionRange(min, max uint16) Option {
	return func(d *decoder) {
		d.checkVersion = true
		d.minMajor, d.maxMajor = min, max
	}
}

func WithLogger(l commonlog.Logger) Option {
	return func(d *decoder) {
		if l != nil {
			d.log = l
		}
	}
}

func ParseFile(path string, opts ...Option) (*ClassFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open class file: %w", err)
	}
	return Parse(data, opts...)
}

// ParseReader buffers all of r before decoding.
func ParseReader(r io.Reader, opts ...Option) (*ClassFile, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read class file: %w", err)
	}
	return Parse(data, opts...)
}

// Parse decodes one complete class file image. The input is not retained.
func Parse(data []byte, opts ...Option) (*ClassFile, error) {
	d := &decoder{log: log}
	for _, opt := range opts {
		opt(d)
	}
	return d.parse(newCursor(data))
}

// ParseHeader decodes only the magic, version and constant pool. It returns
// the offset of the first byte after the pool, where access_flags begins.
func ParseHeader(data []byte, opts ...Option) (*ClassFile, int, error) {
	d := &decoder{log: log}
	for _, opt := range opts {
		opt(d)
	}
	c := newCursor(data)
	cf, err := d.parseHeader(c)
	if err != nil {
		return nil, 0, err
	}
	if err := d.finish(cf); err != nil {
		return nil, 0, err
	}
	return cf, c.offset(), nil
}

func (d *decoder) parse(c *cursor) (*ClassFile, error) {
	cf, err := d.parseHeader(c)
	if err != nil {
		return nil, err
	}
	if err := d.readClassBody(c, cf); err != nil {
		return nil, err
	}
	if n := c.remaining(); n > 0 {
		return nil, fmt.Errorf("%w: %d bytes at offset %d", ErrTrailingData, n, c.offset())
	}
	if err := d.finish(cf); err != nil {
		return nil, err
	}
	return cf, nil
}

func (d *decoder) parseHeader(c *cursor) (*ClassFile, error) {
	magic, err := c.readU4()
	if err != nil {
		return nil, fmt.Errorf("failed to read magic: %w", err)
	}
	if magic != Magic {
		return nil, &MagicError{Value: magic}
	}

	cf := &ClassFile{Magic: magic}
	if cf.MinorVersion, err = c.readU2(); err != nil {
		return nil, fmt.Errorf("failed to read version: %w", err)
	}
	if cf.MajorVersion, err = c.readU2(); err != nil {
		return nil, fmt.Errorf("failed to read version: %w", err)
	}
	if d.checkVersion && (cf.MajorVersion < d.minMajor || cf.MajorVersion > d.maxMajor) {
		return nil, fmt.Errorf("%w: %d.%d (accepted major versions %d-%d)",
			ErrUnsupportedVersion, cf.MajorVersion, cf.MinorVersion, d.minMajor, d.maxMajor)
	}

	if cf.ConstantPool, err = readConstantPool(c); err != nil {
		return nil, err
	}
	d.log.Debugf("decoded constant pool: count=%d end=%d", cf.ConstantPool.Count(), c.offset())
	return cf, nil
}

func (d *decoder) finish(cf *ClassFile) error {
	if !d.resolve {
		return nil
	}
	if err := cf.ConstantPool.Resolve(); err != nil {
		return err
	}
	d.log.Debugf("resolved %d constant pool slots", cf.ConstantPool.Slots())
	return nil
}

// readClassBody reads everything after the constant pool. None of it is
// interpreted; indices stay raw.
func (d *decoder) readClassBody(c *cursor, cf *ClassFile) error {
	flags, err := c.readU2()
	if err != nil {
		return fmt.Errorf("failed to read class info: %w", err)
	}
	cf.AccessFlags = AccessFlags(flags)
	if cf.ThisClass, err = c.readU2(); err != nil {
		return fmt.Errorf("failed to read class info: %w", err)
	}
	if cf.SuperClass, err = c.readU2(); err != nil {
		return fmt.Errorf("failed to read class info: %w", err)
	}

	interfacesCount, err := c.readU2()
	if err != nil {
		return fmt.Errorf("failed to read interfaces count: %w", err)
	}
	cf.Interfaces = make([]uint16, interfacesCount)
	for i := range cf.Interfaces {
		if cf.Interfaces[i], err = c.readU2(); err != nil {
			return fmt.Errorf("failed to read interfaces: %w", err)
		}
	}

	if cf.Fields, err = readMembers(c); err != nil {
		return fmt.Errorf("failed to read fields: %w", err)
	}
	if cf.Methods, err = readMembers(c); err != nil {
		return fmt.Errorf("failed to read methods: %w", err)
	}
	if cf.Attributes, err = readAttributes(c); err != nil {
		return fmt.Errorf("failed to read attributes: %w", err)
	}
	return nil
}

func readMembers(c *cursor) ([]MemberInfo, error) {
	count, err := c.readU2()
	if err != nil {
		return nil, err
	}
	members := make([]MemberInfo, count)
	for i := range members {
		m := &members[i]
		flags, err := c.readU2()
		if err != nil {
			return nil, fmt.Errorf("member %d: %w", i, err)
		}
		m.AccessFlags = AccessFlags(flags)
		if m.NameIndex, err = c.readU2(); err != nil {
			return nil, fmt.Errorf("member %d: %w", i, err)
		}
		if m.DescriptorIndex, err = c.readU2(); err != nil {
			return nil, fmt.Errorf("member %d: %w", i, err)
		}
		if m.Attributes, err = readAttributes(c); err != nil {
			return nil, fmt.Errorf("member %d: %w", i, err)
		}
	}
	return members, nil
}

func readAttributes(c *cursor) ([]AttributeInfo, error) {
	count, err := c.readU2()
	if err != nil {
		return nil, err
	}
	attrs := make([]AttributeInfo, count)
	for i := range attrs {
		if attrs[i].NameIndex, err = c.readU2(); err != nil {
			return nil, fmt.Errorf("attribute %d: %w", i, err)
		}
		length, err := c.readU4()
		if err != nil {
			return nil, fmt.Errorf("attribute %d: %w", i, err)
		}
		if uint64(length) > uint64(c.remaining()) {
			return nil, fmt.Errorf("attribute %d: %w: length %d exceeds %d remaining bytes",
				i, ErrUnexpectedEOF, length, c.remaining())
		}
		info, err := c.readExact(int(length))
		if err != nil {
			return nil, fmt.Errorf("attribute %d: %w", i, err)
		}
		attrs[i].Info = bytes.Clone(info)
	}
	return attrs, nil
}
