package classfile

import (
	"errors"
	"fmt"
	"strings"
)

// Check validates what Resolve does not: that every reference lands on an
// entry of the expected kind and that descriptors are well formed. All
// problems are reported, joined with errors.Join.
func (cp ConstantPool) Check() error {
	var errs []error
	cp.Entries()(func(index uint16, entry ConstantPoolEntry) bool {
		for _, reason := range cp.checkEntry(entry) {
			errs = append(errs, &CheckError{Index: index, Tag: entry.Tag(), Reason: reason})
		}
		return true
	})
	return errors.Join(errs...)
}

func (cp ConstantPool) checkEntry(entry ConstantPoolEntry) []string {
	var problems []string
	expect := func(field string, r Ref, tags ...ConstantTag) ConstantPoolEntry {
		target, err := cp.Deref(r)
		if err != nil {
			problems = append(problems, fmt.Sprintf("%s: %v", field, err))
			return nil
		}
		for _, tag := range tags {
			if target.Tag() == tag {
				return target
			}
		}
		problems = append(problems, fmt.Sprintf("%s %s points at %s, want %s", field, r, target.Tag(), tagList(tags)))
		return nil
	}
	expectDescriptor := func(field string, r Ref, method bool) {
		utf8, ok := expect(field, r, ConstantUtf8).(*ConstantUtf8Info)
		if !ok {
			return
		}
		var err error
		if method {
			_, err = ParseMethodDescriptor(utf8.Value)
		} else {
			_, err = ParseFieldDescriptor(utf8.Value)
		}
		if err != nil {
			problems = append(problems, fmt.Sprintf("%s: %v", field, err))
		}
	}
	nameAndTypeDescriptor := func(r Ref, method bool) {
		nt, ok := expect("name_and_type", r, ConstantNameAndType).(*ConstantNameAndTypeInfo)
		if !ok {
			return
		}
		expect("name", nt.Name, ConstantUtf8)
		expectDescriptor("descriptor", nt.Descriptor, method)
	}

	switch e := entry.(type) {
	case *ConstantUtf8Info, *ConstantIntegerInfo, *ConstantFloatInfo, *ConstantLongInfo, *ConstantDoubleInfo:
	case *ConstantClassInfo:
		expect("name", e.Name, ConstantUtf8)
	case *ConstantStringInfo:
		expect("string", e.Value, ConstantUtf8)
	case *ConstantModuleInfo:
		expect("name", e.Name, ConstantUtf8)
	case *ConstantPackageInfo:
		expect("name", e.Name, ConstantUtf8)
	case *ConstantNameAndTypeInfo:
		expect("name", e.Name, ConstantUtf8)
		if d, ok := expect("descriptor", e.Descriptor, ConstantUtf8).(*ConstantUtf8Info); ok {
			method := strings.HasPrefix(d.Value, "(")
			expectDescriptor("descriptor", e.Descriptor, method)
		}
	case *ConstantMemberrefInfo:
		expect("class", e.Class, ConstantClass)
		nameAndTypeDescriptor(e.NameAndType, e.Kind != FieldRef)
	case *ConstantMethodHandleInfo:
		switch e.Kind {
		case RefGetField, RefGetStatic, RefPutField, RefPutStatic:
			expect("reference", e.Reference, ConstantFieldref)
		case RefInvokeVirtual, RefNewInvokeSpecial:
			expect("reference", e.Reference, ConstantMethodref)
		case RefInvokeStatic, RefInvokeSpecial:
			expect("reference", e.Reference, ConstantMethodref, ConstantInterfaceMethodref)
		case RefInvokeInterface:
			expect("reference", e.Reference, ConstantInterfaceMethodref)
		default:
			problems = append(problems, fmt.Sprintf("reference kind %d out of range", e.Kind))
		}
	case *ConstantMethodTypeInfo:
		expectDescriptor("descriptor", e.Descriptor, true)
	case *ConstantDynamicInfo:
		nameAndTypeDescriptor(e.NameAndType, false)
	case *ConstantInvokeDynamicInfo:
		nameAndTypeDescriptor(e.NameAndType, true)
	default:
		problems = append(problems, fmt.Sprintf("unexpected entry type %T", entry))
	}
	return problems
}

func tagList(tags []ConstantTag) string {
	names := make([]string, len(tags))
	for i, t := range tags {
		names[i] = t.String()
	}
	return strings.Join(names, " or ")
}

// Check runs ConstantPool.Check and then validates the raw indices outside
// the pool: this and super class, interfaces, member names and descriptors,
// and bootstrap method indices of dynamic constants.
func (cf *ClassFile) Check() error {
	cp := cf.ConstantPool
	var errs []error
	if err := cp.Check(); err != nil {
		errs = append(errs, err)
	}
	fail := func(format string, args ...any) {
		errs = append(errs, &CheckError{Reason: fmt.Sprintf(format, args...)})
	}
	isTag := func(index uint16, tag ConstantTag) bool {
		e := cp.Entry(index)
		return e != nil && e.Tag() == tag
	}

	if !isTag(cf.ThisClass, ConstantClass) {
		fail("this_class #%d is not a Class entry", cf.ThisClass)
	}
	if cf.SuperClass != 0 && !isTag(cf.SuperClass, ConstantClass) {
		fail("super_class #%d is not a Class entry", cf.SuperClass)
	}
	for i, idx := range cf.Interfaces {
		if !isTag(idx, ConstantClass) {
			fail("interface %d #%d is not a Class entry", i, idx)
		}
	}

	checkMembers := func(kind string, members []MemberInfo, method bool) {
		for i := range members {
			m := &members[i]
			if !isTag(m.NameIndex, ConstantUtf8) {
				fail("%s %d name #%d is not a Utf8 entry", kind, i, m.NameIndex)
			}
			if !isTag(m.DescriptorIndex, ConstantUtf8) {
				fail("%s %d descriptor #%d is not a Utf8 entry", kind, i, m.DescriptorIndex)
				continue
			}
			var err error
			if method {
				_, err = ParseMethodDescriptor(m.Descriptor(cp))
			} else {
				_, err = ParseFieldDescriptor(m.Descriptor(cp))
			}
			if err != nil {
				fail("%s %d: %v", kind, i, err)
			}
		}
	}
	checkMembers("field", cf.Fields, false)
	checkMembers("method", cf.Methods, true)

	bootstrap, err := cf.BootstrapMethods()
	if err != nil {
		fail("BootstrapMethods: %v", err)
	}
	cp.Entries()(func(index uint16, entry ConstantPoolEntry) bool {
		var attr uint16
		switch e := entry.(type) {
		case *ConstantDynamicInfo:
			attr = e.BootstrapMethodAttr
		case *ConstantInvokeDynamicInfo:
			attr = e.BootstrapMethodAttr
		default:
			return true
		}
		if int(attr) >= len(bootstrap) {
			errs = append(errs, &CheckError{
				Index:  index,
				Tag:    entry.Tag(),
				Reason: fmt.Sprintf("bootstrap method %d out of range (%d defined)", attr, len(bootstrap)),
			})
		}
		return true
	})
	return errors.Join(errs...)
}
