package abc

import (
	"fmt"
	"io"
)

type PropertyKind int

const (
	PropertyScalar PropertyKind = iota
	PropertyArray
	PropertyCompound
)

type PropertyHeader struct {
	Name       string
	Kind       PropertyKind
	Metadata   Metadata
	DataType   string
	NumSamples int
	Children   []*PropertyHeader // compound only
}

func (p *PropertyHeader) Interpretation() string {
	return p.Metadata.Get("interpretation")
}

func (p *PropertyHeader) IsCompound() bool {
	return p.Kind == PropertyCompound
}

func newArrayProperty(name, interpretation, dataType string, numSamples int) *PropertyHeader {
	return &PropertyHeader{
		Name:       name,
		Kind:       PropertyArray,
		Metadata:   Metadata{"interpretation": interpretation},
		DataType:   dataType,
		NumSamples: numSamples,
	}
}

func newCompoundProperty(name, schema string, children ...*PropertyHeader) *PropertyHeader {
	return &PropertyHeader{
		Name:     name,
		Kind:     PropertyCompound,
		Metadata: Metadata{"schema": schema},
		Children: children,
	}
}

// Dump writes the object tree and the property headers of every object.
func Dump(w io.Writer, root Object) error {
	return dumpObject(w, root, "")
}

func dumpObject(w io.Writer, obj Object, indent string) error {
	if name := obj.Header().FullName; name != "/" {
		if _, err := fmt.Fprintf(w, "%sObject: path = %s\n", indent, name); err != nil {
			return err
		}
	}
	if err := dumpProperties(w, obj.Properties(), indent); err != nil {
		return err
	}
	for i := 0; i < obj.NumChildren(); i++ {
		if err := dumpObject(w, obj.Child(i), indent+"  "); err != nil {
			return err
		}
	}
	return nil
}

func dumpProperties(w io.Writer, props []*PropertyHeader, indent string) error {
	var err error
	for _, p := range props {
		switch p.Kind {
		case PropertyCompound:
			_, err = fmt.Fprintf(w, "%s  CompoundProperty name=%s:schema=%s\n", indent, p.Name, p.Metadata.Get("schema"))
			if err == nil {
				err = dumpProperties(w, p.Children, indent+"  ")
			}
		default:
			ptype := "ScalarProperty"
			if p.Kind == PropertyArray {
				ptype = "ArrayProperty"
			}
			_, err = fmt.Fprintf(w, "%s  %s name=%s:interpretation=%s:datatype=%s:numsamps=%d\n",
				indent, ptype, p.Name, p.Interpretation(), p.DataType, p.NumSamples)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
