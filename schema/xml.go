package schema

import (
	"encoding/xml"
	"io"
	"os"
)

// The XML dialect mirrors the original noaadata schema files: a
// sequence of struct declarations whose members are fields and
// include-struct references. Includes resolve against structs declared
// earlier in the same document.
//
//	<ais-binary-message version="1.0">
//	  <struct name="utcdatetime">
//	    <field name="day" numberofbits="5" type="uint">
//	      <range min="1" max="31"/>
//	      <unavailable>0</unavailable>
//	      <testvalue>28</testvalue>
//	    </field>
//	    ...
//	  </struct>
//	  <struct name="whalenotice">
//	    <include-struct name="hdr" struct="msghdr" do_not_mangle_name="true"/>
//	    <field name="dac" numberofbits="10" type="uint">
//	      <required>366</required>
//	    </field>
//	    ...
//	  </struct>
//	</ais-binary-message>

type xmlDocument struct {
	XMLName xml.Name    `xml:"ais-binary-message"`
	Version string      `xml:"version,attr"`
	Structs []xmlStruct `xml:"struct"`
}

type xmlStruct struct {
	Name    string      `xml:"name,attr"`
	Members []xmlMember `xml:",any"`
}

// xmlMember preserves the declaration order of the two member element
// kinds, which a pair of plain slices would lose.
type xmlMember struct {
	field   *xmlField
	include *xmlInclude
}

func (m *xmlMember) UnmarshalXML(d *xml.Decoder, start xml.StartElement) (err error) {
	switch start.Name.Local {
	case "field":
		m.field = &xmlField{}

		return d.DecodeElement(m.field, &start)
	case "include-struct":
		m.include = &xmlInclude{}

		return d.DecodeElement(m.include, &start)
	}

	return Error.New("unknown member element: name=%q", start.Name.Local)
}

type xmlField struct {
	Name        string    `xml:"name,attr"`
	Bits        int       `xml:"numberofbits,attr"`
	Type        string    `xml:"type,attr"`
	Required    *int64    `xml:"required"`
	Unavailable *int64    `xml:"unavailable"`
	Test        *int64    `xml:"testvalue"`
	Range       *xmlRange `xml:"range"`
	Scale       int64     `xml:"scale"`
	Units       string    `xml:"units"`
	Description string    `xml:"description"`
}

type xmlRange struct {
	Min int64 `xml:"min,attr"`
	Max int64 `xml:"max,attr"`
}

type xmlInclude struct {
	Name     string `xml:"name,attr"`
	Struct   string `xml:"struct,attr"`
	NoMangle bool   `xml:"do_not_mangle_name,attr"`
}

// Load parses an XML schema document into its struct descriptors,
// keyed by struct name. Every struct, including the reusable
// fragments, is returned fully validated.
func Load(r io.Reader) (structs map[string]*Struct, err error) {
	var doc xmlDocument

	err = xml.NewDecoder(r).Decode(&doc)
	if err != nil {
		return nil, Error.Wrap(err)
	}

	structs = make(map[string]*Struct, len(doc.Structs))

	for _, xs := range doc.Structs {
		if xs.Name == "" {
			return nil, Error.New("unnamed struct")
		}
		if _, ok := structs[xs.Name]; ok {
			return nil, Error.New("duplicate struct: name=%q", xs.Name)
		}

		st := &Struct{Name: xs.Name}

		for _, m := range xs.Members {
			switch {
			case m.field != nil:
				f, err := m.field.build()
				if err != nil {
					return nil, err
				}

				st.Members = append(st.Members, Member{Field: f})
			case m.include != nil:
				ref, ok := structs[m.include.Struct]
				if !ok {
					return nil, Error.New(
						"include of undeclared struct: struct=%q include=%q",
						xs.Name, m.include.Struct,
					)
				}

				name := m.include.Name
				if name == "" {
					name = ref.Name
				}

				st.Members = append(st.Members, Member{Include: &Include{
					Name:     name,
					Struct:   ref,
					NoMangle: m.include.NoMangle,
				}})
			}
		}

		_, err = st.Flatten()
		if err != nil {
			return nil, err
		}

		structs[xs.Name] = st
	}

	return structs, nil
}

// LoadFile is Load over the contents of path.
func LoadFile(path string) (structs map[string]*Struct, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Error.Wrap(err)
	}
	defer func() { _ = f.Close() }()

	return Load(f)
}

func (xf *xmlField) build() (f *Field, err error) {
	f = &Field{
		Name:        xf.Name,
		Bits:        xf.Bits,
		Required:    xf.Required,
		Unavailable: xf.Unavailable,
		Test:        xf.Test,
		Scale:       xf.Scale,
		Units:       xf.Units,
		Description: xf.Description,
	}

	switch xf.Type {
	case "uint", "":
		f.Kind = Uint
	case "int":
		f.Kind = Int
	default:
		return nil, Error.New("unknown field type: field=%q type=%q", xf.Name, xf.Type)
	}

	if xf.Range != nil {
		min, max := xf.Range.Min, xf.Range.Max
		f.Min, f.Max = &min, &max
	}

	return f, nil
}
