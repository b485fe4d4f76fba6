package term

// XML Schema and RDF datatype IRIs.
const (
	XSDNamespace = "http://www.w3.org/2001/XMLSchema#"
	RDFNamespace = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"

	XSDString   = XSDNamespace + "string"
	XSDBoolean  = XSDNamespace + "boolean"
	XSDDateTime = XSDNamespace + "dateTime"
	XSDDate     = XSDNamespace + "date"
	XSDTime     = XSDNamespace + "time"
	XSDInteger  = XSDNamespace + "integer"
	XSDDecimal  = XSDNamespace + "decimal"
	XSDFloat    = XSDNamespace + "float"
	XSDDouble   = XSDNamespace + "double"

	RDFLangString = RDFNamespace + "langString"
)

// numericDatatypes lists the XSD datatypes SPARQL treats as numeric.
var numericDatatypes = map[string]bool{
	XSDInteger:                          true,
	XSDDecimal:                          true,
	XSDFloat:                            true,
	XSDDouble:                           true,
	XSDNamespace + "long":               true,
	XSDNamespace + "int":                true,
	XSDNamespace + "short":              true,
	XSDNamespace + "byte":               true,
	XSDNamespace + "nonNegativeInteger": true,
	XSDNamespace + "nonPositiveInteger": true,
	XSDNamespace + "negativeInteger":    true,
	XSDNamespace + "positiveInteger":    true,
	XSDNamespace + "unsignedLong":       true,
	XSDNamespace + "unsignedInt":        true,
	XSDNamespace + "unsignedShort":      true,
	XSDNamespace + "unsignedByte":       true,
}

// IsNumeric reports whether t is a literal with a numeric XSD datatype.
func IsNumeric(t Term) bool {
	return t.kind == KindLiteral && numericDatatypes[t.datatype]
}

// IsStringLike reports whether t is a plain literal, an xsd:string literal or a
// language-tagged literal.
func IsStringLike(t Term) bool {
	if t.kind != KindLiteral {
		return false
	}
	return t.datatype == "" || t.datatype == XSDString || t.datatype == RDFLangString
}
