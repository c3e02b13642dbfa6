package exports

import (
	"bytes"
)

// Shape is the top-level form of the output document
type Shape int

const (
	// ShapeObject is a single element, used for zero or one data rows
	ShapeObject Shape = iota
	// ShapeArray is an array of elements, used for more than one data row
	ShapeArray
)

func (s Shape) String() string {
	if s == ShapeArray {
		return "array"
	}
	return "object"
}

// ShapeFor decides the document shape from the pre-scanned data row count
func ShapeFor(count int) Shape {
	if count > 1 {
		return ShapeArray
	}
	return ShapeObject
}

// Document aggregates elements into the final JSON value
type Document struct {
	shape    Shape
	elements []*Element
}

// NewDocument returns an empty document shaped for count data rows
func NewDocument(count int) *Document {
	doc := &Document{shape: ShapeFor(count)}
	if doc.shape == ShapeArray {
		doc.elements = make([]*Element, 0, count)
	}
	return doc
}

// Shape returns the document shape
func (d *Document) Shape() Shape {
	return d.shape
}

// Add appends element in row order. It reports whether the document accepts
// more elements: an object document is complete after its first element.
func (d *Document) Add(element *Element) bool {
	if d.shape == ShapeObject {
		if len(d.elements) == 0 {
			d.elements = append(d.elements, element)
		}
		return false
	}
	d.elements = append(d.elements, element)
	return true
}

// Elements returns the aggregated elements
func (d *Document) Elements() []*Element {
	return d.elements
}

// Len returns the number of aggregated elements
func (d *Document) Len() int {
	return len(d.elements)
}

// MarshalJSON encodes an object document as its element ({} when empty) and
// an array document as an array of elements.
func (d *Document) MarshalJSON() ([]byte, error) {
	if d.shape == ShapeObject {
		if len(d.elements) == 0 {
			return []byte("{}"), nil
		}
		return d.elements[0].MarshalJSON()
	}

	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, element := range d.elements {
		if i > 0 {
			buf.WriteByte(',')
		}
		data, err := element.MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(data)
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}
