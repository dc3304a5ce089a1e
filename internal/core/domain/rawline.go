package domain

// BoundingBox is the page-relative rectangle a raw line was extracted from.
// Coordinates are in the extractor's units. The pipeline links hierarchy
// from document order and category alone; the box is carried through
// persistence so reviewers can locate a line on the source page.
type BoundingBox struct {
	X0 float64 `json:"x0"`
	Y0 float64 `json:"y0"`
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
}

// RawLine is one text/table row produced by the external extractor.
// It is consumed by the pipeline and never mutated.
type RawLine struct {
	LineID       string      `json:"lineID"`
	DocumentID   string      `json:"documentID"`
	Text         string      `json:"text"`
	PageNumber   int         `json:"pageNumber"`
	BoundingBox  BoundingBox `json:"boundingBox"`
	ColumnValues []string    `json:"columnValues,omitempty"` // present only for tabular lines
	Position     int         `json:"position"`               // document order, 0-based
}
