package entity

// Column names of a category snapshot file.
const (
	ColumnProductName   = "product_name"
	ColumnOriginalPrice = "original_price"
	ColumnCurrentPrice  = "current_price"
	ColumnImageURL      = "product_image_url"
)

// Attribute is a passthrough column of a snapshot row.
type Attribute struct {
	Key   string
	Value string
}

// ProductRecord is one row of a category snapshot. Prices keep their
// localized form, e.g. "₫1,234,567".
type ProductRecord struct {
	Name          string
	OriginalPrice string
	CurrentPrice  string
	ImageURL      string

	// Extra holds every other column in file column order.
	Extra []Attribute

	// columns is the header of the source file, nil for records built in code.
	columns []string
}

// NewProductRecord builds a record from a header row and a data row. Missing
// trailing cells are read as empty strings. A discount_percentage column in
// the file is dropped; the computed discount replaces it.
func NewProductRecord(header, row []string) ProductRecord {
	p := ProductRecord{columns: make([]string, 0, len(header))}

	for i, column := range header {
		if column == FieldDiscountPercentage {
			continue
		}

		p.columns = append(p.columns, column)

		value := ""
		if i < len(row) {
			value = row[i]
		}

		switch column {
		case ColumnProductName:
			p.Name = value
		case ColumnOriginalPrice:
			p.OriginalPrice = value
		case ColumnCurrentPrice:
			p.CurrentPrice = value
		case ColumnImageURL:
			p.ImageURL = value
		default:
			p.Extra = append(p.Extra, Attribute{Key: column, Value: value})
		}
	}

	return p
}

// Fields returns the record as ordered key/value pairs, in source column order
// when the record came from a file.
func (p ProductRecord) Fields() []Attribute {
	if p.columns == nil {
		fields := []Attribute{
			{Key: ColumnProductName, Value: p.Name},
			{Key: ColumnOriginalPrice, Value: p.OriginalPrice},
			{Key: ColumnCurrentPrice, Value: p.CurrentPrice},
			{Key: ColumnImageURL, Value: p.ImageURL},
		}

		return append(fields, p.Extra...)
	}

	fields := make([]Attribute, 0, len(p.columns))
	extra := 0

	for _, column := range p.columns {
		switch column {
		case ColumnProductName:
			fields = append(fields, Attribute{Key: column, Value: p.Name})
		case ColumnOriginalPrice:
			fields = append(fields, Attribute{Key: column, Value: p.OriginalPrice})
		case ColumnCurrentPrice:
			fields = append(fields, Attribute{Key: column, Value: p.CurrentPrice})
		case ColumnImageURL:
			fields = append(fields, Attribute{Key: column, Value: p.ImageURL})
		default:
			if extra < len(p.Extra) {
				fields = append(fields, p.Extra[extra])
				extra++
			}
		}
	}

	return fields
}
