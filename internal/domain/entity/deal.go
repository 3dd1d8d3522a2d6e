package entity

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

const FieldDiscountPercentage = "discount_percentage"

var json = jsoniter.Config{EscapeHTML: false}.Froze() //nolint:gochecknoglobals // skip

// Deal is a product record annotated with its discount.
type Deal struct {
	ProductRecord

	// DiscountPercentage is 0 when either price could not be parsed.
	DiscountPercentage float64
}

// MarshalJSON writes the deal as one flat object: the source columns in file
// order followed by discount_percentage.
func (d Deal) MarshalJSON() ([]byte, error) {
	stream := json.BorrowStream(nil)
	defer json.ReturnStream(stream)

	stream.WriteObjectStart()

	for _, field := range d.Fields() {
		stream.WriteObjectField(field.Key)
		stream.WriteString(field.Value)
		stream.WriteMore()
	}

	stream.WriteObjectField(FieldDiscountPercentage)
	stream.WriteFloat64(d.DiscountPercentage)
	stream.WriteObjectEnd()

	if stream.Error != nil {
		return nil, fmt.Errorf("stream.Write: %w", stream.Error)
	}

	return append([]byte(nil), stream.Buffer()...), nil
}
