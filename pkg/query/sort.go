package query

import "strings"

// The sort orders.
const (
	Ascending  SortOrder = "ascending"
	Descending SortOrder = "descending"
)

// SortOrder is the direction of a sort field.
type SortOrder string

// SortField orders query results on a single attribute.
type SortField struct {
	Attribute string
	Order     SortOrder
}

// SortSpecifier is either a SortField (Order defaults to ascending when
// empty) or a compact string where a leading '-' marks descending order
// on the remaining attribute name.
type SortSpecifier interface{}

func parseSortSpecifier(spec SortSpecifier) (SortField, error) {
	switch s := spec.(type) {
	case string:
		if strings.HasPrefix(s, "-") {
			return SortField{Attribute: s[1:], Order: Descending}, nil
		}
		return SortField{Attribute: s, Order: Ascending}, nil
	case SortField:
		switch s.Order {
		case "":
			s.Order = Ascending
		case Ascending, Descending:
		default:
			return SortField{}, ErrInvalidSortOrder
		}
		if s.Attribute == "" {
			return SortField{}, ErrInvalidSortSpecifier
		}
		return s, nil
	default:
		return SortField{}, ErrInvalidSortSpecifier
	}
}
