package valueobject

import (
	"strings"

	"github.com/stockpos/backend/internal/domain/shared"
)

// ProductName is a non-blank display name bounded to 200 characters.
type ProductName struct {
	value string
}

// NewProductName creates a validated product name
func NewProductName(value string) (ProductName, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return ProductName{}, shared.NewValidationError("name", "cannot be blank")
	}
	if len(trimmed) > 200 {
		return ProductName{}, shared.NewValidationError("name", "cannot exceed 200 characters")
	}
	return ProductName{value: trimmed}, nil
}

// Value returns the name
func (n ProductName) Value() string { return n.value }

// String implements fmt.Stringer
func (n ProductName) String() string { return n.value }

// Barcode is a scanned product code: 4 to 50 characters, digits, letters,
// underscores and hyphens only.
type Barcode struct {
	value string
}

// NewBarcode creates a validated barcode
func NewBarcode(value string) (Barcode, error) {
	trimmed := strings.TrimSpace(value)
	if len(trimmed) < 4 {
		return Barcode{}, shared.NewValidationError("barcode", "must be at least 4 characters")
	}
	if len(trimmed) > 50 {
		return Barcode{}, shared.NewValidationError("barcode", "cannot exceed 50 characters")
	}
	for _, r := range trimmed {
		if !((r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '-') {
			return Barcode{}, shared.NewValidationError("barcode", "can only contain letters, numbers, underscores, and hyphens")
		}
	}
	return Barcode{value: trimmed}, nil
}

// Value returns the barcode
func (b Barcode) Value() string { return b.value }

// String implements fmt.Stringer
func (b Barcode) String() string { return b.value }

// Note is free-form operator text bounded to 500 characters.
type Note struct {
	value string
}

// NewNote creates a validated note
func NewNote(value string) (Note, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return Note{}, shared.NewValidationError("note", "cannot be blank")
	}
	if len(trimmed) > 500 {
		return Note{}, shared.NewValidationError("note", "cannot exceed 500 characters")
	}
	return Note{value: trimmed}, nil
}

// Value returns the note text
func (n Note) Value() string { return n.value }

// String implements fmt.Stringer
func (n Note) String() string { return n.value }
