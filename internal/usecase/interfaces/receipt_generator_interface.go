package interfaces

import "buildquote/internal/domain/entities"

// IReceiptGenerator renders receipt data into a downloadable document.
// Identical input must produce byte-identical output.
type IReceiptGenerator interface {
	Generate(data entities.ReceiptData) (entities.ReceiptDocument, error)
}
