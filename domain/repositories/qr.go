package repositories

// QREncoder renders content into a QR code raster image
type QREncoder interface {
	// EncodePNG returns the PNG bytes of a QR code for content
	EncodePNG(content string) ([]byte, error)
}
