package api

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse is returned by the health check
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// QRResultView is rendered after a QR code is generated
type QRResultView struct {
	ContentType  string
	DownloadLink string
}
