package ports

// UploadSignature is the result of signing an upload request.
type UploadSignature struct {
	Signature string `json:"signature"`
	APIKey    string `json:"api_key"`
	CloudName string `json:"cloud_name"`
}

// UploadSigner produces signatures for direct-to-CDN image uploads. Signing
// is a pure function over the request parameters and a server-held secret.
type UploadSigner interface {
	Sign(params map[string]string) (*UploadSignature, error)
}
