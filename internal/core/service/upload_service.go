package service

import (
	"crypto/sha1"
	"encoding/hex"
	"sort"
	"strings"

	"github.com/venturehub/marketplace-api/internal/core/domain"
	"github.com/venturehub/marketplace-api/internal/core/ports"
)

// UploadService signs direct-to-CDN upload parameters the way Cloudinary's
// API expects: SHA-1 over the sorted key=value pairs joined by "&", with the
// API secret appended.
type UploadService struct {
	cloudName string
	apiKey    string
	apiSecret string
}

func NewUploadService(cloudName, apiKey, apiSecret string) *UploadService {
	return &UploadService{cloudName: cloudName, apiKey: apiKey, apiSecret: apiSecret}
}

func (s *UploadService) Sign(params map[string]string) (*ports.UploadSignature, error) {
	if s.apiSecret == "" {
		return nil, domain.ErrServerConfig
	}

	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+params[k])
	}

	sum := sha1.Sum([]byte(strings.Join(pairs, "&") + s.apiSecret))

	return &ports.UploadSignature{
		Signature: hex.EncodeToString(sum[:]),
		APIKey:    s.apiKey,
		CloudName: s.cloudName,
	}, nil
}
