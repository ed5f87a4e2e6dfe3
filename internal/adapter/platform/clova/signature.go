package clova

import (
	"context"
	"crypto"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/seu-repo/smartspeaker-gateway/internal/domain"
)

// SignatureHeader carries the base64 RSA-SHA256 signature of the raw body.
const SignatureHeader = "SignatureCEK"

// Verifier checks a request body against its signature header value.
type Verifier interface {
	Verify(body []byte, signature string) error
}

// RSAVerifier verifies PKCS#1 v1.5 SHA-256 signatures.
type RSAVerifier struct {
	key *rsa.PublicKey
}

func NewRSAVerifier(key *rsa.PublicKey) *RSAVerifier {
	return &RSAVerifier{key: key}
}

func (v *RSAVerifier) Verify(body []byte, signature string) error {
	if signature == "" {
		return fmt.Errorf("%w: missing %s header", domain.ErrAuth, SignatureHeader)
	}
	sig, err := base64.StdEncoding.DecodeString(signature)
	if err != nil {
		return fmt.Errorf("%w: signature is not base64", domain.ErrAuth)
	}
	digest := sha256.Sum256(body)
	if err := rsa.VerifyPKCS1v15(v.key, crypto.SHA256, digest[:], sig); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrAuth, err)
	}
	return nil
}

// SkipVerifier accepts every request. Local development only.
type SkipVerifier struct{}

func (SkipVerifier) Verify([]byte, string) error { return nil }

// ParsePublicKeyPEM accepts a PKIX "PUBLIC KEY" or PKCS#1 "RSA PUBLIC KEY" block.
func ParsePublicKeyPEM(data []byte) (*rsa.PublicKey, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, errors.New("no PEM block found")
	}

	switch block.Type {
	case "RSA PUBLIC KEY":
		return x509.ParsePKCS1PublicKey(block.Bytes)
	default:
		parsed, err := x509.ParsePKIXPublicKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("failed to parse public key: %w", err)
		}
		key, ok := parsed.(*rsa.PublicKey)
		if !ok {
			return nil, fmt.Errorf("public key is %T, not RSA", parsed)
		}
		return key, nil
	}
}

// LoadPublicKey reads the key from path, or fetches it from url when path is empty.
func LoadPublicKey(ctx context.Context, client *http.Client, path, url string) (*rsa.PublicKey, error) {
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read clova public key: %w", err)
		}
		return ParsePublicKeyPEM(data)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch clova public key: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status fetching clova public key: %d", resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return nil, fmt.Errorf("failed to read clova public key: %w", err)
	}
	return ParsePublicKeyPEM(data)
}
