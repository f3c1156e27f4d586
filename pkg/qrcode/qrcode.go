package qrcode

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/angelmondragon/hra-tradeshow-backend/pkg/config"
	"github.com/skip2/go-qrcode"
)

const (
	vendorPath  = "/member"
	vendorParam = "vendor"
	defaultSize = 256
)

var bareVendorID = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// Generator renders booth QR codes that deep-link into a vendor's deals.
type Generator struct {
	baseURL string
	size    int
	level   qrcode.RecoveryLevel
}

func NewGenerator(cfg config.QRCodeConfig, publicBaseURL string) *Generator {
	size := cfg.Size
	if size <= 0 {
		size = defaultSize
	}
	return &Generator{
		baseURL: strings.TrimRight(strings.TrimSpace(publicBaseURL), "/"),
		size:    size,
		level:   recoveryLevel(cfg.Level),
	}
}

func recoveryLevel(level string) qrcode.RecoveryLevel {
	switch strings.ToLower(level) {
	case "low":
		return qrcode.Low
	case "high":
		return qrcode.High
	case "highest":
		return qrcode.Highest
	default:
		return qrcode.Medium
	}
}

// VendorLink is the URL encoded into a vendor's booth code.
func (g *Generator) VendorLink(vendorID string) string {
	return g.baseURL + vendorPath + "?" + url.Values{vendorParam: {vendorID}}.Encode()
}

// VendorPNG renders the booth code as a PNG image.
func (g *Generator) VendorPNG(vendorID string) ([]byte, error) {
	if strings.TrimSpace(vendorID) == "" {
		return nil, fmt.Errorf("vendor id is required")
	}
	code, err := qrcode.New(g.VendorLink(vendorID), g.level)
	if err != nil {
		return nil, fmt.Errorf("failed to create QR code: %w", err)
	}
	png, err := code.PNG(g.size)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PNG: %w", err)
	}
	return png, nil
}

// ParseVendorLink extracts the vendor id from scanned data. It accepts a full
// deep link (any host) or a bare vendor id.
func ParseVendorLink(data string) (string, error) {
	data = strings.TrimSpace(data)
	if data == "" {
		return "", fmt.Errorf("empty QR payload")
	}
	if bareVendorID.MatchString(data) {
		return data, nil
	}
	u, err := url.Parse(data)
	if err != nil {
		return "", fmt.Errorf("unrecognized QR payload: %w", err)
	}
	id := strings.TrimSpace(u.Query().Get(vendorParam))
	if id == "" || !bareVendorID.MatchString(id) {
		return "", fmt.Errorf("QR payload does not name a vendor")
	}
	return id, nil
}
