package geminiservice

import (
	"encoding/base64"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strings"
)

var (
	// ErrNoImage is returned when the analysis flow is started without a photo.
	ErrNoImage = errors.New("no image supplied")

	// ErrUnsupportedImage is returned for uploads that are neither JPEG nor PNG.
	ErrUnsupportedImage = errors.New("unsupported image type")
)

const (
	MimeJPEG = "image/jpeg"
	MimePNG  = "image/png"
)

// UploadedImage is a meal photo held in memory for a single request.
type UploadedImage struct {
	Data     []byte
	MimeType string
}

// NewUploadedImage validates the raw upload. The type is always sniffed from
// the bytes; a declared content type, when present, has to agree with it.
func NewUploadedImage(data []byte, declaredType string) (*UploadedImage, error) {
	if len(data) == 0 {
		return nil, ErrNoImage
	}

	mimeType := normalizeMimeType(http.DetectContentType(data))
	if mimeType != MimeJPEG && mimeType != MimePNG {
		return nil, fmt.Errorf("%w: %s (only jpg, jpeg and png are accepted)", ErrUnsupportedImage, mimeType)
	}

	declared := normalizeMimeType(declaredType)
	if declared != "" && declared != "application/octet-stream" && declared != mimeType {
		return nil, fmt.Errorf("%w: declared %s but content is %s", ErrUnsupportedImage, declared, mimeType)
	}

	return &UploadedImage{Data: data, MimeType: mimeType}, nil
}

// DataURI encodes the image for inline display as a thumbnail.
func (img *UploadedImage) DataURI() string {
	return "data:" + img.MimeType + ";base64," + base64.StdEncoding.EncodeToString(img.Data)
}

func normalizeMimeType(contentType string) string {
	if contentType == "" {
		return ""
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = contentType
	}
	mediaType = strings.ToLower(strings.TrimSpace(mediaType))
	if mediaType == "image/jpg" || mediaType == "image/pjpeg" {
		return MimeJPEG
	}
	return mediaType
}
