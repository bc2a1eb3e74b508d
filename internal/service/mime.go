package service

import (
	"path"
	"regexp"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// EncryptedSuffix terminates every object name.
const EncryptedSuffix = ".enc"

const (
	defaultMIMEType  = "application/octet-stream"
	defaultExtension = "bin"
)

var mimeByExtension = map[string]string{
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"gif":  "image/gif",
	"webp": "image/webp",
	"svg":  "image/svg+xml",
	"bmp":  "image/bmp",
	"heic": "image/heic",
	"heif": "image/heif",
	"tiff": "image/tiff",
	"ico":  "image/x-icon",
}

var extensionPattern = regexp.MustCompile(`^[a-z0-9]{1,10}$`)

// MIMETypeForPath infers the display type of an object from the extension
// before its ".enc" suffix.
func MIMETypeForPath(objectPath string) string {
	name := strings.TrimSuffix(objectPath, EncryptedSuffix)
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(name), "."))
	if mimeType, ok := mimeByExtension[ext]; ok {
		return mimeType
	}
	return defaultMIMEType
}

// objectExtension returns the lower-cased extension of fileName, or "bin"
// when it has none or it is unusable in a path.
func objectExtension(fileName string) string {
	base := path.Base(strings.ReplaceAll(fileName, `\`, "/"))
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(base), "."))
	if !extensionPattern.MatchString(ext) {
		return defaultExtension
	}
	return ext
}

// declaredTypeFor stands in for a missing declared type the way a browser
// fills File.type: from the file name's extension. Content is sniffed only
// when the extension is unknown.
func declaredTypeFor(fileName string, data []byte) string {
	if mimeType, ok := mimeByExtension[objectExtension(fileName)]; ok {
		return mimeType
	}
	return mimetype.Detect(data).String()
}
