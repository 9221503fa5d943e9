package utils

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
)

// MaxPhotoBytes bounds photos embedded into the state blob.
const MaxPhotoBytes = 2 << 20

// EncodePhoto reads an image file and returns it as a data URL, the form
// photos are stored in.
func EncodePhoto(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if info.Size() > MaxPhotoBytes {
		return "", fmt.Errorf("photo %s is %d bytes, limit is %d", path, info.Size(), MaxPhotoBytes)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	mime := http.DetectContentType(data)
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}
