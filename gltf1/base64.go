package gltf1

import (
	"encoding/base64"
	"strings"
)

const DataURIPrefix = "data:application/octet-stream;base64,"

// EncodeBase64 encodes b with the standard alphabet and '=' padding.
func EncodeBase64(b []byte) string {
	return base64.StdEncoding.EncodeToString(b)
}

func DecodeBase64(s string) ([]byte, error) {
	return base64.StdEncoding.DecodeString(s)
}

func DataURI(b []byte) string {
	return DataURIPrefix + EncodeBase64(b)
}

func ParseDataURI(uri string) ([]byte, error) {
	if !strings.HasPrefix(uri, DataURIPrefix) {
		return nil, ErrNotDataURI
	}
	return DecodeBase64(uri[len(DataURIPrefix):])
}
