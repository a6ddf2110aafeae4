package handler

import (
	"bytes"
	"compress/gzip"
	"io"
	"net/http"
	"strings"

	"github.com/pkg/errors"
)

const gzipEncoding = "gzip"

func compressContent(data []byte) ([]byte, error) {
	buf := new(bytes.Buffer)
	writer := gzip.NewWriter(buf)
	if _, err := writer.Write(data); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func uncompressContentIfNeeded(request *http.Request, data []byte) ([]byte, error) {
	encoding := request.Header.Get("Content-Encoding")
	if encoding == "" {
		return data, nil
	}
	if strings.ToLower(encoding) != gzipEncoding {
		return nil, errors.Errorf("unsupported content encoding: %v", encoding)
	}
	reader, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer reader.Close()
	return io.ReadAll(reader)
}

func acceptsGzip(request *http.Request) bool {
	return strings.Contains(strings.ToLower(request.Header.Get("Accept-Encoding")), gzipEncoding)
}
