package handler

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/viant/jmapper/mapper"
)

const ConvertURI = "/v1/api/convert/"

var (
	contentTypes = map[string]string{
		mapper.JSON.Format():        "application/json",
		mapper.CBOR.Format():        "application/cbor",
		mapper.MessagePack.Format(): "application/msgpack",
	}
	documentAPI = jsoniter.Config{UseNumber: true}.Froze()
)

// Lookup returns published mappers
type Lookup interface {
	Get(id mapper.ID) (*mapper.Mapper, bool)
}

type convert struct {
	mappers Lookup
}

// ServeHTTP re-encodes a JSON request body with the mapper named in the path, e.g. /v1/api/convert/12.
// Gzip request and response bodies are supported.
func (c *convert) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	if request.Method != http.MethodPost {
		http.Error(writer, "unsupported method: "+request.Method, http.StatusMethodNotAllowed)
		return
	}
	id, err := strconv.Atoi(strings.Trim(strings.TrimPrefix(request.URL.Path, ConvertURI), "/"))
	if err != nil {
		http.Error(writer, "invalid mapper id", http.StatusBadRequest)
		return
	}
	aMapper, ok := c.mappers.Get(mapper.ID(id))
	if !ok {
		http.Error(writer, "mapper not found: "+strconv.Itoa(id), http.StatusNotFound)
		return
	}
	data, err := io.ReadAll(request.Body)
	if err == nil {
		data, err = uncompressContentIfNeeded(request, data)
	}
	if err != nil {
		http.Error(writer, err.Error(), http.StatusBadRequest)
		return
	}
	var document interface{}
	if err = documentAPI.Unmarshal(data, &document); err != nil {
		http.Error(writer, err.Error(), http.StatusBadRequest)
		return
	}
	output, err := aMapper.Marshal(document)
	if err != nil {
		http.Error(writer, err.Error(), http.StatusInternalServerError)
		return
	}
	writer.Header().Set("Content-Type", ContentType(aMapper.Encoding()))
	if acceptsGzip(request) {
		if output, err = compressContent(output); err != nil {
			http.Error(writer, err.Error(), http.StatusInternalServerError)
			return
		}
		writer.Header().Set("Content-Encoding", gzipEncoding)
	}
	writer.Write(output)
}

// ContentType returns media type of an encoding
func ContentType(encoding mapper.Encoding) string {
	if contentType, ok := contentTypes[encoding.Format()]; ok {
		return contentType
	}
	return "application/octet-stream"
}

// NewConvert creates a conversion handler
func NewConvert(mappers Lookup) http.Handler {
	return &convert{mappers: mappers}
}
