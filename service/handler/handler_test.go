package handler

import (
	"bytes"
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/assertly"
	"github.com/viant/jmapper/config"
	"github.com/viant/jmapper/mapper"
	"github.com/viant/jmapper/registry"
)

type silentLogger struct{}

func (silentLogger) Warning(msg interface{}) {}

func (silentLogger) Debug(msg interface{}) {}

func TestConvert_ServeHTTP(t *testing.T) {
	cfg := &config.Config{SerializationFeatures: config.Features{{Name: mapper.SortMapKeys, Enabled: true}}}
	mappers := registry.New(cfg, registry.WithLogger(silentLogger{}))
	_, err := mappers.GetOrCreate(1, mapper.JSON)
	require.Nil(t, err)
	cborMapper, err := mappers.GetOrCreate(2, mapper.CBOR)
	require.Nil(t, err)

	var testCases = []struct {
		description   string
		method        string
		path          string
		body          string
		expectStatus  int
		expectType    string
		expectBody    string
		expectDecoded interface{}
	}{
		{
			description:  "json",
			method:       http.MethodPost,
			path:         ConvertURI + "1",
			body:         `{"z":1.50,"a":[true,null],"m":{"y":"x"}}`,
			expectStatus: http.StatusOK,
			expectType:   "application/json",
			expectBody:   `{"a":[true,null],"m":{"y":"x"},"z":1.50}`,
		},
		{
			description:   "cbor",
			method:        http.MethodPost,
			path:          ConvertURI + "2/",
			body:          `{"id":12,"name":"abc"}`,
			expectStatus:  http.StatusOK,
			expectType:    "application/cbor",
			expectDecoded: map[string]interface{}{"id": 12, "name": "abc"},
		},
		{
			description:  "unknown mapper",
			method:       http.MethodPost,
			path:         ConvertURI + "3",
			body:         `{}`,
			expectStatus: http.StatusNotFound,
		},
		{
			description:  "invalid id",
			method:       http.MethodPost,
			path:         ConvertURI + "abc",
			body:         `{}`,
			expectStatus: http.StatusBadRequest,
		},
		{
			description:  "invalid document",
			method:       http.MethodPost,
			path:         ConvertURI + "1",
			body:         `{"a":`,
			expectStatus: http.StatusBadRequest,
		},
		{
			description:  "unsupported method",
			method:       http.MethodGet,
			path:         ConvertURI + "1",
			expectStatus: http.StatusMethodNotAllowed,
		},
	}

	convert := NewConvert(mappers)
	for _, testCase := range testCases {
		request := httptest.NewRequest(testCase.method, testCase.path, strings.NewReader(testCase.body))
		recorder := httptest.NewRecorder()
		convert.ServeHTTP(recorder, request)
		if !assert.Equal(t, testCase.expectStatus, recorder.Code, testCase.description) {
			continue
		}
		if testCase.expectStatus != http.StatusOK {
			continue
		}
		assert.Equal(t, testCase.expectType, recorder.Header().Get("Content-Type"), testCase.description)
		if testCase.expectBody != "" {
			assert.Equal(t, testCase.expectBody, recorder.Body.String(), testCase.description)
		}
		if testCase.expectDecoded != nil {
			var decoded map[string]interface{}
			require.Nil(t, cborMapper.Unmarshal(recorder.Body.Bytes(), &decoded), testCase.description)
			assertly.AssertValues(t, testCase.expectDecoded, decoded, testCase.description)
		}
	}
}

func TestConfigHandler(t *testing.T) {
	cfg := &config.Config{Modules: []string{"snake-case"}, Endpoint: &config.Endpoint{Port: 8080}}
	recorder := httptest.NewRecorder()
	NewHandler(cfg).ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, ConfigURI, nil))
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "application/json", recorder.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"jackson-modules":["snake-case"],"endpoint":{"port":8080}}`, recorder.Body.String())
}

func TestStatusOK(t *testing.T) {
	recorder := httptest.NewRecorder()
	StatusOK(recorder, httptest.NewRequest(http.MethodGet, StatusURI, strings.NewReader("ping")))
	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "application/json", ContentType(mapper.Encoding{}))
	assert.Equal(t, "application/msgpack", ContentType(mapper.MessagePack))
	assert.Equal(t, "application/octet-stream", ContentType(mapper.NewBinaryEncoding("smile", nil)))
}

func TestConvert_Gzip(t *testing.T) {
	mappers := registry.New(nil, registry.WithLogger(silentLogger{}))
	_, err := mappers.GetOrCreate(1, mapper.JSON)
	require.Nil(t, err)

	body, err := compressContent([]byte(`{"b":1,"a":2}`))
	require.Nil(t, err)
	request := httptest.NewRequest(http.MethodPost, ConvertURI+"1", bytes.NewReader(body))
	request.Header.Set("Content-Encoding", "gzip")
	request.Header.Set("Accept-Encoding", "gzip, deflate")
	recorder := httptest.NewRecorder()
	NewConvert(mappers).ServeHTTP(recorder, request)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "gzip", recorder.Header().Get("Content-Encoding"))

	reader, err := gzip.NewReader(recorder.Body)
	require.Nil(t, err)
	output, err := io.ReadAll(reader)
	require.Nil(t, err)
	assert.Equal(t, `{"a":2,"b":1}`, string(output))

	request = httptest.NewRequest(http.MethodPost, ConvertURI+"1", strings.NewReader(`{}`))
	request.Header.Set("Content-Encoding", "br")
	recorder = httptest.NewRecorder()
	NewConvert(mappers).ServeHTTP(recorder, request)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}
