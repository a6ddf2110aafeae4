package plugin

import (
	"testing"
	"time"

	"github.com/francoispqt/gojay"
	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAPI(plugins ...Plugin) jsoniter.API {
	api := jsoniter.Config{SortMapKeys: true}.Froze()
	for _, p := range plugins {
		api.RegisterExtension(p)
	}
	return api
}

type (
	account struct {
		AccountID   int
		DisplayName string
		Tagged      string `json:"tag"`
	}

	token struct {
		Value string
	}

	pair struct {
		Key   string
		Value int
	}

	event struct {
		At time.Time
	}

	signal struct {
		ID    int
		Label string
	}
)

func (s *signal) MarshalJSONObject(enc *gojay.Encoder) {
	enc.IntKey("id", s.ID)
	enc.StringKey("label", s.Label)
}

func (s *signal) IsNil() bool {
	return s == nil
}

func (s *signal) UnmarshalJSONObject(dec *gojay.Decoder, k string) error {
	switch k {
	case "id":
		return dec.Int(&s.ID)
	case "label":
		return dec.String(&s.Label)
	}
	return nil
}

func (s *signal) NKeys() int { return 2 }

func TestToSnakeCase(t *testing.T) {
	var testCases = []struct {
		input  string
		expect string
	}{
		{input: "HelloWorld", expect: "hello_world"},
		{input: "HTTPServer", expect: "http_server"},
		{input: "ID", expect: "id"},
		{input: "AccountID", expect: "account_id"},
		{input: "name", expect: "name"},
	}
	for _, testCase := range testCases {
		assert.Equal(t, testCase.expect, ToSnakeCase(testCase.input), testCase.input)
	}
}

func TestSnakeCase(t *testing.T) {
	api := newAPI(NewSnakeCase())
	data, err := api.Marshal(account{AccountID: 1, DisplayName: "Bob", Tagged: "x"})
	require.Nil(t, err)
	assert.Equal(t, `{"account_id":1,"display_name":"Bob","tag":"x"}`, string(data))

	var decoded account
	require.Nil(t, api.Unmarshal(data, &decoded))
	assert.EqualValues(t, account{AccountID: 1, DisplayName: "Bob", Tagged: "x"}, decoded)
}

func TestUnixTime(t *testing.T) {
	api := newAPI(NewUnixTime())
	at := time.Date(2024, 5, 1, 10, 30, 0, 123000000, time.UTC)
	data, err := api.Marshal(event{At: at})
	require.Nil(t, err)
	assert.Equal(t, `{"At":1714559400123}`, string(data))

	var decoded event
	require.Nil(t, api.Unmarshal(data, &decoded))
	assert.True(t, at.Equal(decoded.At))

	require.Nil(t, api.Unmarshal([]byte(`{"At":null}`), &decoded))
	assert.True(t, decoded.At.IsZero())
}

func TestParameterNames(t *testing.T) {
	var testCases = []struct {
		description string
		mode        CreatorMode
		value       interface{}
		expect      string
	}{
		{
			description: "delegating single field",
			mode:        CreatorDelegating,
			value:       token{Value: "abc"},
			expect:      `"abc"`,
		},
		{
			description: "delegating leaves multi field structs",
			mode:        CreatorDelegating,
			value:       pair{Key: "k", Value: 1},
			expect:      `{"Key":"k","Value":1}`,
		},
		{
			description: "properties single field",
			mode:        CreatorProperties,
			value:       token{Value: "abc"},
			expect:      `{"Value":"abc"}`,
		},
	}

	for _, testCase := range testCases {
		plugin := NewParameterNames(testCase.mode)
		assert.Equal(t, testCase.mode, plugin.Mode(), testCase.description)
		api := newAPI(plugin)
		data, err := api.Marshal(testCase.value)
		if !assert.Nil(t, err, testCase.description) {
			continue
		}
		assert.Equal(t, testCase.expect, string(data), testCase.description)
	}

	delegating := newAPI(NewParameterNames(CreatorDelegating))
	var decoded token
	require.Nil(t, delegating.Unmarshal([]byte(`"xyz"`), &decoded))
	assert.Equal(t, token{Value: "xyz"}, decoded)

	properties := newAPI(NewParameterNames(CreatorProperties))
	decoded = token{}
	require.Nil(t, properties.Unmarshal([]byte(`{"Value":"xyz"}`), &decoded))
	assert.Equal(t, token{Value: "xyz"}, decoded)
}

func TestGojay(t *testing.T) {
	api := newAPI(NewGojay())
	data, err := api.Marshal([]*signal{{ID: 7, Label: "click"}})
	require.Nil(t, err)
	assert.Equal(t, `[{"id":7,"label":"click"}]`, string(data))

	var decoded []*signal
	require.Nil(t, api.Unmarshal(data, &decoded))
	require.Len(t, decoded, 1)
	assert.EqualValues(t, &signal{ID: 7, Label: "click"}, decoded[0])

	plain := newAPI()
	data, err = plain.Marshal(&signal{ID: 7, Label: "click"})
	require.Nil(t, err)
	assert.Equal(t, `{"ID":7,"Label":"click"}`, string(data))
}

func TestTagKeyed(t *testing.T) {
	type labeled struct {
		FirstName string `db:"first"`
		LastName  string `json:"last"`
	}
	original := NewSnakeCase()
	bound := original.WithTagKey("db")
	assert.NotSame(t, original, bound)
	assert.Equal(t, SnakeCaseName, bound.Name())

	data, err := newAPI(original).Marshal(labeled{FirstName: "a", LastName: "b"})
	require.Nil(t, err)
	assert.Equal(t, `{"first_name":"a","last":"b"}`, string(data))

	api := jsoniter.Config{SortMapKeys: true, TagKey: "db"}.Froze()
	api.RegisterExtension(bound)
	data, err = api.Marshal(labeled{FirstName: "a", LastName: "b"})
	require.Nil(t, err)
	assert.Equal(t, `{"first":"a","last_name":"b"}`, string(data))

	parameterNames := NewParameterNames(CreatorProperties).WithTagKey("db").(*ParameterNames)
	assert.Equal(t, CreatorProperties, parameterNames.Mode())
}
