package exports

import (
	"testing"

	"csv-to-json/parsers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mapJSON(t *testing.T, headers []string, row parsers.Row, lowercase bool) string {
	t.Helper()
	data, err := NewMapper(headers, lowercase).Map(row).MarshalJSON()
	require.NoError(t, err)
	return string(data)
}

func TestMapper_TrimAndNull(t *testing.T) {
	got := mapJSON(t, []string{"name", "age", "city"}, parsers.Row{"  Alice ", "", "   "}, false)
	assert.Equal(t, `{"name":"Alice","age":null,"city":null}`, got)
}

func TestMapper_TruncatedRow(t *testing.T) {
	got := mapJSON(t, []string{"a", "b", "c"}, parsers.Row{"x", "y"}, false)
	assert.Equal(t, `{"a":"x","b":"y"}`, got, "missing trailing fields are absent, not null")
}

func TestMapper_ExtraFieldsDropped(t *testing.T) {
	got := mapJSON(t, []string{"a", "b"}, parsers.Row{"1", "2", "3", "4"}, false)
	assert.Equal(t, `{"a":"1","b":"2"}`, got)
}

func TestMapper_Lowercase(t *testing.T) {
	tests := []struct {
		headers []string
		want    string
	}{
		{[]string{"Name", "AGE"}, `{"name":"v1","age":"v2"}`},
		{[]string{"ÉCOLE", "ÄPFEL"}, `{"école":"v1","äpfel":"v2"}`},
		{[]string{"already", "lower"}, `{"already":"v1","lower":"v2"}`},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, mapJSON(t, tt.headers, parsers.Row{"v1", "v2"}, true))
	}
}

func TestMapper_LowercaseCollapsesDuplicates(t *testing.T) {
	got := mapJSON(t, []string{"Name", "name", "id"}, parsers.Row{"first", "second", "1"}, true)
	assert.Equal(t, `{"name":"second","id":"1"}`, got)
}

func TestMapper_ValuesKeepCase(t *testing.T) {
	got := mapJSON(t, []string{"Key"}, parsers.Row{"MiXeD"}, true)
	assert.Equal(t, `{"key":"MiXeD"}`, got)
}

func TestMapper_KeysDoNotAliasHeaders(t *testing.T) {
	headers := []string{"A"}
	mapper := NewMapper(headers, true)
	headers[0] = "changed"
	assert.Equal(t, []string{"a"}, mapper.Keys())
}
