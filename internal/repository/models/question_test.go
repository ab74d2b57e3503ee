package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeOptions(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Options
	}{
		{name: "string array", raw: `["A","B","C","D"]`, want: Options{"A", "B", "C", "D"}},
		{name: "mixed array", raw: `["A", 2, true, null, {"x":1}]`, want: Options{"A", "2", "true", "null", `{"x":1}`}},
		{name: "large number keeps digits", raw: `[12345678901234567890]`, want: Options{"12345678901234567890"}},
		{name: "object values in document order", raw: `{"d":"four","a":"one","c":"three","b":"two"}`, want: Options{"four", "one", "three", "two"}},
		{name: "object index keys ascending", raw: `{"2":"second","1":"first","3":"third","0":"zero"}`, want: Options{"zero", "first", "second", "third"}},
		{name: "object index keys before named keys", raw: `{"b":"B","10":"ten","a":"A","9":"nine"}`, want: Options{"nine", "ten", "B", "A"}},
		{name: "object non-canonical numbers stay in place", raw: `{"01":"x","-1":"y","1.5":"z","4294967295":"w","0":"v"}`, want: Options{"v", "x", "y", "z", "w"}},
		{name: "object repeated key keeps first slot", raw: `{"a":"1","b":"2","a":"3"}`, want: Options{"3", "2"}},
		{name: "empty array", raw: `[]`, want: Options{}},
		{name: "empty object", raw: `{}`, want: Options{}},
		{name: "surrounding whitespace", raw: "  [\"A\"]\n", want: Options{"A"}},
		{name: "empty", raw: ``, want: Options{}},
		{name: "scalar string", raw: `"A,B,C,D"`, want: Options{}},
		{name: "number", raw: `4`, want: Options{}},
		{name: "malformed", raw: `["A","B"`, want: Options{}},
		{name: "trailing garbage", raw: `["A"] ["B"]`, want: Options{}},
		{name: "not json", raw: `A|||B`, want: Options{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeOptions([]byte(tt.raw))
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOptions_Scan(t *testing.T) {
	var o Options
	require.NoError(t, o.Scan(nil))
	assert.Equal(t, Options{}, o)

	require.NoError(t, o.Scan(`["x","y"]`))
	assert.Equal(t, Options{"x", "y"}, o)

	require.NoError(t, o.Scan([]byte(`{"a":"1"}`)))
	assert.Equal(t, Options{"1"}, o)

	require.NoError(t, o.Scan(42))
	assert.Equal(t, Options{}, o)
}

func TestOptions_Value(t *testing.T) {
	v, err := Options(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", v)

	v, err = Options{"甲", "乙", "丙", "丁"}.Value()
	require.NoError(t, err)
	assert.Equal(t, `["甲","乙","丙","丁"]`, v)

	var back Options
	require.NoError(t, back.Scan(v))
	assert.Equal(t, Options{"甲", "乙", "丙", "丁"}, back)
}
