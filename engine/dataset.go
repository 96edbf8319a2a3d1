package engine

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// ============================================================================
// DATASET — Ordered, schema-less rows
// ============================================================================
// Rows arrive as flat JSON objects whose key order matters: the first row
// decides the default column order of a table. encoding/json would lose that
// order when decoding into a map, so rows are decoded with gjson and stored
// as an ordered field list plus a key index.
//
// Values are one of three kinds: null, number, text. Booleans are text
// that coerces to 1 or 0; nested JSON is kept as its raw text.
// ============================================================================

// Kind tags the dynamic type of a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindNumber
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindText:
		return "text"
	default:
		return "null"
	}
}

// Value is a single cell: null, a number, or text.
type Value struct {
	kind    Kind
	num     float64
	text    string
	boolean bool
}

// Null is the absent value.
var Null = Value{}

// Number wraps a float64.
func Number(f float64) Value { return Value{kind: KindNumber, num: f} }

// Text wraps a string. Empty text is distinct from Null but renders the same
// way in table cells.
func Text(s string) Value { return Value{kind: KindText, text: s} }

// Bool wraps a boolean. It displays as "true"/"false" and coerces to 1/0.
func Bool(b bool) Value {
	v := Value{kind: KindText, text: strconv.FormatBool(b), boolean: true}
	if b {
		v.num = 1
	}
	return v
}

// ValueOf converts a Go scalar into a Value.
func ValueOf(v any) Value {
	switch x := v.(type) {
	case nil:
		return Null
	case Value:
		return x
	case *Value:
		if x == nil {
			return Null
		}
		return *x
	case float64:
		return Number(x)
	case float32:
		return Number(float64(x))
	case int:
		return Number(float64(x))
	case int8:
		return Number(float64(x))
	case int16:
		return Number(float64(x))
	case int32:
		return Number(float64(x))
	case int64:
		return Number(float64(x))
	case uint:
		return Number(float64(x))
	case uint8:
		return Number(float64(x))
	case uint16:
		return Number(float64(x))
	case uint32:
		return Number(float64(x))
	case uint64:
		return Number(float64(x))
	case json.Number:
		if f, err := x.Float64(); err == nil {
			return Number(f)
		}
		return Text(x.String())
	case string:
		return Text(x)
	case bool:
		return Bool(x)
	case fmt.Stringer:
		return Text(x.String())
	default:
		return Text(fmt.Sprint(x))
	}
}

func (v Value) Kind() Kind     { return v.kind }
func (v Value) IsNull() bool   { return v.kind == KindNull }
func (v Value) IsNumber() bool { return v.kind == KindNumber }
func (v Value) IsText() bool   { return v.kind == KindText }

// IsEmpty reports null or empty text, the two values a table renders as a placeholder.
func (v Value) IsEmpty() bool {
	return v.kind == KindNull || (v.kind == KindText && v.text == "")
}

// IsInteger reports a finite number with no fractional part. Numeric text is not an integer.
func (v Value) IsInteger() bool {
	if v.kind != KindNumber || math.IsNaN(v.num) || math.IsInf(v.num, 0) {
		return false
	}
	return v.num == math.Trunc(v.num)
}

// Truthy follows the usual dynamic-language falsy set: null, empty text,
// false, 0 and NaN are false.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindNumber:
		return v.num != 0 && !math.IsNaN(v.num)
	case KindText:
		if v.boolean {
			return v.num != 0
		}
		return v.text != ""
	default:
		return false
	}
}

// Float coerces the value to a number. Text is parsed after trimming
// whitespace and empty text counts as zero. Booleans are 1 or 0. The bool
// is false for null and for text that does not parse, in which case the
// float is NaN.
func (v Value) Float() (float64, bool) {
	switch v.kind {
	case KindNumber:
		return v.num, true
	case KindText:
		if v.boolean {
			return v.num, true
		}
		s := strings.TrimSpace(v.text)
		if s == "" {
			return 0, true
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return math.NaN(), false
		}
		return f, true
	default:
		return math.NaN(), false
	}
}

// FloatOr returns the numeric value, or def when the value is not numeric.
func (v Value) FloatOr(def float64) float64 {
	if f, ok := v.Float(); ok {
		return f
	}
	return def
}

// String renders the value as plain text: integers without a fraction,
// other numbers in their shortest form, null as the empty string.
func (v Value) String() string {
	switch v.kind {
	case KindNumber:
		return formatShortest(v.num)
	case KindText:
		return v.text
	default:
		return ""
	}
}

func formatShortest(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// MarshalJSON writes numbers as JSON numbers and text as strings. NaN and
// infinities have no JSON form and are written as null.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNumber:
		if math.IsNaN(v.num) || math.IsInf(v.num, 0) {
			return []byte("null"), nil
		}
		return strconv.AppendFloat(nil, v.num, 'f', -1, 64), nil
	case KindText:
		if v.boolean {
			return []byte(v.text), nil
		}
		return json.Marshal(v.text)
	default:
		return []byte("null"), nil
	}
}

func (v *Value) UnmarshalJSON(data []byte) error {
	if !gjson.ValidBytes(data) {
		return fmt.Errorf("invalid JSON value: %s", truncate(string(data), 40))
	}
	*v = valueFromResult(gjson.ParseBytes(data))
	return nil
}

func valueFromResult(r gjson.Result) Value {
	switch r.Type {
	case gjson.Number:
		return Number(r.Num)
	case gjson.String:
		return Text(r.Str)
	case gjson.True, gjson.False:
		return Bool(r.Bool())
	case gjson.JSON:
		return Text(r.Raw)
	default:
		return Null
	}
}

// ============================================================================
// ROW — ordered key → value mapping
// ============================================================================

// Field is one key/value pair of a Row.
type Field struct {
	Key   string
	Value Value
}

// F builds a Field from any Go scalar.
func F(key string, v any) Field { return Field{Key: key, Value: ValueOf(v)} }

// Row keeps keys in first-insertion order. Reading an absent key yields Null.
type Row struct {
	fields []Field
	index  map[string]int
}

// NewRow builds a row from fields. A repeated key keeps its first position
// and its last value.
func NewRow(fields ...Field) Row {
	r := Row{}
	for _, f := range fields {
		r.Set(f.Key, f.Value)
	}
	return r
}

// Set assigns key. An existing key keeps its position.
func (r *Row) Set(key string, v Value) {
	if r.index == nil {
		r.index = make(map[string]int)
	}
	if i, ok := r.index[key]; ok {
		r.fields[i].Value = v
		return
	}
	r.index[key] = len(r.fields)
	r.fields = append(r.fields, Field{Key: key, Value: v})
}

func (r Row) Get(key string) Value {
	if i, ok := r.index[key]; ok {
		return r.fields[i].Value
	}
	return Null
}

func (r Row) Has(key string) bool {
	_, ok := r.index[key]
	return ok
}

func (r Row) Len() int { return len(r.fields) }

// Keys returns the keys in insertion order.
func (r Row) Keys() []string {
	keys := make([]string, len(r.fields))
	for i, f := range r.fields {
		keys[i] = f.Key
	}
	return keys
}

// Fields returns a copy of the ordered fields.
func (r Row) Fields() []Field {
	out := make([]Field, len(r.fields))
	copy(out, r.fields)
	return out
}

func (r Row) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r.fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		val, err := f.Value.MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (r *Row) UnmarshalJSON(data []byte) error {
	if !gjson.ValidBytes(data) {
		return fmt.Errorf("invalid JSON row: %s", truncate(string(data), 40))
	}
	row, err := rowFromResult(gjson.ParseBytes(data))
	if err != nil {
		return err
	}
	*r = row
	return nil
}

func rowFromResult(res gjson.Result) (Row, error) {
	if !res.IsObject() {
		return Row{}, fmt.Errorf("row must be a JSON object, got %s", res.Type)
	}
	row := Row{}
	res.ForEach(func(key, value gjson.Result) bool {
		row.Set(key.String(), valueFromResult(value))
		return true
	})
	return row, nil
}

// ============================================================================
// DATASET
// ============================================================================

// Dataset is an ordered sequence of rows.
type Dataset []Row

// Keys returns the column set inferred from the first row.
func (d Dataset) Keys() []string {
	if len(d) == 0 {
		return nil
	}
	return d[0].Keys()
}

// HasColumn reports whether the first row carries key.
func (d Dataset) HasColumn(key string) bool {
	return len(d) > 0 && d[0].Has(key)
}

// Column collects key across all rows, Null where a row lacks it.
func (d Dataset) Column(key string) []Value {
	out := make([]Value, len(d))
	for i, r := range d {
		out[i] = r.Get(key)
	}
	return out
}

// Group is a run of rows sharing a grouping value.
type Group struct {
	Key  string
	Rows Dataset
}

// DefaultGroup collects rows whose grouping value is falsy.
const DefaultGroup = "default"

// GroupBy partitions rows by the text of key, in order of first appearance.
// Rows keep their relative order inside each group.
func (d Dataset) GroupBy(key string) []Group {
	var groups []Group
	seen := make(map[string]int)
	for _, r := range d {
		v := r.Get(key)
		k := DefaultGroup
		if v.Truthy() {
			k = v.String()
		}
		i, ok := seen[k]
		if !ok {
			i = len(groups)
			seen[k] = i
			groups = append(groups, Group{Key: k})
		}
		groups[i].Rows = append(groups[i].Rows, r)
	}
	return groups
}

func (d *Dataset) UnmarshalJSON(data []byte) error {
	if !gjson.ValidBytes(data) {
		return fmt.Errorf("invalid JSON dataset")
	}
	ds, err := datasetFromResult(gjson.ParseBytes(data))
	if err != nil {
		return err
	}
	*d = ds
	return nil
}

// DatasetFromJSON decodes a JSON array of objects. A path selects a nested
// array using gjson path syntax (for example "data.rows"); empty means the
// document itself.
func DatasetFromJSON(data []byte, path string) (Dataset, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("invalid JSON document")
	}
	res := gjson.ParseBytes(data)
	if path != "" {
		res = res.Get(path)
		if !res.Exists() {
			return nil, fmt.Errorf("path %q not found", path)
		}
	}
	return datasetFromResult(res)
}

func datasetFromResult(res gjson.Result) (Dataset, error) {
	if res.Type == gjson.Null {
		return nil, nil
	}
	if !res.IsArray() {
		return nil, fmt.Errorf("dataset must be a JSON array of objects, got %s", res.Type)
	}
	var (
		ds     Dataset
		rowErr error
	)
	res.ForEach(func(_, value gjson.Result) bool {
		row, err := rowFromResult(value)
		if err != nil {
			rowErr = fmt.Errorf("row %d: %w", len(ds), err)
			return false
		}
		ds = append(ds, row)
		return true
	})
	if rowErr != nil {
		return nil, rowErr
	}
	return ds, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
