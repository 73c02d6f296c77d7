package value

import (
	"reflect"
	"testing"
)

func TestParse_QuotedString(t *testing.T) {
	cases := map[string]string{
		`"public"`: "public",
		`'public'`: "public",
		`"123"`:    "123",
		`""`:       "",
	}
	for in, want := range cases {
		if got := Parse(in); got != want {
			t.Errorf("Parse(%q) = %#v, want %#v", in, got, want)
		}
	}
}

func TestParse_List(t *testing.T) {
	got := Parse(`[a, "b", 3]`)
	want := []any{"a", "b", int64(3)}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Parse(list) = %#v, want %#v", got, want)
	}
}

func TestParse_EmptyList(t *testing.T) {
	got, ok := Parse("[]").([]any)
	if !ok || len(got) != 0 {
		t.Errorf("Parse([]) = %#v, want empty []any", got)
	}
}

func TestParse_Bool(t *testing.T) {
	cases := map[string]bool{"true": true, "FALSE": false, "True": true}
	for in, want := range cases {
		if got := Parse(in); got != want {
			t.Errorf("Parse(%q) = %#v, want %v", in, got, want)
		}
	}
}

func TestParse_Int(t *testing.T) {
	got := Parse("42")
	if v, ok := got.(int64); !ok || v != 42 {
		t.Errorf("Parse(42) = %#v, want int64(42)", got)
	}
}

func TestParse_NegativeInt(t *testing.T) {
	got := Parse("-7")
	if v, ok := got.(int64); !ok || v != -7 {
		t.Errorf("Parse(-7) = %#v, want int64(-7)", got)
	}
}

func TestParse_Float(t *testing.T) {
	got := Parse("3.14")
	if v, ok := got.(float64); !ok || v != 3.14 {
		t.Errorf("Parse(3.14) = %#v, want float64(3.14)", got)
	}
}

func TestParse_BareString(t *testing.T) {
	got := Parse("public")
	if got != "public" {
		t.Errorf("Parse(public) = %#v, want \"public\"", got)
	}
}

func TestParse_BareStringNotConfusedWithBool(t *testing.T) {
	got := Parse("truthy")
	if got != "truthy" {
		t.Errorf("Parse(truthy) = %#v, want \"truthy\" (not bool)", got)
	}
}

func TestParse_TrimsSurroundingWhitespace(t *testing.T) {
	got := Parse("  public  ")
	if got != "public" {
		t.Errorf("Parse(whitespace) = %#v, want \"public\"", got)
	}
}
