// File: internal/stack/refs_test.go
// Brief: Tests for parameter reference parsing and substitution.

package stack

import (
	"reflect"
	"testing"
)

func TestParseRefs(t *testing.T) {
	cases := []struct {
		value string
		want  []Ref
	}{
		{"plain value", nil},
		{"${network.vpcId}", []Ref{{Stack: "network", Key: "vpcId"}}},
		{"mongodb://${database.endpoint}:27017", []Ref{{Stack: "database", Key: "endpoint"}}},
		{"${a.x}-${b.y}", []Ref{{Stack: "a", Key: "x"}, {Stack: "b", Key: "y"}}},
		{"${bad name.x}", nil},
	}
	for _, tc := range cases {
		if got := ParseRefs(tc.value); !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("ParseRefs(%q) = %v, want %v", tc.value, got, tc.want)
		}
	}
}

func TestSubstituteRefs(t *testing.T) {
	values := map[Ref]string{
		{Stack: "network", Key: "vpcId"}: "vpc-0abc",
	}
	lookup := func(r Ref) (string, bool) {
		v, ok := values[r]
		return v, ok
	}

	got, complete := SubstituteRefs("id=${network.vpcId}", lookup, "<pending>")
	if !complete || got != "id=vpc-0abc" {
		t.Fatalf("got %q complete=%v", got, complete)
	}

	got, complete = SubstituteRefs("url=${application.url}", lookup, "<pending>")
	if complete {
		t.Fatalf("expected incomplete substitution")
	}
	if got != "url=<pending>" {
		t.Fatalf("got %q, want placeholder substitution", got)
	}

	got, complete = SubstituteRefs("no refs here", lookup, "<pending>")
	if !complete || got != "no refs here" {
		t.Fatalf("got %q complete=%v", got, complete)
	}
}
