package callgen

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/broady/callgen/api"
	"github.com/broady/callgen/rawvalue"
)

func TestEncodeBody(t *testing.T) {
	tests := []struct {
		name         string
		contract     api.BodyContract
		value        string // YAML
		wantContract api.BodyContract
		want         []string // GoString of each document
		wantCode     ErrorCode
	}{
		{
			name:         "single mapping with sorted keys",
			contract:     api.BodySingle,
			value:        `{size: 0, aggs: {b: 1, a: 2}}`,
			wantContract: api.BodySingle,
			want:         []string{`json!({"aggs":{"a":2,"b":1},"size":0})`},
		},
		{
			name:         "single sequence is one array document",
			contract:     api.BodySingle,
			value:        `[{index: {}}, {foo: bar}]`,
			wantContract: api.BodySingle,
			want:         []string{`json!([{"index":{}},{"foo":"bar"}])`},
		},
		{
			name:         "single string passes through",
			contract:     api.BodySingle,
			value:        `'{"query":{"match_all":{}}}'`,
			wantContract: api.BodySingle,
			want:         []string{`"{\"query\":{\"match_all\":{}}}"`},
		},
		{
			name:         "single keeps markup characters",
			contract:     api.BodySingle,
			value:        `{script: "a < b && c > d"}`,
			wantContract: api.BodySingle,
			want:         []string{`json!({"script":"a < b && c > d"})`},
		},
		{
			name:         "single float keeps value",
			contract:     api.BodySingle,
			value:        `{boost: 1.5}`,
			wantContract: api.BodySingle,
			want:         []string{`json!({"boost":1.5})`},
		},
		{
			name:         "single keeps number text",
			contract:     api.BodySingle,
			value:        `{ul: 18446744073709551615, f: 1.0, e: 2.5e-3}`,
			wantContract: api.BodySingle,
			want:         []string{`json!({"e":2.5e-3,"f":1.0,"ul":18446744073709551615})`},
		},
		{
			name:         "none is treated as single",
			contract:     api.BodyNone,
			value:        `{a: 1}`,
			wantContract: api.BodySingle,
			want:         []string{`json!({"a":1})`},
		},
		{
			name:         "multi sequence of documents",
			contract:     api.BodyMulti,
			value:        `[{index: {_index: test, _id: "1"}}, {title: hello}]`,
			wantContract: api.BodyMulti,
			want:         []string{`json!({"index":{"_id":"1","_index":"test"}})`, `json!({"title":"hello"})`},
		},
		{
			name:         "multi keeps number text",
			contract:     api.BodyMulti,
			value:        `[{index: {_id: 1}}, {ul: 18446744073709551615, f: 1.0}]`,
			wantContract: api.BodyMulti,
			want:         []string{`json!({"index":{"_id":1}})`, `json!({"f":1.0,"ul":18446744073709551615})`},
		},
		{
			name:         "multi string items pass through",
			contract:     api.BodyMulti,
			value:        `['{"index":{}}', {title: hello}]`,
			wantContract: api.BodyMulti,
			want:         []string{`"{\"index\":{}}"`, `json!({"title":"hello"})`},
		},
		{
			name:         "multi string is wrapped",
			contract:     api.BodyMulti,
			value:        "|\n  {\"index\":{}}\n  {\"title\":\"hello\"}\n",
			wantContract: api.BodyMulti,
			want:         []string{`"{\"index\":{}}\n{\"title\":\"hello\"}\n"`},
		},
		{
			name:     "multi mapping is rejected",
			contract: api.BodyMulti,
			value:    `{index: {}}`,
			wantCode: CodeUnsupportedValueShape,
		},
		{
			name:     "multi scalar is rejected",
			contract: api.BodyMulti,
			value:    `42`,
			wantCode: CodeUnsupportedValueShape,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := rawvalue.Parse([]byte(tt.value))
			if err != nil {
				t.Fatalf("parse: %v", err)
			}

			body, err := encodeBody(tt.contract, v)
			if tt.wantCode != "" {
				if !HasCode(err, tt.wantCode) {
					t.Errorf("expected code %s, got %v", tt.wantCode, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if body.Contract != tt.wantContract {
				t.Errorf("Contract = %v, want %v", body.Contract, tt.wantContract)
			}
			if diff := cmp.Diff(tt.want, literals(body.Documents)); diff != "" {
				t.Errorf("documents mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBody_Single(t *testing.T) {
	var nilBody *Body
	if nilBody.Single() != nil {
		t.Error("nil body should have no single document")
	}

	multi := &Body{Contract: api.BodyMulti, Documents: []Literal{Str("a")}}
	if multi.Single() != nil {
		t.Error("multi body should have no single document")
	}

	single := &Body{Contract: api.BodySingle, Documents: []Literal{Document(`{}`)}}
	if got := single.Single(); got == nil || got.GoString() != "json!({})" {
		t.Errorf("Single() = %v", got)
	}
}
