package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func testSchema() *Schema {
	return &Schema{
		Name:        "test-person",
		Description: "A test object",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"name":  map[string]any{"type": "string"},
				"age":   map[string]any{"type": "integer", "minimum": 0},
				"grade": map[string]any{"type": "string", "enum": []string{"A", "B", "C"}},
			},
			"required": []string{"name", "age"},
		},
	}
}

func TestValidateResponse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"valid", `{"name":"Ana","age":8,"grade":"A"}`, false},
		{"optional omitted", `{"name":"Ben","age":9}`, false},
		{"missing required", `{"name":"Cy"}`, true},
		{"wrong type", `{"name":"Di","age":"nine"}`, true},
		{"below minimum", `{"name":"Ed","age":-1}`, true},
		{"enum violation", `{"name":"Flo","age":7,"grade":"Z"}`, true},
		{"not JSON", `{name:`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateResponse(testSchema(), json.RawMessage(tt.raw))
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				var invalid *ErrInvalidResponse
				if !errors.As(err, &invalid) {
					t.Fatalf("expected ErrInvalidResponse, got %T", err)
				}
				if string(invalid.Content) != tt.raw {
					t.Fatalf("content = %s", invalid.Content)
				}
			}
		})
	}
}

func TestValidateResponse_NilSchema(t *testing.T) {
	if err := validateResponse(nil, json.RawMessage(`anything`)); err != nil {
		t.Fatalf("nil schema should accept, got %v", err)
	}
}

func TestValidateResponse_BadSchema(t *testing.T) {
	s := &Schema{Name: "broken-schema", Definition: map[string]any{"type": 12}}
	if err := validateResponse(s, json.RawMessage(`{}`)); err == nil {
		t.Fatal("expected compile error")
	}
}

func TestCompileSchema_Cached(t *testing.T) {
	s := testSchema()
	a, err := compileSchema(s)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	b, err := compileSchema(s)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if a != b {
		t.Fatal("expected cached schema")
	}
}
