package api

import "testing"

func TestNewTemplate(t *testing.T) {
	tmpl := NewTemplate("/{index}/_doc/{id}",
		Param{Name: "id", Type: TypeString},
		Param{Name: "index", Type: TypeString},
	)

	if len(tmpl.Params) != 2 || tmpl.Params[0] != "index" || tmpl.Params[1] != "id" {
		t.Fatalf("Params = %v, want [index id]", tmpl.Params)
	}
	if got := tmpl.Index("id"); got != 1 {
		t.Errorf("Index(id) = %d, want 1", got)
	}
	if got := tmpl.Index("type"); got != -1 {
		t.Errorf("Index(type) = %d, want -1", got)
	}
	if _, ok := tmpl.Part("index"); !ok {
		t.Error("Part(index) not found")
	}
	if got := tmpl.Key(); got != "id,index" {
		t.Errorf("Key() = %q, want %q", got, "id,index")
	}
}

func TestEndpoint_NamespaceAndMethod(t *testing.T) {
	tests := []struct {
		name      string
		namespace string
		method    string
	}{
		{"index", "", "index"},
		{"indices.create", "indices", "create"},
		{"security.get_role_mapping", "security", "get_role_mapping"},
		{"a.b.c", "a", "b.c"},
	}

	for _, tt := range tests {
		e := &Endpoint{Name: tt.name}
		if got := e.Namespace(); got != tt.namespace {
			t.Errorf("%s: Namespace() = %q, want %q", tt.name, got, tt.namespace)
		}
		if got := e.Method(); got != tt.method {
			t.Errorf("%s: Method() = %q, want %q", tt.name, got, tt.method)
		}
	}
}

func TestEndpoint_HasTemplateParam(t *testing.T) {
	e := &Endpoint{
		Name: "get",
		Templates: []URLTemplate{
			NewTemplate("/{index}/_doc/{id}", Param{Name: "index"}, Param{Name: "id"}),
		},
	}
	if !e.HasTemplateParam("id") {
		t.Error("HasTemplateParam(id) = false, want true")
	}
	if e.HasTemplateParam("routing") {
		t.Error("HasTemplateParam(routing) = true, want false")
	}
}
