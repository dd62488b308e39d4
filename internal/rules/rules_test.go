package rules

import "testing"

type fakeFile struct {
	name string
}

func TestRequired(t *testing.T) {
	cases := []struct {
		name    string
		value   any
		present bool
		want    string // expected code, "" for pass
	}{
		{name: "absent", value: nil, present: false, want: CodeRequired},
		{name: "nil value", value: nil, present: true, want: CodeRequired},
		{name: "typed nil pointer", value: (*fakeFile)(nil), present: true, want: CodeRequired},
		{name: "empty string", value: "", present: true, want: CodeRequired},
		{name: "blank string", value: "   ", present: true, want: CodeRequired},
		{name: "non-empty string", value: "Import ABC", present: true, want: ""},
		{name: "non-nil pointer", value: &fakeFile{name: "m.csv"}, present: true, want: ""},
		{name: "false bool passes", value: false, present: true, want: ""},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			issue := Required{}.Apply("f", tc.value, tc.present)
			if tc.want == "" {
				if issue != nil {
					t.Fatalf("expected pass, got %+v", issue)
				}
				return
			}
			if issue == nil || issue.Code != tc.want {
				t.Fatalf("got %+v, want code %q", issue, tc.want)
			}
		})
	}
}

func TestOneOf(t *testing.T) {
	rule := OneOf{Options: []string{"Import ABC", "Import DEF", "Import GHI"}}

	if issue := rule.Apply("importName", "Import ABC", true); issue != nil {
		t.Fatalf("allowed option rejected: %+v", issue)
	}
	issue := rule.Apply("importName", "Import XYZ", true)
	if issue == nil || issue.Code != CodeInvalidOption {
		t.Fatalf("got %+v, want invalid_option", issue)
	}
	if issue.Message != "Must be one of: Import ABC, Import DEF, Import GHI" {
		t.Fatalf("unexpected message %q", issue.Message)
	}
	if issue := rule.Apply("importName", 42, true); issue == nil || issue.Code != CodeWrongType {
		t.Fatalf("got %+v, want wrong_type", issue)
	}
}

func TestBoolRequired(t *testing.T) {
	rule := BoolRequired{}

	if issue := rule.Apply("toleranceWindow", true, true); issue != nil {
		t.Fatalf("true rejected: %+v", issue)
	}
	if issue := rule.Apply("toleranceWindow", false, true); issue != nil {
		t.Fatalf("false rejected: %+v", issue)
	}
	if issue := rule.Apply("toleranceWindow", nil, false); issue == nil || issue.Code != CodeRequired {
		t.Fatalf("got %+v, want required", issue)
	}
	if issue := rule.Apply("toleranceWindow", "yes", true); issue == nil || issue.Code != CodeWrongType {
		t.Fatalf("got %+v, want wrong_type", issue)
	}
}

func TestRuleset_Evaluate(t *testing.T) {
	rs := Ruleset{
		"importName": {Required{}, OneOf{Options: []string{"Import ABC"}}},
		"manifest":   {Required{Message: "A manifest file is required"}},
	}

	t.Run("first failing rule wins", func(t *testing.T) {
		issues := rs.Evaluate(map[string]any{
			"importName": "",
			"manifest":   (*fakeFile)(nil),
		})
		if len(issues) != 2 {
			t.Fatalf("len(issues) = %d, want 2", len(issues))
		}
		// Sorted by field name.
		if issues[0].Field != "importName" || issues[0].Code != CodeRequired {
			t.Fatalf("issues[0] = %+v", issues[0])
		}
		if issues[1].Field != "manifest" || issues[1].Message != "A manifest file is required" {
			t.Fatalf("issues[1] = %+v", issues[1])
		}
	})

	t.Run("all passing", func(t *testing.T) {
		issues := rs.Evaluate(map[string]any{
			"importName": "Import ABC",
			"manifest":   &fakeFile{},
		})
		if len(issues) != 0 {
			t.Fatalf("unexpected issues: %+v", issues)
		}
		if errs := rs.Errors(map[string]any{"importName": "Import ABC", "manifest": &fakeFile{}}); errs != nil {
			t.Fatalf("Errors() = %v, want nil", errs)
		}
	})

	t.Run("errors map", func(t *testing.T) {
		errs := rs.Errors(map[string]any{"importName": "Import XYZ", "manifest": &fakeFile{}})
		if len(errs) != 1 {
			t.Fatalf("len(errs) = %d, want 1", len(errs))
		}
		if errs["importName"] != "Must be one of: Import ABC" {
			t.Fatalf("errs[importName] = %q", errs["importName"])
		}
	})
}
