package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io/fs"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantMsg string
		wantCat Category
	}{
		{"config", "L001", "Invalid configuration file", CategoryConfig},
		{"series", "L012", "Invalid workload series", CategoryValidation},
		{"storage", "L030", "Cannot fetch fixtures from S3", CategoryStorage},
		{"unknown", "L999", "Unknown error", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code)
			if err.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", err.Message, tt.wantMsg)
			}
			if err.Category != tt.wantCat {
				t.Errorf("Category = %q, want %q", err.Category, tt.wantCat)
			}
			if err.Code != tt.code {
				t.Errorf("Code = %q, want %q", err.Code, tt.code)
			}
		})
	}
}

func TestErrorString(t *testing.T) {
	err := New("L020").WithLocation("stg-1.txt", 7, 0).WithDetail("aerob %q is not a number", "x")

	want := `L020: stg-1.txt:7: Invalid raw record: aerob "x" is not a number`
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestWrapAndIs(t *testing.T) {
	err := fmt.Errorf("load: %w", New("L010").Wrap(fs.ErrNotExist))

	if !stderrors.Is(err, fs.ErrNotExist) {
		t.Error("errors.Is should reach the wrapped cause")
	}
	if !stderrors.Is(err, New("L010")) {
		t.Error("errors.Is should match by code")
	}
	if stderrors.Is(err, New("L011")) {
		t.Error("errors.Is should not match a different code")
	}
	if Code(err) != "L010" {
		t.Errorf("Code = %q, want L010", Code(err))
	}
	if Code(fs.ErrNotExist) != "" {
		t.Error("Code of a plain error should be empty")
	}
}

func TestFromError(t *testing.T) {
	if FromError(nil, "L001") != nil {
		t.Error("FromError(nil) should be nil")
	}
	orig := New("L013")
	if FromError(fmt.Errorf("x: %w", orig), "L001") != orig {
		t.Error("FromError should return the existing *Error")
	}
	if got := FromError(stderrors.New("boom"), "L001"); got.Code != "L001" {
		t.Errorf("Code = %q, want L001", got.Code)
	}
}

func TestFormat(t *testing.T) {
	err := New("L020").
		WithLocation("stg-1.txt", 13, 0).
		WithContext("abc").
		Wrap(stderrors.New("strconv.ParseFloat: invalid syntax"))

	out := err.Format()
	for _, want := range []string{"L020:", "Invalid raw record", "stg-1.txt:13", "13", "abc", "Hint:", "invalid syntax"} {
		if !strings.Contains(out, want) {
			t.Errorf("Format() missing %q:\n%s", want, out)
		}
	}
}

func TestFormatJSON(t *testing.T) {
	err := New("L040").WithDetail("stg-9")

	var got map[string]any
	if e := json.Unmarshal([]byte(err.FormatJSON()), &got); e != nil {
		t.Fatal(e)
	}
	if got["code"] != "L040" || got["detail"] != "stg-9" || got["category"] != "runtime" {
		t.Errorf("FormatJSON = %v", got)
	}
}

func TestLookup(t *testing.T) {
	if _, ok := Lookup("L014"); !ok {
		t.Error("L014 should be registered")
	}
}
