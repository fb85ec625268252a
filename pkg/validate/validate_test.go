package validate_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/shashiranjanraj/helmet-store/pkg/validate"
)

type addInput struct {
	Type  *int64           `json:"type"  validate:"required,integer,gte=1"`
	Name  *string          `json:"name"  validate:"required,max=255"`
	Price *decimal.Decimal `json:"price" validate:"required,numeric,gte=0"`
	Stock *int64           `json:"stock" validate:"required,integer,gte=0"`
}

func ptr[T any](v T) *T { return &v }

func TestValidInput(t *testing.T) {
	errs := validate.Struct(addInput{
		Type:  ptr(int64(1)),
		Name:  ptr("Arai J"),
		Price: ptr(decimal.NewFromInt(2000000)),
		Stock: ptr(int64(5)),
	})
	if validate.HasErrors(errs) {
		t.Errorf("expected no errors, got: %v", errs)
	}
}

func TestZeroIsPresent(t *testing.T) {
	errs := validate.Struct(addInput{
		Type:  ptr(int64(1)),
		Name:  ptr("Arai"),
		Price: ptr(decimal.Zero),
		Stock: ptr(int64(0)),
	})
	if validate.HasErrors(errs) {
		t.Errorf("expected zero price and stock to pass, got: %v", errs)
	}
}

func TestRequiredFails(t *testing.T) {
	errs := validate.Struct(addInput{Type: ptr(int64(1))})
	for _, field := range []string{"name", "price", "stock"} {
		if _, ok := errs[field]; !ok {
			t.Errorf("expected %s to be required, got: %v", field, errs)
		}
	}
	if _, ok := errs["type"]; ok {
		t.Errorf("type was supplied, got: %v", errs)
	}
}

func TestBlankStringIsEmpty(t *testing.T) {
	errs := validate.Struct(addInput{
		Type:  ptr(int64(1)),
		Name:  ptr("   "),
		Price: ptr(decimal.NewFromInt(1)),
		Stock: ptr(int64(1)),
	})
	if errs["name"] != "The name field is required." {
		t.Errorf("unexpected name error: %q", errs["name"])
	}
}

func TestNumericBounds(t *testing.T) {
	errs := validate.Struct(addInput{
		Type:  ptr(int64(0)),
		Name:  ptr("Arai"),
		Price: ptr(decimal.NewFromFloat(-1.5)),
		Stock: ptr(int64(-2)),
	})
	for _, field := range []string{"type", "price", "stock"} {
		if _, ok := errs[field]; !ok {
			t.Errorf("expected %s bound error, got: %v", field, errs)
		}
	}
}

func TestNonPointerRules(t *testing.T) {
	type in struct {
		Role  string `json:"role"  validate:"required,in=admin|user"`
		Code  string `json:"code"  validate:"nullable,numeric"`
		Count int    `json:"count" validate:"required,lte=10"`
	}
	if errs := validate.Struct(in{Role: "user", Count: 3}); validate.HasErrors(errs) {
		t.Errorf("expected pass, got: %v", errs)
	}
	errs := validate.Struct(in{Role: "root", Code: "x1", Count: 11})
	if len(errs) != 3 {
		t.Errorf("expected three errors, got: %v", errs)
	}
}

func TestSummaryIsSorted(t *testing.T) {
	got := validate.Summary(map[string]string{"stock": "b.", "price": "a."})
	if got != "a. b." {
		t.Errorf("unexpected summary %q", got)
	}
}
