package listctl

import (
	"reflect"
	"testing"
)

func TestPageWindow(t *testing.T) {
	cases := []struct {
		current, total, span int
		want                 []int
	}{
		{1, 0, 1, []int{}},
		{1, 1, 1, []int{1}},
		{1, 5, 1, []int{1, 2, 0, 5}},
		{6, 20, 1, []int{1, 0, 5, 6, 7, 0, 20}},
		{3, 5, 1, []int{1, 2, 3, 4, 5}},
		{20, 20, 2, []int{1, 0, 18, 19, 20}},
		{99, 4, 1, []int{1, 2, 3, 4}},
	}
	for _, tc := range cases {
		got := PageWindow(tc.current, tc.total, tc.span)
		if !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("PageWindow(%d,%d,%d) = %v, want %v", tc.current, tc.total, tc.span, got, tc.want)
		}
	}
}

func TestPageRequestValues(t *testing.T) {
	req := PageRequest{Page: 2, PageSize: 20, Search: " shoe ", Filters: map[string]string{"status": "1"}}.Normalize()
	v := req.Values()
	if v.Get("page") != "2" || v.Get("limit") != "20" || v.Get("search") != "shoe" || v.Get("status") != "1" {
		t.Fatalf("unexpected values: %v", v)
	}
}

func TestNormalize(t *testing.T) {
	req := PageRequest{Page: -3, PageSize: 1000}.Normalize()
	if req.Page != 1 || req.PageSize != MaxPageSize {
		t.Fatalf("unexpected normalize: %+v", req)
	}
}
