package utils

import "testing"

func TestPaginationOffset(t *testing.T) {
	p := Pagination{Page: 3, PerPage: 20}
	if got := p.Offset(); got != 40 {
		t.Errorf("Offset() = %d, want 40", got)
	}
}

func TestPaginationMeta(t *testing.T) {
	p := Pagination{Page: 2, PerPage: 20}
	meta := p.Meta(45)

	if meta["pages"] != 3 {
		t.Errorf("pages = %v, want 3", meta["pages"])
	}
	if meta["has_next"] != true {
		t.Errorf("has_next = %v, want true", meta["has_next"])
	}
	if meta["has_prev"] != true {
		t.Errorf("has_prev = %v, want true", meta["has_prev"])
	}

	last := Pagination{Page: 3, PerPage: 20}.Meta(45)
	if last["has_next"] != false {
		t.Errorf("last page has_next = %v, want false", last["has_next"])
	}
}
