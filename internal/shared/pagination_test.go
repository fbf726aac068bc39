package shared

import "testing"

func TestNewPagination(t *testing.T) {
	p := NewPagination(2, 10, 35)
	if p.Page != 2 || p.PerPage != 10 || p.Total != 35 || p.TotalPages != 4 {
		t.Fatalf("unexpected pagination: %+v", p)
	}
	if p.Offset() != 10 {
		t.Fatalf("unexpected offset: %d", p.Offset())
	}
}

func TestNewPaginationDefaults(t *testing.T) {
	p := NewPagination(0, 0, 5)
	if p.Page != 1 || p.PerPage != 10 || p.TotalPages != 1 {
		t.Fatalf("unexpected pagination: %+v", p)
	}
	if p.Offset() != 0 {
		t.Fatalf("unexpected offset: %d", p.Offset())
	}
}
