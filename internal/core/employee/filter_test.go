package employee

import (
	"slices"
	"testing"
)

func filterRoster() []*Employee {
	return []*Employee{
		{ID: "NV001", Name: "Nguyễn Văn An", Position: PositionStaff, Department: DepartmentIT},
		{ID: "NV002", Name: "Trần Thị Bình", Position: PositionManager, Department: DepartmentAccounting},
		{ID: "NV003", Name: "LÊ VĂN AN", Position: PositionStaff, Department: DepartmentAccounting},
		{ID: "NV010", Name: "Phạm Minh", Position: PositionDirector, Department: DepartmentIT},
	}
}

func TestFilter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		q    ViewQuery
		want []string
	}{
		{name: "empty query keeps order", q: ViewQuery{}, want: []string{"NV001", "NV002", "NV003", "NV010"}},
		{name: "position", q: ViewQuery{Position: PositionStaff}, want: []string{"NV001", "NV003"}},
		{name: "department", q: ViewQuery{Department: DepartmentIT}, want: []string{"NV001", "NV010"}},
		{name: "position and department", q: ViewQuery{Position: PositionStaff, Department: DepartmentAccounting}, want: []string{"NV003"}},
		{name: "id substring", q: ViewQuery{SearchText: "NV01"}, want: []string{"NV010"}},
		{name: "id is case sensitive", q: ViewQuery{SearchText: "nv01"}, want: []string{}},
		{name: "name case folded", q: ViewQuery{SearchText: "văn an"}, want: []string{"NV001", "NV003"}},
		{name: "search combined with filter", q: ViewQuery{SearchText: "an", Department: DepartmentIT}, want: []string{"NV001"}},
		{name: "no match", q: ViewQuery{SearchText: "zzz"}, want: []string{}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := ids(slices.Collect(Filter(filterRoster(), tt.q)))
			if !slices.Equal(got, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestFilter_Idempotent(t *testing.T) {
	t.Parallel()

	roster := filterRoster()
	q := ViewQuery{SearchText: "an"}
	seq := Filter(roster, q)

	first := ids(slices.Collect(seq))
	second := ids(slices.Collect(seq))
	third := ids(slices.Collect(Filter(roster, q)))

	if !slices.Equal(first, second) || !slices.Equal(first, third) {
		t.Fatalf("filter is not idempotent: %v %v %v", first, second, third)
	}
}

func TestFilter_StopsEarly(t *testing.T) {
	t.Parallel()

	var got []string
	for e := range Filter(filterRoster(), ViewQuery{}) {
		got = append(got, e.ID)
		if len(got) == 2 {
			break
		}
	}
	if !slices.Equal(got, []string{"NV001", "NV002"}) {
		t.Fatalf("unexpected early-stop result %v", got)
	}
}
