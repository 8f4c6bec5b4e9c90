package layout

import (
	"errors"
	"testing"
)

func TestResolveAuto(t *testing.T) {
	tests := []struct {
		name string
		dims [3]int
		want Roles
	}{
		{"channel last", [3]int{100, 80, 3}, Roles{Channel: 2, Height: 0, Width: 1}},
		{"channel first", [3]int{3, 100, 80}, Roles{Channel: 0, Height: 1, Width: 2}},
		{"channel middle", [3]int{100, 3, 80}, Roles{Channel: 1, Height: 0, Width: 2}},
		{"all equal prefers last", [3]int{5, 5, 5}, Roles{Channel: 2, Height: 0, Width: 1}},
		{"tie on first two", [3]int{2, 2, 9}, Roles{Channel: 1, Height: 0, Width: 2}},
		{"tie on last two", [3]int{9, 2, 2}, Roles{Channel: 2, Height: 0, Width: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(tt.dims, Auto)
			if err != nil {
				t.Fatalf("Resolve failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("Resolve(%v) = %+v, expected %+v", tt.dims, got, tt.want)
			}
		})
	}
}

func TestResolveNamed(t *testing.T) {
	tests := []struct {
		name string
		want Roles
	}{
		{"CHW", Roles{Channel: 0, Height: 1, Width: 2}},
		{"cwh", Roles{Channel: 0, Height: 2, Width: 1}},
		{"HCW", Roles{Channel: 1, Height: 0, Width: 2}},
		{"hwc", Roles{Channel: 2, Height: 0, Width: 1}},
		{"WCH", Roles{Channel: 1, Height: 2, Width: 0}},
		{"whc", Roles{Channel: 2, Height: 1, Width: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := ParseLayout(tt.name)
			if err != nil {
				t.Fatalf("ParseLayout failed: %v", err)
			}
			got, err := Resolve([3]int{4, 5, 6}, l)
			if err != nil {
				t.Fatalf("Resolve failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %+v, got %+v", tt.want, got)
			}
		})
	}

	for _, s := range []string{"", "AUTO", " auto "} {
		if l, err := ParseLayout(s); err != nil || l != Auto {
			t.Errorf("ParseLayout(%q) = %v, %v", s, l, err)
		}
	}
	if _, err := ParseLayout("xyz"); !errors.Is(err, ErrInvalidLayout) {
		t.Errorf("expected ErrInvalidLayout, got %v", err)
	}
}

func TestResolveInvalid(t *testing.T) {
	for _, dims := range [][3]int{{0, 2, 3}, {2, -1, 3}, {2, 3, 0}} {
		if _, err := Resolve(dims, Auto); !errors.Is(err, ErrInvalidLayout) {
			t.Errorf("Resolve(%v): expected ErrInvalidLayout, got %v", dims, err)
		}
	}

	bad := []Roles{
		{Channel: 0, Height: 0, Width: 1},
		{Channel: 0, Height: 1, Width: 3},
		{Channel: -1, Height: 1, Width: 2},
	}
	for _, r := range bad {
		if r.Valid() {
			t.Errorf("%+v should not be valid", r)
		}
		if _, err := ResolveRoles([3]int{2, 3, 4}, r); !errors.Is(err, ErrInvalidLayout) {
			t.Errorf("ResolveRoles(%+v): expected ErrInvalidLayout, got %v", r, err)
		}
	}

	if _, err := ResolveRoles([3]int{2, 3, 4}, Roles{Channel: 1, Height: 2, Width: 0}); err != nil {
		t.Errorf("valid roles rejected: %v", err)
	}
}

// Every resolved assignment is a permutation, and scattering then gathering
// recovers the abstract triple for every cell.
func TestRolesRoundTrip(t *testing.T) {
	dims := [][3]int{{2, 3, 4}, {4, 3, 2}, {3, 3, 3}, {1, 7, 5}, {6, 1, 1}}
	layouts := []Layout{Auto, CHW, CWH, HCW, HWC, WCH, WHC}

	for _, d := range dims {
		for _, l := range layouts {
			r, err := Resolve(d, l)
			if err != nil {
				t.Fatalf("Resolve(%v, %v) failed: %v", d, l, err)
			}
			if !r.Valid() {
				t.Fatalf("Resolve(%v, %v) = %+v is not a permutation", d, l, r)
			}

			for _, order := range []Order{RowMajor, ColumnMajor} {
				x := Index{Dims: d, Order: order, Roles: r}
				seen := make([]bool, x.Len())
				for c := 0; c < x.Channels(); c++ {
					for h := 0; h < x.Height(); h++ {
						for w := 0; w < x.Width(); w++ {
							phys := r.Physical(c, h, w)
							gc, gh, gw := r.Abstract(phys)
							if gc != c || gh != h || gw != w {
								t.Fatalf("%v %v: (%d,%d,%d) came back as (%d,%d,%d)", d, l, c, h, w, gc, gh, gw)
							}
							off := x.At(c, h, w)
							if off < 0 || off >= len(seen) || seen[off] {
								t.Fatalf("%v %v %v: offset %d out of range or repeated", d, l, order, off)
							}
							seen[off] = true
						}
					}
				}
			}
		}
	}
}

func TestOffset(t *testing.T) {
	dims := [3]int{2, 3, 4}
	if got := Offset(dims, RowMajor, [3]int{1, 2, 3}); got != 1*12+2*4+3 {
		t.Errorf("row-major offset = %d", got)
	}
	if got := Offset(dims, ColumnMajor, [3]int{1, 2, 3}); got != 1+2*(2+3*3) {
		t.Errorf("column-major offset = %d", got)
	}
	if CIndex(dims, 0, 0, 1) != 1 || FortranIndex(dims, 1, 0, 0) != 1 {
		t.Error("fastest axis mismatch")
	}
}

func TestWalkOrder(t *testing.T) {
	// Row-major (c, h, w) cube with 2 channels of 2x3 pixels.
	x, err := NewIndex([3]int{2, 2, 3}, RowMajor, CHW)
	if err != nil {
		t.Fatalf("NewIndex failed: %v", err)
	}

	tests := []struct {
		il   Interleave
		want []int
	}{
		{BSQ, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}},
		{BIL, []int{0, 1, 2, 6, 7, 8, 3, 4, 5, 9, 10, 11}},
		{BIP, []int{0, 6, 1, 7, 2, 8, 3, 9, 4, 10, 5, 11}},
	}

	for _, tt := range tests {
		t.Run(tt.il.String(), func(t *testing.T) {
			var got []int
			err := x.Walk(tt.il, func(off int) error {
				got = append(got, off)
				return nil
			})
			if err != nil {
				t.Fatalf("Walk failed: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("expected %d cells, got %d", len(tt.want), len(got))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("cell %d: expected offset %d, got %d", i, tt.want[i], got[i])
				}
			}
		})
	}
}

func TestWalkStopsOnError(t *testing.T) {
	x, _ := NewIndex([3]int{2, 2, 2}, RowMajor, Auto)
	stop := errors.New("stop")
	n := 0
	err := x.Walk(BIP, func(int) error {
		n++
		if n == 3 {
			return stop
		}
		return nil
	})
	if !errors.Is(err, stop) || n != 3 {
		t.Errorf("expected stop after 3 cells, got %v after %d", err, n)
	}
}

func TestParseInterleaveAndOrder(t *testing.T) {
	for s, want := range map[string]Interleave{"BSQ": BSQ, "bil": BIL, " Bip ": BIP} {
		if got, err := ParseInterleave(s); err != nil || got != want {
			t.Errorf("ParseInterleave(%q) = %v, %v", s, got, err)
		}
	}
	if _, err := ParseInterleave("bxx"); err == nil {
		t.Error("expected error for unknown interleave")
	}

	for s, want := range map[string]Order{"C": RowMajor, "fortran": ColumnMajor, "column-major": ColumnMajor} {
		if got, err := ParseOrder(s); err != nil || got != want {
			t.Errorf("ParseOrder(%q) = %v, %v", s, got, err)
		}
	}
}
