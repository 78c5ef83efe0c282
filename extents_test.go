package fontc

import "testing"

func TestExtraPadding(t *testing.T) {
	solid := NewSolid(White)
	tests := []struct {
		name   string
		layers []*Layer
		post   []Effect
		want   Padding
	}{
		{
			name:   "no effects",
			layers: []*Layer{NewLayer(solid)},
			want:   Padding{},
		},
		{
			name: "effects take the per-side maximum",
			layers: []*Layer{NewLayer(solid,
				padEffect{pad: Padding{1, 5, 2, 0}},
				padEffect{pad: Padding{3, 1, 1, 4}},
			)},
			want: Padding{3, 5, 2, 4},
		},
		{
			name: "layers take the per-side maximum",
			layers: []*Layer{
				NewLayer(solid, padEffect{pad: Uniform(2)}),
				NewLayer(solid, padEffect{pad: Padding{Left: 4}}),
			},
			want: Padding{4, 2, 2, 2},
		},
		{
			name:   "post effects add up",
			layers: []*Layer{NewLayer(solid, padEffect{pad: Uniform(1)})},
			post:   []Effect{padEffect{pad: Uniform(2)}, padEffect{pad: Padding{Top: 3}}},
			want:   Padding{3, 6, 3, 3},
		},
		{
			name:   "negative padding is ignored",
			layers: []*Layer{NewLayer(solid, padEffect{pad: Padding{-3, -1, 2, -5}})},
			want:   Padding{Right: 2},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtraPadding(tt.layers, tt.post); got != tt.want {
				t.Errorf("ExtraPadding() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExtraPaddingIncludesGenerator(t *testing.T) {
	df, err := NewDistanceField(16, 4)
	if err != nil {
		t.Fatal(err)
	}
	l := NewLayer(df, NewOutline(Black, 1))
	if got, want := ExtraPadding([]*Layer{l}, nil), Uniform(5); got != want {
		t.Errorf("ExtraPadding() = %v, want %v", got, want)
	}
}
