package manifest

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Faultbox/placegen/pkg/formats"
)

func TestDefault_Assets(t *testing.T) {
	m, err := Default()
	if err != nil {
		t.Fatalf("Default failed: %v", err)
	}
	if err := m.Validate(); err != nil {
		t.Fatalf("default manifest does not validate: %v", err)
	}

	assets, err := m.Assets()
	if err != nil {
		t.Fatalf("Assets failed: %v", err)
	}
	if len(assets) != 38 {
		t.Fatalf("expected 38 assets, got %d", len(assets))
	}

	counts := make(map[string]int)
	for _, a := range assets {
		counts[a.Group]++
	}
	want := map[string]int{"blocks": 13, "items": 15, "gui": 10}
	for group, n := range want {
		if counts[group] != n {
			t.Errorf("group %s: expected %d assets, got %d", group, n, counts[group])
		}
	}
}

func TestDefault_KnownAssets(t *testing.T) {
	m, err := Default()
	if err != nil {
		t.Fatalf("Default failed: %v", err)
	}
	assets, err := m.Assets()
	if err != nil {
		t.Fatalf("Assets failed: %v", err)
	}

	byPath := make(map[string]Asset)
	for _, a := range assets {
		byPath[a.Path] = a
	}

	iron, ok := byPath["src/main/resources/Common/Icons/ItemsGenerated/Iron_Dust.png"]
	if !ok {
		t.Fatal("Iron_Dust icon missing")
	}
	if iron.Width != 32 || iron.Height != 32 || iron.Fill != (formats.RGB{R: 105, G: 105, B: 105}) || iron.Bordered() {
		t.Errorf("unexpected Iron_Dust asset: %s", iron)
	}

	slot, ok := byPath["src/main/resources/Common/UI/Custom/Slot_Background.png"]
	if !ok {
		t.Fatal("Slot_Background missing")
	}
	if slot.Width != 18 || slot.Height != 18 {
		t.Errorf("expected 18x18 slot, got %dx%d", slot.Width, slot.Height)
	}
	if slot.Fill != (formats.RGB{R: 60, G: 60, B: 60}) {
		t.Errorf("unexpected slot fill %s", slot.Fill)
	}
	if !slot.Bordered() || *slot.Border != (formats.RGB{R: 80, G: 80, B: 80}) {
		t.Errorf("unexpected slot border in %s", slot)
	}

	gui, ok := byPath["src/main/resources/Common/UI/Custom/MachineGUI_Background.png"]
	if !ok {
		t.Fatal("MachineGUI_Background missing")
	}
	if gui.Width != 256 || gui.Height != 166 {
		t.Errorf("expected 256x166, got %dx%d", gui.Width, gui.Height)
	}
}

func TestParse_ColorForms(t *testing.T) {
	data := []byte(`
palette:
  fire: "#ff6600"
groups:
  - name: test
    dir: out
    width: 4
    height: 4
    assets:
      - {name: Named, fill: fire}
      - {name: List, fill: [1, 2, 3], border: "#0a0b0c"}
`)

	m, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	assets, err := m.Assets()
	if err != nil {
		t.Fatalf("Assets failed: %v", err)
	}

	if assets[0].Fill != (formats.RGB{R: 255, G: 102, B: 0}) {
		t.Errorf("named color: got %s", assets[0].Fill)
	}
	if assets[1].Fill != (formats.RGB{R: 1, G: 2, B: 3}) {
		t.Errorf("list color: got %s", assets[1].Fill)
	}
	if assets[1].Border == nil || *assets[1].Border != (formats.RGB{R: 10, G: 11, B: 12}) {
		t.Errorf("hex border: got %v", assets[1].Border)
	}
	if assets[1].Path != "out/List.png" {
		t.Errorf("expected out/List.png, got %s", assets[1].Path)
	}
}

func TestParse_InvalidColors(t *testing.T) {
	tests := []struct {
		name string
		fill string
	}{
		{"short hex", `"#fff"`},
		{"two channels", `[1, 2]`},
		{"out of range", `[1, 2, 300]`},
		{"mapping", `{r: 1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := []byte("groups:\n  - name: g\n    dir: d\n    assets:\n      - name: A\n        width: 1\n        height: 1\n        fill: " + tt.fill + "\n")
			_, err := Parse(data)
			if !errors.Is(err, formats.ErrInvalidColor) {
				t.Errorf("expected ErrInvalidColor, got %v", err)
			}
		})
	}
}

func TestAssets_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want error
	}{
		{
			name: "unknown palette name",
			yaml: "groups:\n  - {name: g, dir: d, width: 2, height: 2, assets: [{name: A, fill: nope}]}\n",
			want: ErrUnknownColor,
		},
		{
			name: "missing fill",
			yaml: "groups:\n  - {name: g, dir: d, width: 2, height: 2, assets: [{name: A}]}\n",
			want: ErrMissingColor,
		},
		{
			name: "zero size",
			yaml: "groups:\n  - {name: g, dir: d, assets: [{name: A, fill: [0, 0, 0]}]}\n",
			want: formats.ErrInvalidDimension,
		},
		{
			name: "empty name",
			yaml: "groups:\n  - {name: g, dir: d, width: 2, height: 2, assets: [{fill: [0, 0, 0]}]}\n",
			want: ErrInvalidAsset,
		},
		{
			name: "palette alias",
			yaml: "palette:\n  a: b\ngroups: []\n",
			want: ErrInvalidPalette,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Parse([]byte(tt.yaml))
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			_, err = m.Assets()
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestValidate_DuplicatePaths(t *testing.T) {
	m := &Manifest{
		Groups: []Group{
			{
				Name: "g", Dir: "d", Width: 2, Height: 2,
				Assets: []AssetSpec{
					{Name: "Same", Fill: Literal(formats.RGB{})},
					{Name: "same", Fill: Literal(formats.RGB{R: 1})},
				},
			},
		},
	}

	if err := m.Validate(); !errors.Is(err, ErrDuplicatePath) {
		t.Errorf("expected ErrDuplicatePath, got %v", err)
	}
	if assets, err := m.Resolve(); !errors.Is(err, ErrDuplicatePath) || assets != nil {
		t.Errorf("expected ErrDuplicatePath and no assets, got %d assets, %v", len(assets), err)
	}
}

func TestResolve_MatchesAssets(t *testing.T) {
	m, err := Default()
	if err != nil {
		t.Fatalf("Default failed: %v", err)
	}

	resolved, err := m.Resolve()
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	assets, err := m.Assets()
	if err != nil {
		t.Fatalf("Assets failed: %v", err)
	}
	if len(resolved) != len(assets) {
		t.Fatalf("expected %d assets, got %d", len(assets), len(resolved))
	}
	for i := range assets {
		if resolved[i].Path != assets[i].Path {
			t.Errorf("asset %d: expected %s, got %s", i, assets[i].Path, resolved[i].Path)
		}
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "assets.yaml")
	content := "groups:\n  - name: g\n    dir: d\n    assets:\n      - {name: A, width: 3, height: 5, fill: \"#010203\"}\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write manifest: %v", err)
	}

	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	assets, err := m.Assets()
	if err != nil {
		t.Fatalf("Assets failed: %v", err)
	}
	if len(assets) != 1 || assets[0].Width != 3 || assets[0].Height != 5 {
		t.Errorf("unexpected assets %v", assets)
	}
}

func TestLoadMissing(t *testing.T) {
	if _, err := Load("/nonexistent/assets.yaml"); err == nil {
		t.Error("expected error loading missing manifest, got nil")
	}
}

func TestFilter(t *testing.T) {
	m, err := Default()
	if err != nil {
		t.Fatalf("Default failed: %v", err)
	}
	assets, err := m.Assets()
	if err != nil {
		t.Fatalf("Assets failed: %v", err)
	}

	tests := []struct {
		name     string
		patterns []string
		want     int
	}{
		{"no patterns", nil, 38},
		{"group", []string{"gui"}, 10},
		{"glob on name", []string{"Machine_Generator*"}, 4},
		{"substring", []string{"dust"}, 4},
		{"several", []string{"gui", "ingot"}, 13},
		{"path glob", []string{"src/main/resources/common/blocktextures/*"}, 13},
		{"no match", []string{"diamond"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(assets, tt.patterns)
			if len(got) != tt.want {
				t.Errorf("expected %d assets, got %d", tt.want, len(got))
			}
		})
	}
}

func TestAsset_String(t *testing.T) {
	border := formats.RGB{R: 255, G: 102}
	a := Asset{Width: 32, Height: 32, Fill: formats.RGB{R: 112, G: 128, B: 144}, Border: &border}

	if s := a.String(); s != "32x32 #708090 border #ff6600" {
		t.Errorf("unexpected string %q", s)
	}
}
