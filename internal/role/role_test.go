package role

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTable(t *testing.T) {
	tbl := DefaultTable()

	assert.Equal(t, SMPSMK, tbl.DefaultName())

	names := []string{}
	for _, c := range tbl.Configs() {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{ASRAMA, MUSYRIF, SMPSMK}, names)

	smp, ok := tbl.Lookup(SMPSMK)
	require.True(t, ok)
	assert.Equal(t, "07:00", smp.CheckIn)
	assert.Equal(t, "15:00", smp.CheckOut)
	assert.False(t, smp.CheckOutIsNextDay())

	asrama, ok := tbl.Lookup(ASRAMA)
	require.True(t, ok)
	assert.True(t, asrama.CheckOutIsNextDay())
}

func TestResolve(t *testing.T) {
	tbl := DefaultTable()

	tests := []struct {
		name     string
		input    string
		want     string
		fellBack bool
	}{
		{name: "exact", input: "ASRAMA", want: ASRAMA},
		{name: "case and space", input: "  musyrif ", want: MUSYRIF},
		{name: "unknown", input: "MANAGEMENT", want: SMPSMK, fellBack: true},
		{name: "blank", input: "", want: SMPSMK, fellBack: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, fellBack := tbl.Resolve(tt.input)
			assert.Equal(t, tt.want, cfg.Name)
			assert.Equal(t, tt.fellBack, fellBack)
		})
	}
}

func TestNewTableRequiresDefault(t *testing.T) {
	_, err := NewTable("GURU", Defaults()...)
	assert.Error(t, err)

	_, err = NewTable(SMPSMK, Config{Name: " "})
	assert.Error(t, err)
}

func TestWithDoesNotMutate(t *testing.T) {
	base := DefaultTable()
	next := base.With(Config{Name: "smpsmk", CheckIn: "07:15", CheckOut: "15:00"})

	orig, _ := base.Lookup(SMPSMK)
	changed, _ := next.Lookup(SMPSMK)
	assert.Equal(t, "07:00", orig.CheckIn)
	assert.Equal(t, "07:15", changed.CheckIn)
}

func TestWithDefault(t *testing.T) {
	tbl, err := DefaultTable().WithDefault("asrama")
	require.NoError(t, err)
	assert.Equal(t, ASRAMA, tbl.DefaultName())

	_, err = DefaultTable().WithDefault("GURU")
	assert.Error(t, err)
}

func TestParseShift(t *testing.T) {
	s, err := ParseShift("Overnight")
	require.NoError(t, err)
	assert.Equal(t, OvernightShift, s)

	s, err = ParseShift("")
	require.NoError(t, err)
	assert.Equal(t, DaytimeShift, s)

	_, err = ParseShift("swing")
	assert.Error(t, err)

	assert.Equal(t, "overnight", OvernightShift.String())
	assert.Equal(t, "daytime", DaytimeShift.String())
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Config{Name: "A", CheckIn: "07:00", CheckOut: "15:00"}.Validate())
	assert.Error(t, Config{Name: "A", CheckIn: "7:00", CheckOut: "15:00"}.Validate())
	assert.Error(t, Config{Name: "A", CheckIn: "07:00", CheckOut: "sore"}.Validate())
}

func TestDecodeFormats(t *testing.T) {
	tests := []struct {
		name   string
		format string
		data   string
	}{
		{
			name:   "json",
			format: "json",
			data:   `{"default":"guru","roles":{"guru":{"check_in":"07:15","check_out":"14:00"},"satpam":{"check_in":"18:00","check_out":"06:00","overnight":true}}}`,
		},
		{
			name:   "yaml",
			format: "yaml",
			data: `default: guru
roles:
  guru:
    check_in: "07:15"
    check_out: "14:00"
  satpam:
    check_in: "18:00"
    check_out: "06:00"
    overnight: true
`,
		},
		{
			name:   "toml",
			format: "toml",
			data: `default = "guru"

[roles.guru]
check_in = "07:15"
check_out = "14:00"

[roles.satpam]
check_in = "18:00"
check_out = "06:00"
overnight = true
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Decode([]byte(tt.data), tt.format)
			require.NoError(t, err)

			tbl, err := doc.Apply(DefaultTable())
			require.NoError(t, err)

			assert.Equal(t, "GURU", tbl.DefaultName())

			guru, ok := tbl.Lookup("GURU")
			require.True(t, ok)
			assert.Equal(t, Config{Name: "GURU", CheckIn: "07:15", CheckOut: "14:00", Shift: DaytimeShift}, guru)

			satpam, ok := tbl.Lookup("SATPAM")
			require.True(t, ok)
			assert.Equal(t, OvernightShift, satpam.Shift)

			// built-ins survive
			_, ok = tbl.Lookup(ASRAMA)
			assert.True(t, ok)
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	_, err := Decode([]byte("{"), "json")
	assert.Error(t, err)

	_, err = Decode([]byte("roles: ["), "yaml")
	assert.Error(t, err)

	_, err = Decode([]byte("x"), "ini")
	assert.Error(t, err)
}

func TestSpecShift(t *testing.T) {
	tests := []struct {
		name     string
		spec     Spec
		expected Shift
		wantErr  bool
	}{
		{"unset", Spec{CheckIn: "07:00", CheckOut: "15:00"}, DaytimeShift, false},
		{"overnight flag", Spec{Overnight: true}, OvernightShift, false},
		{"shift name", Spec{Shift: "Night"}, OvernightShift, false},
		{"shift wins over flag", Spec{Overnight: true, Shift: "daytime"}, DaytimeShift, false},
		{"unknown shift", Spec{Shift: "swing"}, DaytimeShift, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := tt.spec.Config("satpam")
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "SATPAM", c.Name)
			assert.Equal(t, tt.expected, c.Shift)
		})
	}
}

func TestDecodeShiftName(t *testing.T) {
	doc, err := Decode([]byte("roles:\n  satpam:\n    check_in: \"18:00\"\n    check_out: \"06:00\"\n    shift: overnight\n"), "yaml")
	require.NoError(t, err)

	tbl, err := doc.Apply(DefaultTable())
	require.NoError(t, err)
	satpam, ok := tbl.Lookup("SATPAM")
	require.True(t, ok)
	assert.Equal(t, OvernightShift, satpam.Shift)

	_, err = Document{Roles: map[string]Spec{"satpam": {Shift: "swing"}}}.Apply(DefaultTable())
	assert.Error(t, err)
}

func TestApplyUnknownDefault(t *testing.T) {
	_, err := Document{Default: "KEPALA"}.Apply(DefaultTable())
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "roles.yml")
	require.NoError(t, os.WriteFile(path, []byte("roles:\n  smpsmk:\n    check_in: \"06:45\"\n    check_out: \"15:30\"\n"), 0644))

	tbl, err := LoadFile(path, DefaultTable())
	require.NoError(t, err)

	smp, _ := tbl.Lookup(SMPSMK)
	assert.Equal(t, "06:45", smp.CheckIn)
	assert.Equal(t, "15:30", smp.CheckOut)
	assert.Equal(t, SMPSMK, tbl.DefaultName())

	_, err = LoadFile(filepath.Join(dir, "missing.json"), DefaultTable())
	assert.Error(t, err)
}

func TestDocumentRoundTrip(t *testing.T) {
	doc := DocumentOf(DefaultTable())
	assert.Equal(t, SMPSMK, doc.Default)
	assert.Equal(t, Spec{CheckIn: "15:00", CheckOut: "07:00", Overnight: true}, doc.Roles[ASRAMA])

	tbl, err := doc.Apply(DefaultTable())
	require.NoError(t, err)
	assert.Equal(t, DefaultTable().Configs(), tbl.Configs())
}
