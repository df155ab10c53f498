package domain

import "testing"

func TestResolvePluginMode(t *testing.T) {
	cases := []struct {
		name string
		d    Domain
		want PluginMode
	}{
		{"default", Domain{}, ModeLegacyPHP},
		{"wordpress", Domain{WpPlugin: 1}, ModeWordPress},
		{"windows", Domain{IsWin: 1}, ModeWindows},
		{"windows wins over wordpress", Domain{IsWin: 1, WpPlugin: 1}, ModeWindows},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ResolvePluginMode(&tc.d); got != tc.want {
				t.Fatalf("ResolvePluginMode = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestPluginMode_String(t *testing.T) {
	if ModeLegacyPHP.String() != "legacy-php" || ModeWordPress.String() != "wordpress" || ModeWindows.String() != "windows" {
		t.Fatalf("unexpected String values")
	}
}

func TestScriptVersionAtLeast(t *testing.T) {
	cases := []struct {
		version string
		min     float64
		want    bool
	}{
		{"3", 3, true},
		{"3.1", 3, true},
		{"2.9", 3, false},
		{"6.1.2", 6.1, true}, // extra components drop off
		{"", 3, false},
		{"garbage", 3, false},
		{" 3.0 ", 3, true},
	}
	for _, tc := range cases {
		d := Domain{ScriptVersion: tc.version}
		if got := d.ScriptVersionAtLeast(tc.min); got != tc.want {
			t.Errorf("ScriptVersionAtLeast(%q, %v) = %v, want %v", tc.version, tc.min, got, tc.want)
		}
	}
}

func TestClassifyServiceTier(t *testing.T) {
	cases := []struct {
		code string
		want ServiceTier
	}{
		{"SEOM 5", TierSEOM},
		{"SEOM 10", TierSEOM},
		{"SEOM", TierSEOM},
		{"BRON 10", TierBRON},
		{"BRON 25", TierBRON},
		{"BRON", TierStandard}, // no trailing space, not a BRON code
		{"Basic", TierStandard},
		{"", TierStandard},
		{"  BRON 10  ", TierBRON},
	}
	for _, tc := range cases {
		if got := ClassifyServiceTier(tc.code); got != tc.want {
			t.Errorf("ClassifyServiceTier(%q) = %v, want %v", tc.code, got, tc.want)
		}
	}
}
