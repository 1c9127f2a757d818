package domain

import "testing"

func TestThemeFor(t *testing.T) {
	tests := []struct {
		variant int
		accent  string
	}{
		{1, "blue"},
		{2, "green"},
		{3, "orange"},
		{0, DefaultTheme.Accent},
		{4, DefaultTheme.Accent},
		{-1, DefaultTheme.Accent},
	}

	for _, tc := range tests {
		got := ThemeFor(tc.variant)
		if got.Accent != tc.accent {
			t.Errorf("ThemeFor(%d).Accent = %q, want %q", tc.variant, got.Accent, tc.accent)
		}
		if (tc.variant < 1 || tc.variant > 3) && got != DefaultTheme {
			t.Errorf("ThemeFor(%d) = %+v, want DefaultTheme", tc.variant, got)
		}
	}
}
