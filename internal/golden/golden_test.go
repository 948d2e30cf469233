package golden

import "testing"

func TestCompareGoldenFixturesMatch(t *testing.T) {
	mismatches, err := CompareGolden("../../testdata/golden")
	if err != nil {
		t.Fatalf("CompareGolden: %v", err)
	}
	for _, m := range mismatches {
		if m.Err != nil {
			t.Errorf("%s: %v", m.Fixture, m.Err)
			continue
		}
		t.Errorf("%s: emitted text does not match expected.tl\n--- expected ---\n%s\n--- got ---\n%s", m.Fixture, m.Expected, m.Got)
	}
}

func TestCompareGoldenMissingDir(t *testing.T) {
	if _, err := CompareGolden("../../testdata/does-not-exist"); err == nil {
		t.Error("CompareGolden(missing dir) = nil error, want non-nil")
	}
}
