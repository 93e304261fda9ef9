// Copyright (c) 2024 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package version

import (
	"strings"
	"testing"
)

// TestSemVerParsing ensures parsing a semantic version string works as
// expected.
func TestSemVerParsing(t *testing.T) {
	tests := []struct {
		ver     string // semantic version string to parse
		want    semver // expected components
		invalid bool   // expected error
	}{
		{ver: "0.0.4", want: semver{0, 0, 4, "", ""}},
		{ver: "10.20.30", want: semver{10, 20, 30, "", ""}},
		{ver: "1.1.2-prerelease+meta", want: semver{1, 1, 2, "prerelease", "meta"}},
		{ver: "1.1.2+meta-valid", want: semver{1, 1, 2, "", "meta-valid"}},
		{ver: "1.0.0-alpha.beta.1", want: semver{1, 0, 0, "alpha.beta.1", ""}},
		{ver: "1.0.0-rc.1+build.123", want: semver{1, 0, 0, "rc.1", "build.123"}},
		{ver: "1", invalid: true},
		{ver: "1.2", invalid: true},
		{ver: "01.1.1", invalid: true},
		{ver: "1.2.3-0123", invalid: true},
		{ver: "1.2.3+meta+meta", invalid: true},
		{ver: "1.2.3-é", invalid: true},
		{ver: "99999999999999999999999.0.0", invalid: true},
	}

	for _, test := range tests {
		got, err := parseSemVer(test.ver)
		if test.invalid {
			if err == nil {
				t.Errorf("%q: did not receive expected error", test.ver)
			}
			continue
		}
		if err != nil {
			t.Errorf("%q: unexpected error: %v", test.ver, err)
			continue
		}
		if *got != test.want {
			t.Errorf("%q: mismatched components -- got %+v, want %+v",
				test.ver, *got, test.want)
			continue
		}
	}
}

// TestString ensures the version string starts with the configured version.
func TestString(t *testing.T) {
	if !strings.HasPrefix(String(), Version) {
		t.Fatalf("version string %q does not start with %q", String(), Version)
	}
	if Major != 0 || Minor != 1 || Patch != 0 || PreRelease != "pre" {
		t.Fatalf("unexpected parsed version %d.%d.%d-%s", Major, Minor, Patch,
			PreRelease)
	}
}
