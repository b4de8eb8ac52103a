package pep508

import (
	"testing"
)

func TestParse_Valid(t *testing.T) {
	tests := []struct {
		in   string
		want string // canonical String() rendering
	}{
		{"dependency1", "dependency1"},
		{"dependency2>1.0.0", "dependency2>1.0.0"},
		{"dependency3[extra]", "dependency3[extra]"},
		{`dependency4; os_name != "nt"`, `dependency4; os_name != "nt"`},
		{`dependency5[other-extra]>1.0; os_name == "nt"`, `dependency5[other-extra]>1.0; os_name == "nt"`},
		{"requests >= 2.28.0", "requests>=2.28.0"},
		{"requests (>=2.28.0)", "requests>=2.28.0"},
		{"pkg[b,a]", "pkg[a,b]"},
		{"pkg[a,a]", "pkg[a]"},
		{"pkg >=1.0, <2.0", "pkg<2.0,>=1.0"},
		{"pip @ https://github.com/pypa/pip/archive/1.3.1.zip", "pip@ https://github.com/pypa/pip/archive/1.3.1.zip"},
		{`name; os_name == "nt" or os_name == "posix"`, `name; os_name == "nt" or os_name == "posix"`},
		{`name; python_version >= "3.8" and (os_name == "nt" or os_name == "posix")`,
			`name; python_version >= "3.8" and (os_name == "nt" or os_name == "posix")`},
		{`name; 'win32' in sys_platform`, `name; "win32" in sys_platform`},
		{`name; os_name not in "nt posix"`, `name; os_name not in "nt posix"`},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			r, err := Parse(tt.in)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.in, err)
			}
			if got := r.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}

			// Canonical form must re-parse to itself.
			again, err := Parse(r.String())
			if err != nil {
				t.Fatalf("re-Parse(%q) error: %v", r.String(), err)
			}
			if again.String() != tt.want {
				t.Errorf("round-trip String() = %q, want %q", again.String(), tt.want)
			}
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	invalid := []string{
		"",
		"definitely not a valid PEP 508 requirement!",
		"-leading-dash",
		"trailing-dash-",
		"name[unclosed",
		"name[bad extra!]",
		"name===",
		"name@",
		"name@ two parts",
		`name; undefined_var == "x"`,
		`name; os_name == `,
		`name; os_name == "nt" and`,
		`name; "a" == "b"`,
		`name; os_name == "unterminated`,
	}
	for _, in := range invalid {
		if _, err := Parse(in); err == nil {
			t.Errorf("Parse(%q) succeeded, want error", in)
		}
	}
}

func TestCanonicalName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"full_metadata", "full-metadata"},
		{"My.Package", "my-package"},
		{"my_package", "my-package"},
		{"my-package", "my-package"},
		{"Under__Score", "under-score"},
		{"do.t", "do-t"},
		{"simple", "simple"},
	}
	for _, tt := range tests {
		if got := CanonicalName(tt.in); got != tt.want {
			t.Errorf("CanonicalName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCheckName(t *testing.T) {
	valid := []string{"a", "A", "0", "pkg", "pkg-name", "pkg_name", "pkg.name", "p0.k-g_1"}
	for _, name := range valid {
		if err := CheckName(name); err != nil {
			t.Errorf("CheckName(%q) error: %v", name, err)
		}
	}

	invalid := []string{"", ".test", "test.", "-test", "test-", "_test", "te st", "tëst"}
	for _, name := range invalid {
		if err := CheckName(name); err == nil {
			t.Errorf("CheckName(%q) succeeded, want error", name)
		}
	}
}

func TestWithExtra(t *testing.T) {
	tests := []struct {
		in    string
		group string
		want  string
	}{
		{"test_dependency", "test", `test_dependency; extra == "test"`},
		{
			`test_dependency[test_extra2]>3.0; os_name == "nt"`,
			"test",
			`test_dependency[test_extra2]>3.0; os_name == "nt" and extra == "test"`,
		},
		{"some_package", "under_score", `some_package; extra == "under-score"`},
		{
			`name; os_name == "nt" or os_name == "posix"`,
			"grp",
			`name; (os_name == "nt" or os_name == "posix") and extra == "grp"`,
		},
	}
	for _, tt := range tests {
		r, err := Parse(tt.in)
		if err != nil {
			t.Fatalf("Parse(%q) error: %v", tt.in, err)
		}
		if got := r.WithExtra(tt.group).String(); got != tt.want {
			t.Errorf("WithExtra(%q) = %q, want %q", tt.group, got, tt.want)
		}
		if r.Marker != nil && r.WithExtra(tt.group) == r {
			t.Error("WithExtra must not mutate the receiver")
		}
	}
}
