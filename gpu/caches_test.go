// SPDX-License-Identifier: Unlicense OR MIT

package gpu

import "testing"

func TestProgramKey(t *testing.T) {
	base := keyFor("v", "f", []string{"a", "b"}, FeedbackSeparate)
	tests := []struct {
		name string
		key  programKey
		same bool
	}{
		{"identical", keyFor("v", "f", []string{"a", "b"}, FeedbackSeparate), true},
		{"vertex", keyFor("v2", "f", []string{"a", "b"}, FeedbackSeparate), false},
		{"varyings", keyFor("v", "f", []string{"ab"}, FeedbackSeparate), false},
		{"order", keyFor("v", "f", []string{"b", "a"}, FeedbackSeparate), false},
		{"mode", keyFor("v", "f", []string{"a", "b"}, FeedbackInterleaved), false},
	}
	for _, tt := range tests {
		if got := tt.key == base; got != tt.same {
			t.Errorf("%s: equal = %v, want %v", tt.name, got, tt.same)
		}
	}
}

func TestSamplerNames(t *testing.T) {
	vert := "uniform sampler2D uPos;\nuniform float uTime;\nvoid main() {}\n"
	frag := "uniform highp samplerCube sky;\n  uniform isampler2D ids;\n// uniform sampler2D unused;\nvoid main() {}\n"
	got := samplerNames(vert, frag)
	want := []string{"uPos", "sky", "ids"}
	if len(got) != len(want) {
		t.Fatalf("samplerNames = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("samplerNames[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func BenchmarkProgramKey(b *testing.B) {
	varyings := []string{"vPosition", "vVelocity", "vColor"}
	for i := 0; i < b.N; i++ {
		keyFor("vertex", "fragment", varyings, FeedbackSeparate)
	}
}
