// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package diag

import "github.com/sahilm/fuzzy"

// ClosestName ranks candidates against name using fuzzy matching and
// returns the best match, or "" if candidates is empty or nothing scores
// above zero. Used to decorate ErrUndeclaredName/ErrUndeclaredAssignTarget
// diagnostics with a "did you mean ...?" hint (spec §7), grounded on
// github.com/sahilm/fuzzy (present in the retrieval pack via ardnew/aenv)
// rather than a hand-rolled edit-distance routine.
func ClosestName(name string, candidates []string) string {
	if len(candidates) == 0 {
		return ""
	}
	matches := fuzzy.Find(name, candidates)
	if len(matches) == 0 {
		return ""
	}
	return matches[0].Str
}

// WithClosestNameHint appends a "did you mean %q?" note if a candidate
// scores above zero against the diagnostic's undeclared name.
func (d *Diagnostic) WithClosestNameHint(name string, candidates []string) *Diagnostic {
	if hint := ClosestName(name, candidates); hint != "" && hint != name {
		d.WithNote("did you mean %q?", hint)
	}
	return d
}
