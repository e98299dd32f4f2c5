// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package modtest provides hand-built modiface doubles for tests, standing
// in for the external module loader / prelude / prototype-table
// collaborators the core does not implement.
package modtest

import (
	"fmt"

	"code.hybscloud.com/ember/modiface"
	"code.hybscloud.com/ember/value"
)

// Loader is a map-backed modiface.ModuleLoader keyed by module name.
type Loader map[string]*value.Record

func (l Loader) Load(req modiface.ModuleRequest) (*value.Record, error) {
	m, ok := l[req.Name]
	if !ok {
		return nil, fmt.Errorf("modtest: no module registered for %q", req.Name)
	}
	return m, nil
}

// PreludeMap is a map-backed modiface.Prelude.
type PreludeMap map[value.Symbol]value.Value

func (p PreludeMap) Bindings() map[value.Symbol]value.Value { return p }

// PrototypeTable is a map-backed modiface.Prototypes.
type PrototypeTable map[value.Kind][]*value.Record

func (p PrototypeTable) For(k value.Kind) []*value.Record { return p[k] }
