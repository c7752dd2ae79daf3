// SPDX-License-Identifier: MIT
package alosi

import "github.com/harvard-vpal/alosi-go/engine"

// Engine, Store, Config, and Option are re-exported so callers that only
// need the common facade can depend on this one import path instead of
// reaching into engine/ directly.
type (
	Engine = engine.Engine
	Store  = engine.Store
	Config = engine.Config
	Option = engine.Option
)

// New builds an Engine backed by store, applying opts over the documented
// defaults. Thin forwarding wrapper over engine.New.
func New(store Store, opts ...Option) *Engine {
	return engine.New(store, opts...)
}
