// Copyright 2025 Florian Zenker (flo@znkr.io)
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package listdiff

import "znkr.io/listdiff/internal/config"

// Option configures the behavior of comparison functions.
type Option = config.Option

// DisableMoves reports elements that changed their relative position as a deletion from old
// followed by an insertion from new instead of a move. This is useful for consumers that can't
// express moves.
//
// An element that was both moved and updated is only reported as a deletion and an insertion.
func DisableMoves() Option {
	return func(cfg *config.Config) config.Flag {
		cfg.DisableMoves = true
		return config.DisableMoves
	}
}

// DisableUpdates never reports updates, elements with the same key are always treated as equal.
func DisableUpdates() Option {
	return func(cfg *config.Config) config.Flag {
		cfg.DisableUpdates = true
		return config.DisableUpdates
	}
}
