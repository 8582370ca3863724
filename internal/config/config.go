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

// Package config provides shared configuration mechanisms for packages this module.
//
// This package is an implementation detail, the configuration surface for users is provided via
// listdiff.Option.
package config

// Config collects all configurable parameters for comparison functions in this module.
type Config struct {
	// If set, items that changed their relative position are reported as a delete followed by an
	// insert instead of a move.
	DisableMoves bool

	// If set, matched items are never reported as updated.
	DisableUpdates bool
}

// Default is the default configuration.
var Default = Config{
	DisableMoves:   false,
	DisableUpdates: false,
}

// Flag describes a single config entry. This is used to detect if configurations are being set
// that are not supported by a function.
type Flag int

const (
	DisableMoves Flag = 1 << iota
	DisableUpdates
)

// Option is the mechanism used to expose the configuration to users.
type Option func(*Config) Flag

// FromOptions creates a configuration from a set of options.
func FromOptions(opts []Option, allowed Flag) Config {
	cfg := Default
	for _, opt := range opts {
		flag := opt(&cfg)
		if flag & ^allowed != 0 {
			panic("Option " + printFlag(flag) + " not allowed here")
		}
	}
	return cfg
}

// ColorConfig configures ANSI escape sequences for textual output. An empty sequence disables
// coloring for that part of the output.
type ColorConfig struct {
	Delete   string
	Insert   string
	Move     string
	Position string
}

func printFlag(flag Flag) string {
	switch flag {
	case DisableMoves:
		return "listdiff.DisableMoves"
	case DisableUpdates:
		return "listdiff.DisableUpdates"
	default:
		panic("never reached")
	}
}
