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

// Package listdiff provides functions to compute the changes between two slices of identifiable
// elements, for example to update a list or grid view to show new data.
//
// Unlike a classic diff that only knows insertions and deletions, listdiff identifies elements by
// a key and reports four kinds of changes: insertions, deletions, updates (same key, different
// content), and moves (same key, different relative position). The main functions are [Changes]
// for comparable elements that are their own key, [ChangesKey] for comparable elements with a key,
// and [ChangesFunc] for everything else.
//
// The changes are computed using Paul Heckel's algorithm. It runs in O(N) time and space where
// N = len(old) + len(new). The output is minimal if all keys are unique. Duplicate keys are
// supported, but may result in more changes than necessary.
//
// All functions are safe for concurrent use, they never retain or modify their inputs. The inputs
// must not be modified while a function is running.
//
// [Apply] applies a change script to a slice and [Group] groups a change script into index lists,
// the form most batch update APIs of list views expect.
//
// Note: For a line-by-line comparison of text, please see [znkr.io/listdiff/textdiff].
//
// [znkr.io/listdiff/textdiff]: https://pkg.go.dev/znkr.io/listdiff/textdiff
package listdiff
