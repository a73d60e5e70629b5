// Package script runs YAML operation scripts against a document.
//
// A script declares root containers and a list of steps:
//
//	roots: {items: array, meta: map, body: text}
//	steps:
//	- {op: insert, target: items, index: 0, values: [a, 1, {$array: [true, false]}, b]}
//	- {op: set, target: meta, key: x, value: 5}
//	- {op: format, target: body, index: 0, length: 1, attrs: {bold: true}}
//
// Targets are kinded paths from a root, such as "items[2]" or "meta.x".
// Values written as {$array: [...]}, {$map: {...}} or {$text: "..."} become
// preliminary shared containers.  Each step runs in its own transaction;
// the changes it makes are reported as Records, optionally filtered by an
// expr expression.
package script
