// Package generator produces the declaration files of the destination
// tree: one mod.rs per level-1 directory and, optionally, a single
// main.rs entrypoint at the destination root.
//
// Content generation is pure and separated from writing, so tests can
// assert exact file contents without touching disk. The two generators
// deliberately order their output differently:
//
//   - mod.rs sorts level-2 and level-3 entries by destination name, so
//     aggregation files are stable across runs regardless of how the
//     filesystem enumerated the origin;
//   - main.rs follows the structure's natural order, mirroring the
//     origin tree as it was walked.
//
// Generated files are overwritten unconditionally on every run, using
// atomic temp-file-then-rename writes.
package generator
