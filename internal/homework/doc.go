// Package homework holds the pure part of the poll-diff-notify cycle:
// the verdict table, structural validation of a poll response, and
// derivation of a notification message from a single homework record.
//
// Nothing here performs I/O or keeps state. The previously seen status is
// passed in by the caller (see Extractor.Extract).
package homework
