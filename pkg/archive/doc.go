// Package archive unpacks mod archives into storage. Supported formats are
// zip, plain tar and tar compressed with gzip or zstd; the format is picked
// from the file name. Entries that would land outside the destination
// directory are rejected and symlink entries are skipped.
package archive
