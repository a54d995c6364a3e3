// Package topics adds file-based help topics to a Cobra command tree.
//
// Topics are plain text or markdown files read from an fs.FS, usually an
// embedded directory, and are shown by `<app> help <topic>`. Markdown is
// rendered for the terminal with glamour.
package topics
