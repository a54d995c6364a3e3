// Package status compares what a game's active preset should have linked
// with what is actually on disk.
//
// Every file of every mod in the active preset gets one Entry describing
// the state of its destination. Symlinks into the game's mod storage that
// no entry accounts for are reported as stray; they are what an
// interrupted switch leaves behind.
package status
